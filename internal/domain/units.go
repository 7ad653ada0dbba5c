package domain

import "fmt"

const kgPerLb = 0.45359237

// KgToLb converts a metric weight for imperial display.
func KgToLb(kg float64) float64 {
	return kg / kgPerLb
}

// LbToKg converts imperial input back to the metric storage unit.
func LbToKg(lb float64) float64 {
	return lb * kgPerLb
}

// FormatWeight renders a stored metric weight in the preferred unit.
func FormatWeight(kg float64, metric bool) string {
	if metric {
		return fmt.Sprintf("%.1f kg", kg)
	}
	return fmt.Sprintf("%.1f lb", KgToLb(kg))
}

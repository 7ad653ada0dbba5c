// Package calendar projects a plan's weekly schedule and the completed
// history onto a month grid for the scheduling view.
package calendar

import (
	"time"

	"periolifts/fitness-client/internal/domain"
)

// Day is one cell of the month grid.
type Day struct {
	Date        time.Time
	InMonth     bool // false for leading/trailing cells of adjacent months
	Today       bool
	WorkoutID   string // scheduled workout for this weekday, "" on rest days
	WorkoutName string
	Completed   bool // a history entry was recorded on this date
}

// Week is one Monday-first row of seven days.
type Week [7]Day

// MonthGrid builds the 6-week, Monday-first grid for the given month. The
// plan may be nil (no schedule overlay); names resolves workout ids to
// display names and may be nil.
func MonthGrid(
	year int,
	month time.Month,
	plan *domain.WorkoutPlan,
	history []domain.WorkoutHistoryEntry,
	names map[string]string,
	now time.Time,
) []Week {
	firstDay := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)

	// Monday-first offset: Monday=0 .. Sunday=6.
	startWeekday := int(firstDay.Weekday())
	if startWeekday == 0 {
		startWeekday = 7
	}
	startWeekday--

	performed := make(map[string]bool, len(history))
	for _, entry := range history {
		performed[entry.PerformedAt.In(time.Local).Format("2006-01-02")] = true
	}

	today := now.In(time.Local).Format("2006-01-02")
	gridStart := firstDay.AddDate(0, 0, -startWeekday)

	weeks := make([]Week, 6)
	for w := 0; w < 6; w++ {
		for d := 0; d < 7; d++ {
			date := gridStart.AddDate(0, 0, w*7+d)
			key := date.Format("2006-01-02")

			day := Day{
				Date:      date,
				InMonth:   date.Month() == month,
				Today:     key == today,
				Completed: performed[key],
			}
			if plan != nil {
				day.WorkoutID = plan.WorkoutFor(date.Weekday())
				if day.WorkoutID != "" && names != nil {
					day.WorkoutName = names[day.WorkoutID]
				}
			}
			weeks[w][d] = day
		}
	}
	return weeks
}

// NextTrainingDay returns the next date (from and including the given day)
// that has a workout scheduled, or the zero time when the plan has none.
func NextTrainingDay(plan domain.WorkoutPlan, from time.Time) time.Time {
	if plan.TrainingDays() == 0 {
		return time.Time{}
	}
	day := from
	for i := 0; i < 7; i++ {
		if plan.WorkoutFor(day.Weekday()) != "" {
			return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		}
		day = day.AddDate(0, 0, 1)
	}
	return time.Time{}
}

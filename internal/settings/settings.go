// Package settings persists the small local preference set: preferred
// weight unit and the rest-timer override. Values live in a settings.yaml
// next to the app config, read on open and written on every change.
package settings

import (
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

const (
	keyMetricUnits = "units.metric"
	keyRestSeconds = "rest_timer.seconds"

	fileName = "settings.yaml"
)

type Store struct {
	mu   sync.Mutex
	v    *viper.Viper
	path string
}

// Open loads (or initializes) the settings file in dir.
func Open(dir string) (*Store, error) {
	v := viper.New()
	v.SetConfigName("settings")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetDefault(keyMetricUnits, true)
	v.SetDefault(keyRestSeconds, 0) // 0: use each exercise's prescribed rest

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// First launch: defaults apply until something is written.
	}

	return &Store{v: v, path: filepath.Join(dir, fileName)}, nil
}

// MetricUnits reports whether weights display in kilograms.
func (s *Store) MetricUnits() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.GetBool(keyMetricUnits)
}

func (s *Store) SetMetricUnits(metric bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Set(keyMetricUnits, metric)
	return s.v.WriteConfigAs(s.path)
}

// RestTimerSeconds returns the rest-timer override; 0 means no override.
func (s *Store) RestTimerSeconds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	seconds := s.v.GetInt(keyRestSeconds)
	if seconds < 0 {
		return 0
	}
	return seconds
}

func (s *Store) SetRestTimerSeconds(seconds int) error {
	if seconds < 0 {
		seconds = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Set(keyRestSeconds, seconds)
	return s.v.WriteConfigAs(s.path)
}

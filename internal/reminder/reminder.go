// Package reminder schedules workout reminders for the active plan's
// training days.
package reminder

import (
	"fmt"
	"sync"

	"github.com/robfig/cron"
	log "github.com/sirupsen/logrus"

	"periolifts/fitness-client/internal/domain"
)

// cron weekday numbers, Sunday = 0.
var cronWeekday = map[string]int{
	"sunday": 0, "monday": 1, "tuesday": 2, "wednesday": 3,
	"thursday": 4, "friday": 5, "saturday": 6,
}

// Notify delivers a reminder message to the user.
type Notify func(message string)

// Scheduler fires a reminder at the configured time on each weekday the
// plan schedules a workout.
type Scheduler struct {
	mu     sync.Mutex
	c      *cron.Cron
	notify Notify
}

func NewScheduler(notify Notify) *Scheduler {
	return &Scheduler{notify: notify}
}

// SchedulePlan replaces any previous schedule with entries for the given
// plan, firing at hour:minute local time. names resolves workout ids to
// display names and may be nil.
func (s *Scheduler) SchedulePlan(plan domain.WorkoutPlan, hour, minute int, names map[string]string) error {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return fmt.Errorf("invalid reminder time %02d:%02d", hour, minute)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.c != nil {
		s.c.Stop()
	}
	s.c = cron.New()

	for day, workoutID := range plan.Schedule {
		if workoutID == "" {
			continue
		}
		weekday, ok := cronWeekday[day]
		if !ok {
			continue
		}
		name := workoutID
		if names != nil && names[workoutID] != "" {
			name = names[workoutID]
		}

		spec := fmt.Sprintf("0 %d %d * * %d", minute, hour, weekday)
		message := fmt.Sprintf("Time for %s (plan %s)", name, plan.Name)
		if err := s.c.AddFunc(spec, func() {
			log.Debugf("reminder fired: %s", message)
			s.notify(message)
		}); err != nil {
			return fmt.Errorf("schedule %s: %w", day, err)
		}
	}

	s.c.Start()
	log.Infof("reminders scheduled for plan %q at %02d:%02d on %d day(s)",
		plan.Name, hour, minute, plan.TrainingDays())
	return nil
}

// Stop halts all scheduled reminders.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.c != nil {
		s.c.Stop()
		s.c = nil
	}
}

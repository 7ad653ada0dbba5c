package session

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// RestTimer is an Observer that starts a one-shot countdown whenever a set
// completes. The duration is the settings override when one is configured,
// otherwise the exercise's prescribed rest. No timer starts after the final
// set of the workout.
type RestTimer struct {
	mu       sync.Mutex
	override time.Duration // 0 means "use the exercise prescription"
	deadline time.Time
	timer    *time.Timer
	onDone   func()
}

// NewRestTimer builds a rest timer. override <= 0 disables the override;
// onDone (optional) fires when a countdown elapses.
func NewRestTimer(override time.Duration, onDone func()) *RestTimer {
	if override < 0 {
		override = 0
	}
	return &RestTimer{override: override, onDone: onDone}
}

var _ Observer = (*RestTimer)(nil)

// HandleWorkoutEvent starts the countdown on SetCompleted events.
func (r *RestTimer) HandleWorkoutEvent(event Event) {
	completed, ok := event.(SetCompleted)
	if !ok || completed.WorkoutDone {
		return
	}

	duration := time.Duration(completed.RestSeconds) * time.Second
	if r.override > 0 {
		duration = r.override
	}
	if duration <= 0 {
		return
	}
	r.start(duration)
}

func (r *RestTimer) start(duration time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
	}
	r.deadline = time.Now().Add(duration)
	log.Debugf("rest timer started for %s", duration)
	r.timer = time.AfterFunc(duration, func() {
		r.mu.Lock()
		r.timer = nil
		r.deadline = time.Time{}
		done := r.onDone
		r.mu.Unlock()
		if done != nil {
			done()
		}
	})
}

// Active reports whether a countdown is running.
func (r *RestTimer) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timer != nil
}

// Remaining returns the time left on the countdown, or 0 when idle.
func (r *RestTimer) Remaining() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer == nil {
		return 0
	}
	remaining := time.Until(r.deadline)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Stop cancels the running countdown, if any, without firing onDone.
func (r *RestTimer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
		r.deadline = time.Time{}
	}
}

// Package session tracks a live workout run: which exercise and set is
// current, what has been performed, and how far along the workout is.
package session

import (
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"periolifts/fitness-client/internal/domain"
)

var (
	ErrSessionFinished = errors.New("session already finished")
	ErrNoExercises     = errors.New("workout has no exercises")
)

// Tracker owns the in-memory progression of one workout session. It is not
// concurrency-safe across goroutines by design: a session is driven by a
// single UI loop. Events go out through registered Observers.
type Tracker struct {
	workout   domain.Workout
	results   [][]domain.SetResult
	skipped   []bool
	curEx     int
	curSet    int
	startedAt time.Time
	now       func() time.Time // injectable clock for tests
	finished  bool
	observers []Observer
}

// NewTracker builds a tracker for the workout. Observers registered here
// receive every event the run produces.
func NewTracker(workout domain.Workout, observers ...Observer) (*Tracker, error) {
	if len(workout.Exercises) == 0 {
		return nil, ErrNoExercises
	}
	results := make([][]domain.SetResult, len(workout.Exercises))
	for i, ex := range workout.Exercises {
		results[i] = make([]domain.SetResult, ex.Sets)
	}
	t := &Tracker{
		workout:   workout,
		results:   results,
		skipped:   make([]bool, len(workout.Exercises)),
		startedAt: time.Now(),
		now:       time.Now,
		observers: observers,
	}
	// Land the cursor on the first exercise that has sets; records written
	// by other clients may prescribe zero.
	t.skipToNextPending()
	if t.finished {
		return nil, ErrNoExercises
	}
	return t, nil
}

// Current returns the indices of the exercise and set up next.
func (t *Tracker) Current() (exercise, set int) {
	return t.curEx, t.curSet
}

// CurrentExercise returns the prescription for the exercise up next.
func (t *Tracker) CurrentExercise() domain.WorkoutExercise {
	return t.workout.Exercises[t.curEx]
}

// Finished reports whether every set was completed or skipped.
func (t *Tracker) Finished() bool {
	return t.finished
}

// Progress returns completion as a fraction in [0, 1]: sets completed or
// skipped over total prescribed sets.
func (t *Tracker) Progress() float64 {
	total := t.workout.TotalSets()
	if total == 0 {
		return 0
	}
	done := 0
	for i, sets := range t.results {
		if t.skipped[i] {
			done += len(sets)
			continue
		}
		for _, set := range sets {
			if set.Done {
				done++
			}
		}
	}
	return float64(done) / float64(total)
}

// CompleteSet records the result of the current set and advances the
// cursor. reps/weight may differ from the prescription; they record what
// was actually performed.
func (t *Tracker) CompleteSet(reps int, weightKg float64) error {
	if t.finished {
		return ErrSessionFinished
	}

	t.results[t.curEx][t.curSet] = domain.SetResult{
		Reps:     reps,
		WeightKg: weightKg,
		Done:     true,
	}

	exercise := t.workout.Exercises[t.curEx]
	event := SetCompleted{
		ExerciseIndex: t.curEx,
		SetIndex:      t.curSet,
		Reps:          reps,
		WeightKg:      weightKg,
		RestSeconds:   exercise.RestSeconds,
	}

	t.advance()
	event.ExerciseDone = t.finished || t.curEx != event.ExerciseIndex
	event.WorkoutDone = t.finished

	t.emit(event)
	if t.finished {
		t.emitCompleted()
	}
	return nil
}

// SkipExercise marks the remaining sets of the current exercise as skipped
// and moves on to the next one.
func (t *Tracker) SkipExercise() error {
	if t.finished {
		return ErrSessionFinished
	}

	index := t.curEx
	t.skipped[index] = true
	t.curEx++
	t.curSet = 0
	t.skipToNextPending()

	t.emit(ExerciseSkipped{ExerciseIndex: index})
	if t.finished {
		t.emitCompleted()
	}
	return nil
}

// Finish ends the run early, leaving unperformed sets not done.
func (t *Tracker) Finish() {
	if t.finished {
		return
	}
	t.finished = true
	t.emitCompleted()
}

// Snapshot applies the tracked results onto the persisted session record.
func (t *Tracker) Snapshot(session domain.WorkoutSession) domain.WorkoutSession {
	for i := range session.Exercises {
		if i >= len(t.results) {
			break
		}
		session.Exercises[i].Sets = append([]domain.SetResult{}, t.results[i]...)
		session.Exercises[i].Skipped = t.skipped[i]
	}
	if t.finished {
		session.Status = domain.SessionCompleted
		completedAt := t.now()
		session.CompletedAt = &completedAt
	}
	return session
}

// HistoryEntry summarizes the run for the workout_history collection.
func (t *Tracker) HistoryEntry() domain.WorkoutHistoryEntry {
	completed := 0
	volume := 0.0
	for _, sets := range t.results {
		for _, set := range sets {
			if set.Done {
				completed++
				volume += float64(set.Reps) * set.WeightKg
			}
		}
	}
	return domain.WorkoutHistoryEntry{
		WorkoutID:       t.workout.ID,
		WorkoutName:     t.workout.Name,
		PerformedAt:     t.startedAt,
		DurationSeconds: int(t.now().Sub(t.startedAt) / time.Second),
		TotalVolumeKg:   volume,
		CompletedSets:   completed,
	}
}

// advance moves the cursor past the just-completed set.
func (t *Tracker) advance() {
	t.curSet++
	if t.curSet >= t.workout.Exercises[t.curEx].Sets {
		t.curEx++
		t.curSet = 0
	}
	t.skipToNextPending()
}

// skipToNextPending lands the cursor on the next exercise that still has
// sets to perform, or marks the run finished.
func (t *Tracker) skipToNextPending() {
	for t.curEx < len(t.workout.Exercises) && t.workout.Exercises[t.curEx].Sets == 0 {
		t.curEx++
	}
	if t.curEx >= len(t.workout.Exercises) {
		t.curEx = len(t.workout.Exercises) - 1
		t.finished = true
	}
}

func (t *Tracker) emit(event Event) {
	for _, obs := range t.observers {
		obs.HandleWorkoutEvent(event)
	}
}

func (t *Tracker) emitCompleted() {
	skippedSets := 0
	for i, wasSkipped := range t.skipped {
		if wasSkipped {
			for _, set := range t.results[i] {
				if !set.Done {
					skippedSets++
				}
			}
		}
	}
	entry := t.HistoryEntry()
	log.Infof("workout %q finished: %d sets, %.1f kg volume", t.workout.Name, entry.CompletedSets, entry.TotalVolumeKg)
	t.emit(WorkoutCompleted{
		CompletedSets:   entry.CompletedSets,
		SkippedSets:     skippedSets,
		DurationSeconds: entry.DurationSeconds,
		TotalVolumeKg:   entry.TotalVolumeKg,
	})
}

package session

// Event is a notification emitted by the Tracker as the workout advances.
// Components that react to progress (the rest timer, persistence, UI)
// subscribe as Observers instead of diffing state snapshots.
type Event interface {
	isEvent()
}

// SetCompleted fires after every completed set.
type SetCompleted struct {
	ExerciseIndex int
	SetIndex      int
	Reps          int
	WeightKg      float64
	RestSeconds   int  // prescribed rest for the exercise, 0 when unset
	ExerciseDone  bool // this was the last set of the exercise
	WorkoutDone   bool // this was the last set of the workout
}

// ExerciseSkipped fires when the remaining sets of an exercise are skipped.
type ExerciseSkipped struct {
	ExerciseIndex int
}

// WorkoutCompleted fires once, when the final set is done or Finish is called.
type WorkoutCompleted struct {
	CompletedSets   int
	SkippedSets     int
	DurationSeconds int
	TotalVolumeKg   float64
}

func (SetCompleted) isEvent()     {}
func (ExerciseSkipped) isEvent()  {}
func (WorkoutCompleted) isEvent() {}

// Observer receives tracker events. Callbacks run synchronously on the
// goroutine that mutated the tracker and must not call back into it.
type Observer interface {
	HandleWorkoutEvent(event Event)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(Event)

func (fn ObserverFunc) HandleWorkoutEvent(event Event) { fn(event) }

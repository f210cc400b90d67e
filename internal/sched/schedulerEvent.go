// internal/sched/schedulerEvent.go

package sched

// StatusKind represents the type of scheduler event
type StatusKind int

const (
	StatusIdle StatusKind = iota
	StatusEnqueue
	StatusDispatch
	StatusPreempt
	StatusFinish
	StatusDemote
	StatusReset
	StatusBoost
)

// StatusEvent is emitted on key actions of a simulation. Tick is simulated
// time, not wall clock.
type StatusEvent struct {
	Policy    string
	Tick      int
	Kind      StatusKind
	TaskID    TaskID
	Level     int // MLFQ level after the event, 0 elsewhere
	Remaining int
	RanTicks  int // service granted by the slice that just ended
}

// Observer receives status events. Policies call it synchronously.
type Observer func(StatusEvent)

func (sk StatusKind) String() string {
	switch sk {
	case StatusIdle:
		return "Idle"
	case StatusEnqueue:
		return "Enqueued"
	case StatusDispatch:
		return "Dispatch"
	case StatusPreempt:
		return "Preempt"
	case StatusFinish:
		return "Finish"
	case StatusDemote:
		return "Demote"
	case StatusReset:
		return "Reset"
	case StatusBoost:
		return "Boost"
	default:
		return "Unknown"
	}
}

// tracer stamps events with the policy name and drops them when nobody listens.
type tracer struct {
	policy string
	obs    Observer
}

func (t tracer) emit(ev StatusEvent) {
	if t.obs == nil {
		return
	}
	ev.Policy = t.policy
	t.obs(ev)
}

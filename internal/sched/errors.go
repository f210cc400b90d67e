package sched

import "errors"

var (
	// ErrInvalidConfiguration reports a non-positive quantum, an empty level
	// list or a non-positive boost interval.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrInvalidTask reports a malformed task; the whole batch is rejected.
	ErrInvalidTask = errors.New("invalid task")
	// ErrUnknownPolicy is returned by Build for an unregistered policy name.
	ErrUnknownPolicy = errors.New("unknown policy")
	// ErrTooLarge means a task set can run past the configured max_ticks.
	ErrTooLarge = errors.New("task set too large")
	// ErrStalled means a simulation ran past the last tick any valid input can reach.
	ErrStalled = errors.New("simulation stalled")
)

package sched

import (
	"fmt"
	"math"
	"sort"
)

// MaxTick is the largest tick a task set may reach: the latest arrival plus
// the sum of all bursts must not exceed it.
const MaxTick = math.MaxInt32

// TaskID uniquely identifies a task within one simulation run.
type TaskID int

// Task represents one compute-bound unit of work. It is read-only input to
// every policy; the mutable simulation state lives in a proc.
type Task struct {
	ID      TaskID `json:"id" yaml:"id"`
	Arrival int    `json:"arrival" yaml:"arrival"` // tick at which the task becomes eligible
	Burst   int    `json:"burst" yaml:"burst"`     // total service time required, >= 1
}

// NewTask creates a task. It does not validate; policies reject bad batches.
func NewTask(id TaskID, arrival, burst int) Task {
	return Task{ID: id, Arrival: arrival, Burst: burst}
}

// ValidateTasks rejects the whole batch if any task is malformed, ids repeat
// or the batch could run past MaxTick.
func ValidateTasks(tasks []Task) error {
	seen := make(map[TaskID]struct{}, len(tasks))
	maxArrival, total := 0, 0
	for i, t := range tasks {
		switch {
		case t.ID <= 0:
			return fmt.Errorf("%w: task #%d has non-positive id %d", ErrInvalidTask, i, t.ID)
		case t.Arrival < 0:
			return fmt.Errorf("%w: task %d has negative arrival %d", ErrInvalidTask, t.ID, t.Arrival)
		case t.Burst <= 0:
			return fmt.Errorf("%w: task %d has non-positive burst %d", ErrInvalidTask, t.ID, t.Burst)
		case t.Arrival > MaxTick || t.Burst > MaxTick-total:
			return fmt.Errorf("%w: task %d pushes the batch past tick %d", ErrInvalidTask, t.ID, MaxTick)
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("%w: task %d already exists", ErrInvalidTask, t.ID)
		}
		seen[t.ID] = struct{}{}
		maxArrival = max(maxArrival, t.Arrival)
		total += t.Burst
	}
	if total > MaxTick-maxArrival {
		return fmt.Errorf("%w: batch can run past tick %d", ErrInvalidTask, MaxTick)
	}
	return nil
}

// Horizon is the latest tick any policy can reach on tasks: the last
// arrival plus the total burst. Tasks must already be valid.
func Horizon(tasks []Task) int {
	maxArrival, total := 0, 0
	for _, t := range tasks {
		maxArrival = max(maxArrival, t.Arrival)
		total += t.Burst
	}
	return maxArrival + total
}

// proc is the private working copy of a task for one policy run.
type proc struct {
	Task
	order     int // position in the caller's slice, the final tie-breaker
	remaining int
	level     int // MLFQ queue index
}

// arena holds the scratch copies of one run, indexed by input position.
type arena struct {
	procs []proc
	index map[TaskID]int
}

func newArena(tasks []Task) *arena {
	a := &arena{
		procs: make([]proc, len(tasks)),
		index: make(map[TaskID]int, len(tasks)),
	}
	for i, t := range tasks {
		a.procs[i] = proc{Task: t, order: i, remaining: t.Burst}
		a.index[t.ID] = i
	}
	return a
}

func (a *arena) get(id TaskID) *proc { return &a.procs[a.index[id]] }

// byArrival returns arena indexes sorted by arrival, stable on input order.
func (a *arena) byArrival() []int {
	idx := make([]int, len(a.procs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return a.procs[idx[i]].Arrival < a.procs[idx[j]].Arrival
	})
	return idx
}

// horizon is the latest tick any valid run can reach.
func (a *arena) horizon() int {
	maxArrival, total := 0, 0
	for _, p := range a.procs {
		maxArrival = max(maxArrival, p.Arrival)
		total += p.Burst
	}
	return maxArrival + total
}

package sched

import (
	"fmt"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
)

// MLFQ is a multi-level feedback queue. Level 0 has the highest priority and
// Levels[i] is the quantum of level i.
//
// The head of the highest non-empty level runs for min(quantum, remaining)
// ticks. A task that uses up its quantum with work left is demoted one level
// (never past the last), except that with probability ResetProbability it is
// sent back to level 0 instead. At the start of every tick that is a positive
// multiple of BoostInterval, every task in the system moves to level 0 in one
// step; a dispatch in progress ends there and its task joins the back of
// level 0.
type MLFQ struct {
	Levels        []int
	BoostInterval int
	Rand          Rand
	Observer      Observer
}

// NewMLFQ validates the level quanta and boost interval.
func NewMLFQ(levels []int, boostInterval int, rng Rand) (*MLFQ, error) {
	m := &MLFQ{
		Levels:        append([]int(nil), levels...),
		BoostInterval: boostInterval,
		Rand:          rng,
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (*MLFQ) Name() string { return NameMLFQ }

func (m *MLFQ) validate() error {
	if err := validateLevels(m.Levels, m.BoostInterval); err != nil {
		return err
	}
	if m.Rand == nil {
		return fmt.Errorf("%w: mlfq has no random source", ErrInvalidConfiguration)
	}
	return nil
}

func (m *MLFQ) Schedule(tasks []Task) (Timeline, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	if err := ValidateTasks(tasks); err != nil {
		return nil, err
	}
	a := newArena(tasks)
	tr := tracer{policy: NameMLFQ, obs: m.Observer}
	rec := newRecorder(len(tasks))
	order := a.byArrival()
	limit := a.horizon()
	last := len(m.Levels) - 1

	queues := make([]*linkedlistqueue.Queue, len(m.Levels))
	for i := range queues {
		queues[i] = linkedlistqueue.New()
	}

	var running *proc
	budget, runStart := 0, 0

	next, finished := 0, 0
	for tick := 0; finished < len(order); {
		if tick > limit {
			return nil, fmt.Errorf("%w: mlfq passed tick %d", ErrStalled, limit)
		}

		if tick > 0 && tick%m.BoostInterval == 0 {
			if running != nil {
				rec.add(running.ID, runStart, tick)
				tr.emit(StatusEvent{Tick: tick, Kind: StatusPreempt, TaskID: running.ID,
					Level: running.level, Remaining: running.remaining, RanTicks: tick - runStart})
			}
			boostAll(queues, running, tick, tr)
			running = nil
		}

		for next < len(order) && a.procs[order[next]].Arrival <= tick {
			p := &a.procs[order[next]]
			p.level = 0
			queues[0].Enqueue(p)
			tr.emit(StatusEvent{Tick: tick, Kind: StatusEnqueue, TaskID: p.ID, Remaining: p.remaining})
			next++
		}

		if running == nil {
			running = dequeueHighest(queues)
			if running == nil {
				tr.emit(StatusEvent{Tick: tick, Kind: StatusIdle})
				tick++
				continue
			}
			budget = min(m.Levels[running.level], running.remaining)
			runStart = tick
			tr.emit(StatusEvent{Tick: tick, Kind: StatusDispatch, TaskID: running.ID,
				Level: running.level, Remaining: running.remaining})
		}

		p := running
		p.remaining--
		budget--
		tick++

		switch {
		case p.remaining == 0:
			rec.add(p.ID, runStart, tick)
			tr.emit(StatusEvent{Tick: tick, Kind: StatusFinish, TaskID: p.ID, Level: p.level, RanTicks: tick - runStart})
			running = nil
			finished++
		case budget == 0:
			rec.add(p.ID, runStart, tick)
			kind := StatusDemote
			if m.Rand.Float64() < ResetProbability {
				p.level = 0
				kind = StatusReset
			} else {
				p.level = min(p.level+1, last)
			}
			queues[p.level].Enqueue(p)
			tr.emit(StatusEvent{Tick: tick, Kind: kind, TaskID: p.ID, Level: p.level,
				Remaining: p.remaining, RanTicks: tick - runStart})
			running = nil
		}
	}
	return rec.tl, nil
}

// boostAll moves every queued task, and the interrupted one if any, to level 0.
// Level order is preserved: former level 0 first, then level 1, and so on,
// with the interrupted task last.
func boostAll(queues []*linkedlistqueue.Queue, interrupted *proc, tick int, tr tracer) {
	top := queues[0]
	for lvl := 1; lvl < len(queues); lvl++ {
		for {
			v, ok := queues[lvl].Dequeue()
			if !ok {
				break
			}
			top.Enqueue(v)
		}
	}
	if interrupted != nil {
		top.Enqueue(interrupted)
	}

	for _, v := range top.Values() {
		p := v.(*proc)
		p.level = 0
		tr.emit(StatusEvent{Tick: tick, Kind: StatusBoost, TaskID: p.ID, Remaining: p.remaining})
	}
}

func validateLevels(levels []int, boostInterval int) error {
	if len(levels) == 0 {
		return fmt.Errorf("%w: mlfq needs at least one level", ErrInvalidConfiguration)
	}
	for i, q := range levels {
		if q <= 0 {
			return fmt.Errorf("%w: mlfq level %d quantum must be positive, got %d", ErrInvalidConfiguration, i, q)
		}
	}
	if boostInterval <= 0 {
		return fmt.Errorf("%w: mlfq boost interval must be positive, got %d", ErrInvalidConfiguration, boostInterval)
	}
	return nil
}

func dequeueHighest(queues []*linkedlistqueue.Queue) *proc {
	for _, q := range queues {
		if v, ok := q.Dequeue(); ok {
			return v.(*proc)
		}
	}
	return nil
}

package sched

import (
	"fmt"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
)

// RoundRobin rotates through a FIFO ready queue, granting each dispatch at
// most Quantum ticks.
type RoundRobin struct {
	Quantum  int
	Observer Observer
}

// NewRoundRobin returns a round robin policy with the given time quantum.
func NewRoundRobin(quantum int) (*RoundRobin, error) {
	rr := &RoundRobin{Quantum: quantum}
	if err := rr.validate(); err != nil {
		return nil, err
	}
	return rr, nil
}

func (*RoundRobin) Name() string { return NameRR }

func (r *RoundRobin) validate() error {
	if r.Quantum <= 0 {
		return fmt.Errorf("%w: rr quantum must be positive, got %d", ErrInvalidConfiguration, r.Quantum)
	}
	return nil
}

func (r *RoundRobin) Schedule(tasks []Task) (Timeline, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	if err := ValidateTasks(tasks); err != nil {
		return nil, err
	}
	a := newArena(tasks)
	tr := tracer{policy: NameRR, obs: r.Observer}
	rec := newRecorder(len(tasks))
	queue := linkedlistqueue.New()
	order := a.byArrival()
	limit := a.horizon()

	next := 0
	admit := func(clock int) {
		for next < len(order) && a.procs[order[next]].Arrival <= clock {
			p := &a.procs[order[next]]
			queue.Enqueue(p)
			tr.emit(StatusEvent{Tick: clock, Kind: StatusEnqueue, TaskID: p.ID, Remaining: p.remaining})
			next++
		}
	}

	clock, finished := 0, 0
	admit(clock)
	for finished < len(order) {
		if clock > limit {
			return nil, fmt.Errorf("%w: rr passed tick %d", ErrStalled, limit)
		}
		v, ok := queue.Dequeue()
		if !ok {
			tr.emit(StatusEvent{Tick: clock, Kind: StatusIdle})
			clock++
			admit(clock)
			continue
		}
		p := v.(*proc)

		run := min(r.Quantum, p.remaining)
		tr.emit(StatusEvent{Tick: clock, Kind: StatusDispatch, TaskID: p.ID, Remaining: p.remaining})
		rec.add(p.ID, clock, clock+run)
		clock += run
		p.remaining -= run

		// arrivals up to now queue ahead of the task that was just running;
		// p itself is out of the queue until it is re-enqueued below
		admit(clock)

		if p.remaining == 0 {
			finished++
			tr.emit(StatusEvent{Tick: clock, Kind: StatusFinish, TaskID: p.ID, RanTicks: run})
			continue
		}
		tr.emit(StatusEvent{Tick: clock, Kind: StatusPreempt, TaskID: p.ID, Remaining: p.remaining, RanTicks: run})
		queue.Enqueue(p)
	}
	return rec.tl, nil
}

package sched

import "github.com/emirpasic/gods/trees/binaryheap"

// SJF is non-preemptive shortest-job-first. At each dispatch it picks the
// arrived task with the smallest burst, then the earliest arrival, then
// input order. Long tasks can starve under a steady stream of short ones.
type SJF struct {
	Observer Observer
}

func (*SJF) Name() string { return NameSJF }

func (s *SJF) Schedule(tasks []Task) (Timeline, error) {
	if err := ValidateTasks(tasks); err != nil {
		return nil, err
	}
	a := newArena(tasks)
	tr := tracer{policy: NameSJF, obs: s.Observer}
	rec := newRecorder(len(tasks))
	ready := binaryheap.NewWith(shortestJob)
	order := a.byArrival()

	clock, next := 0, 0
	for served := 0; served < len(order); {
		for next < len(order) && a.procs[order[next]].Arrival <= clock {
			p := &a.procs[order[next]]
			ready.Push(p)
			tr.emit(StatusEvent{Tick: p.Arrival, Kind: StatusEnqueue, TaskID: p.ID, Remaining: p.remaining})
			next++
		}

		v, ok := ready.Pop()
		if !ok {
			tr.emit(StatusEvent{Tick: clock, Kind: StatusIdle})
			clock = a.procs[order[next]].Arrival
			continue
		}

		p := v.(*proc)
		tr.emit(StatusEvent{Tick: clock, Kind: StatusDispatch, TaskID: p.ID, Remaining: p.remaining})
		rec.add(p.ID, clock, clock+p.remaining)
		clock += p.remaining
		p.remaining = 0
		served++
		tr.emit(StatusEvent{Tick: clock, Kind: StatusFinish, TaskID: p.ID, RanTicks: p.Burst})
	}
	return rec.tl, nil
}

// shortestJob orders the SJF ready heap.
func shortestJob(a, b any) int {
	pa, pb := a.(*proc), b.(*proc)
	switch {
	case pa.Burst != pb.Burst:
		return pa.Burst - pb.Burst
	case pa.Arrival != pb.Arrival:
		return pa.Arrival - pb.Arrival
	default:
		return pa.order - pb.order
	}
}

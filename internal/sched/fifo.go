package sched

// FIFO serves tasks in arrival order, each to completion. Ties keep input order.
type FIFO struct {
	Observer Observer
}

func (*FIFO) Name() string { return NameFIFO }

func (f *FIFO) Schedule(tasks []Task) (Timeline, error) {
	if err := ValidateTasks(tasks); err != nil {
		return nil, err
	}
	a := newArena(tasks)
	tr := tracer{policy: NameFIFO, obs: f.Observer}
	rec := newRecorder(len(tasks))

	clock := 0
	for _, i := range a.byArrival() {
		p := &a.procs[i]
		// idle processor: jump to the next arrival
		if clock < p.Arrival {
			tr.emit(StatusEvent{Tick: clock, Kind: StatusIdle})
			clock = p.Arrival
		}
		tr.emit(StatusEvent{Tick: clock, Kind: StatusDispatch, TaskID: p.ID, Remaining: p.remaining})
		rec.add(p.ID, clock, clock+p.remaining)
		clock += p.remaining
		p.remaining = 0
		tr.emit(StatusEvent{Tick: clock, Kind: StatusFinish, TaskID: p.ID, RanTicks: p.Burst})
	}
	return rec.tl, nil
}

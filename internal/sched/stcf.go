// internal/sched/stcf.go

package sched

import (
	"fmt"

	"github.com/emirpasic/gods/trees/redblacktree"
)

// STCF is preemptive shortest-time-to-completion-first, simulated one tick
// at a time. Each tick runs the arrived task with the least remaining time;
// equal remaining time goes to the lowest task id.
//
// By default every contiguous run becomes a slice, so a preempted task
// contributes several. With Spans set, each task yields exactly one slice
// from its first dispatch to its completion, appended when it completes;
// such slices may overlap each other.
type STCF struct {
	Spans    bool
	Observer Observer
}

func (*STCF) Name() string { return NameSTCF }

func (s *STCF) Schedule(tasks []Task) (Timeline, error) {
	if err := ValidateTasks(tasks); err != nil {
		return nil, err
	}
	a := newArena(tasks)
	tr := tracer{policy: NameSTCF, obs: s.Observer}
	rec := newRecorder(len(tasks))
	ready := redblacktree.NewWith(cmp)
	order := a.byArrival()
	limit := a.horizon()

	var running *proc // task that held the processor during the previous tick
	runStart := 0
	firstStart := make(map[TaskID]int, len(tasks))

	next, finished := 0, 0
	for tick := 0; finished < len(order); tick++ {
		if tick > limit {
			return nil, fmt.Errorf("%w: stcf passed tick %d", ErrStalled, limit)
		}
		for next < len(order) && a.procs[order[next]].Arrival <= tick {
			p := &a.procs[order[next]]
			ready.Put(nodeKey{remaining: p.remaining, id: p.ID}, p)
			tr.emit(StatusEvent{Tick: tick, Kind: StatusEnqueue, TaskID: p.ID, Remaining: p.remaining})
			next++
		}

		node := ready.Left()
		if node == nil {
			tr.emit(StatusEvent{Tick: tick, Kind: StatusIdle})
			continue
		}
		key := node.Key.(nodeKey)
		p := a.get(key.id)
		ready.Remove(key)

		if p != running {
			if running != nil {
				if !s.Spans {
					rec.add(running.ID, runStart, tick)
				}
				tr.emit(StatusEvent{Tick: tick, Kind: StatusPreempt, TaskID: running.ID,
					Remaining: running.remaining, RanTicks: tick - runStart})
			}
			if _, seen := firstStart[p.ID]; !seen {
				firstStart[p.ID] = tick
			}
			runStart = tick
			running = p
			tr.emit(StatusEvent{Tick: tick, Kind: StatusDispatch, TaskID: p.ID, Remaining: p.remaining})
		}

		p.remaining--
		if p.remaining > 0 {
			ready.Put(nodeKey{remaining: p.remaining, id: p.ID}, p)
			continue
		}

		start := runStart
		if s.Spans {
			start = firstStart[p.ID]
		}
		rec.add(p.ID, start, tick+1)
		tr.emit(StatusEvent{Tick: tick + 1, Kind: StatusFinish, TaskID: p.ID, RanTicks: tick + 1 - runStart})
		running = nil
		finished++
	}
	return rec.tl, nil
}

// nodeKey is used as a key in the red-black tree.
type nodeKey struct {
	remaining int
	id        TaskID
}

// cmp orders nodeKeys by remaining time, then task id.
func cmp(a, b any) int {
	ka, kb := a.(nodeKey), b.(nodeKey)
	switch {
	case ka.remaining < kb.remaining:
		return -1
	case ka.remaining > kb.remaining:
		return 1
	case ka.id < kb.id:
		return -1
	case ka.id > kb.id:
		return 1
	default:
		return 0
	}
}

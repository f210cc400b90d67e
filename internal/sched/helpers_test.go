package sched

import (
	"reflect"
	"testing"
)

// span is a compact slice expectation without the slice id.
type span struct {
	id         TaskID
	start, end int
}

func spans(tl Timeline) []span {
	out := make([]span, len(tl))
	for i, s := range tl {
		out[i] = span{s.TaskID, s.Start, s.End}
	}
	return out
}

func assertSpans(t *testing.T, tl Timeline, want []span) {
	t.Helper()
	if got := spans(tl); !reflect.DeepEqual(got, want) {
		t.Errorf("timeline = %v, want %v", got, want)
	}
	for i, s := range tl {
		if s.SliceID != i {
			t.Errorf("slice %d has id %d", i, s.SliceID)
		}
	}
}

// collect returns an observer that appends to evs.
func collect(evs *[]StatusEvent) Observer {
	return func(ev StatusEvent) { *evs = append(*evs, ev) }
}

func ofKind(evs []StatusEvent, kind StatusKind) []StatusEvent {
	var out []StatusEvent
	for _, ev := range evs {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

// fixedRand always returns the same value to force one MLFQ branch.
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

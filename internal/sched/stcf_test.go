package sched

import "testing"

var stcfTasks = []Task{{1, 0, 8}, {2, 1, 4}, {3, 2, 9}, {4, 3, 5}}

func TestSTCF_PreemptsForShorterArrival(t *testing.T) {
	tl, err := (&STCF{}).Schedule(stcfTasks)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	assertSpans(t, tl, []span{{1, 0, 1}, {2, 1, 5}, {4, 5, 10}, {1, 10, 17}, {3, 17, 26}})
	if err := Check(stcfTasks, tl); err != nil {
		t.Errorf("Check: %v", err)
	}
}

func TestSTCF_Spans(t *testing.T) {
	tl, err := (&STCF{Spans: true}).Schedule(stcfTasks)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	// one slice per task, appended at completion
	assertSpans(t, tl, []span{{2, 1, 5}, {4, 5, 10}, {1, 0, 17}, {3, 17, 26}})
}

func TestSTCF_TieGoesToLowestID(t *testing.T) {
	tl, err := (&STCF{}).Schedule([]Task{{2, 0, 3}, {1, 0, 3}})
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	assertSpans(t, tl, []span{{1, 0, 3}, {2, 3, 6}})
}

func TestSTCF_TiePreemptsRunningTask(t *testing.T) {
	var evs []StatusEvent
	tl, err := (&STCF{Observer: collect(&evs)}).Schedule([]Task{{5, 0, 4}, {2, 1, 3}})
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	assertSpans(t, tl, []span{{5, 0, 1}, {2, 1, 4}, {5, 4, 7}})

	pre := ofKind(evs, StatusPreempt)
	if len(pre) != 1 || pre[0].TaskID != 5 || pre[0].Tick != 1 || pre[0].RanTicks != 1 {
		t.Errorf("preempt events = %+v, want task 5 at tick 1", pre)
	}
}

func TestSTCF_IdleTicks(t *testing.T) {
	var evs []StatusEvent
	tl, err := (&STCF{Observer: collect(&evs)}).Schedule([]Task{{1, 3, 2}})
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	assertSpans(t, tl, []span{{1, 3, 5}})
	if n := len(ofKind(evs, StatusIdle)); n != 3 {
		t.Errorf("idle ticks = %d, want 3", n)
	}
}

package sched

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
)

func testRunner(cfg Config) *Runner {
	return NewRunner(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRunner_AllPolicies(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 3
	r := testRunner(cfg)

	seen := make(map[string]int)
	r.SetObserver(func(ev StatusEvent) { seen[ev.Policy]++ })

	tasks := []Task{{1, 0, 7}, {2, 2, 3}, {3, 4, 1}, {4, 9, 5}}
	rep, err := r.Run(context.Background(), tasks)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.Seed != 3 {
		t.Errorf("seed = %d, want 3", rep.Seed)
	}
	if len(rep.Results) != len(PolicyNames) {
		t.Fatalf("results = %d, want %d", len(rep.Results), len(PolicyNames))
	}
	for i, res := range rep.Results {
		if res.Policy != PolicyNames[i] {
			t.Errorf("result %d policy = %q, want %q", i, res.Policy, PolicyNames[i])
		}
		if err := Check(tasks, res.Timeline); err != nil {
			t.Errorf("%s: %v", res.Policy, err)
		}
		if len(res.Metrics) != len(tasks) {
			t.Errorf("%s: metrics = %d, want %d", res.Policy, len(res.Metrics), len(tasks))
		}
		if seen[res.Policy] == 0 {
			t.Errorf("%s: observer saw no events", res.Policy)
		}
	}
}

func TestRunner_RandomSeedWhenUnset(t *testing.T) {
	rep, err := testRunner(DefaultConfig()).Run(context.Background(), []Task{{1, 0, 4}}, NameMLFQ)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.Seed == 0 {
		t.Error("seed was not chosen")
	}
}

func TestRunner_RejectsBeforeRunning(t *testing.T) {
	r := testRunner(DefaultConfig())
	calls := 0
	r.SetObserver(func(StatusEvent) { calls++ })

	if _, err := r.Run(context.Background(), []Task{{1, -3, 4}}); !errors.Is(err, ErrInvalidTask) {
		t.Errorf("err = %v, want ErrInvalidTask", err)
	}
	if _, err := r.Run(context.Background(), []Task{{1, 0, 4}}, "lottery"); !errors.Is(err, ErrUnknownPolicy) {
		t.Errorf("err = %v, want ErrUnknownPolicy", err)
	}

	bad := DefaultConfig()
	bad.BoostInterval = -1
	if _, err := testRunner(bad).Run(context.Background(), []Task{{1, 0, 4}}, NameFIFO); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("err = %v, want ErrInvalidConfiguration", err)
	}
	if calls != 0 {
		t.Errorf("observer called %d times for rejected runs", calls)
	}
}

func TestRunner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := testRunner(DefaultConfig()).Run(ctx, []Task{{1, 0, 1}}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRunner_EmptyInput(t *testing.T) {
	rep, err := testRunner(DefaultConfig()).Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, res := range rep.Results {
		if len(res.Timeline) != 0 {
			t.Errorf("%s: timeline = %v, want empty", res.Policy, res.Timeline)
		}
	}
}

func TestRunner_MaxTicks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 1
	cfg.MaxTicks = 10
	r := testRunner(cfg)

	if _, err := r.Run(context.Background(), []Task{{1, 5, 3}, {2, 0, 2}}); err != nil {
		t.Errorf("horizon 10 rejected: %v", err)
	}
	_, err := r.Run(context.Background(), []Task{{1, 5, 3}, {2, 0, 3}})
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("err = %v, want ErrTooLarge", err)
	}
}

func TestRunner_LargeBurstRejectedUpFront(t *testing.T) {
	_, err := testRunner(DefaultConfig()).Run(context.Background(), []Task{{1, 0, 100_000_000}}, NameSTCF)
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("err = %v, want ErrTooLarge", err)
	}
}

func TestRunner_CancelledDuringRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r := testRunner(DefaultConfig())
	r.SetObserver(func(StatusEvent) { cancel() })
	if _, err := r.Run(ctx, []Task{{1, 0, 3}, {2, 1, 2}}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

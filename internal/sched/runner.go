// internal/sched/runner.go

package sched

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Result is the outcome of one policy over one task set.
type Result struct {
	Policy   string        `json:"policy"`
	Timeline Timeline      `json:"timeline"`
	Metrics  []TaskMetrics `json:"metrics"`
	Summary  Summary       `json:"summary"`
}

// Report collects the results of one Runner invocation.
type Report struct {
	Seed    uint64   `json:"seed"`
	Results []Result `json:"results"`
}

// Runner executes several policies over the same read-only task set in
// parallel. Each policy works on its own copies, so no locking is needed
// around the simulations; only the shared observer is serialized.
type Runner struct {
	mu       sync.Mutex // protects observer calls
	cfg      Config
	logger   *slog.Logger
	observer Observer
}

// NewRunner creates a Runner. cfg is validated on every Run.
func NewRunner(cfg Config, logger *slog.Logger) *Runner {
	return &Runner{
		cfg:    cfg,
		logger: logger.With("component", "runner"),
	}
}

// SetObserver installs an observer that receives the events of every policy.
// Must be called before Run().
func (r *Runner) SetObserver(obs Observer) { r.observer = obs }

func (r *Runner) observe(ev StatusEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observer(ev)
}

// Run schedules tasks with the named policies, all of them when names is
// empty. Input and configuration errors, and task sets whose horizon exceeds
// cfg.MaxTicks, are reported before anything runs.
func (r *Runner) Run(ctx context.Context, tasks []Task, names ...string) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	if len(names) == 0 {
		names = PolicyNames
	}
	if err := ValidateTasks(tasks); err != nil {
		return Report{}, err
	}
	if err := r.cfg.Validate(); err != nil {
		return Report{}, err
	}
	if h := Horizon(tasks); h > r.cfg.MaxTicks {
		return Report{}, fmt.Errorf("%w: horizon %d exceeds max_ticks %d", ErrTooLarge, h, r.cfg.MaxTicks)
	}

	seed := r.cfg.Seed
	if seed == 0 {
		seed = TimeSeed()
	}
	var obs Observer
	if r.observer != nil {
		obs = r.observe
	}

	policies := make([]Policy, len(names))
	for i, name := range names {
		p, err := Build(name, r.cfg, NewRand(seed), obs)
		if err != nil {
			return Report{}, err
		}
		policies[i] = p
	}

	r.logger.Debug("running policies", "policies", names, "tasks", len(tasks), "seed", seed)

	results := make([]Result, len(policies))
	errs := make([]error, len(policies))
	var wg sync.WaitGroup
	for i, p := range policies {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = run(p, tasks)
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	if err := errors.Join(errs...); err != nil {
		return Report{}, err
	}
	for _, res := range results {
		r.logger.Debug("policy finished",
			"policy", res.Policy,
			"slices", len(res.Timeline),
			"makespan", res.Summary.Makespan,
			"avg_waiting", res.Summary.AvgWaiting,
		)
	}
	return Report{Seed: seed, Results: results}, nil
}

func run(p Policy, tasks []Task) (Result, error) {
	tl, err := p.Schedule(tasks)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", p.Name(), err)
	}
	metrics, err := Metrics(tasks, tl)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", p.Name(), err)
	}
	return Result{
		Policy:   p.Name(),
		Timeline: tl,
		Metrics:  metrics,
		Summary:  Summarize(metrics, tl),
	}, nil
}

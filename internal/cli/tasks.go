package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"schedsim/internal/sched"
	"schedsim/internal/workload"
)

// taskFlags are shared by commands that need a task set and engine overrides.
type taskFlags struct {
	tasksPath string
	generate  int
	seed      uint64
	quantum   int
	levels    []int
	boost     int
	spans     bool
}

func (f *taskFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.tasksPath, "tasks", "", "Task set file (.yaml, .yml or .csv)")
	cmd.Flags().IntVar(&f.generate, "generate", 5, "Generate this many random tasks when --tasks is not given")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "Random seed for generation and MLFQ (0 = config or random)")
	cmd.Flags().IntVar(&f.quantum, "quantum", 0, "RR time quantum (overrides config)")
	cmd.Flags().IntSliceVar(&f.levels, "levels", nil, "MLFQ level quanta, highest priority first (overrides config)")
	cmd.Flags().IntVar(&f.boost, "boost", 0, "MLFQ boost interval in ticks (overrides config)")
	cmd.Flags().BoolVar(&f.spans, "stcf-spans", false, "Report one STCF slice per task, first dispatch to completion")
}

// engineConfig applies the flag overrides to the loaded config and fixes
// the seed so generation and MLFQ share it.
func (f *taskFlags) engineConfig(cmd *cobra.Command) sched.Config {
	c := cfg
	c.Merge(sched.Config{Quantum: f.quantum, Levels: f.levels, BoostInterval: f.boost, Seed: f.seed, STCFSpans: f.spans})
	if cmd.Flags().Changed("quantum") && f.quantum == 0 {
		c.Quantum = 0
	}
	if cmd.Flags().Changed("boost") && f.boost == 0 {
		c.BoostInterval = 0
	}
	if c.Seed == 0 {
		c.Seed = sched.TimeSeed()
	}
	return c
}

func (f *taskFlags) load(c sched.Config) ([]sched.Task, error) {
	if f.tasksPath != "" {
		tasks, err := workload.LoadFile(f.tasksPath)
		if err != nil {
			return nil, err
		}
		logger.Debug("tasks loaded", "path", f.tasksPath, "count", len(tasks))
		return tasks, nil
	}
	tasks, err := workload.Generate(f.generate, c.Seed, workload.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("generate tasks: %w", err)
	}
	logger.Info("generated tasks", "count", len(tasks), "seed", c.Seed)
	return tasks, nil
}

package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"schedsim/internal/sched"
	"schedsim/internal/workload"
)

func newGenCmd() *cobra.Command {
	var (
		seed   uint64
		opts   = workload.DefaultOptions()
		output string
	)

	cmd := &cobra.Command{
		Use:   "gen <count>",
		Short: "Generate a random task set as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("count %q: %w", args[0], err)
			}
			if seed == 0 {
				seed = sched.TimeSeed()
			}
			tasks, err := workload.Generate(n, seed, opts)
			if err != nil {
				return err
			}
			logger.Info("generated tasks", "count", n, "seed", seed)

			if output == "" {
				return workload.WriteYAML(cmd.OutOrStdout(), tasks)
			}
			if err := workload.SaveYAML(output, tasks); err != nil {
				return err
			}
			logger.Info("task set written", "path", output)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed (0 = random)")
	cmd.Flags().IntVar(&opts.MaxArrival, "max-arrival", opts.MaxArrival, "Arrivals fall in [0, max-arrival)")
	cmd.Flags().IntVar(&opts.MaxBurst, "max-burst", opts.MaxBurst, "Bursts fall in [1, max-burst]")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")

	return cmd
}

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"schedsim/internal/report"
	"schedsim/internal/sched"
)

func newRunCmd() *cobra.Command {
	var (
		tf         taskFlags
		policies   string
		format     string
		eventsPath string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Schedule a task set under one or more policies",
		Example: `  schedsim run --generate 8 --seed 42
  schedsim run --tasks tasks.yaml --policy rr,mlfq --quantum 2 --levels 2,4,8 --boost 20
  schedsim run --tasks tasks.csv --format csv --events events.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := sched.ParseNames(policies)
			if err != nil {
				return err
			}
			if format != "table" && format != "csv" {
				return fmt.Errorf("unknown format %q: want table or csv", format)
			}

			c := tf.engineConfig(cmd)
			tasks, err := tf.load(c)
			if err != nil {
				return err
			}

			runner := sched.NewRunner(c, logger)
			var events *report.EventLog
			if eventsPath != "" {
				f, err := os.Create(eventsPath)
				if err != nil {
					return fmt.Errorf("open event log: %w", err)
				}
				defer f.Close()
				if events, err = report.NewEventLog(f); err != nil {
					return err
				}
				runner.SetObserver(events.Observe)
			}

			rep, err := runner.Run(cmd.Context(), tasks, names...)
			if err != nil {
				return err
			}
			if events != nil {
				if err := events.Close(); err != nil {
					return fmt.Errorf("write event log: %w", err)
				}
				logger.Info("event log written", "path", eventsPath)
			}

			out := cmd.OutOrStdout()
			if format == "csv" {
				return report.WriteTimelineCSV(out, rep.Results)
			}
			for _, res := range rep.Results {
				report.WriteResult(out, res)
			}
			if len(rep.Results) > 1 {
				report.WriteComparison(out, rep.Results)
			}
			logger.Info("run complete", "policies", len(rep.Results), "tasks", len(tasks), "seed", rep.Seed)
			return nil
		},
	}

	tf.register(cmd)
	cmd.Flags().StringVar(&policies, "policy", "all", "Comma-separated policies: fifo, sjf, stcf, rr, mlfq or all")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or csv")
	cmd.Flags().StringVar(&eventsPath, "events", "", "Write the scheduler event log as CSV to this file")

	return cmd
}

package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"schedsim/internal/sched"
)

func newReplayCmd() *cobra.Command {
	var (
		tf     taskFlags
		policy string
	)

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Play one policy's timeline tick by tick in real time",
		Long:  "Replay prints the task on the processor at every simulated tick, one line per tick_ms.",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := tf.engineConfig(cmd)
			tasks, err := tf.load(c)
			if err != nil {
				return err
			}
			rep, err := sched.NewRunner(c, logger).Run(cmd.Context(), tasks, policy)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			interval := time.Duration(c.TickMS) * time.Millisecond
			return sched.Replay(cmd.Context(), rep.Results[0].Timeline, interval, func(tick int, id sched.TaskID) {
				if id == 0 {
					fmt.Fprintf(out, "Tick: %07d [%s]\n", tick, center("Idle", 10))
					return
				}
				fmt.Fprintf(out, "Tick: %07d [%s] => Task: %04d\n", tick, center("Running", 10), id)
			})
		},
	}

	tf.register(cmd)
	cmd.Flags().StringVar(&policy, "policy", sched.NameRR, "Policy to replay: fifo, sjf, stcf, rr or mlfq")
	return cmd
}

// center pads str to width with the text in the middle.
func center(str string, width int) string {
	spaces := max(0, (width-len(str))/2)
	return strings.Repeat(" ", spaces) + str + strings.Repeat(" ", max(0, width-(spaces+len(str))))
}

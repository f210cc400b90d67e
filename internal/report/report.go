// Package report renders scheduler results as text tables, a Gantt strip
// and CSV.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"schedsim/internal/sched"
)

// WriteResult prints a titled block for one policy: Gantt strip, slice
// table and metrics table.
func WriteResult(w io.Writer, res sched.Result) {
	writeTitle(w, strings.ToUpper(res.Policy))
	WriteGantt(w, res.Timeline)
	WriteTimelineTable(w, res.Timeline)
	WriteMetricsTable(w, res.Metrics, res.Summary)
	_, _ = fmt.Fprintln(w)
}

func writeTitle(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*4))
	_, _ = fmt.Fprintln(w, strings.Repeat(" ", len(title)*3/2), title)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*4))
}

// WriteGantt prints one cell per slice with the slice boundaries below.
// Idle gaps show as a cell labelled "-".
func WriteGantt(w io.Writer, tl sched.Timeline) {
	_, _ = fmt.Fprintln(w, "Gantt schedule")
	if len(tl) == 0 {
		_, _ = fmt.Fprintln(w, "(empty)")
		return
	}

	type cell struct {
		label      string
		start, end int
	}
	var cells []cell
	clock := 0
	for _, s := range tl {
		if s.Start > clock {
			cells = append(cells, cell{"-", clock, s.Start})
		}
		cells = append(cells, cell{"P" + strconv.Itoa(int(s.TaskID)), s.Start, s.End})
		if s.End > clock {
			clock = s.End
		}
	}

	_, _ = fmt.Fprint(w, "|")
	for _, c := range cells {
		padding := strings.Repeat(" ", max(0, (8-len(c.label))/2))
		_, _ = fmt.Fprint(w, padding, c.label, padding, "|")
	}
	_, _ = fmt.Fprintln(w)
	for i, c := range cells {
		_, _ = fmt.Fprint(w, c.start, "\t")
		if i == len(cells)-1 {
			_, _ = fmt.Fprint(w, c.end)
		}
	}
	_, _ = fmt.Fprint(w, "\n\n")
}

// WriteTimelineTable lists every slice in dispatch order.
func WriteTimelineTable(w io.Writer, tl sched.Timeline) {
	rows := make([][]string, 0, len(tl))
	for _, s := range tl {
		rows = append(rows, []string{
			strconv.Itoa(s.SliceID),
			strconv.Itoa(int(s.TaskID)),
			strconv.Itoa(s.Start),
			strconv.Itoa(s.End),
			strconv.Itoa(s.Duration()),
		})
	}

	_, _ = fmt.Fprintln(w, "Slices")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Slice", "Task", "Start", "End", "Ran"})
	table.AppendBulk(rows)
	table.Render()
}

// WriteMetricsTable lists the per-task metrics with averages in the footer.
func WriteMetricsTable(w io.Writer, metrics []sched.TaskMetrics, sum sched.Summary) {
	rows := make([][]string, 0, len(metrics))
	for _, m := range metrics {
		rows = append(rows, []string{
			strconv.Itoa(int(m.TaskID)),
			strconv.Itoa(m.Arrival),
			strconv.Itoa(m.Burst),
			strconv.Itoa(m.FirstStart),
			strconv.Itoa(m.Completion),
			strconv.Itoa(m.Turnaround),
			strconv.Itoa(m.Waiting),
			strconv.Itoa(m.Response),
		})
	}

	_, _ = fmt.Fprintln(w, "Schedule table")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Arrival", "Burst", "Start", "Exit", "Turnaround", "Wait", "Response"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "",
		fmt.Sprintf("Makespan\n%d", sum.Makespan),
		fmt.Sprintf("Average\n%.2f", sum.AvgTurnaround),
		fmt.Sprintf("Average\n%.2f", sum.AvgWaiting),
		fmt.Sprintf("Average\n%.2f", sum.AvgResponse)})
	table.Render()
}

// WriteComparison prints one summary row per policy.
func WriteComparison(w io.Writer, results []sched.Result) {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		s := r.Summary
		rows = append(rows, []string{
			r.Policy,
			fmt.Sprintf("%.2f", s.AvgTurnaround),
			fmt.Sprintf("%.2f", s.AvgWaiting),
			fmt.Sprintf("%.2f", s.AvgResponse),
			strconv.Itoa(s.Makespan),
			fmt.Sprintf("%.2f", s.Utilization),
			fmt.Sprintf("%.3f/t", s.Throughput),
			strconv.Itoa(s.ContextSwitches),
		})
	}

	_, _ = fmt.Fprintln(w, "Comparison")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Policy", "Turnaround", "Wait", "Response", "Makespan", "Util", "Throughput", "Switches"})
	table.AppendBulk(rows)
	table.Render()
}

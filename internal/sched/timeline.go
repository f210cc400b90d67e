// internal/sched/timeline.go

package sched

import "fmt"

// Slice is one contiguous run of a task on the simulated processor.
type Slice struct {
	TaskID  TaskID `json:"task_id"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	SliceID int    `json:"slice_id"` // increases in dispatch order within one run
}

// Duration is the service granted by this dispatch.
func (s Slice) Duration() int { return s.End - s.Start }

// Timeline is the ordered list of slices produced by one policy run.
type Timeline []Slice

// Of returns the slices belonging to one task, in timeline order.
func (tl Timeline) Of(id TaskID) []Slice {
	var out []Slice
	for _, s := range tl {
		if s.TaskID == id {
			out = append(out, s)
		}
	}
	return out
}

// End is the finishing tick of the last slice, or 0 for an empty timeline.
func (tl Timeline) End() int {
	end := 0
	for _, s := range tl {
		if s.End > end {
			end = s.End
		}
	}
	return end
}

// recorder appends slices with monotonically increasing ids.
type recorder struct {
	tl   Timeline
	next int
}

func newRecorder(capacity int) *recorder {
	return &recorder{tl: make(Timeline, 0, capacity)}
}

func (r *recorder) add(id TaskID, start, end int) {
	r.tl = append(r.tl, Slice{TaskID: id, Start: start, End: end, SliceID: r.next})
	r.next++
}

// TaskMetrics are the per-task figures derived from a timeline.
type TaskMetrics struct {
	TaskID     TaskID `json:"task_id"`
	Arrival    int    `json:"arrival"`
	Burst      int    `json:"burst"`
	FirstStart int    `json:"first_start"`
	Completion int    `json:"completion"`
	Turnaround int    `json:"turnaround"` // Completion - Arrival
	Waiting    int    `json:"waiting"`    // Turnaround - Burst
	Response   int    `json:"response"`   // FirstStart - Arrival
	Slices     int    `json:"slices"`
}

// Metrics derives per-task metrics, in the order of tasks.
func Metrics(tasks []Task, tl Timeline) ([]TaskMetrics, error) {
	pos := make(map[TaskID]int, len(tasks))
	out := make([]TaskMetrics, len(tasks))
	for i, t := range tasks {
		pos[t.ID] = i
		out[i] = TaskMetrics{TaskID: t.ID, Arrival: t.Arrival, Burst: t.Burst, FirstStart: -1}
	}

	for _, s := range tl {
		i, ok := pos[s.TaskID]
		if !ok {
			return nil, fmt.Errorf("slice %d references unknown task %d", s.SliceID, s.TaskID)
		}
		m := &out[i]
		if m.FirstStart < 0 || s.Start < m.FirstStart {
			m.FirstStart = s.Start
		}
		if s.End > m.Completion {
			m.Completion = s.End
		}
		m.Slices++
	}

	for i := range out {
		m := &out[i]
		if m.Slices == 0 {
			return nil, fmt.Errorf("task %d was never scheduled", m.TaskID)
		}
		m.Turnaround = m.Completion - m.Arrival
		m.Waiting = m.Turnaround - m.Burst
		m.Response = m.FirstStart - m.Arrival
	}
	return out, nil
}

// Summary aggregates a run.
type Summary struct {
	Tasks           int     `json:"tasks"`
	AvgTurnaround   float64 `json:"avg_turnaround"`
	AvgWaiting      float64 `json:"avg_waiting"`
	AvgResponse     float64 `json:"avg_response"`
	Makespan        int     `json:"makespan"`
	Busy            int     `json:"busy"`
	Utilization     float64 `json:"utilization"`
	Throughput      float64 `json:"throughput"` // tasks per tick
	ContextSwitches int     `json:"context_switches"`
}

// Summarize computes averages over metrics and processor figures over tl.
// Busy is the total burst, so overlapping STCF spans do not inflate it.
func Summarize(metrics []TaskMetrics, tl Timeline) Summary {
	sum := Summary{Tasks: len(metrics), Makespan: tl.End()}
	if len(metrics) == 0 {
		return sum
	}
	var turn, wait, resp int
	for _, m := range metrics {
		turn += m.Turnaround
		wait += m.Waiting
		resp += m.Response
		sum.Busy += m.Burst
	}
	n := float64(len(metrics))
	sum.AvgTurnaround = float64(turn) / n
	sum.AvgWaiting = float64(wait) / n
	sum.AvgResponse = float64(resp) / n

	for i, s := range tl {
		if i > 0 && tl[i-1].TaskID != s.TaskID {
			sum.ContextSwitches++
		}
	}
	if sum.Makespan > 0 {
		sum.Utilization = float64(sum.Busy) / float64(sum.Makespan)
		sum.Throughput = n / float64(sum.Makespan)
	}
	return sum
}

// Check verifies the timeline invariants against the input tasks: every
// slice is non-empty, starts no earlier than its task's arrival, does not
// overlap its predecessor, slice ids increase, and each task receives
// exactly its burst.
func Check(tasks []Task, tl Timeline) error {
	burst := make(map[TaskID]int, len(tasks))
	arrival := make(map[TaskID]int, len(tasks))
	for _, t := range tasks {
		burst[t.ID] = t.Burst
		arrival[t.ID] = t.Arrival
	}

	served := make(map[TaskID]int, len(tasks))
	for i, s := range tl {
		a, ok := arrival[s.TaskID]
		if !ok {
			return fmt.Errorf("slice %d: unknown task %d", s.SliceID, s.TaskID)
		}
		if s.End <= s.Start {
			return fmt.Errorf("slice %d: empty or inverted [%d,%d)", s.SliceID, s.Start, s.End)
		}
		if s.Start < a {
			return fmt.Errorf("slice %d: task %d starts at %d before arrival %d", s.SliceID, s.TaskID, s.Start, a)
		}
		if i > 0 {
			prev := tl[i-1]
			if s.Start < prev.End {
				return fmt.Errorf("slice %d [%d,%d) overlaps slice %d [%d,%d)",
					s.SliceID, s.Start, s.End, prev.SliceID, prev.Start, prev.End)
			}
			if s.SliceID <= prev.SliceID {
				return fmt.Errorf("slice id %d does not follow %d", s.SliceID, prev.SliceID)
			}
		}
		served[s.TaskID] += s.Duration()
	}

	for id, b := range burst {
		if served[id] != b {
			return fmt.Errorf("task %d served %d ticks, burst is %d", id, served[id], b)
		}
	}
	return nil
}

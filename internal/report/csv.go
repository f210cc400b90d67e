package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"sync"

	"schedsim/internal/sched"
)

// WriteTimelineCSV writes one row per slice for every result.
func WriteTimelineCSV(w io.Writer, results []sched.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"policy", "slice_id", "task_id", "start", "end"}); err != nil {
		return err
	}
	for _, r := range results {
		for _, s := range r.Timeline {
			rec := []string{
				r.Policy,
				strconv.Itoa(s.SliceID),
				strconv.Itoa(int(s.TaskID)),
				strconv.Itoa(s.Start),
				strconv.Itoa(s.End),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// EventLog records scheduler status events as CSV rows.
type EventLog struct {
	mu  sync.Mutex
	w   *csv.Writer
	err error
}

// NewEventLog writes the header and returns a log ready to observe.
func NewEventLog(w io.Writer) (*EventLog, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"policy", "tick", "event", "task_id", "level", "remaining", "ran_ticks"}); err != nil {
		return nil, err
	}
	return &EventLog{w: cw}, nil
}

// Observe appends one event. It matches sched.Observer.
func (l *EventLog) Observe(ev sched.StatusEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return
	}
	l.err = l.w.Write([]string{
		ev.Policy,
		strconv.Itoa(ev.Tick),
		ev.Kind.String(),
		strconv.Itoa(int(ev.TaskID)),
		strconv.Itoa(ev.Level),
		strconv.Itoa(ev.Remaining),
		strconv.Itoa(ev.RanTicks),
	})
}

// Close flushes buffered rows and reports the first write error.
func (l *EventLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Flush()
	if l.err != nil {
		return l.err
	}
	return l.w.Error()
}

// Package workload produces task sets for the scheduling engine: random
// generation and YAML/CSV files.
package workload

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	yaml "github.com/goccy/go-yaml"
	"golang.org/x/exp/rand"

	"schedsim/internal/sched"
)

// Options bound the random generator.
type Options struct {
	MaxArrival int `json:"max_arrival"` // arrivals fall in [0, MaxArrival)
	MaxBurst   int `json:"max_burst"`   // bursts fall in [1, MaxBurst]
}

// DefaultOptions matches the classic classroom generator: arrivals 0-9,
// bursts 1-15.
func DefaultOptions() Options {
	return Options{MaxArrival: 10, MaxBurst: 15}
}

// MaxCount is the largest task set Generate produces.
const MaxCount = 10_000

// ErrBadCount is returned for a count outside [1, MaxCount].
var ErrBadCount = errors.New("task count out of range")

// Generate returns n tasks with ids 1..n. The same seed yields the same set.
func Generate(n int, seed uint64, opts Options) ([]sched.Task, error) {
	if n <= 0 || n > MaxCount {
		return nil, fmt.Errorf("%w: want 1..%d, got %d", ErrBadCount, MaxCount, n)
	}
	if opts.MaxArrival <= 0 {
		opts.MaxArrival = DefaultOptions().MaxArrival
	}
	if opts.MaxBurst <= 0 {
		opts.MaxBurst = DefaultOptions().MaxBurst
	}

	rng := rand.New(rand.NewSource(seed))
	tasks := make([]sched.Task, n)
	for i := range tasks {
		tasks[i] = sched.NewTask(
			sched.TaskID(i+1),
			rng.Intn(opts.MaxArrival),
			rng.Intn(opts.MaxBurst)+1,
		)
	}
	return tasks, nil
}

// File is the YAML layout of a task set.
type File struct {
	Tasks []sched.Task `yaml:"tasks"`
}

// LoadFile reads a task set from a .yml/.yaml or .csv file and validates it.
func LoadFile(path string) ([]sched.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tasks: %w", err)
	}

	var tasks []sched.Task
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		tasks, err = ParseYAML(data)
	case ".csv":
		tasks, err = ParseCSV(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported task file %q: want .yaml, .yml or .csv", path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tasks, nil
}

// ParseYAML decodes the `tasks:` document.
func ParseYAML(data []byte) ([]sched.Task, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := sched.ValidateTasks(f.Tasks); err != nil {
		return nil, err
	}
	return f.Tasks, nil
}

// ParseCSV reads id,arrival,burst rows. A leading header row is skipped.
func ParseCSV(r io.Reader) ([]sched.Task, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	tasks := make([]sched.Task, 0, len(rows))
	for i, row := range rows {
		if i == 0 && !isNumber(row[0]) {
			continue
		}
		var vals [3]int
		for j, field := range row {
			v, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", i+1, j+1, err)
			}
			vals[j] = v
		}
		tasks = append(tasks, sched.NewTask(sched.TaskID(vals[0]), vals[1], vals[2]))
	}
	if err := sched.ValidateTasks(tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func isNumber(s string) bool {
	_, err := strconv.Atoi(strings.TrimSpace(s))
	return err == nil
}

// WriteYAML encodes tasks in the layout ParseYAML reads.
func WriteYAML(w io.Writer, tasks []sched.Task) error {
	data, err := yaml.Marshal(File{Tasks: tasks})
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// SaveYAML writes tasks to path.
func SaveYAML(path string, tasks []sched.Task) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteYAML(f, tasks); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

package workload

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"schedsim/internal/sched"
)

func TestGenerate_Bounds(t *testing.T) {
	tasks, err := Generate(200, 7, DefaultOptions())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(tasks) != 200 {
		t.Fatalf("len = %d, want 200", len(tasks))
	}
	for i, task := range tasks {
		if task.ID != sched.TaskID(i+1) {
			t.Errorf("task %d id = %d, want %d", i, task.ID, i+1)
		}
		if task.Arrival < 0 || task.Arrival >= 10 {
			t.Errorf("task %d arrival = %d, want [0,10)", task.ID, task.Arrival)
		}
		if task.Burst < 1 || task.Burst > 15 {
			t.Errorf("task %d burst = %d, want [1,15]", task.ID, task.Burst)
		}
	}
}

func TestGenerate_SeedIsReproducible(t *testing.T) {
	a, _ := Generate(20, 42, DefaultOptions())
	b, _ := Generate(20, 42, DefaultOptions())
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed produced different task sets:\n%v\n%v", a, b)
	}
}

func TestGenerate_BadCount(t *testing.T) {
	if _, err := Generate(0, 1, DefaultOptions()); !errors.Is(err, ErrBadCount) {
		t.Errorf("err = %v, want ErrBadCount", err)
	}
	if _, err := Generate(MaxCount+1, 1, DefaultOptions()); !errors.Is(err, ErrBadCount) {
		t.Errorf("err = %v, want ErrBadCount", err)
	}
}

func TestParseCSV(t *testing.T) {
	in := "id,arrival,burst\n1,0,6\n2, 1, 2\n3,2,1\n"
	tasks, err := ParseCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	want := []sched.Task{{ID: 1, Arrival: 0, Burst: 6}, {ID: 2, Arrival: 1, Burst: 2}, {ID: 3, Arrival: 2, Burst: 1}}
	if !reflect.DeepEqual(tasks, want) {
		t.Errorf("tasks = %v, want %v", tasks, want)
	}
}

func TestParseCSV_RejectsInvalidTask(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("1,0,5\n2,-1,3\n"))
	if !errors.Is(err, sched.ErrInvalidTask) {
		t.Errorf("err = %v, want ErrInvalidTask", err)
	}
}

func TestYAMLRoundTripThroughFile(t *testing.T) {
	tasks := []sched.Task{{ID: 1, Arrival: 0, Burst: 5}, {ID: 2, Arrival: 3, Burst: 1}}
	path := filepath.Join(t.TempDir(), "tasks.yaml")
	if err := SaveYAML(path, tasks); err != nil {
		t.Fatalf("SaveYAML: %v", err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !reflect.DeepEqual(got, tasks) {
		t.Errorf("loaded %v, want %v", got, tasks)
	}
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	if err := os.WriteFile(path, []byte("1,0,1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected error for .txt file")
	}
}

func TestWriteYAML_Layout(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteYAML(&buf, []sched.Task{{ID: 4, Arrival: 2, Burst: 9}}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"tasks:", "id: 4", "arrival: 2", "burst: 9"} {
		if !strings.Contains(out, want) {
			t.Errorf("yaml missing %q:\n%s", want, out)
		}
	}
}

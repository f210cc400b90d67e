package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"schedsim/internal/sched"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "missing.yml")}, args...))
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const rrTasks = `tasks:
  - {id: 1, arrival: 0, burst: 5}
  - {id: 2, arrival: 0, burst: 5}
  - {id: 3, arrival: 0, burst: 5}
`

func TestRun_CSV(t *testing.T) {
	path := writeFile(t, "tasks.yaml", rrTasks)
	out, err := execute(t, "run", "--tasks", path, "--policy", "rr", "--quantum", "2", "--format", "csv")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{
		"policy,slice_id,task_id,start,end",
		"rr,0,1,0,2",
		"rr,3,1,6,8",
		"rr,6,1,12,13",
		"rr,8,3,14,15",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRun_TableAllPolicies(t *testing.T) {
	path := writeFile(t, "tasks.csv", "id,arrival,burst\n1,0,6\n2,1,2\n3,2,1\n")
	out, err := execute(t, "run", "--tasks", path, "--seed", "5")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	upper := strings.ToUpper(out)
	for _, name := range sched.PolicyNames {
		if !strings.Contains(upper, strings.ToUpper(name)) {
			t.Errorf("output missing policy %s", name)
		}
	}
	if !strings.Contains(out, "Comparison") {
		t.Errorf("output missing comparison table:\n%s", out)
	}
}

func TestRun_EventLog(t *testing.T) {
	path := writeFile(t, "tasks.yaml", rrTasks)
	events := filepath.Join(t.TempDir(), "events.csv")
	if _, err := execute(t, "run", "--tasks", path, "--policy", "fifo", "--events", events); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(events)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "fifo,15,Finish,3") {
		t.Errorf("event log missing finish of task 3:\n%s", data)
	}
}

func TestRun_RejectsZeroQuantum(t *testing.T) {
	path := writeFile(t, "tasks.yaml", rrTasks)
	_, err := execute(t, "run", "--tasks", path, "--policy", "rr", "--quantum", "0")
	if !errors.Is(err, sched.ErrInvalidConfiguration) {
		t.Errorf("err = %v, want ErrInvalidConfiguration", err)
	}
}

func TestRun_STCFSpans(t *testing.T) {
	path := writeFile(t, "tasks.yaml", "tasks:\n  - {id: 1, arrival: 0, burst: 5}\n  - {id: 2, arrival: 1, burst: 1}\n")
	out, err := execute(t, "run", "--tasks", path, "--policy", "stcf", "--stcf-spans", "--format", "csv")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{"stcf,0,2,1,2", "stcf,1,1,0,6"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRun_UnknownPolicy(t *testing.T) {
	_, err := execute(t, "run", "--policy", "lottery")
	if !errors.Is(err, sched.ErrUnknownPolicy) {
		t.Errorf("err = %v, want ErrUnknownPolicy", err)
	}
}

func TestGen_Stdout(t *testing.T) {
	out, err := execute(t, "gen", "3", "--seed", "11")
	if err != nil {
		t.Fatalf("gen: %v", err)
	}
	if strings.Count(out, "id:") != 3 {
		t.Errorf("expected 3 tasks:\n%s", out)
	}
}

func TestReplay(t *testing.T) {
	path := writeFile(t, "tasks.yaml", "tasks:\n  - {id: 1, arrival: 1, burst: 2}\n")
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	cfgPath := writeFile(t, "schedsim.yml", "tick_ms: 1\n")
	root.SetArgs([]string{"--config", cfgPath, "replay", "--tasks", path, "--policy", "fifo"})
	if err := root.Execute(); err != nil {
		t.Fatalf("replay: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "Idle") {
		t.Errorf("tick 0 = %q, want idle", lines[0])
	}
	if !strings.Contains(lines[2], "Task: 0001") {
		t.Errorf("tick 2 = %q, want task 1", lines[2])
	}
}

// Package scenario loads declarative task scripts from YAML and drives
// the scheduler from them, so the scripted narratives this package was
// built to validate (priority preemption, quantum rotation, wait and
// signal, nested forks) can be expressed as data rather than
// hand-written Go for every case.
package scenario

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	sched "github.com/go-foundations/coopsched"
)

// TaskScript is one task's priority and the sequence of primitive
// calls it makes. Recognized steps: "exec", "wait:<event>",
// "signal:<event>", and "fork:<task-name>".
type TaskScript struct {
	Name     string   `yaml:"name"`
	Priority uint     `yaml:"priority"`
	Steps    []string `yaml:"steps"`
}

// Config is one scenario: scheduler tuning plus the task scripts. The
// first entry is forked directly by Run; every other entry must be
// reachable through a "fork:<name>" step somewhere in the scenario,
// since only the currently running task may legitimately fork a
// sibling (see DESIGN.md on why scenarios don't fork siblings
// directly from the driver).
type Config struct {
	Quantum    uint         `yaml:"quantum"`
	EventCount uint         `yaml:"event_count"`
	Tasks      []TaskScript `yaml:"tasks"`
}

// Suite is a named collection of scenarios, matching the shape of
// testdata/scenarios.yaml: one top-level key per scenario.
type Suite map[string]Config

// LoadSuite decodes a file containing one or more named scenarios.
func LoadSuite(path string) (Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scenario: parse %s: %w", path, err)
	}
	return s, nil
}

// Trace records, in order, each step a task actually executed,
// formatted as "<task-name>:<step>"; a signal entry also ends with the
// number of tasks woken, and a fork of an unknown task ends with
// ":missing". Safe for concurrent recording since task handlers run on
// their own goroutines.
type Trace struct {
	mu  sync.Mutex
	log []string
}

func (tr *Trace) record(s string) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.log = append(tr.log, s)
}

// Entries returns a snapshot of the trace recorded so far.
func (tr *Trace) Entries() []string {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	out := make([]string, len(tr.log))
	copy(out, tr.log)
	return out
}

// Run initializes the scheduler per cfg, forks the first task script,
// and waits for every reachable task to finish before returning the
// recorded trace.
func Run(cfg Config) (*Trace, error) {
	if len(cfg.Tasks) == 0 {
		return nil, fmt.Errorf("scenario: no tasks defined")
	}
	if err := sched.Init(cfg.Quantum, cfg.EventCount); err != nil {
		return nil, err
	}
	defer sched.End()

	byName := make(map[string]TaskScript, len(cfg.Tasks))
	for _, t := range cfg.Tasks {
		byName[t.Name] = t
	}

	tr := &Trace{}

	var build func(name string) sched.Handler
	build = func(name string) sched.Handler {
		return func(uint) {
			for _, step := range byName[name].Steps {
				runStep(tr, name, step, byName, build)
			}
		}
	}

	root := cfg.Tasks[0]
	if id := sched.Fork(build(root.Name), root.Priority); id == sched.InvalidID {
		return nil, fmt.Errorf("scenario: failed to fork root task %q", root.Name)
	}
	return tr, nil
}

func runStep(tr *Trace, taskName, step string, byName map[string]TaskScript, build func(string) sched.Handler) {
	switch {
	case step == "exec":
		tr.record(taskName + ":exec")
		sched.Exec()

	case strings.HasPrefix(step, "wait:"):
		event := parseEvent(step, "wait:")
		tr.record(fmt.Sprintf("%s:wait:%d", taskName, event))
		sched.Wait(event)

	case strings.HasPrefix(step, "signal:"):
		event := parseEvent(step, "signal:")
		woken := sched.Signal(event)
		tr.record(fmt.Sprintf("%s:signal:%d:%d", taskName, event, woken))

	case strings.HasPrefix(step, "fork:"):
		childName := strings.TrimPrefix(step, "fork:")
		child, ok := byName[childName]
		if !ok {
			tr.record(fmt.Sprintf("%s:fork:%s:missing", taskName, childName))
			return
		}
		tr.record(fmt.Sprintf("%s:fork:%s", taskName, childName))
		sched.Fork(build(childName), child.Priority)

	default:
		tr.record(fmt.Sprintf("%s:unknown-step:%s", taskName, step))
	}
}

func parseEvent(step, prefix string) uint {
	n, err := strconv.Atoi(strings.TrimPrefix(step, prefix))
	if err != nil || n < 0 {
		return 0
	}
	return uint(n)
}

package sched

import (
	"runtime"
	"sync/atomic"

	"github.com/go-foundations/coopsched/internal/affinity"
	"github.com/go-foundations/coopsched/internal/gate"
)

// Handler is the user-supplied function a forked task runs. It receives
// its own priority, matching the original scheduler's so_handler
// signature (void (*)(unsigned int)).
type Handler func(priority uint)

// TaskID identifies a forked task. InvalidID is returned by Fork on
// argument errors.
type TaskID int64

// InvalidID is returned by Fork when handler is nil or priority is out
// of range.
const InvalidID TaskID = 0

var nextTaskID int64

func allocTaskID() TaskID {
	return TaskID(atomic.AddInt64(&nextTaskID, 1))
}

// Task is the scheduler's per-task descriptor: priority, consumed
// quantum, waiting flag, handler, gating semaphore, and the goroutine
// standing in for the task's dedicated OS thread.
type Task struct {
	id       TaskID
	priority int
	consumed int
	waiting  bool
	handler  Handler
	gate     *gate.Gate
	done     chan struct{} // closed when the wrapper goroutine returns, for End's join
}

func newTask(id TaskID, priority int, handler Handler) *Task {
	return &Task{
		id:       id,
		priority: priority,
		handler:  handler,
		gate:     gate.New(),
		done:     make(chan struct{}),
	}
}

// ID returns the identity that Fork returned for this task.
func (t *Task) ID() TaskID { return t.id }

// run is the task entrypoint wrapper: park until first dispatched,
// invoke the handler, then unwind out of contention. It
// runs on its own goroutine, pinned to an OS thread for the duration of
// the handler, the Go stand-in for "each task is backed by one OS
// thread".
func (t *Task) run(s *Scheduler) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if len(s.cpuAffinity) > 0 {
		cpu := s.cpuAffinity[int(t.id)%len(s.cpuAffinity)]
		if err := affinity.Pin(cpu); err != nil {
			s.log.WithField("task", t.id).Debugf("cpu affinity pin failed: %v", err)
		}
	}

	t.gate.Wait() // step 1: park until scheduled for the first time

	t.handler(uint(t.priority)) // step 2

	s.mu.Lock()
	s.finished = append(s.finished, t) // step 3
	s.running = nil                    // step 4
	s.reschedule()                     // step 5: unlocks s.mu before returning

	s.mu.Lock()
	s.liveCount-- // step 6
	if s.liveCount == 0 {
		s.closeDrainGate()
	}
	s.mu.Unlock()

	close(t.done) // step 7: the goroutine is now joinable
}

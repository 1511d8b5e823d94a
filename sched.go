// Package sched implements a cooperative user-space thread scheduler:
// a pool of user-created tasks, each backed by one goroutine pinned to
// an OS thread, multiplexed under a priority-based, time-quantum-bounded
// policy so that only one task ever makes forward progress at a time.
//
// Tasks yield voluntarily by calling Wait, Signal, or Exec; these, along
// with Fork, drive the dispatcher (see dispatcher.go) that selects the
// next runnable task and hands off the CPU via per-task gate
// semaphores (internal/gate).
package sched

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/go-foundations/coopsched/internal/logging"
	"github.com/go-foundations/coopsched/internal/queue"
)

// MaxPriority is the highest valid task priority (inclusive).
const MaxPriority = 5

// MaxEvents is the largest event_count Init will accept.
const MaxEvents = 256

// Scheduler is the process-wide cooperative scheduler. It is not meant
// to be constructed directly: use Init to create the singleton and the
// package-level Fork/Wait/Signal/Exec/End functions to drive it.
type Scheduler struct {
	mu sync.Mutex

	quantum  int
	maxEvent int

	ready *queue.ReadySet
	wait  *queue.WaitSet

	running  *Task
	finished []*Task

	liveCount   int
	drainGate   chan struct{}
	drainClosed bool
	cpuAffinity []int
	dispatches  int64
	log         *logrus.Entry
}

// Config holds the optional tuning knobs Init accepts beyond the
// mandatory quantum/eventCount pair.
type Config struct {
	// Quantum is the number of time units a task may accumulate before
	// it must yield to a peer of equal priority. Must be >= 1.
	Quantum int
	// EventCount is the number of distinct I/O event ids supported,
	// 0 <= event < EventCount. Must be <= MaxEvents.
	EventCount int
	// CPUAffinity, if non-empty, round-robins forked tasks' OS threads
	// across this CPU set (Linux only; a no-op elsewhere).
	CPUAffinity []int
}

var (
	singletonMu sync.Mutex
	singleton   *Scheduler
)

// Init allocates the scheduler singleton. It fails if a scheduler is
// already initialized, if eventCount exceeds MaxEvents, or if quantum
// is 0. A prior End must precede re-initialization.
func Init(quantum, eventCount uint) error {
	return InitWithConfig(Config{Quantum: int(quantum), EventCount: int(eventCount)})
}

// InitWithConfig is Init with the additional options in Config.
func InitWithConfig(cfg Config) error {
	singletonMu.Lock()
	defer singletonMu.Unlock()

	log := logging.NewComponentLogger("sched")

	if singleton != nil {
		log.Warn("init rejected: scheduler already initialized")
		return ErrAlreadyInitialized
	}
	if cfg.EventCount > MaxEvents {
		log.Warnf("init rejected: event count %d exceeds MaxEvents", cfg.EventCount)
		return ErrTooManyEvents
	}
	if cfg.Quantum < 1 {
		log.Warn("init rejected: quantum must be >= 1")
		return ErrZeroQuantum
	}

	singleton = &Scheduler{
		quantum:     cfg.Quantum,
		maxEvent:    cfg.EventCount,
		ready:       queue.NewReadySet(MaxPriority),
		wait:        queue.NewWaitSet(cfg.EventCount),
		drainGate:   make(chan struct{}),
		cpuAffinity: cfg.CPUAffinity,
		log:         log,
	}

	log.Infof("scheduler initialized: quantum=%d events=%d", cfg.Quantum, cfg.EventCount)
	return nil
}

// current returns the active scheduler, or nil if none is initialized.
func current() *Scheduler {
	singletonMu.Lock()
	defer singletonMu.Unlock()
	return singleton
}

func (s *Scheduler) closeDrainGate() {
	if !s.drainClosed {
		close(s.drainGate)
		s.drainClosed = true
	}
}

// End waits for all live tasks to finish, joins their goroutines, and
// releases the scheduler singleton. It is a no-op if no scheduler
// exists. A subsequent Init may follow.
func End() {
	s := current()
	if s == nil {
		return
	}

	s.mu.Lock()
	needDrain := s.liveCount > 0
	s.mu.Unlock()

	if needDrain {
		<-s.drainGate
	}

	s.mu.Lock()
	finished := s.finished
	s.finished = nil
	s.mu.Unlock()

	for _, t := range finished {
		<-t.done // join
	}

	s.log.Info("scheduler shut down")

	singletonMu.Lock()
	singleton = nil
	singletonMu.Unlock()
}

// Stats is a read-only snapshot of scheduler introspection data, not
// present in the original C implementation but useful for
// introspection and tests: per-priority ready depth, live task count, and
// total dispatcher handoffs performed so far.
type Stats struct {
	ReadyDepth [MaxPriority + 1]int
	LiveCount  int
	Dispatches int64
	Running    TaskID // 0 (InvalidID) if nothing is running
}

// CurrentStats returns a snapshot of the scheduler's current state.
func CurrentStats() Stats {
	s := current()
	if s == nil {
		return Stats{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var st Stats
	for p := 0; p <= MaxPriority; p++ {
		st.ReadyDepth[p] = s.ready.Queue(p).Len()
	}
	st.LiveCount = s.liveCount
	st.Dispatches = s.dispatches
	if s.running != nil {
		st.Running = s.running.id
	}
	return st
}

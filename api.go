package sched

// Fork creates a new task from the current running task (or, for the
// very first fork, from the caller) with the given priority, and
// returns its id. It increments the calling task's consumed quantum by
// one (the cost of invoking the primitive), enqueues the new task ready
// at its priority, and invokes the dispatcher. Returns InvalidID if
// handler is nil or priority exceeds MaxPriority.
func Fork(handler Handler, priority uint) TaskID {
	s := current()
	if s == nil {
		panic(ErrNotInitialized)
	}
	if handler == nil {
		s.log.Warn("fork rejected: nil handler")
		return InvalidID
	}
	if int(priority) > MaxPriority {
		s.log.Warnf("fork rejected: priority %d exceeds MaxPriority", priority)
		return InvalidID
	}

	s.mu.Lock()

	if s.running != nil {
		s.running.consumed++
	}

	id := allocTaskID()
	t := newTask(id, int(priority), handler)
	s.liveCount++
	s.ready.Queue(t.priority).PushTail(t)

	s.log.WithField("task", id).Debugf("fork: priority=%d", priority)

	go t.run(s)

	s.reschedule() // unlocks s.mu

	return id
}

// Wait parks the running task on the given I/O event until a matching
// Signal wakes it. If no other task is ready, the dispatcher leaves the
// caller running and Wait returns at once, with the caller still queued
// on the event. Returns -1 if event is out of range.
func Wait(event uint) int {
	s := current()
	if s == nil {
		panic(ErrNotInitialized)
	}
	if int(event) >= s.maxEvent {
		s.log.Warnf("wait rejected: event %d out of range", event)
		return -1
	}

	s.mu.Lock()

	cur := s.running
	if cur == nil {
		s.mu.Unlock()
		panic("sched: wait called with no running task")
	}
	cur.consumed++
	s.wait.Queue(int(event)).PushTail(cur)
	cur.waiting = true

	s.log.WithField("task", cur.id).Debugf("wait: event=%d", event)

	s.reschedule() // unlocks s.mu

	return 0
}

// Signal wakes every task waiting on the given event, moving each back
// into its ready queue, and invokes the dispatcher. Returns the number
// of tasks woken, or -1 if event is out of range.
func Signal(event uint) int {
	s := current()
	if s == nil {
		panic(ErrNotInitialized)
	}
	if int(event) >= s.maxEvent {
		s.log.Warnf("signal rejected: event %d out of range", event)
		return -1
	}

	s.mu.Lock()

	cur := s.running
	if cur == nil {
		s.mu.Unlock()
		panic("sched: signal called with no running task")
	}
	cur.consumed++

	woken := 0
	waiters := s.wait.Queue(int(event))
	for {
		v, ok := waiters.PopHead()
		if !ok {
			break
		}
		task := v.(*Task)
		task.waiting = false
		s.ready.Queue(task.priority).PushTail(task)
		woken++
	}

	s.log.WithField("task", cur.id).Debugf("signal: event=%d woke=%d", event, woken)

	s.reschedule() // unlocks s.mu

	return woken
}

// Exec consumes one time unit and invokes the dispatcher. Panics if
// called with no running task.
func Exec() {
	s := current()
	if s == nil {
		panic(ErrNotInitialized)
	}

	s.mu.Lock()

	cur := s.running
	if cur == nil {
		s.mu.Unlock()
		panic("sched: exec called with no running task")
	}
	cur.consumed++

	s.reschedule() // unlocks s.mu
}

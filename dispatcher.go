package sched

import "github.com/sirupsen/logrus"

// reschedule is the dispatcher: the single point through which every
// scheduling decision passes. It follows the original so_scheduler.c's
// replace_running_thread step for step.
//
// Precondition: s.mu is held by the caller.
// Postcondition: s.mu has been released, regardless of path taken. If a
// handoff away from the calling task happens, reschedule blocks (on the
// calling task's own gate) until that task is scheduled again, and only
// then returns.
func (s *Scheduler) reschedule() {
	cur := s.running
	rotated := false

	// Step 2: quantum rotation.
	if cur != nil && cur.consumed == s.quantum && !cur.waiting {
		s.ready.Queue(cur.priority).PushTail(cur)
		rotated = true
	}

	// Step 3: candidate selection, scanning from MaxPriority down to 0.
	nextPriority, switching := -1, false
	for p := s.ready.MaxPriority(); p >= 0; p-- {
		if s.ready.Queue(p).IsEmpty() {
			continue
		}
		if cur == nil || p > cur.priority || cur.consumed == s.quantum || cur.waiting {
			nextPriority, switching = p, true
			break
		}
	}

	if !switching {
		// Step 4: no candidate wins; running is unchanged.
		s.log.Debug("reschedule: no runnable candidate, running unchanged")
		s.mu.Unlock()
		return
	}

	// Step 5: pop the head of the winning queue.
	v, _ := s.ready.Queue(nextPriority).PopHead()
	next := v.(*Task)
	if cur != nil {
		cur.consumed = 0
	}
	next.consumed = 0

	// Step 6: re-enqueue policy. A task preempted by a higher priority
	// before its quantum expired goes back to the tail of its own queue.
	if cur != nil && !rotated && !cur.waiting {
		s.ready.Queue(cur.priority).PushTail(cur)
	}

	s.running = next
	s.dispatches++

	s.log.WithFields(logrus.Fields{
		"from": taskIDOrNil(cur),
		"to":   next.id,
	}).Debug("reschedule: handoff")

	// Step 7: handoff. Post next's gate, then park the old runner on its
	// own gate. These two operations, and releasing s.mu between them,
	// are the linchpin of the single-runner invariant: next may begin
	// touching scheduler state only once it has acquired s.mu itself,
	// which cannot happen until this unlock.
	next.gate.Post()
	s.mu.Unlock()

	if cur != nil {
		cur.gate.Wait()
	}
}

func taskIDOrNil(t *Task) any {
	if t == nil {
		return nil
	}
	return t.id
}

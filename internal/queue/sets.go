package queue

// ReadySet is a fixed array of FIFO queues, one per priority level
// 0..maxPrio inclusive. Selection is by highest non-empty index, ties
// broken by FIFO order within that index. HighestNonEmpty reports that
// index; the dispatcher runs its own scan, since it also applies the
// preemption predicate.
type ReadySet struct {
	levels []*FIFO
}

// NewReadySet allocates a ready set for priorities 0..maxPrio inclusive.
func NewReadySet(maxPrio int) *ReadySet {
	levels := make([]*FIFO, maxPrio+1)
	for i := range levels {
		levels[i] = NewFIFO()
	}
	return &ReadySet{levels: levels}
}

// Queue returns the FIFO queue for the given priority.
func (rs *ReadySet) Queue(priority int) *FIFO {
	return rs.levels[priority]
}

// MaxPriority returns the highest valid priority index.
func (rs *ReadySet) MaxPriority() int {
	return len(rs.levels) - 1
}

// HighestNonEmpty scans from the highest priority down to 0 and returns
// the first priority with a non-empty queue. ok is false if every queue
// is empty.
func (rs *ReadySet) HighestNonEmpty() (priority int, ok bool) {
	for p := rs.MaxPriority(); p >= 0; p-- {
		if !rs.levels[p].IsEmpty() {
			return p, true
		}
	}
	return 0, false
}

// WaitSet is a fixed array of FIFO queues, one per I/O event identifier
// 0..maxEvent-1.
type WaitSet struct {
	events []*FIFO
}

// NewWaitSet allocates a wait set for event ids 0..maxEvent-1.
func NewWaitSet(maxEvent int) *WaitSet {
	events := make([]*FIFO, maxEvent)
	for i := range events {
		events[i] = NewFIFO()
	}
	return &WaitSet{events: events}
}

// Queue returns the FIFO queue for the given event id.
func (ws *WaitSet) Queue(event int) *FIFO {
	return ws.events[event]
}

// NumEvents returns the number of distinct event ids this wait set covers.
func (ws *WaitSet) NumEvents() int {
	return len(ws.events)
}

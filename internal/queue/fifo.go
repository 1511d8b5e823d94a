// Package queue implements the FIFO queue and the fixed-size ready/wait
// sets that back the scheduler's dispatcher. It is the Go counterpart of
// the original C scheduler's queue.c singly-linked list: push at the
// tail, pop from the head, O(1) size.
package queue

import "container/list"

// Task is the minimal view the queue needs of a task descriptor: any
// value. The queue stores the scheduler's *Task values without
// inspecting them.
type Task any

// FIFO is an ordered sequence supporting push-tail and pop-head, with
// O(1) size reporting. No internal synchronization: callers serialize
// access themselves (the scheduler's single-runner invariant).
type FIFO struct {
	l *list.List
}

// NewFIFO returns an empty FIFO queue.
func NewFIFO() *FIFO {
	return &FIFO{l: list.New()}
}

// PushTail appends t to the end of the queue.
func (q *FIFO) PushTail(t Task) {
	q.l.PushBack(t)
}

// PopHead removes and returns the task at the front of the queue. The
// second return value is false if the queue was empty.
func (q *FIFO) PopHead() (Task, bool) {
	front := q.l.Front()
	if front == nil {
		return nil, false
	}
	q.l.Remove(front)
	return front.Value, true
}

// Len reports the number of tasks currently queued.
func (q *FIFO) Len() int {
	return q.l.Len()
}

// IsEmpty reports whether the queue has no tasks.
func (q *FIFO) IsEmpty() bool {
	return q.l.Len() == 0
}

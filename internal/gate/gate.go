// Package gate implements the per-task binary semaphore used by the
// scheduler to hand off the CPU from one task's goroutine to another.
package gate

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Gate is a binary semaphore with an initial value of 0: the first
// Wait blocks until a matching Post has happened. It is the Go
// realization of the pthread `sem_t` paired with `sem_init(&sem, 0, 0)`
// in the scheduler this package implements.
//
// Gate is built on golang.org/x/sync/semaphore.Weighted with a capacity
// of 1. A freshly constructed Weighted semaphore starts with its full
// capacity available, which is the wrong initial state for a gate that
// must start closed; New immediately acquires the single unit of
// capacity so that the first Wait blocks until a Post releases it.
type Gate struct {
	sem *semaphore.Weighted
}

// New returns a Gate initialized to the closed (value 0) state.
func New() *Gate {
	g := &Gate{sem: semaphore.NewWeighted(1)}
	// Capacity is 1 and nothing else can be contending yet, so this
	// acquire cannot block.
	_ = g.sem.Acquire(context.Background(), 1)
	return g
}

// Post releases the gate, unblocking exactly one pending or future Wait.
// Matches pthread's sem_post.
func (g *Gate) Post() {
	g.sem.Release(1)
}

// Wait blocks until the gate has been posted, then consumes the post.
// Matches pthread's sem_wait.
func (g *Gate) Wait() {
	_ = g.sem.Acquire(context.Background(), 1)
}

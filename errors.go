package sched

import "errors"

// Sentinel errors returned by Init, and panicked with by Fork/Wait/
// Signal/Exec when called before Init. Callers can compare against
// these with errors.Is.
var (
	// ErrAlreadyInitialized is returned by Init when a scheduler already exists.
	ErrAlreadyInitialized = errors.New("sched: scheduler already initialized")
	// ErrTooManyEvents is returned by Init when eventCount exceeds MaxEvents.
	ErrTooManyEvents = errors.New("sched: event count exceeds MaxEvents")
	// ErrZeroQuantum is returned by Init when quantum is 0.
	ErrZeroQuantum = errors.New("sched: quantum must be at least 1")
	// ErrNotInitialized is the value Fork/Wait/Signal/Exec panic with when no scheduler exists.
	ErrNotInitialized = errors.New("sched: no scheduler initialized")
)

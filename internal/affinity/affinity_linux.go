//go:build linux

// Package affinity optionally pins a task's OS thread to a specific CPU,
// mirroring the per-queue CPU pinning in go-ublk's runner.ioLoop: the
// caller must have already called runtime.LockOSThread on the calling
// goroutine, since SchedSetaffinity applies to the calling thread.
package affinity

import "golang.org/x/sys/unix"

// Supported reports whether CPU pinning is available on this platform.
const Supported = true

// Pin sets the calling OS thread's CPU affinity mask to the single CPU
// cpu. The caller must already be locked to its OS thread via
// runtime.LockOSThread. Returns the underlying syscall error, if any;
// callers treat a failure as non-fatal (see dispatcher/task wiring).
func Pin(cpu int) error {
	var mask unix.CPUSet
	mask.Set(cpu)
	return unix.SchedSetaffinity(0, &mask)
}

//go:build !linux

package affinity

// Supported reports whether CPU pinning is available on this platform.
const Supported = false

// Pin is a no-op outside Linux; SchedSetaffinity has no portable
// equivalent, and the scheduler treats affinity as a best-effort hint.
func Pin(cpu int) error {
	return nil
}

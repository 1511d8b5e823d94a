package gate

import (
	"testing"
	"time"
)

func TestNewGateStartsClosed(t *testing.T) {
	g := New()

	done := make(chan struct{})
	go func() {
		g.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Wait returned before Post on a freshly created gate")
	case <-time.After(20 * time.Millisecond):
	}

	g.Post()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not unblock after Post")
	}
}

func TestPostWaitPairing(t *testing.T) {
	g := New()

	g.Post()
	g.Wait() // consumes the post immediately, does not block

	unblocked := make(chan struct{})
	go func() {
		g.Wait()
		close(unblocked)
	}()

	select {
	case <-unblocked:
		t.Fatal("second Wait returned without a matching Post")
	case <-time.After(20 * time.Millisecond):
	}

	g.Post()
	select {
	case <-unblocked:
	case <-time.After(time.Second):
		t.Fatal("Wait did not unblock after second Post")
	}
}

package mle

import (
	"os"
	"testing"
	"time"
)

// TestMultiplexerDrainsShellOutput spawns a real short-lived shell
// command and drives the multiplexer's real select()/read() pass
// against it (no TTY ready, so it must eventually report drained data
// then a terminal EOF callback), per spec.md ยง4.5. The stand-in TTY is
// the read end of a pipe nobody writes to, so it never becomes ready.
func TestMultiplexerDrainsShellOutput(t *testing.T) {
	ttyR, ttyW, err := os.Pipe()
	if err != nil {
		t.Skip("no pipe available")
	}
	defer ttyR.Close()
	defer ttyW.Close()

	m := NewMultiplexer(int(ttyR.Fd()))
	m.PollTimeout = 20 * time.Millisecond

	var data []byte
	done := false
	_, err = m.SpawnShell(nil, []string{"/bin/sh", "-c", "echo hello"}, false, true,
		func(d []byte, isEOF, isError, isTimeout bool) {
			if d != nil {
				data = append(data, d...)
			}
			if isEOF || isError || isTimeout {
				done = true
			}
		})
	if err != nil {
		t.Skipf("cannot spawn shell in this environment: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for !done && time.Now().Before(deadline) {
		if _, err := m.Pass(); err != nil {
			t.Fatalf("Pass() error: %v", err)
		}
	}
	if !done {
		t.Fatal("expected the spawned shell's terminal callback to fire")
	}
	if string(data) != "hello\n" {
		t.Fatalf("captured output = %q, want %q", data, "hello\n")
	}
	if len(m.Procs) != 0 {
		t.Fatalf("expected the finished proc to be unregistered, got %d remaining", len(m.Procs))
	}
}

func TestMultiplexerIdleOnTimeout(t *testing.T) {
	ttyR, ttyW, err := os.Pipe()
	if err != nil {
		t.Skip("no pipe available")
	}
	defer ttyR.Close()
	defer ttyW.Close()

	m := NewMultiplexer(int(ttyR.Fd()))
	m.PollTimeout = 5 * time.Millisecond
	result, err := m.Pass()
	if err != nil {
		t.Fatalf("Pass() error: %v", err)
	}
	if result != ResultIdle {
		t.Fatalf("unexpected result polling an idle tty: %v", result)
	}
}

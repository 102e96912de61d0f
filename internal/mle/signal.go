// Copyright 2024-2026 The mle AUTHORS
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mle

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// InstallSignalHandler wires SIGINT/SIGTERM/SIGQUIT/SIGHUP to the
// self-pipe pattern of spec.md ยง9: the handler goroutine only sets a
// flag (sigDumpRequested) via an atomic.Bool; the main loop observes it
// on each iteration and performs the crash dump itself, since writing
// to disk from inside an actual OS signal handler is unsafe.
// The returned stop func removes the handler.
func (ed *Editor) InstallSignalHandler() (stop func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigCh:
			ed.sigDumpRequested.Store(true)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}

// CheckSignalDump is called once per event-loop iteration; if a fatal
// signal arrived since the last check, it writes crash dumps of every
// dirty buffer and exits with code 1, per spec.md ยง5/ยง7.
func (ed *Editor) CheckSignalDump() {
	if !ed.sigDumpRequested.Load() {
		return
	}
	ed.dumpAllBuffers()
	os.Exit(1)
}

// dumpAllBuffers writes every dirty buffer to mle.bak.<pid>.<n>, in
// editor view-registration order, best-effort (a dump failure is
// reported to stderr but does not block the others).
func (ed *Editor) dumpAllBuffers() {
	pid := os.Getpid()
	n := 0
	seen := map[*Buffer]bool{}
	for _, v := range ed.Views {
		if seen[v.Buffer] || !v.Buffer.Dirty() {
			continue
		}
		seen[v.Buffer] = true
		n++
		path := fmt.Sprintf("mle.bak.%d.%d", pid, n)
		if err := os.WriteFile(path, []byte(v.Buffer.Get()), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "mle: crash dump %s failed: %v\n", path, err)
		}
	}
}

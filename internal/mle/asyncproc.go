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
	"os/exec"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sys/unix"
)

// AsyncProcCallback receives a chunk of subprocess output, or a single
// terminal (EOF/error/timeout) signal with data == nil.
type AsyncProcCallback func(data []byte, isEOF, isError, isTimeout bool)

// AsyncProc is a live child process pipe (spec.md ยง3): a read descriptor,
// an optional write descriptor, a deadline, a callback, and the view
// that owns it. Destroyed on EOF, read error, owner destruction, or
// deadline expiry.
type AsyncProc struct {
	ID    string
	Owner *View

	cmd   *exec.Cmd
	rfile *os.File
	wfile *os.File

	Deadline    time.Time
	HasDeadline bool
	Callback    AsyncProcCallback
	Done        bool

	// Solo gives this proc exclusive read-set priority over every other
	// async proc in a multiplexer pass (original_source/async.c's
	// is_solo), used for synchronous shell-outs.
	Solo bool
	// DestroyOnEOF controls whether the proc is torn down as soon as its
	// read side reaches EOF, or kept registered (e.g. to keep draining a
	// bidirectional filter's stderr) until explicitly marked Done.
	DestroyOnEOF bool

	eof bool
	err error
}

// Write sends data to the process's stdin, if it was opened for
// read-write.
func (a *AsyncProc) Write(data []byte) (int, error) {
	if a.wfile == nil {
		return 0, fmt.Errorf("mle: async proc %s has no write pipe", a.ID)
	}
	return a.wfile.Write(data)
}

func (a *AsyncProc) fd() int { return int(a.rfile.Fd()) }

func (a *AsyncProc) destroy() {
	a.rfile.Close()
	if a.wfile != nil {
		a.wfile.Close()
	}
	if a.cmd != nil && a.cmd.Process != nil {
		_ = a.cmd.Process.Kill()
	}
}

// Multiplexer owns the set of live async procs and drains them fairly
// against TTY input (spec.md ยง4.5).
type Multiplexer struct {
	TTYFd       int
	PollTimeout time.Duration
	Procs       []*AsyncProc
}

// NewMultiplexer creates a multiplexer polling ttyFd with the spec's
// ~5ms timeout.
func NewMultiplexer(ttyFd int) *Multiplexer {
	return &Multiplexer{TTYFd: ttyFd, PollTimeout: 5 * time.Millisecond}
}

// SpawnShell starts shell[0] shell[1:]... command (e.g. {"/bin/sh", "-c",
// "grep foo"}) and registers it for draining. If rw is true, a write
// pipe to the child's stdin is also opened.
func (m *Multiplexer) SpawnShell(owner *View, shell []string, rw, destroyOnEOF bool, cb AsyncProcCallback) (*AsyncProc, error) {
	if len(shell) == 0 {
		return nil, fmt.Errorf("mle: empty shell command")
	}
	cmd := exec.Command(shell[0], shell[1:]...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	rf, ok := stdout.(*os.File)
	if !ok {
		return nil, fmt.Errorf("mle: stdout pipe is not a file descriptor")
	}
	cmd.Stderr = cmd.Stdout

	var wf *os.File
	if rw {
		stdin, err := cmd.StdinPipe()
		if err != nil {
			return nil, err
		}
		wfile, ok := stdin.(*os.File)
		if !ok {
			return nil, fmt.Errorf("mle: stdin pipe is not a file descriptor")
		}
		wf = wfile
	}

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	a := &AsyncProc{
		ID:           uuid.NewString(),
		Owner:        owner,
		cmd:          cmd,
		rfile:        rf,
		wfile:        wf,
		Callback:     cb,
		DestroyOnEOF: destroyOnEOF,
	}
	m.Procs = append(m.Procs, a)
	return a, nil
}

// SetDeadline gives a an absolute deadline after which the multiplexer
// treats it as timed out.
func (a *AsyncProc) SetDeadline(t time.Time) {
	a.Deadline = t
	a.HasDeadline = true
}

// Remove unregisters and tears down a proc immediately (owner
// destruction, spec.md ยง5).
func (m *Multiplexer) Remove(a *AsyncProc) {
	for i, p := range m.Procs {
		if p == a {
			p.destroy()
			m.Procs = append(m.Procs[:i], m.Procs[i+1:]...)
			return
		}
	}
}

// PassResult is the outcome of one Multiplexer.Pass.
type PassResult int

const (
	// ResultIdle: the poll timed out; nothing was ready.
	ResultIdle PassResult = iota
	// ResultUserInput: the TTY is ready; the caller should read a key
	// without touching any pipe this pass (TTY priority, spec.md ยง4.5).
	ResultUserInput
	// ResultDrained: one or more proc callbacks fired; no TTY key is
	// pending yet.
	ResultDrained
)

// Pass performs exactly one poll-then-handle cycle (spec.md ยง4.5):
//  1. poll error -> abort the pass and return the error; no callback fires
//  2. poll timeout -> ResultIdle
//  3. TTY ready -> ResultUserInput, without reading any pipe
//  4. else read up to 1KiB from each ready pipe and invoke its callback;
//     then, for every proc (read or not), fire a terminal callback and
//     destroy it if it hit EOF/error or its deadline passed.
func (m *Multiplexer) Pass() (PassResult, error) {
	if len(m.Procs) == 0 {
		return m.pollTTYOnly()
	}

	var rfds unix.FdSet
	fdZero(&rfds)
	fdSet(&rfds, m.TTYFd)
	maxFd := m.TTYFd

	solo := false
	for _, p := range m.Procs {
		if p.Solo {
			fdZero(&rfds)
			fdSet(&rfds, m.TTYFd)
			fdSet(&rfds, p.fd())
			maxFd = max(m.TTYFd, p.fd())
			solo = true
			break
		}
	}
	if !solo {
		for _, p := range m.Procs {
			fdSet(&rfds, p.fd())
			if p.fd() > maxFd {
				maxFd = p.fd()
			}
		}
	}

	tv := unix.NsecToTimeval(m.PollTimeout.Nanoseconds())
	n, err := unix.Select(maxFd+1, &rfds, nil, nil, &tv)
	if err != nil {
		return ResultIdle, err
	}
	if n == 0 {
		return ResultIdle, nil
	}
	if fdIsSet(&rfds, m.TTYFd) {
		return ResultUserInput, nil
	}

	fired := false
	now := time.Now()
	alive := m.Procs[:0]
	for _, p := range m.Procs {
		if fdIsSet(&rfds, p.fd()) {
			buf := make([]byte, 1024)
			n, err := unix.Read(p.fd(), buf)
			switch {
			case n > 0:
				p.Callback(buf[:n], false, false, false)
				fired = true
			case n == 0:
				p.eof = true
			case err != nil:
				p.err = err
			}
		}
		timedOut := p.HasDeadline && now.After(p.Deadline)
		if (p.eof && p.DestroyOnEOF) || p.err != nil || p.Done || timedOut {
			p.Callback(nil, p.eof, p.err != nil, timedOut)
			p.destroy()
			fired = true
			continue
		}
		alive = append(alive, p)
	}
	m.Procs = alive

	if fired {
		return ResultDrained, nil
	}
	return ResultIdle, nil
}

func (m *Multiplexer) pollTTYOnly() (PassResult, error) {
	var rfds unix.FdSet
	fdZero(&rfds)
	fdSet(&rfds, m.TTYFd)
	tv := unix.NsecToTimeval(m.PollTimeout.Nanoseconds())
	n, err := unix.Select(m.TTYFd+1, &rfds, nil, nil, &tv)
	if err != nil {
		return ResultIdle, err
	}
	if n == 0 {
		return ResultIdle, nil
	}
	return ResultUserInput, nil
}

func fdZero(set *unix.FdSet) {
	for i := range set.Bits {
		set.Bits[i] = 0
	}
}

func fdSet(set *unix.FdSet, fd int) {
	set.Bits[fd/64] |= 1 << (uint(fd) % 64)
}

func fdIsSet(set *unix.FdSet, fd int) bool {
	return set.Bits[fd/64]&(1<<(uint(fd)%64)) != 0
}

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

import "github.com/gdamore/tcell"

// Run starts the top-level event loop: it creates the outermost
// LoopContext and runs it to completion (Quit, or the screen closing).
func (ed *Editor) Run() {
	loop := &LoopContext{}
	ed.runLoop(loop)
}

// runLoop is the recursive event loop of spec.md ยง4.4/ยง9: every prompt
// re-enters it with a fresh LoopContext, suspending at the same
// multiplexer-poll site as the outermost call (design note: "explicit
// loop-context stack" instead of literal OS-thread recursion is not
// needed in Go -- a normal recursive call already gives each frame its
// own stack-local loop).
func (ed *Editor) runLoop(loop *LoopContext) {
	ed.loopDepth++
	defer func() { ed.loopDepth-- }()

	for !ed.shouldExit && !loop.ShouldExit {
		ed.CheckSignalDump()
		if loop.OnIteration != nil {
			loop.OnIteration(ed)
		}
		ed.redraw()
		ed.tick(loop)
	}
}

// tick runs exactly one iteration of the ordering in spec.md ยง5: drain
// async pipes -> read one key (if any) -> macro-tap -> dispatch ->
// mutations -> mark redraw pending (redraw itself happens at the top of
// the next runLoop iteration, if the loop condition still holds).
func (ed *Editor) tick(loop *LoopContext) {
	chord, fromReplay := ed.nextReplayInput()
	if !fromReplay {
		c, ok := ed.pollOneKey()
		if !ok {
			return
		}
		chord = c
	}

	if ed.Recording {
		ed.Record.Inputs = append(ed.Record.Inputs, chord)
	}

	if !fromReplay && chord == ed.MacroToggleKey {
		ed.handleMacroToggle()
		return
	}

	if ed.Active == nil {
		return
	}
	if b, ok := Dispatch(ed.Active, chord, ed.Commands); ok {
		ed.Invoke(b, ed.Active, chord, loop)
	}
}

// pollOneKey drains the async multiplexer (if any procs are live) and,
// once the TTY has priority, blocks on the screen for exactly one event.
// Non-key events (resize, interrupt) are absorbed here and never reach
// dispatch; ok is false when no key was produced this iteration (idle
// poll, drained pipes, or a non-key screen event), in which case the
// caller should simply redraw and loop again.
func (ed *Editor) pollOneKey() (Chord, bool) {
	if ed.Mux != nil && len(ed.Mux.Procs) > 0 {
		result, err := ed.Mux.Pass()
		if err != nil {
			ed.logf("async multiplexer pass failed: %v", err)
			return Chord{}, false
		}
		if result != ResultUserInput {
			return Chord{}, false
		}
	}
	if ed.Screen == nil {
		return Chord{}, false
	}
	switch ev := ed.Screen.PollEvent().(type) {
	case *tcell.EventKey:
		return TranslateKey(ev), true
	case *tcell.EventResize:
		ed.handleResize()
		return Chord{}, false
	default:
		return Chord{}, false
	}
}

func (ed *Editor) handleResize() {
	if ed.Screen == nil {
		return
	}
	ed.W, ed.H = ed.Screen.Size()
	if ed.ActiveEditRoot != nil {
		ed.ActiveEditRoot.Resize(0, 0, ed.W, ed.H-1)
	}
}

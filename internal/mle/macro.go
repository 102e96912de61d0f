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

import "fmt"

// Macro is a named, recorded sequence of input chords (spec.md ยง3).
type Macro struct {
	Name   string
	Inputs []Chord
}

// handleMacroToggle implements the record toggle of spec.md ยง4.3: with
// no active recording, prompt for a name and start one; with an active
// recording, trim the toggle key itself (it was appended to Record just
// before this call decided to stop) and commit the macro to the
// registry.
func (ed *Editor) handleMacroToggle() {
	if !ed.Recording {
		name, err := ed.Prompt(PromptInput, "macro name: ", nil)
		if err != nil || name == nil || *name == "" {
			return
		}
		ed.Record = &Macro{Name: *name}
		ed.Recording = true
		return
	}

	if n := len(ed.Record.Inputs); n > 0 {
		ed.Record.Inputs = ed.Record.Inputs[:n-1]
	}
	ed.Macros[ed.Record.Name] = ed.Record
	ed.Record = nil
	ed.Recording = false
}

// ApplyMacro sets name as the replay source, starting at index 0. It is
// disallowed while a replay is already in progress (spec.md ยง4.2).
func (ed *Editor) ApplyMacro(name string) error {
	m, ok := ed.Macros[name]
	if !ok {
		return fmt.Errorf("mle: no such macro: %s", name)
	}
	if ed.Replay != nil {
		return fmt.Errorf("mle: already replaying a macro")
	}
	ed.Replay = m
	ed.ReplayIndex = 0
	return nil
}

// cmdApplyMacro is the "apply macro" command (spec.md ยง4.2): prompts for
// a macro name and, if found, starts replaying it.
func cmdApplyMacro(ctx *CommandContext) error {
	name, err := ctx.Editor.Prompt(PromptInput, "apply macro: ", nil)
	if err != nil {
		return err
	}
	if name == nil || *name == "" {
		return nil
	}
	return ctx.Editor.ApplyMacro(*name)
}

// nextReplayInput returns the next recorded chord while a macro replay
// is active. ok is false once the replay source is exhausted, at which
// point the replay state has already been cleared (spec.md ยง4.3, and
// invariant 5 of ยง8: for i >= replay.len the replay is cleared).
func (ed *Editor) nextReplayInput() (Chord, bool) {
	if ed.Replay == nil {
		return Chord{}, false
	}
	if ed.ReplayIndex >= len(ed.Replay.Inputs) {
		ed.Replay = nil
		ed.ReplayIndex = 0
		return Chord{}, false
	}
	c := ed.Replay.Inputs[ed.ReplayIndex]
	ed.ReplayIndex++
	if ed.ReplayIndex >= len(ed.Replay.Inputs) {
		ed.Replay = nil
		ed.ReplayIndex = 0
	}
	return c, true
}

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

// PromptKind selects which keymap a prompt installs on top of its view.
type PromptKind int

const (
	PromptInput PromptKind = iota
	PromptYesNo
	PromptYesNoAll
	PromptOK
	PromptCustom
)

// LoopContext is per-event-loop-frame state (design note ยง9): each
// re-entrant call to the event loop (one per open prompt) gets its own
// frame, so nested loop contexts never share exit/answer state.
type LoopContext struct {
	ShouldExit   bool
	Answer       *string
	Invoker      *View
	OnIteration  func(ed *Editor)
}

// Prompt re-enters the event loop with a dedicated prompt-type view
// (spec.md ยง4.4). It pushes the normal keymap followed by the kind's
// prompt keymap (so PromptInput's fallthrough reaches the normal
// keymap's default insert binding, per spec.md ยง4.1 Rationale), runs a
// fresh LoopContext to completion, then restores the previously active
// view. Nested prompts are disallowed: calling Prompt while one is
// already open returns an error.
func (ed *Editor) Prompt(kind PromptKind, question string, customKmap *Keymap) (*string, error) {
	if ed.PromptView != nil {
		return nil, fmt.Errorf("mle: nested prompts are disallowed")
	}

	buf := NewBuffer("")
	v := NewView(buf, ViewPrompt)
	v.PromptStr = question
	v.InitCWD = ed.ActiveEdit.InitCWD

	v.PushKeymap(&KmapNode{Keymap: ed.kmapNormal})
	switch kind {
	case PromptInput:
		v.PushKeymap(&KmapNode{Keymap: ed.kmapPromptInput})
	case PromptYesNo:
		v.PushKeymap(&KmapNode{Keymap: ed.kmapPromptYN})
	case PromptYesNoAll:
		v.PushKeymap(&KmapNode{Keymap: ed.kmapPromptYNA})
	case PromptOK:
		v.PushKeymap(&KmapNode{Keymap: ed.kmapPromptOK})
	case PromptCustom:
		if customKmap == nil {
			return nil, fmt.Errorf("mle: PromptCustom requires a keymap")
		}
		v.PushKeymap(&KmapNode{Keymap: customKmap})
	}

	invoker := ed.Active
	ed.Views = append(ed.Views, v)
	ed.PromptView = v
	ed.Active = v

	loop := &LoopContext{Invoker: invoker}
	ed.runLoop(loop)

	ed.PromptView = nil
	ed.Active = invoker
	ed.removeView(v)
	buf.Unbind()

	return loop.Answer, nil
}

// promptSubmit is the command bound to Y/N/A in the yes/no(/all)
// keymaps and used as the OK keymap's default: it records a fixed answer
// and ends the prompt's loop context.
func promptSubmit(answer string) CommandFunc {
	return func(ctx *CommandContext) error {
		a := answer
		ctx.Loop.Answer = &a
		ctx.Loop.ShouldExit = true
		return nil
	}
}

// promptCancel is bound to Ctrl-C in every prompt keymap: answer is nil.
func promptCancel(ctx *CommandContext) error {
	ctx.Loop.Answer = nil
	ctx.Loop.ShouldExit = true
	return nil
}

// promptSubmitBuffer answers with the prompt view's current buffer text
// (Enter in the free-text input keymap).
func promptSubmitBuffer(ctx *CommandContext) error {
	answer := ctx.View.Buffer.Get()
	ctx.Loop.Answer = &answer
	ctx.Loop.ShouldExit = true
	return nil
}

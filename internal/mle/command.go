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

import "log"

// CommandFunc is a command function: spec.md ยง4.2. It receives a
// CommandContext and returns an error (non-nil meaning failure); the
// core logs failures but never aborts on one (spec.md ยง7 propagation
// policy).
type CommandFunc func(ctx *CommandContext) error

// CommandContext is handed to every command invocation.
type CommandContext struct {
	Editor *Editor
	View   *View
	Cursor *Cursor
	Input  Chord
	Loop   *LoopContext
	Param  interface{}
}

// CommandRegistry resolves command names to functions (design note ยง9:
// a registry populated at startup, resolved once and cached on the
// binding that references it).
type CommandRegistry struct {
	funcs map[string]CommandFunc
}

// NewCommandRegistry creates an empty registry.
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{funcs: map[string]CommandFunc{}}
}

// Register adds (or replaces) a named command function.
func (r *CommandRegistry) Register(name string, fn CommandFunc) {
	r.funcs[name] = fn
}

// Lookup resolves a command name.
func (r *CommandRegistry) Lookup(name string) (CommandFunc, bool) {
	fn, ok := r.funcs[name]
	return fn, ok
}

// Invoke runs a resolved binding against the active view, applying the
// multi-cursor semantics of spec.md ยง4.2: per-cursor commands (the
// ones registered wrapped in perCursor below) iterate every non-sleeping
// cursor of the view in list order, on a snapshot so that a command
// which spawns or drops cursors is well defined; all other commands run
// once (onActive-wrapped ones against the view's active cursor).
func (ed *Editor) Invoke(b *Binding, v *View, input Chord, loop *LoopContext) {
	fn, ok := b.Resolve(ed.Commands)
	if !ok {
		return
	}
	ctx := &CommandContext{Editor: ed, View: v, Input: input, Loop: loop, Param: b.Param}
	if err := fn(ctx); err != nil {
		ed.logf("command %s failed: %v", b.CmdName, err)
	}
}

// perCursor wraps a per-cursor edit/move command so it applies to every
// non-sleeping cursor of ctx.View, in list order, on a pre-dispatch
// snapshot.
func perCursor(fn func(ctx *CommandContext, c *Cursor) error) CommandFunc {
	return func(ctx *CommandContext) error {
		var firstErr error
		for _, c := range ctx.View.NonSleepingCursors() {
			sub := *ctx
			sub.Cursor = c
			if err := fn(&sub, c); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	}
}

// onActive wraps a command that only ever touches the view's active
// cursor (prompts, focus changes, geometry).
func onActive(fn func(ctx *CommandContext, c *Cursor) error) CommandFunc {
	return func(ctx *CommandContext) error {
		c := ctx.View.ActiveCursor()
		ctx.Cursor = c
		return fn(ctx, c)
	}
}

func (ed *Editor) logf(format string, args ...interface{}) {
	if ed.Log != nil {
		ed.Log.Printf(format, args...)
	} else {
		log.Printf(format, args...)
	}
}

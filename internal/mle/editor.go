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
	"log"
	"sync/atomic"

	"github.com/gdamore/tcell"
)

// Editor is the process-wide container (spec.md ยง3): every view, the
// active view/edit-view/edit-split-root, keymap and macro and command
// registries, the async-proc multiplexer, the tty, screen dimensions,
// macro record/replay state, loop-depth, and exit flag.
type Editor struct {
	Screen tcell.Screen
	W, H   int

	Views          []*View
	Active         *View
	ActiveEdit     *View
	ActiveEditRoot *View
	PromptView     *View

	Kmaps    map[string]*Keymap
	Commands *CommandRegistry
	Macros   map[string]*Macro

	MacroToggleKey Chord
	Recording      bool
	Record         *Macro
	Replay         *Macro
	ReplayIndex    int

	Mux   *Multiplexer
	TTYFd int

	TabWidth   int
	TabToSpace bool
	RelNumbers bool
	NoColors   bool
	ColorCol   int

	KmapInitName string
	SyntaxOverride string
	StartupLine  int

	ExitCode int
	ErrStr   string

	Log *log.Logger

	shouldExit bool
	loopDepth  int
	nextViewID int

	kmapNormal      *Keymap
	kmapPromptInput *Keymap
	kmapPromptYN    *Keymap
	kmapPromptYNA   *Keymap
	kmapPromptOK    *Keymap

	sigDumpRequested atomic.Bool
}

// NewEditor builds an editor around an already-initialized screen and
// the given tty read descriptor (used by the async multiplexer's
// select(), spec.md ยง4.5). Pass ttyFd < 0 in tests that never spawn
// async procs.
func NewEditor(scr tcell.Screen, ttyFd int) *Editor {
	ed := &Editor{
		Screen:     scr,
		Kmaps:      map[string]*Keymap{},
		Commands:   NewCommandRegistry(),
		Macros:     map[string]*Macro{},
		TabWidth:   8,
		TabToSpace: true,
		TTYFd:      ttyFd,
	}
	if ttyFd >= 0 {
		ed.Mux = NewMultiplexer(ttyFd)
	}
	mtk, _ := ParseChord("M-r")
	ed.MacroToggleKey = mtk
	if scr != nil {
		ed.W, ed.H = scr.Size()
	}
	RegisterDefaultCommands(ed.Commands)
	ed.setupDefaultKeymaps()
	return ed
}

// OpenEditView creates a new edit-type view over buf, registers it with
// the editor, and -- if this is the first edit view -- makes it active.
func (ed *Editor) OpenEditView(buf *Buffer) *View {
	v := NewView(buf, ViewEdit)
	v.TabWidth, v.TabToSpace = ed.TabWidth, ed.TabToSpace
	ed.addView(v)
	v.PushKeymap(&KmapNode{Keymap: ed.kmapNormal})
	if ed.ActiveEdit == nil {
		ed.Active = v
		ed.ActiveEdit = v
		ed.ActiveEditRoot = v
	}
	v.Resize(0, 0, ed.W, ed.H-1)
	return v
}

func (ed *Editor) addView(v *View) {
	ed.nextViewID++
	v.ID = ed.nextViewID
	ed.Views = append(ed.Views, v)
}

func (ed *Editor) removeView(v *View) {
	for i, mv := range ed.Views {
		if mv == v {
			ed.Views = append(ed.Views[:i], ed.Views[i+1:]...)
			return
		}
	}
}

// editViews returns every edit-type view currently registered, in
// registration order -- the set next/prev-view navigation walks.
func (ed *Editor) editViews() []*View {
	out := make([]*View, 0, len(ed.Views))
	for _, v := range ed.Views {
		if v.Type == ViewEdit {
			out = append(out, v)
		}
	}
	return out
}

// NextView activates the nearest edit-type view after the active one in
// the circular view list (spec.md ยง4.2 "Next/prev view").
func (ed *Editor) NextView() { ed.stepView(1) }

// PrevView activates the nearest edit-type view before the active one.
func (ed *Editor) PrevView() { ed.stepView(-1) }

func (ed *Editor) stepView(dir int) {
	views := ed.editViews()
	if len(views) == 0 {
		return
	}
	idx := 0
	for i, v := range views {
		if v == ed.ActiveEdit {
			idx = i
			break
		}
	}
	idx = ((idx+dir)%len(views) + len(views)) % len(views)
	next := views[idx]
	ed.Active = next
	ed.ActiveEdit = next
	ed.ActiveEditRoot = splitRootOf(views, next)
}

// splitRootOf finds the top of the split tree containing v by scanning
// every registered view's SplitChild pointer for one that leads to v.
// Views are unidirectionally owned (design note ยง9: no parent pointer),
// so ancestry is found by search rather than by walking up.
func splitRootOf(all []*View, v *View) *View {
	isChildOfSomeone := map[*View]bool{}
	for _, cand := range all {
		cur := cand
		for cur.SplitChild != nil {
			isChildOfSomeone[cur.SplitChild] = true
			cur = cur.SplitChild
		}
	}
	cur := v
	for {
		found := false
		for _, cand := range all {
			if cand.SplitChild == cur {
				cur = cand
				found = true
				break
			}
		}
		if !found {
			return cur
		}
	}
}

// Quit requests the editor exit; it unwinds every active loop context,
// including nested prompt loops.
func (ed *Editor) Quit(code int) {
	ed.ExitCode = code
	ed.shouldExit = true
}

// ShouldExit reports whether Quit has been requested.
func (ed *Editor) ShouldExit() bool { return ed.shouldExit }

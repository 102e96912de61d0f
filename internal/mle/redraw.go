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

// redraw repaints every view reachable from the active edit-split root
// (spec.md ยง4.6: "the active-edit-root pointer ... defines which views
// contribute to the redraw"), plus the prompt line if one is open, and
// positions the terminal cursor on the active view's active cursor.
//
// Rendering is an out-of-scope collaborator per spec.md ยง1 ("referenced
// only as a display target"); this is a minimal concrete renderer, in
// the teacher's Region/RowView style, sufficient to make the engine
// interactively usable.
func (ed *Editor) redraw() {
	if ed.Screen == nil {
		return
	}
	ed.Screen.Clear()

	editH := ed.H
	if ed.PromptView == nil {
		editH = ed.H - 1 // reserve the bottom row for a status message
	} else {
		editH = ed.H - 1
	}
	if ed.ActiveEditRoot != nil {
		ed.ActiveEditRoot.Resize(ed.ActiveEditRoot.X, ed.ActiveEditRoot.Y, ed.W, editH)
		ed.drawViewTree(ed.ActiveEditRoot)
	}

	if ed.PromptView != nil {
		ed.drawPromptLine(ed.PromptView)
	}

	ed.positionCursor()
	ed.Screen.Show()
}

func (ed *Editor) drawViewTree(v *View) {
	ed.drawView(v)
	if v.SplitChild != nil {
		ed.drawViewTree(v.SplitChild)
	}
}

func (ed *Editor) drawView(v *View) {
	v.ScrollIntoView()
	region := ScreenRegion(ed.Screen, v.X, v.Y, v.W, v.H, ed.NoColors)
	style := tcell.StyleDefault

	for row := 0; row < v.H; row++ {
		lineIdx := v.ViewportY + row
		if lineIdx >= v.Buffer.LineCount() {
			continue
		}
		DrawLine(region, row, v.Buffer.Line(lineIdx), v.ViewportX, style)
	}

	reverse := style.Reverse(true)
	for _, rule := range v.Buffer.Rules() {
		if rule.Kind != StyleRange {
			continue
		}
		ed.overlayRange(region, v, rule, reverse)
	}
}

// overlayRange redraws the portion of rule's [Start,End) range visible
// in v's viewport with the reverse style. It works in buffer columns,
// not expanded-tab screen columns, so lines containing tabs render the
// highlight boundary approximately -- acceptable given rendering fidelity
// is explicitly out of this module's scope (spec.md ยง1).
func (ed *Editor) overlayRange(region Region, v *View, rule *StyleRule, style tcell.Style) {
	lo, hi := rule.Start, rule.End
	if hi.Less(lo) {
		lo, hi = hi, lo
	}
	for line := lo.Line; line <= hi.Line; line++ {
		row := line - v.ViewportY
		if row < 0 || row >= v.H {
			continue
		}
		startCol := 0
		if line == lo.Line {
			startCol = lo.Col
		}
		endCol := v.Buffer.lineLen(line)
		if line == hi.Line {
			endCol = hi.Col
		}
		for col := startCol; col < endCol; col++ {
			x := col - v.ViewportX
			if x < 0 || x >= region.W {
				continue
			}
			text := v.Buffer.Line(line)
			runes := []rune(text)
			ch := ' '
			if col < len(runes) {
				ch = runes[col]
			}
			region.SetCell(x, row, style, ch)
		}
	}
}

func (ed *Editor) drawPromptLine(v *View) {
	region := ScreenRegion(ed.Screen, 0, ed.H-1, ed.W, 1, ed.NoColors)
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue)
	line := v.PromptStr + v.Buffer.Get()
	DrawLine(region, 0, line, 0, style)
}

func (ed *Editor) positionCursor() {
	v := ed.Active
	if v == nil {
		return
	}
	if v.Type == ViewPrompt {
		x := len([]rune(v.PromptStr)) + v.ActiveCursor().Mark.Col
		ed.Screen.ShowCursor(x, ed.H-1)
		return
	}
	c := v.ActiveCursor()
	x := v.X + (c.Mark.Col - v.ViewportX)
	y := v.Y + (c.Mark.Line - v.ViewportY)
	ed.Screen.ShowCursor(x, y)
}

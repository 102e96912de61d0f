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

import "strings"

const wordBoundaryBackward = `((?<=\W)\w|^)`
const wordBoundaryForward = `((?<=\w)\W|$)`

// isPrintableInsert reports whether r is one of the code points "insert
// data" accepts: any printable Unicode rune, newline, tab, or a byte in
// 0x20..0x7e (spec.md ยง4.2).
func isPrintableInsert(c Chord) (rune, bool) {
	if c.Special == KeyEnter {
		return '\n', true
	}
	if c.Special == KeyTab {
		return '\t', true
	}
	if c.Ctrl == 'j' {
		return '\n', true
	}
	if c.Special != "" || c.Ctrl != 0 {
		return 0, false
	}
	r := c.Rune
	if r >= 0x20 && r <= 0x7e {
		return r, true
	}
	if r != 0 {
		return r, true
	}
	return 0, false
}

func cmdInsertData(ctx *CommandContext, c *Cursor) error {
	r, ok := isPrintableInsert(ctx.Input)
	if !ok {
		return nil
	}
	c.Mark.Buffer().InsertBeforeMark(c.Mark, string(r))
	return nil
}

// cmdInsertTab rounds the cursor's column up to the next tab stop with
// spaces, or inserts a literal tab, per the owning view's tab_to_space.
func cmdInsertTab(ctx *CommandContext, c *Cursor) error {
	v := ctx.View
	if !v.TabToSpace {
		c.Mark.Buffer().InsertBeforeMark(c.Mark, "\t")
		return nil
	}
	width := v.TabWidth
	if width <= 0 {
		width = 8
	}
	n := width - (c.Mark.Col % width)
	c.Mark.Buffer().InsertBeforeMark(c.Mark, strings.Repeat(" ", n))
	return nil
}

func cmdDeleteBefore(ctx *CommandContext, c *Cursor) error {
	c.Mark.Buffer().DeleteBeforeMark(c.Mark, 1)
	return nil
}

func cmdDeleteAfter(ctx *CommandContext, c *Cursor) error {
	c.Mark.Buffer().DeleteAfterMark(c.Mark, 1)
	return nil
}

func cmdDeleteWordBefore(ctx *CommandContext, c *Cursor) error {
	buf := c.Mark.Buffer()
	off := c.Mark.Offset()
	start := buf.WordStartBefore(off)
	buf.DeleteRange(start, off)
	return nil
}

func cmdDeleteWordAfter(ctx *CommandContext, c *Cursor) error {
	buf := c.Mark.Buffer()
	off := c.Mark.Offset()
	end := buf.WordEndAfter(off)
	buf.DeleteRange(off, end)
	return nil
}

func cmdMoveBOL(ctx *CommandContext, c *Cursor) error {
	c.Mark.MoveBOL()
	ctx.View.ScrollIntoView()
	return nil
}

func cmdMoveEOL(ctx *CommandContext, c *Cursor) error {
	c.Mark.MoveEOL()
	ctx.View.ScrollIntoView()
	return nil
}

func cmdMoveBeginning(ctx *CommandContext, c *Cursor) error {
	c.Mark.MoveBeginning()
	ctx.View.ScrollIntoView()
	return nil
}

func cmdMoveEnd(ctx *CommandContext, c *Cursor) error {
	c.Mark.MoveEnd()
	ctx.View.ScrollIntoView()
	return nil
}

func cmdMoveLeft(ctx *CommandContext, c *Cursor) error {
	c.Mark.MoveBy(-1)
	ctx.View.ScrollIntoView()
	return nil
}

func cmdMoveRight(ctx *CommandContext, c *Cursor) error {
	c.Mark.MoveBy(1)
	ctx.View.ScrollIntoView()
	return nil
}

func cmdMoveUp(ctx *CommandContext, c *Cursor) error {
	c.Mark.MoveVert(-1)
	ctx.View.ScrollIntoView()
	return nil
}

func cmdMoveDown(ctx *CommandContext, c *Cursor) error {
	c.Mark.MoveVert(1)
	ctx.View.ScrollIntoView()
	return nil
}

// cmdPageUp/cmdPageDown move by one viewport height and re-anchor the
// viewport to the new cursor line at top (spec.md ยง4.2).
func cmdPageUp(ctx *CommandContext, c *Cursor) error {
	c.Mark.MoveVert(-ctx.View.H)
	ctx.View.AnchorViewportTop()
	return nil
}

func cmdPageDown(ctx *CommandContext, c *Cursor) error {
	c.Mark.MoveVert(ctx.View.H)
	ctx.View.AnchorViewportTop()
	return nil
}

// cmdMoveToLine prompts for a 1-based line number and centers the
// viewport on it once moved.
func cmdMoveToLine(ctx *CommandContext, c *Cursor) error {
	ans, err := ctx.Editor.Prompt(PromptInput, "move to line: ", nil)
	if err != nil || ans == nil || *ans == "" {
		return err
	}
	line := 0
	for _, r := range *ans {
		if r < '0' || r > '9' {
			return nil
		}
		line = line*10 + int(r-'0')
	}
	c.Mark.MoveTo(line-1, c.Mark.Col)
	ctx.View.CenterOnActiveCursor()
	return nil
}

func cmdMoveByWordPrev(ctx *CommandContext, c *Cursor) error {
	buf := c.Mark.Buffer()
	off := buf.WordStartBefore(c.Mark.Offset())
	line, col := buf.PositionAt(off)
	c.Mark.MoveTo(line, col)
	ctx.View.ScrollIntoView()
	return nil
}

func cmdMoveByWordNext(ctx *CommandContext, c *Cursor) error {
	buf := c.Mark.Buffer()
	off := buf.WordEndAfter(c.Mark.Offset())
	line, col := buf.PositionAt(off)
	c.Mark.MoveTo(line, col)
	ctx.View.ScrollIntoView()
	return nil
}

func cmdToggleSelectionBound(ctx *CommandContext, c *Cursor) error {
	c.ToggleSelectionBound()
	return nil
}

func cmdDropSleepingCursor(ctx *CommandContext, c *Cursor) error {
	ctx.View.AddCursor(c.Mark.Line, c.Mark.Col, true)
	return nil
}

func cmdWakeSleepingCursors(ctx *CommandContext) error {
	ctx.View.WakeSleepingCursors()
	return nil
}

func cmdRemoveExtraCursors(ctx *CommandContext) error {
	ctx.View.RemoveExtraCursors()
	return nil
}

// selectedOrLineRange returns the cursor's current selection range, or
// if unanchored, the full current line including its trailing newline
// (the implicit-whole-line behavior shared by cut/copy/uncut).
func selectedOrLineRange(c *Cursor) (lo, hi int) {
	buf := c.Mark.Buffer()
	if c.HasSelection() {
		a, b := c.SelectionRange()
		return buf.GetOffset(a), buf.GetOffset(b)
	}
	line := c.Mark.Line
	lineStart := buf.offsetOf(line, 0)
	lineEnd := lineStart + buf.lineLen(line)
	if lineEnd < len(buf.data) {
		lineEnd++ // include the trailing newline
	}
	return lineStart, lineEnd
}

func cmdCut(ctx *CommandContext, c *Cursor) error {
	buf := c.Mark.Buffer()
	lo, hi := selectedOrLineRange(c)
	c.CutBuffer = string(buf.data[lo:hi])
	c.clearSelection()
	buf.DeleteRange(lo, hi)
	return nil
}

func cmdCopy(ctx *CommandContext, c *Cursor) error {
	buf := c.Mark.Buffer()
	lo, hi := selectedOrLineRange(c)
	c.CutBuffer = string(buf.data[lo:hi])
	c.clearSelection()
	return nil
}

func cmdUncut(ctx *CommandContext, c *Cursor) error {
	c.Mark.Buffer().InsertBeforeMark(c.Mark, c.CutBuffer)
	return nil
}

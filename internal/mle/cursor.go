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

// Cursor groups an insertion mark, an optional selection-bound mark (and
// its reverse-video styling rule), a per-cursor cut buffer, and a sleep
// flag. Invariant (spec.md ยง3): SelBound != nil iff SelRule != nil, and
// when both are set SelRule is registered with the cursor's buffer.
type Cursor struct {
	view       *View
	Mark       *Mark
	SelBound   *Mark
	SelRule    *StyleRule
	CutBuffer  string
	IsAsleep   bool
}

func newCursor(v *View, m *Mark) *Cursor {
	return &Cursor{view: v, Mark: m}
}

// View returns the view this cursor belongs to.
func (c *Cursor) View() *View { return c.view }

// HasSelection reports whether the cursor currently has an anchored
// selection bound.
func (c *Cursor) HasSelection() bool { return c.SelBound != nil }

// SelectionRange returns the selection's marks in document order. It
// panics if there is no active selection; callers must check
// HasSelection first.
func (c *Cursor) SelectionRange() (lo, hi *Mark) {
	if c.Mark.Less(c.SelBound) {
		return c.Mark, c.SelBound
	}
	return c.SelBound, c.Mark
}

// ToggleSelectionBound implements "toggle selection bound" (spec.md
// ยง4.2): if unanchored, anchors a selection mark at the cursor's current
// position and registers a reverse-video styling rule over the range; if
// anchored, tears both down. Applying it twice is a documented
// idempotence property (spec.md ยง8): the buffer is left with no residual
// rule.
func (c *Cursor) ToggleSelectionBound() {
	buf := c.Mark.Buffer()
	if c.SelBound != nil {
		buf.RemoveStylingRule(c.SelRule)
		buf.DestroyMark(c.SelBound)
		c.SelBound = nil
		c.SelRule = nil
		return
	}
	c.SelBound = c.Mark.Clone()
	lo, hi := c.SelectionRange()
	c.SelRule = buf.AddStylingRule(&StyleRule{
		Kind:    StyleRange,
		Start:   lo,
		End:     hi,
		Reverse: true,
	})
}

// clearSelection tears down an anchored selection without toggling
// (internal helper used once a selection has been consumed, e.g. by cut).
func (c *Cursor) clearSelection() {
	if c.SelBound == nil {
		return
	}
	buf := c.Mark.Buffer()
	buf.RemoveStylingRule(c.SelRule)
	buf.DestroyMark(c.SelBound)
	c.SelBound = nil
	c.SelRule = nil
}

// destroy releases the cursor's marks and styling rule. Callers must
// remove the cursor from its view's cursor list themselves.
func (c *Cursor) destroy() {
	c.clearSelection()
	c.Mark.Buffer().DestroyMark(c.Mark)
}

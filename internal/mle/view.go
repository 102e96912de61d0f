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

// ViewType distinguishes the handful of roles a View can play; only
// edit-type views participate in next/prev navigation and splits.
type ViewType int

const (
	ViewEdit ViewType = iota
	ViewStatus
	ViewPrompt
	ViewPopup
)

// View is a presentation of a Buffer in a screen rectangle: spec.md ยง3.
// It owns its cursors and keymap stack; its buffer is shared (buffers
// ref-count their views).
type View struct {
	ID   int
	Type ViewType

	Buffer *Buffer

	X, Y, W, H int

	ViewportX, ViewportY         int
	ViewportScopeX, ViewportScopeY int
	LineNumWidth                 int

	// Split relation: a view owns at most one child (design note ยง9:
	// unidirectional ownership instead of the original's parent/child
	// raw-pointer cycle). ParentID is a lookup key into the editor's
	// view registry, not a pointer, so closing a child never needs to
	// chase a back-pointer into a possibly-destroyed parent.
	SplitChild    *View
	SplitFactor   float64
	SplitVertical bool
	ParentID      int

	kmapStack []*KmapNode

	cursors      []*Cursor
	activeCursor int // index into cursors

	LastSearch string
	TabWidth   int
	TabToSpace bool
	InitCWD    string

	PromptStr string
}

// NewView creates a view over buf with a single cursor at (0,0) and
// binds the buffer (incrementing its ref count).
func NewView(buf *Buffer, typ ViewType) *View {
	v := &View{
		Type:          typ,
		Buffer:        buf,
		SplitFactor:   0.5,
		TabWidth:      8,
		TabToSpace:    true,
		ViewportScopeX: 0,
		ViewportScopeY: 0,
	}
	buf.Bind()
	c := newCursor(v, buf.AddMark(0, 0))
	v.cursors = []*Cursor{c}
	return v
}

// Cursors returns the view's cursor list; head is the default active
// cursor per spec.md ยง3.
func (v *View) Cursors() []*Cursor { return v.cursors }

// ActiveCursor returns the currently active cursor.
func (v *View) ActiveCursor() *Cursor { return v.cursors[v.activeCursor] }

// SetActiveCursor makes c the active cursor, if it belongs to this view.
func (v *View) SetActiveCursor(c *Cursor) {
	for i, mc := range v.cursors {
		if mc == c {
			v.activeCursor = i
			return
		}
	}
}

// NonSleepingCursors returns a snapshot slice of cursors with IsAsleep
// false, safe to iterate even if a command mutates the cursor list
// (spec.md ยง4.2).
func (v *View) NonSleepingCursors() []*Cursor {
	out := make([]*Cursor, 0, len(v.cursors))
	for _, c := range v.cursors {
		if !c.IsAsleep {
			out = append(out, c)
		}
	}
	return out
}

// AddCursor creates and appends a new cursor at (line, col).
func (v *View) AddCursor(line, col int, asleep bool) *Cursor {
	c := newCursor(v, v.Buffer.AddMark(line, col))
	c.IsAsleep = asleep
	v.cursors = append(v.cursors, c)
	return c
}

// RemoveCursor destroys c and removes it from the view. Per invariant 1
// (spec.md ยง8), removing the active cursor promotes its previous sibling
// (or, lacking one, the next) to active. RemoveCursor is a no-op if v
// would otherwise be left with zero cursors.
func (v *View) RemoveCursor(c *Cursor) {
	if len(v.cursors) <= 1 {
		return
	}
	idx := -1
	for i, mc := range v.cursors {
		if mc == c {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	wasActive := idx == v.activeCursor
	c.destroy()
	v.cursors = append(v.cursors[:idx], v.cursors[idx+1:]...)
	switch {
	case !wasActive && idx < v.activeCursor:
		v.activeCursor--
	case wasActive:
		if idx > 0 {
			v.activeCursor = idx - 1
		} else {
			v.activeCursor = 0
		}
	}
	if v.activeCursor >= len(v.cursors) {
		v.activeCursor = len(v.cursors) - 1
	}
}

// RemoveExtraCursors destroys every cursor but the active one
// ("remove extra cursors" command).
func (v *View) RemoveExtraCursors() {
	active := v.ActiveCursor()
	for _, c := range v.cursors {
		if c != active {
			c.destroy()
		}
	}
	v.cursors = []*Cursor{active}
	v.activeCursor = 0
}

// WakeSleepingCursors clears every cursor's IsAsleep flag.
func (v *View) WakeSleepingCursors() {
	for _, c := range v.cursors {
		c.IsAsleep = false
	}
}

// PushKeymap pushes a keymap node onto the top of the stack (most
// recently pushed wins dispatch priority, spec.md ยง4.1).
func (v *View) PushKeymap(node *KmapNode) {
	v.kmapStack = append(v.kmapStack, node)
}

// PopKeymap pops and returns the topmost keymap node, or nil if the
// stack is empty. Per invariant, a view on screen must never be left
// with an empty stack; callers push a replacement first if needed.
func (v *View) PopKeymap() *KmapNode {
	n := len(v.kmapStack)
	if n == 0 {
		return nil
	}
	top := v.kmapStack[n-1]
	v.kmapStack = v.kmapStack[:n-1]
	return top
}

// KeymapStack returns the stack top-to-bottom (index 0 is the top,
// i.e. dispatched first).
func (v *View) KeymapStack() []*KmapNode {
	rev := make([]*KmapNode, len(v.kmapStack))
	for i := range v.kmapStack {
		rev[i] = v.kmapStack[len(v.kmapStack)-1-i]
	}
	return rev
}

// Resize applies a new geometry and, if this view has a split child,
// recursively resizes it with the remainder (spec.md ยง4.6).
func (v *View) Resize(x, y, w, h int) {
	v.X, v.Y, v.W, v.H = x, y, w, h
	if v.SplitChild == nil {
		return
	}
	if v.SplitVertical {
		cw := int(float64(w) * v.SplitFactor)
		v.SplitChild.Resize(x+cw, y, w-cw, h)
	} else {
		ch := int(float64(h) * v.SplitFactor)
		v.SplitChild.Resize(x, y+ch, w, h-ch)
	}
}

// split is the shared implementation of split-vertical/split-horizontal:
// creates a child view over the same buffer, installs it as SplitChild,
// and resizes the tree.
func (v *View) split(vertical bool, factor float64) *View {
	child := NewView(v.Buffer, ViewEdit)
	child.TabWidth, child.TabToSpace = v.TabWidth, v.TabToSpace
	child.InitCWD = v.InitCWD
	child.ParentID = v.ID
	v.SplitChild = child
	v.SplitVertical = vertical
	v.SplitFactor = factor
	v.Resize(v.X, v.Y, v.W, v.H)
	return child
}

// SplitVerticalView splits v into a left/right pair, default factor 0.5.
func (v *View) SplitVerticalView() *View { return v.split(true, 0.5) }

// SplitHorizontalView splits v into a top/bottom pair, default factor 0.5.
func (v *View) SplitHorizontalView() *View { return v.split(false, 0.5) }

// Unsplit removes v's split child; the parent takes back the full area
// ("closing a split child promotes nothing", spec.md ยง4.6). It does not
// by itself unbind the child's buffer or destroy descendants further
// down the tree -- cascading closure is the editor's job since it must
// also drop the closed views from its global registry.
func (v *View) Unsplit() {
	v.SplitChild = nil
	v.Resize(v.X, v.Y, v.W, v.H)
}

// ScrollIntoView rectifies the viewport so the active cursor stays
// within [ViewportScopeY, H-1-ViewportScopeY] vertically and the
// equivalent horizontal band, scrolling the minimum necessary amount.
func (v *View) ScrollIntoView() {
	c := v.ActiveCursor()
	line, col := c.Mark.Line, c.Mark.Col

	top := v.ViewportScopeY
	bottom := v.H - 1 - v.ViewportScopeY
	if bottom < top {
		bottom = top
	}
	if line < v.ViewportY+top {
		v.ViewportY = line - top
	} else if line > v.ViewportY+bottom {
		v.ViewportY = line - bottom
	}
	if v.ViewportY < 0 {
		v.ViewportY = 0
	}

	left := v.ViewportScopeX
	right := v.W - 1 - v.LineNumWidth - v.ViewportScopeX
	if right < left {
		right = left
	}
	if col < v.ViewportX+left {
		v.ViewportX = col - left
	} else if col > v.ViewportX+right {
		v.ViewportX = col - right
	}
	if v.ViewportX < 0 {
		v.ViewportX = 0
	}
}

// AnchorViewportTop re-anchors the viewport so the active cursor's line
// sits at the very top of the viewport (used by page up/down).
func (v *View) AnchorViewportTop() {
	v.ViewportY = v.ActiveCursor().Mark.Line
	if v.ViewportY < 0 {
		v.ViewportY = 0
	}
}

// CenterOnActiveCursor re-anchors the viewport so the active cursor's
// line is vertically centered (used by move-to-line).
func (v *View) CenterOnActiveCursor() {
	half := v.H / 2
	v.ViewportY = v.ActiveCursor().Mark.Line - half
	if v.ViewportY < 0 {
		v.ViewportY = 0
	}
}

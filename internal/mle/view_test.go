package mle

import "testing"

func TestViewRemoveCursorPromotesPreviousSibling(t *testing.T) {
	buf := NewBuffer("abc\ndef\nghi\n")
	v := NewView(buf, ViewEdit)
	c1 := v.ActiveCursor()
	c2 := v.AddCursor(1, 0, false)
	c3 := v.AddCursor(2, 0, false)
	v.SetActiveCursor(c2)

	v.RemoveCursor(c2)

	if v.ActiveCursor() != c1 {
		t.Fatalf("expected previous sibling %v promoted active, got %v", c1, v.ActiveCursor())
	}
	if len(v.Cursors()) != 2 {
		t.Fatalf("expected 2 cursors remaining, got %d", len(v.Cursors()))
	}
	_ = c3
}

func TestViewRemoveCursorNeverEmptiesList(t *testing.T) {
	buf := NewBuffer("abc")
	v := NewView(buf, ViewEdit)
	only := v.ActiveCursor()
	v.RemoveCursor(only)
	if len(v.Cursors()) != 1 {
		t.Fatalf("expected the lone cursor to survive, got %d cursors", len(v.Cursors()))
	}
}

func TestViewSplitThenUnsplitRestoresGeometry(t *testing.T) {
	buf := NewBuffer("")
	v := NewView(buf, ViewEdit)
	v.Resize(0, 0, 80, 24)
	x, y, w, h := v.X, v.Y, v.W, v.H

	v.SplitVerticalView()
	v.Unsplit()

	if v.X != x || v.Y != y || v.W != w || v.H != h {
		t.Fatalf("geometry not restored: got (%d,%d,%d,%d), want (%d,%d,%d,%d)", v.X, v.Y, v.W, v.H, x, y, w, h)
	}
}

func TestViewNonSleepingCursorsSnapshot(t *testing.T) {
	buf := NewBuffer("abc\ndef\n")
	v := NewView(buf, ViewEdit)
	v.AddCursor(1, 0, true)

	snap := v.NonSleepingCursors()
	if len(snap) != 1 {
		t.Fatalf("expected 1 non-sleeping cursor, got %d", len(snap))
	}

	v.WakeSleepingCursors()
	if len(snap) != 1 {
		t.Fatalf("snapshot mutated after WakeSleepingCursors: %d", len(snap))
	}
	if len(v.NonSleepingCursors()) != 2 {
		t.Fatalf("expected 2 non-sleeping cursors after waking, got %d", len(v.NonSleepingCursors()))
	}
}

func TestCursorToggleSelectionBoundIsIdempotent(t *testing.T) {
	buf := NewBuffer("abcdef")
	v := NewView(buf, ViewEdit)
	c := v.ActiveCursor()
	c.Mark.MoveTo(0, 3)

	c.ToggleSelectionBound()
	if !c.HasSelection() {
		t.Fatal("expected a selection after first toggle")
	}
	rule := c.SelRule
	if !buf.HasRule(rule) {
		t.Fatal("expected selection rule registered")
	}

	c.ToggleSelectionBound()
	if c.HasSelection() {
		t.Fatal("expected no selection after second toggle")
	}
	if buf.HasRule(rule) {
		t.Fatal("expected no residual rule after toggling twice")
	}
}

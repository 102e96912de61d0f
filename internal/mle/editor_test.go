package mle

import "testing"

// Scenario 1 (spec.md ยง8): tab expansion.
func TestScenarioTabExpansion(t *testing.T) {
	buf := NewBuffer("")
	v := NewView(buf, ViewEdit)
	v.TabToSpace = true
	v.TabWidth = 4

	ctx := &CommandContext{View: v}
	if err := perCursor(cmdInsertTab)(ctx); err != nil {
		t.Fatal(err)
	}
	if buf.Get() != "    " {
		t.Fatalf("Get() = %q, want 4 spaces", buf.Get())
	}
	c := v.ActiveCursor()
	if c.Mark.Line != 0 || c.Mark.Col != 4 {
		t.Fatalf("cursor at (%d,%d), want (0,4)", c.Mark.Line, c.Mark.Col)
	}
}

// Scenario 2: multi-cursor insert.
func TestScenarioMultiCursorInsert(t *testing.T) {
	buf := NewBuffer("abc\ndef\n")
	v := NewView(buf, ViewEdit)
	v.AddCursor(1, 0, true)

	ctx := &CommandContext{View: v}
	if err := cmdWakeSleepingCursors(ctx); err != nil {
		t.Fatal(err)
	}
	insertX := perCursor(func(ctx *CommandContext, c *Cursor) error {
		ctx.Input = Chord{Rune: 'X'}
		return cmdInsertData(ctx, c)
	})
	if err := insertX(ctx); err != nil {
		t.Fatal(err)
	}

	if got := buf.Get(); got != "Xabc\nXdef\n" {
		t.Fatalf("Get() = %q, want %q", got, "Xabc\nXdef\n")
	}
	for _, c := range v.Cursors() {
		if c.Mark.Col != 1 {
			t.Fatalf("cursor %+v at col %d, want 1", c, c.Mark.Col)
		}
	}
}

// Scenario 3: search wrap.
func TestScenarioSearchWrap(t *testing.T) {
	buf := NewBuffer("foo bar foo")
	v := NewView(buf, ViewEdit)
	v.ActiveCursor().Mark.MoveTo(0, 9)

	if err := searchAdvance(v, "foo"); err != nil {
		t.Fatal(err)
	}
	v.LastSearch = "foo"

	c := v.ActiveCursor()
	if c.Mark.Line != 0 || c.Mark.Col != 0 {
		t.Fatalf("cursor at (%d,%d), want (0,0)", c.Mark.Line, c.Mark.Col)
	}
	if v.LastSearch != "foo" {
		t.Fatalf("last_search = %q, want %q", v.LastSearch, "foo")
	}
}

// Scenario 4: replace one, answers y, n, n.
func TestScenarioReplaceOne(t *testing.T) {
	buf := NewBuffer("aaa")
	v := NewView(buf, ViewEdit)
	v.ActiveCursor().Mark.MoveTo(0, 0)

	answers := []string{"y", "n", "n"}
	i := 0
	askYN := func() (*string, error) {
		if i >= len(answers) {
			a := "n"
			return &a, nil
		}
		a := answers[i]
		i++
		return &a, nil
	}

	if err := runReplace(v, "a", "b", askYN); err != nil {
		t.Fatal(err)
	}
	if got := buf.Get(); got != "baa" {
		t.Fatalf("Get() = %q, want %q", got, "baa")
	}
}

// Scenario 5: cut/uncut line.
func TestScenarioCutUncutLine(t *testing.T) {
	buf := NewBuffer("one\ntwo\nthree\n")
	v := NewView(buf, ViewEdit)
	c := v.ActiveCursor()
	c.Mark.MoveTo(1, 1)

	ctx := &CommandContext{View: v}
	if err := perCursor(cmdCut)(ctx); err != nil {
		t.Fatal(err)
	}
	if got := buf.Get(); got != "one\nthree\n" {
		t.Fatalf("after cut, Get() = %q", got)
	}

	c.Mark.MoveTo(0, 0)
	if err := perCursor(cmdUncut)(ctx); err != nil {
		t.Fatal(err)
	}
	if got := buf.Get(); got != "two\none\nthree\n" {
		t.Fatalf("after uncut, Get() = %q, want %q", got, "two\none\nthree\n")
	}
}

// Scenario 6 (async priority) has no test in this suite.
// asyncproc_test.go drives the real select()-based multiplexer pass
// directly, but it does not measure key-dispatch latency.

package mle

import "testing"

func TestPerCursorAppliesToEveryNonSleepingCursorOnSnapshot(t *testing.T) {
	buf := NewBuffer("abc\ndef\n")
	v := NewView(buf, ViewEdit)
	v.AddCursor(1, 0, false)

	fn := perCursor(func(ctx *CommandContext, c *Cursor) error {
		c.Mark.Buffer().InsertBeforeMark(c.Mark, "X")
		return nil
	})
	ctx := &CommandContext{View: v}
	if err := fn(ctx); err != nil {
		t.Fatal(err)
	}
	if got := buf.Get(); got != "Xabc\nXdef\n" {
		t.Fatalf("Get() = %q", got)
	}
}

func TestOnActiveTouchesOnlyActiveCursor(t *testing.T) {
	buf := NewBuffer("abc\ndef\n")
	v := NewView(buf, ViewEdit)
	v.AddCursor(1, 0, false)

	calls := 0
	fn := onActive(func(ctx *CommandContext, c *Cursor) error {
		calls++
		return nil
	})
	ctx := &CommandContext{View: v}
	if err := fn(ctx); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one invocation, got %d", calls)
	}
}

func TestInvokeLogsButDoesNotAbortOnFailure(t *testing.T) {
	ed := &Editor{Commands: NewCommandRegistry()}
	ed.Commands.Register("fails", func(ctx *CommandContext) error { return errFake })

	buf := NewBuffer("")
	v := NewView(buf, ViewEdit)
	b := &Binding{CmdName: "fails"}

	// Must not panic; failure is swallowed per spec.md's propagation policy.
	ed.Invoke(b, v, Chord{}, &LoopContext{})
}

var errFake = fakeErr("boom")

type fakeErr string

func (e fakeErr) Error() string { return string(e) }

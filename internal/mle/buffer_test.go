package mle

import "testing"

func TestBufferInsertAndFixup(t *testing.T) {
	b := NewBuffer("abc\ndef\n")
	m := b.AddMark(1, 0) // start of "def"
	b.Insert(0, "XY")
	if got := b.Get(); got != "XYabc\ndef\n" {
		t.Fatalf("Get() = %q", got)
	}
	if m.Line != 1 || m.Col != 0 {
		t.Fatalf("mark fixup: got (%d,%d), want (1,0)", m.Line, m.Col)
	}
}

func TestBufferInsertBeforeMarkAdvances(t *testing.T) {
	b := NewBuffer("ac")
	m := b.AddMark(0, 1)
	b.InsertBeforeMark(m, "b")
	if b.Get() != "abc" {
		t.Fatalf("Get() = %q", b.Get())
	}
	if m.Line != 0 || m.Col != 2 {
		t.Fatalf("mark after insert: got (%d,%d), want (0,2)", m.Line, m.Col)
	}
}

func TestBufferDeleteBeforeMarkAtStartNoop(t *testing.T) {
	b := NewBuffer("abc")
	m := b.AddMark(0, 0)
	b.DeleteBeforeMark(m, 1)
	if b.Get() != "abc" {
		t.Fatalf("expected no-op delete at buffer start, got %q", b.Get())
	}
}

func TestBufferDeleteAfterMarkAtEndNoop(t *testing.T) {
	b := NewBuffer("abc")
	m := b.AddMark(0, 3)
	b.DeleteAfterMark(m, 1)
	if b.Get() != "abc" {
		t.Fatalf("expected no-op delete at buffer end, got %q", b.Get())
	}
}

func TestBufferWordBoundaries(t *testing.T) {
	b := NewBuffer("foo bar baz")
	// offset 8 sits exactly at the start of "baz"; stepping one word back
	// skips the separating space and lands on the start of "bar".
	if got := b.WordStartBefore(8); got != 4 {
		t.Fatalf("WordStartBefore(8) = %d, want 4", got)
	}
	// offset 5 is inside "bar"; start should land on 4
	if got := b.WordStartBefore(5); got != 4 {
		t.Fatalf("WordStartBefore(5) = %d, want 4", got)
	}
	if got := b.WordEndAfter(4); got != 7 {
		t.Fatalf("WordEndAfter(4) = %d, want 7", got)
	}
}

func TestBufferSearchWrap(t *testing.T) {
	b := NewBuffer("foo bar foo")
	m := b.AddMark(0, 9)
	if !m.MoveToNextMatch("foo", true) {
		t.Fatal("expected a wrapped match")
	}
	if m.Line != 0 || m.Col != 0 {
		t.Fatalf("search wrap landed at (%d,%d), want (0,0)", m.Line, m.Col)
	}
}

func TestBufferStylingRuleRoundTrip(t *testing.T) {
	b := NewBuffer("abcdef")
	a := b.AddMark(0, 1)
	c := b.AddMark(0, 3)
	rule := b.AddStylingRule(&StyleRule{Kind: StyleRange, Start: a, End: c})
	if !b.HasRule(rule) {
		t.Fatal("expected rule to be registered")
	}
	b.RemoveStylingRule(rule)
	if b.HasRule(rule) {
		t.Fatal("expected rule to be unregistered")
	}
}

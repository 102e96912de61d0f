package mle

import "testing"

func TestParseChordGrammar(t *testing.T) {
	tests := []struct {
		in   string
		want Chord
	}{
		{"a", Chord{Rune: 'a'}},
		{"M-a", Chord{Alt: true, Rune: 'a'}},
		{"C-a", Chord{Ctrl: 'a'}},
		{"enter", Chord{Special: KeyEnter}},
		{"M-r", Chord{Alt: true, Rune: 'r'}},
	}
	for _, tt := range tests {
		got, err := ParseChord(tt.in)
		if tt.in == "M-r" {
			if err != nil || !got.Alt || got.Rune != 'r' {
				t.Fatalf("ParseChord(%q) = %+v, %v", tt.in, got, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseChord(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseChord(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseChordRejectsGarbage(t *testing.T) {
	if _, err := ParseChord("C-1"); err == nil {
		t.Fatal("expected an error for C-1 (not a letter)")
	}
}

func newTestRegistry() *CommandRegistry {
	reg := NewCommandRegistry()
	reg.Register("noop", func(ctx *CommandContext) error { return nil })
	return reg
}

func TestDispatchExactMatchWins(t *testing.T) {
	reg := newTestRegistry()
	km := NewKeymap("k", "", false)
	chord, _ := ParseChord("a")
	km.Bind(chord, "noop", nil)

	buf := NewBuffer("")
	v := NewView(buf, ViewEdit)
	v.PushKeymap(&KmapNode{Keymap: km})

	b, ok := Dispatch(v, chord, reg)
	if !ok || b.CmdName != "noop" {
		t.Fatalf("expected exact match to resolve noop, got %+v, %v", b, ok)
	}
}

func TestDispatchFallsThroughToDefaultThenStack(t *testing.T) {
	reg := newTestRegistry()
	reg.Register("fallback", func(ctx *CommandContext) error { return nil })

	top := NewKeymap("top", "", true) // no default, allows fallthrough
	bottom := NewKeymap("bottom", "fallback", false)

	buf := NewBuffer("")
	v := NewView(buf, ViewEdit)
	v.PushKeymap(&KmapNode{Keymap: bottom})
	v.PushKeymap(&KmapNode{Keymap: top})

	chord, _ := ParseChord("z") // bound nowhere
	b, ok := Dispatch(v, chord, reg)
	if !ok || b.CmdName != "fallback" {
		t.Fatalf("expected fallthrough to bottom's default, got %+v, %v", b, ok)
	}
}

func TestDispatchStopsWithoutFallthrough(t *testing.T) {
	reg := newTestRegistry()
	reg.Register("fallback", func(ctx *CommandContext) error { return nil })

	top := NewKeymap("top", "", false) // no default, NO fallthrough
	bottom := NewKeymap("bottom", "fallback", false)

	buf := NewBuffer("")
	v := NewView(buf, ViewEdit)
	v.PushKeymap(&KmapNode{Keymap: bottom})
	v.PushKeymap(&KmapNode{Keymap: top})

	chord, _ := ParseChord("z")
	_, ok := Dispatch(v, chord, reg)
	if ok {
		t.Fatal("expected dispatch to fail without fallthrough")
	}
}

func TestDispatchUnresolvedExactMatchTriesFallthroughNotOwnDefault(t *testing.T) {
	reg := newTestRegistry()
	reg.Register("fallback", func(ctx *CommandContext) error { return nil })

	top := NewKeymap("top", "own_default_unregistered", true)
	chord, _ := ParseChord("z")
	top.Bind(chord, "exact_unregistered", nil)
	bottom := NewKeymap("bottom", "fallback", false)

	buf := NewBuffer("")
	v := NewView(buf, ViewEdit)
	v.PushKeymap(&KmapNode{Keymap: bottom})
	v.PushKeymap(&KmapNode{Keymap: top})

	b, ok := Dispatch(v, chord, reg)
	if !ok || b.CmdName != "fallback" {
		t.Fatalf("expected an unresolved exact match to skip straight to fallthrough, got %+v, %v", b, ok)
	}
}

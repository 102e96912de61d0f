package mle

import (
	"testing"

	"github.com/kylelemons/godebug/pretty"
)

func newTestEditor() *Editor {
	ed := &Editor{
		Kmaps:    map[string]*Keymap{},
		Commands: NewCommandRegistry(),
		Macros:   map[string]*Macro{},
	}
	RegisterDefaultCommands(ed.Commands)
	ed.setupDefaultKeymaps()
	return ed
}

// TestMacroToggleTrimsTrailingToggleKey drives the stop-recording half
// of handleMacroToggle for real (the start half goes through Prompt,
// which blocks on the event loop and needs a live Screen -- out of
// scope for this unit test) and checks the committed macro against the
// expected input sequence with pretty.Compare so a mismatch prints a
// readable diff instead of just "not equal".
func TestMacroToggleTrimsTrailingToggleKey(t *testing.T) {
	ed := newTestEditor()
	a, _ := ParseChord("a")
	b, _ := ParseChord("b")
	toggle, _ := ParseChord("M-r")

	ed.Record = &Macro{Name: "m"}
	ed.Recording = true
	ed.Record.Inputs = append(ed.Record.Inputs, a, b, toggle)
	ed.handleMacroToggle() // stop recording: should trim the trailing toggle key

	got := ed.Macros["m"]
	want := &Macro{Name: "m", Inputs: []Chord{a, b}}
	if diff := pretty.Compare(got, want); diff != "" {
		t.Fatalf("committed macro mismatch (-got +want):\n%s", diff)
	}
	if ed.Recording || ed.Record != nil {
		t.Fatalf("expected recording to have stopped, got Recording=%v Record=%+v", ed.Recording, ed.Record)
	}
}

func TestApplyMacroDisallowedWhileReplaying(t *testing.T) {
	ed := newTestEditor()
	ed.Macros["m"] = &Macro{Name: "m", Inputs: []Chord{{Rune: 'x'}}}
	if err := ed.ApplyMacro("m"); err != nil {
		t.Fatal(err)
	}
	if err := ed.ApplyMacro("m"); err == nil {
		t.Fatal("expected an error applying a macro while one is already replaying")
	}
}

func TestNextReplayInputClearsAtExhaustion(t *testing.T) {
	ed := newTestEditor()
	x, _ := ParseChord("x")
	y, _ := ParseChord("y")
	ed.Replay = &Macro{Inputs: []Chord{x, y}}

	c, ok := ed.nextReplayInput()
	if !ok || c != x {
		t.Fatalf("step 1: got %+v, %v", c, ok)
	}
	if ed.Replay == nil {
		t.Fatal("replay source should survive after its first input")
	}
	c, ok = ed.nextReplayInput()
	if !ok || c != y {
		t.Fatalf("step 2: got %+v, %v", c, ok)
	}
	if ed.Replay != nil {
		t.Fatal("replay source should be cleared once its last input is consumed")
	}
	if _, ok := ed.nextReplayInput(); ok {
		t.Fatal("expected no further replay input")
	}
}

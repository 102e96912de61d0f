package mle

import "testing"

func TestPromptRejectsNesting(t *testing.T) {
	ed := newTestEditor()
	dummy := NewView(NewBuffer(""), ViewPrompt)
	ed.PromptView = dummy

	if _, err := ed.Prompt(PromptInput, "x", nil); err == nil {
		t.Fatal("expected an error opening a prompt while one is already open")
	}
}

func TestPromptSubmitSetsAnswerAndExits(t *testing.T) {
	loop := &LoopContext{}
	fn := promptSubmit("y")
	ctx := &CommandContext{Loop: loop}
	if err := fn(ctx); err != nil {
		t.Fatal(err)
	}
	if !loop.ShouldExit || loop.Answer == nil || *loop.Answer != "y" {
		t.Fatalf("loop = %+v", loop)
	}
}

func TestPromptCancelClearsAnswer(t *testing.T) {
	loop := &LoopContext{}
	ctx := &CommandContext{Loop: loop}
	if err := promptCancel(ctx); err != nil {
		t.Fatal(err)
	}
	if !loop.ShouldExit || loop.Answer != nil {
		t.Fatalf("loop = %+v", loop)
	}
}

// TestPromptKeymapsEndInInsertOrCancel checks invariant 4 of spec.md ยง8
// against the built-in prompt keymaps: every one either defaults to an
// insert (the free-text input keymap falls through to normal's
// insert_data default) or explicitly binds Ctrl-C to cancel.
func TestPromptKeymapsEndInInsertOrCancel(t *testing.T) {
	ed := newTestEditor()
	cancel, _ := ParseChord("C-c")

	for _, km := range []*Keymap{ed.kmapPromptInput, ed.kmapPromptYN, ed.kmapPromptYNA, ed.kmapPromptOK} {
		if _, ok := km.Lookup(cancel); !ok {
			t.Fatalf("keymap %q has no explicit cancel binding", km.Name)
		}
	}
	if ed.kmapNormal.Default == nil || ed.kmapNormal.Default.CmdName != "insert_data" {
		t.Fatal("normal keymap must default to insert_data for prompt-input fallthrough to work")
	}
	if !ed.kmapPromptInput.AllowFallthrough {
		t.Fatal("prompt-input keymap must allow fallthrough to reach normal's insert default")
	}
}

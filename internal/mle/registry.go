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

// RegisterDefaultCommands populates reg with every canonical command
// named in spec.md ยง4.2, wrapped with the per-cursor or active-cursor
// semantics each one requires.
func RegisterDefaultCommands(reg *CommandRegistry) {
	reg.Register("insert_data", perCursor(cmdInsertData))
	reg.Register("insert_tab", perCursor(cmdInsertTab))
	reg.Register("delete_before", perCursor(cmdDeleteBefore))
	reg.Register("delete_after", perCursor(cmdDeleteAfter))
	reg.Register("delete_word_before", perCursor(cmdDeleteWordBefore))
	reg.Register("delete_word_after", perCursor(cmdDeleteWordAfter))

	reg.Register("move_bol", perCursor(cmdMoveBOL))
	reg.Register("move_eol", perCursor(cmdMoveEOL))
	reg.Register("move_beginning", perCursor(cmdMoveBeginning))
	reg.Register("move_end", perCursor(cmdMoveEnd))
	reg.Register("move_left", perCursor(cmdMoveLeft))
	reg.Register("move_right", perCursor(cmdMoveRight))
	reg.Register("move_up", perCursor(cmdMoveUp))
	reg.Register("move_down", perCursor(cmdMoveDown))
	reg.Register("move_page_up", perCursor(cmdPageUp))
	reg.Register("move_page_down", perCursor(cmdPageDown))
	reg.Register("move_to_line", onActive(cmdMoveToLine))
	reg.Register("move_by_word_prev", perCursor(cmdMoveByWordPrev))
	reg.Register("move_by_word_next", perCursor(cmdMoveByWordNext))

	reg.Register("toggle_selection_bound", perCursor(cmdToggleSelectionBound))
	reg.Register("drop_sleeping_cursor", perCursor(cmdDropSleepingCursor))
	reg.Register("wake_sleeping_cursors", cmdWakeSleepingCursors)
	reg.Register("remove_extra_cursors", cmdRemoveExtraCursors)

	reg.Register("cut", perCursor(cmdCut))
	reg.Register("copy", perCursor(cmdCopy))
	reg.Register("uncut", perCursor(cmdUncut))

	reg.Register("search", cmdSearch)
	reg.Register("search_next", cmdSearchNext)
	reg.Register("replace", cmdReplace)

	reg.Register("split_vertical", onActive(cmdSplitVertical))
	reg.Register("split_horizontal", onActive(cmdSplitHorizontal))
	reg.Register("next_view", onActive(cmdNextView))
	reg.Register("prev_view", onActive(cmdPrevView))

	reg.Register("save", onActive(cmdSave))
	reg.Register("open", onActive(cmdOpen))
	reg.Register("replace_file", onActive(cmdReplaceFile))
	reg.Register("close", onActive(cmdClose))
	reg.Register("quit", onActive(cmdQuit))

	reg.Register("apply_macro", cmdApplyMacro)

	reg.Register("prompt_submit_buffer", promptSubmitBuffer)
	reg.Register("prompt_submit_y", promptSubmit("y"))
	reg.Register("prompt_submit_n", promptSubmit("n"))
	reg.Register("prompt_submit_a", promptSubmit("a"))
	reg.Register("prompt_submit_ok", promptSubmit("ok"))
	reg.Register("prompt_cancel", promptCancel)
}

// setupDefaultKeymaps builds the normal keymap and the four built-in
// prompt keymaps (spec.md ยง4.4), wiring the fallthrough relationship
// described in ยง4.1's rationale: the input-prompt keymap has no default
// of its own and allows fallthrough, so an unbound key (ordinary text)
// falls through to the normal keymap's default insert_data binding.
func (ed *Editor) setupDefaultKeymaps() {
	normal := NewKeymap("normal", "insert_data", false)
	bind := func(s string, cmd string) {
		c, err := ParseChord(s)
		if err != nil {
			panic(err) // programmer error: malformed built-in binding
		}
		normal.Bind(c, cmd, nil)
	}
	bind("left", "move_left")
	bind("right", "move_right")
	bind("up", "move_up")
	bind("down", "move_down")
	bind("home", "move_bol")
	bind("end", "move_eol")
	bind("page-up", "move_page_up")
	bind("page-down", "move_page_down")
	bind("backspace", "delete_before")
	bind("backspace2", "delete_before")
	bind("delete", "delete_after")
	bind("enter", "insert_data")
	bind("tab", "insert_tab")
	bind("C-a", "move_bol")
	bind("C-e", "move_eol")
	bind("C-w", "delete_word_before")
	bind("C-k", "cut")
	bind("C-y", "uncut")
	bind("C-c", "copy")
	bind("C-f", "search")
	bind("C-g", "search_next")
	bind("C-l", "replace")
	bind("C-s", "save")
	bind("C-o", "open")
	bind("C-x", "close")
	bind("C-q", "quit")
	bind("C-p", "toggle_selection_bound")
	bind("C-n", "next_view")
	bind("M-2", "split_horizontal")
	bind("M-3", "split_vertical")
	ed.kmapNormal = normal

	input := NewKeymap("prompt_input", "", true)
	inputEnter, _ := ParseChord("enter")
	input.Bind(inputEnter, "prompt_submit_buffer", nil)
	inputCancel, _ := ParseChord("C-c")
	input.Bind(inputCancel, "prompt_cancel", nil)
	ed.kmapPromptInput = input

	yn := NewKeymap("prompt_yn", "", false)
	yChord, _ := ParseChord("y")
	yn.Bind(yChord, "prompt_submit_y", nil)
	nChord, _ := ParseChord("n")
	yn.Bind(nChord, "prompt_submit_n", nil)
	ynCancel, _ := ParseChord("C-c")
	yn.Bind(ynCancel, "prompt_cancel", nil)
	ed.kmapPromptYN = yn

	yna := NewKeymap("prompt_yna", "", false)
	yna.Bind(yChord, "prompt_submit_y", nil)
	yna.Bind(nChord, "prompt_submit_n", nil)
	aChord, _ := ParseChord("a")
	yna.Bind(aChord, "prompt_submit_a", nil)
	yna.Bind(ynCancel, "prompt_cancel", nil)
	ed.kmapPromptYNA = yna

	ok := NewKeymap("prompt_ok", "prompt_submit_ok", false)
	okCancel, _ := ParseChord("C-c")
	ok.Bind(okCancel, "prompt_cancel", nil)
	ed.kmapPromptOK = ok
}

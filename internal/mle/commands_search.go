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

import "regexp"

// cmdSearch prompts for a regex, advances every active cursor to its
// next match (wrapping once), and remembers it as the view's
// last_search (spec.md ยง4.2).
func cmdSearch(ctx *CommandContext) error {
	pattern, err := ctx.Editor.Prompt(PromptInput, "search: ", nil)
	if err != nil || pattern == nil || *pattern == "" {
		return err
	}
	ctx.View.LastSearch = *pattern
	return searchAdvance(ctx.View, *pattern)
}

// cmdSearchNext replays the view's last_search, if any.
func cmdSearchNext(ctx *CommandContext) error {
	if ctx.View.LastSearch == "" {
		return nil
	}
	return searchAdvance(ctx.View, ctx.View.LastSearch)
}

func searchAdvance(v *View, pattern string) error {
	for _, c := range v.NonSleepingCursors() {
		line, col := c.Mark.Line, c.Mark.Col
		c.Mark.MoveBy(1) // step off a match that starts at the cursor
		if !c.Mark.MoveToNextMatch(pattern, true) {
			c.Mark.MoveTo(line, col)
		}
	}
	v.ScrollIntoView()
	return nil
}

// cmdReplace prompts for a search regex and a replacement, then walks
// matches one at a time from the active cursor, prompting yes/no/cancel
// per match via the yn keymap (spec.md ยง4.2). Stops on cancel or once a
// second wrap would occur.
func cmdReplace(ctx *CommandContext) error {
	ed := ctx.Editor
	pattern, err := ed.Prompt(PromptInput, "replace: ", nil)
	if err != nil || pattern == nil || *pattern == "" {
		return err
	}
	replacement, err := ed.Prompt(PromptInput, "replace with: ", nil)
	if err != nil || replacement == nil {
		return err
	}
	return runReplace(ctx.View, *pattern, *replacement, func() (*string, error) {
		return ed.Prompt(PromptYesNo, "replace? (y/n): ", nil)
	})
}

// runReplace is cmdReplace's matching/prompting loop, factored out so
// it can be driven by a canned askYN sequence in tests without going
// through the full prompt event loop.
func runReplace(v *View, pattern, replacement string, askYN func() (*string, error)) error {
	c := v.ActiveCursor()
	buf := c.Mark.Buffer()
	wrapped := false

	// origin is a real Mark (not a bare offset) so it gets the same
	// insert/delete fixup as every other mark as matches are replaced;
	// once a wrapped search reaches or passes it, the whole buffer has
	// been covered exactly once and the walk stops (spec.md ยง4.2
	// "Stop ... when a second wrap would occur").
	origin := buf.AddMark(c.Mark.Line, c.Mark.Col)
	defer buf.DestroyMark(origin)

	for {
		found := c.Mark.MoveToNextMatch(pattern, false)
		if !found {
			if wrapped {
				return nil
			}
			wrapped = true
			c.Mark.MoveBeginning()
			if !c.Mark.MoveToNextMatch(pattern, false) {
				return nil
			}
		}
		if wrapped && !c.Mark.Less(origin) {
			return nil
		}
		matchOff := c.Mark.Offset()

		matchLen := matchLength(buf, matchOff, pattern)
		endLine, endCol := buf.PositionAt(matchOff + matchLen)
		endMark := buf.AddMark(endLine, endCol)
		rule := buf.AddStylingRule(&StyleRule{Kind: StyleRange, Start: c.Mark, End: endMark, Reverse: true})

		v.ScrollIntoView()
		ans, err := askYN()

		buf.RemoveStylingRule(rule)
		buf.DestroyMark(endMark)

		if err != nil {
			return err
		}
		if ans == nil {
			return nil // Ctrl-C cancel
		}
		if *ans == "y" {
			buf.DeleteRange(matchOff, matchOff+matchLen)
			buf.InsertBeforeMark(c.Mark, replacement)
		} else {
			c.Mark.MoveBy(1)
		}
	}
}

// matchLength re-finds the match at exactly matchOff to recover its
// length, since MoveToNextMatch only reports the match start.
func matchLength(buf *Buffer, matchOff int, pattern string) int {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return 0
	}
	suffix := string(buf.data[matchOff:])
	loc := re.FindStringIndex(suffix)
	if loc == nil || loc[0] != 0 {
		return 0
	}
	return len([]rune(suffix[:loc[1]]))
}

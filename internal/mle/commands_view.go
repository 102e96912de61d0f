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

import "fmt"

func cmdSplitVertical(ctx *CommandContext, c *Cursor) error {
	v := ctx.View
	child := v.SplitVerticalView()
	ctx.Editor.addView(child)
	child.PushKeymap(&KmapNode{Keymap: ctx.Editor.kmapNormal})
	return nil
}

func cmdSplitHorizontal(ctx *CommandContext, c *Cursor) error {
	v := ctx.View
	child := v.SplitHorizontalView()
	ctx.Editor.addView(child)
	child.PushKeymap(&KmapNode{Keymap: ctx.Editor.kmapNormal})
	return nil
}

func cmdNextView(ctx *CommandContext, c *Cursor) error {
	ctx.Editor.NextView()
	return nil
}

func cmdPrevView(ctx *CommandContext, c *Cursor) error {
	ctx.Editor.PrevView()
	return nil
}

// cmdSave writes the active view's buffer back to its bound path,
// prompting for one first if it has none (spec.md ยง4.2 "save").
func cmdSave(ctx *CommandContext, c *Cursor) error {
	buf := ctx.View.Buffer
	path := buf.Path()
	if path == "" {
		ans, err := ctx.Editor.Prompt(PromptInput, "save as: ", nil)
		if err != nil || ans == nil || *ans == "" {
			return err
		}
		path = *ans
	}
	return buf.SaveAs(path)
}

// cmdOpen prompts for a path and opens it in a new edit view.
func cmdOpen(ctx *CommandContext, c *Cursor) error {
	path, err := ctx.Editor.Prompt(PromptInput, "open: ", nil)
	if err != nil || path == nil || *path == "" {
		return err
	}
	buf, err := NewOpen(*path)
	if err != nil {
		return err
	}
	ctx.Editor.OpenEditView(buf)
	return nil
}

// cmdReplaceFile discards the active view's buffer and loads a fresh
// one over it from a prompted-for path.
func cmdReplaceFile(ctx *CommandContext, c *Cursor) error {
	path, err := ctx.Editor.Prompt(PromptInput, "replace with file: ", nil)
	if err != nil || path == nil || *path == "" {
		return err
	}
	buf, err := NewOpen(*path)
	if err != nil {
		return err
	}
	v := ctx.View
	old := v.Buffer
	v.Buffer = buf
	buf.Bind()
	old.Unbind()
	return nil
}

// closeViewWithPrompt implements the unsaved-changes prompt flow of
// spec.md ยง4.2 for a single view, then closes it: yes -> save then
// close, no -> discard and close, cancel -> abort without closing.
// ask is injected (rather than calling ed.Prompt directly) so the flow
// is unit-testable without driving a real event loop, the same shape
// runReplace uses for its askYN.
//
// autoAnswer carries a standing "yes to all" decision across several
// views closed in sequence (cmdQuit): answering 'a' at the
// PromptYesNoAll prompt sets *autoAnswer to "y", and every subsequent
// call for a different dirty view applies it without re-prompting.
// cmdClose passes a fresh, call-local autoAnswer, so 'a' on a lone
// close behaves exactly like 'y' -- there is nothing "remaining" to
// apply it to.
func closeViewWithPrompt(ctx *CommandContext, v *View, autoAnswer *string, ask func() (*string, error)) (cancelled bool, err error) {
	ed := ctx.Editor
	if v.Buffer.Dirty() {
		answer := *autoAnswer
		if answer == "" {
			ans, err := ask()
			if err != nil {
				return false, err
			}
			if ans == nil {
				return true, nil // cancel
			}
			answer = *ans
			if answer == "a" {
				*autoAnswer = "y"
				answer = "y"
			}
		}
		if answer == "y" {
			sub := *ctx
			sub.View = v
			sub.Cursor = v.ActiveCursor()
			if err := cmdSave(&sub, sub.Cursor); err != nil {
				return false, err
			}
		}
	}
	ed.closeView(v)
	return false, nil
}

// cmdClose is the single-view "close" command.
func cmdClose(ctx *CommandContext, c *Cursor) error {
	v := ctx.View
	ask := func() (*string, error) {
		return ctx.Editor.Prompt(PromptYesNoAll, fmt.Sprintf("save changes to %s? (y/n/a): ", v.Buffer.Path()), nil)
	}
	auto := ""
	_, err := closeViewWithPrompt(ctx, v, &auto, ask)
	return err
}

// cmdQuit closes every edit view, sharing one "yes to all" decision
// across them, and once none remain requests editor exit.
func cmdQuit(ctx *CommandContext, c *Cursor) error {
	ed := ctx.Editor
	auto := ""
	for _, v := range ed.editViews() {
		vv := v
		ask := func() (*string, error) {
			return ed.Prompt(PromptYesNoAll, fmt.Sprintf("save changes to %s? (y/n/a): ", vv.Buffer.Path()), nil)
		}
		cancelled, err := closeViewWithPrompt(ctx, vv, &auto, ask)
		if err != nil {
			return err
		}
		if cancelled {
			return nil // user cancelled this one; abort the quit
		}
	}
	if len(ed.editViews()) == 0 {
		ed.Quit(0)
	}
	return nil
}

// closeView tears down v: unbinds its buffer, cascades to close any
// split descendant, and drops it from the registry (spec.md ยง4.6:
// "closing a parent cascades and closes all descendants").
func (ed *Editor) closeView(v *View) {
	if v.SplitChild != nil {
		ed.closeView(v.SplitChild)
	}
	v.Buffer.Unbind()
	ed.removeView(v)
	if ed.Active == v {
		ed.Active = nil
		ed.ActiveEdit = nil
		ed.ActiveEditRoot = nil
		if views := ed.editViews(); len(views) > 0 {
			ed.Active = views[0]
			ed.ActiveEdit = views[0]
			ed.ActiveEditRoot = splitRootOf(views, views[0])
		}
	}
}

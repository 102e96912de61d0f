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

// mle opens a terminal-based modal text editor: a keymap-driven
// dispatcher over one or more buffers, with split views, multi-cursor
// editing, macro record/replay, and async shell-out support.
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	mle "github.com/go-mle/mle/internal/mle"
)

func main() {
	argv := mle.LoadRCArgs(os.Args[1:])
	cfg, err := mle.ParseArgs(argv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if cfg.ShowVersion {
		fmt.Println(mle.Version())
		os.Exit(0)
	}

	scr, err := mle.InitScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer scr.Fini()

	ttyFd := -1
	if isatty.IsTerminal(os.Stdin.Fd()) {
		ttyFd = int(os.Stdin.Fd())
	}

	ed := mle.NewEditor(scr, ttyFd)
	ed.TabToSpace = cfg.TabToSpace
	ed.TabWidth = cfg.TabWidth
	ed.RelNumbers = cfg.RelNumbers
	if cfg.MacroToggle != "" {
		if c, err := mle.ParseChord(cfg.MacroToggle); err == nil {
			ed.MacroToggleKey = c
		}
	}

	if err := mle.ApplyKeymapDefs(ed, cfg.KeymapDefs, cfg.KeyBindings); err != nil {
		scr.Fini()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := mle.ApplyMacroDefs(ed, cfg.MacroDefs); err != nil {
		scr.Fini()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	openView := func(buf *mle.Buffer) *mle.View {
		v := ed.OpenEditView(buf)
		if cfg.InitKmap != "" {
			if km, ok := ed.Kmaps[cfg.InitKmap]; ok {
				v.PushKeymap(&mle.KmapNode{Keymap: km})
			}
		}
		return v
	}

	if len(cfg.Files) == 0 {
		openView(mle.NewBuffer(""))
	}
	for _, f := range cfg.Files {
		buf, err := mle.NewOpen(f.Path)
		if err != nil {
			buf = mle.NewBuffer("")
			buf.SetPath(f.Path)
		}
		v := openView(buf)
		if f.Line > 0 {
			v.ActiveCursor().Mark.MoveTo(f.Line-1, 0)
		}
	}

	stop := ed.InstallSignalHandler()
	defer stop()

	ed.Run()
	os.Exit(ed.ExitCode)
}

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

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// Config is the result of parsing the CLI surface of spec.md ยง6, ready
// to drive editor construction.
type Config struct {
	TabToSpace     bool
	TabWidth       int
	RelNumbers     bool
	KeymapDefs     []string // raw -K values
	KeyBindings    []string // raw -k values
	SyntaxDefs     []string // raw -S values
	SyntaxRules    []string // raw -s values
	MacroDefs      []string // raw -M values
	MacroToggle    string
	InitKmap       string
	SyntaxOverride string
	ShowVersion    bool
	Files          []FileArg
}

// FileArg is a positional `file[:line]` CLI argument.
type FileArg struct {
	Path string
	Line int // 0 if unspecified
}

const version = "0.1 (mle engine rewrite)"

// Version returns the CLI's reported version string.
func Version() string { return version }

// ParseArgs parses argv (normally os.Args[1:], pre-expanded with RC file
// contents by LoadRCArgs) into a Config. A parse error is a
// "configuration error" per spec.md ยง7: printed to stderr, exit code 2.
func ParseArgs(argv []string) (*Config, error) {
	fs := pflag.NewFlagSet("mle", pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mle [OPTIONS] [file[:line] ...]\n\nOPTIONS\n")
		fs.PrintDefaults()
	}

	noTabToSpace := fs.BoolP("notab", 'a', false, "disable tab-to-space")
	tabWidth := fs.IntP("tabwidth", 't', 8, "tab width")
	relNumbers := fs.BoolP("relnumbers", 'r', false, "relative line numbers")
	kdefs := fs.StringArrayP("kmapdef", 'K', nil, "`name,default_cmd,allow_fallthru`: open a new keymap definition")
	kbinds := fs.StringArrayP("kbind", 'k', nil, "`cmd,key`: append a binding to the most recently opened keymap")
	sdefs := fs.StringArrayP("syndef", 'S', nil, "`name,path_pattern`: open a new syntax definition")
	srules := fs.StringArrayP("synrule", 's', nil, "`start,end,fg,bg` or `regex,fg,bg`: append a syntax rule")
	mdefs := fs.StringArrayP("macro", 'M', nil, "`name key1 key2 ... keyN`: define a macro")
	mtoggle := fs.StringP("macrotoggle", 'm', "M-r", "macro-toggle `key`")
	initKmap := fs.StringP("kmap", 'n', "", "initial keymap `name`")
	syntax := fs.StringP("syntax", 'y', "", "override syntax `name` for startup files")
	showVersion := fs.BoolP("version", 'v', false, "print version and exit")

	if err := fs.Parse(argv); err != nil {
		return nil, err
	}

	cfg := &Config{
		TabToSpace:     !*noTabToSpace,
		TabWidth:       *tabWidth,
		RelNumbers:     *relNumbers,
		KeymapDefs:     *kdefs,
		KeyBindings:    *kbinds,
		SyntaxDefs:     *sdefs,
		SyntaxRules:    *srules,
		MacroDefs:      *mdefs,
		MacroToggle:    *mtoggle,
		InitKmap:       *initKmap,
		SyntaxOverride: *syntax,
		ShowVersion:    *showVersion,
	}

	for _, arg := range fs.Args() {
		path, line := arg, 0
		if idx := strings.LastIndex(arg, ":"); idx > 0 {
			if n, err := strconv.Atoi(arg[idx+1:]); err == nil {
				path, line = arg[:idx], n
			}
		}
		cfg.Files = append(cfg.Files, FileArg{Path: path, Line: line})
	}
	return cfg, nil
}

// LoadRCArgs reads $HOME/.mlerc and /etc/mlerc (in that order, both
// optional) and returns their contents pre-pended to argv: each
// non-empty line becomes its own CLI argument vector, space-joined with
// argv (spec.md ยง6 "RC files").
func LoadRCArgs(argv []string) []string {
	var pre []string
	if home, ok := os.LookupEnv("HOME"); ok {
		pre = append(pre, readRCLines(home+"/.mlerc")...)
	}
	pre = append(pre, readRCLines("/etc/mlerc")...)
	return append(pre, argv...)
}

func readRCLines(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, strings.Fields(line)...)
	}
	return out
}

// ApplyKeymapDefs and ApplyMacroDefs install the -K/-k/-M CLI-defined
// keymaps and macros onto ed, in order, per spec.md ยง6. Configuration
// errors here (malformed chord, malformed def) are returned so the
// caller can print-and-exit-2 before entering the event loop (ยง7).
func ApplyKeymapDefs(ed *Editor, defs, binds []string) error {
	var current *Keymap
	for _, def := range defs {
		parts := strings.SplitN(def, ",", 3)
		if len(parts) != 3 {
			return fmt.Errorf("mle: malformed -K definition %q", def)
		}
		name, defaultCmd, allow := parts[0], parts[1], parts[2]
		km := NewKeymap(name, defaultCmd, allow == "true" || allow == "1")
		ed.Kmaps[name] = km
		current = km
	}
	for _, kb := range binds {
		parts := strings.SplitN(kb, ",", 2)
		if len(parts) != 2 {
			return fmt.Errorf("mle: malformed -k binding %q", kb)
		}
		if current == nil {
			return fmt.Errorf("mle: -k %q given before any -K keymap", kb)
		}
		cmdName, keyStr := parts[0], parts[1]
		chord, err := ParseChord(keyStr)
		if err != nil {
			return fmt.Errorf("mle: -k %q: %w", kb, err)
		}
		current.Bind(chord, cmdName, nil)
	}
	return nil
}

// ApplyMacroDefs registers every -M "name key1 key2 ... keyN" definition
// as a replayable macro.
func ApplyMacroDefs(ed *Editor, defs []string) error {
	for _, def := range defs {
		fields := strings.Fields(def)
		if len(fields) < 1 {
			return fmt.Errorf("mle: malformed -M definition %q", def)
		}
		name := fields[0]
		m := &Macro{Name: name}
		for _, key := range fields[1:] {
			c, err := ParseChord(key)
			if err != nil {
				return fmt.Errorf("mle: -M %q: %w", def, err)
			}
			m.Inputs = append(m.Inputs, c)
		}
		ed.Macros[name] = m
	}
	return nil
}

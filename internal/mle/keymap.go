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

// SpecialKey names a non-printable chord, per the grammar in spec.md ยง6.
type SpecialKey string

const (
	KeyEnter     SpecialKey = "enter"
	KeyTab       SpecialKey = "tab"
	KeyBackspace SpecialKey = "backspace"
	KeyBackspace2 SpecialKey = "backspace2"
	KeyDelete    SpecialKey = "delete"
	KeyHome      SpecialKey = "home"
	KeyEnd       SpecialKey = "end"
	KeyPageUp    SpecialKey = "page-up"
	KeyPageDown  SpecialKey = "page-down"
	KeyUp        SpecialKey = "up"
	KeyDown      SpecialKey = "down"
	KeyLeft      SpecialKey = "left"
	KeyRight     SpecialKey = "right"
)

// Chord is a single key event: an optional Alt prefix, plus either a
// printable rune, a Ctrl-letter combination, or one of the special
// names above. It is comparable, so it can be used directly as a map
// key in a Keymap's binding table.
type Chord struct {
	Alt     bool
	Ctrl    rune // 'a'..'z' if this is a C-<letter> chord, else 0
	Rune    rune // a printable codepoint, else 0
	Special SpecialKey
}

var specialNames = map[string]SpecialKey{
	"enter": KeyEnter, "tab": KeyTab, "backspace": KeyBackspace,
	"backspace2": KeyBackspace2, "delete": KeyDelete, "home": KeyHome,
	"end": KeyEnd, "page-up": KeyPageUp, "page-down": KeyPageDown,
	"up": KeyUp, "down": KeyDown, "left": KeyLeft, "right": KeyRight,
}

// ParseChord parses the `[M-]<name>` grammar of spec.md ยง6 into a Chord.
// It is a pure function from string to chord; an unparseable string is
// reported as an error to the caller (used at keymap-registration time).
func ParseChord(s string) (Chord, error) {
	var c Chord
	rest := s
	if len(rest) > 2 && rest[0] == 'M' && rest[1] == '-' {
		c.Alt = true
		rest = rest[2:]
	}
	if len(rest) == 3 && rest[0] == 'C' && rest[1] == '-' {
		ch := rune(rest[2])
		if ch >= 'a' && ch <= 'z' {
			c.Ctrl = ch
			return c, nil
		}
	}
	if name, ok := specialNames[rest]; ok {
		c.Special = name
		return c, nil
	}
	runes := []rune(rest)
	if len(runes) == 1 {
		c.Rune = runes[0]
		return c, nil
	}
	return Chord{}, fmt.Errorf("mle: unparseable key chord %q", s)
}

// Binding is a (chord -> command reference) pair with an optional static
// parameter. The command reference is resolved lazily by name through a
// CommandRegistry and cached on first successful resolution.
type Binding struct {
	CmdName string
	Param   interface{}

	resolved   CommandFunc
	resolvedOK bool
}

// Resolve looks up and caches the binding's command function. A binding
// whose name cannot be resolved is treated as "no binding" by Dispatch
// (spec.md ยง4.1 Failure); it is not an error to call Resolve repeatedly.
func (b *Binding) Resolve(reg *CommandRegistry) (CommandFunc, bool) {
	if b.resolvedOK {
		return b.resolved, true
	}
	fn, ok := reg.Lookup(b.CmdName)
	if !ok {
		return nil, false
	}
	b.resolved, b.resolvedOK = fn, true
	return fn, true
}

// Keymap is a named hash from chord to binding, with an optional default
// binding applied on miss, and a fallthrough flag controlling whether
// dispatch continues down the view's keymap stack on miss.
type Keymap struct {
	Name             string
	Bindings         map[Chord]*Binding
	Default          *Binding
	AllowFallthrough bool
}

// NewKeymap creates an (initially empty) named keymap.
func NewKeymap(name string, defaultCmd string, allowFallthrough bool) *Keymap {
	k := &Keymap{Name: name, Bindings: map[Chord]*Binding{}, AllowFallthrough: allowFallthrough}
	if defaultCmd != "" {
		k.Default = &Binding{CmdName: defaultCmd}
	}
	return k
}

// Bind registers chord -> cmdName (with optional static param) in k,
// overwriting any existing binding for that chord.
func (k *Keymap) Bind(chord Chord, cmdName string, param interface{}) {
	k.Bindings[chord] = &Binding{CmdName: cmdName, Param: param}
}

// Lookup performs the exact-match step of dispatch (spec.md ยง4.1 step 1).
func (k *Keymap) Lookup(chord Chord) (*Binding, bool) {
	b, ok := k.Bindings[chord]
	return b, ok
}

// KmapNode is a single frame of a view's keymap stack. It is a thin
// reference to a (possibly shared) Keymap -- design note ยง9: nodes, not
// keymaps themselves, are what the stack owns, so the same named keymap
// (e.g. "normal") can be pushed on many views at once.
type KmapNode struct {
	Keymap *Keymap
}

// Dispatch resolves an input chord against v's keymap stack, per the
// algorithm of spec.md ยง4.1: walk top to bottom; exact match wins if it
// resolves; if the chord has no entry in the node, the node's default
// binding (an entry that fails to resolve skips the default); otherwise
// continue only if the node allows fallthrough.
func Dispatch(v *View, chord Chord, reg *CommandRegistry) (*Binding, bool) {
	for _, node := range v.KeymapStack() {
		km := node.Keymap
		matched := false
		if b, ok := km.Lookup(chord); ok {
			matched = true
			if _, ok2 := b.Resolve(reg); ok2 {
				return b, true
			}
		}
		if !matched && km.Default != nil {
			if _, ok2 := km.Default.Resolve(reg); ok2 {
				return km.Default, true
			}
		}
		if !km.AllowFallthrough {
			return nil, false
		}
	}
	return nil, false
}

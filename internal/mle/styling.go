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

// Color is an abstract color index; the terminal collaborator (term.go)
// maps it onto real tcell colors. The styling engine proper (syntax-rule
// evaluation) is out of scope for this module per spec.md ยง1; only the
// "styling rule set" abstraction it consumes is modeled here.
type Color int32

// Default is the zero value, meaning "use the view's default style".
const Default Color = 0

// StyleKind distinguishes a fixed mark-to-mark range rule (selection,
// search-hit highlight) from a pattern rule handed off to an external
// syntax engine.
type StyleKind int

const (
	// StyleRange highlights the inclusive byte range between Start and End.
	StyleRange StyleKind = iota
	// StyleRegex is a passthrough registration for an external syntax
	// engine; this module never evaluates Pattern itself.
	StyleRegex
)

// StyleRule is a live styling entity registered against a Buffer. Range
// rules survive edits because Start/End are Marks, which the buffer
// fixes up like any other mark.
type StyleRule struct {
	ID      int
	Kind    StyleKind
	Start   *Mark
	End     *Mark
	Pattern string
	Reverse bool
	FG, BG  Color
}

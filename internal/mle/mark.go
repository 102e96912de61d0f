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

// Mark is a stable (line, column) pointer into a Buffer. The buffer that
// owns it is responsible for fixing up its coordinates when edits happen
// before it, so a Mark always points at a valid position: Col is always
// within [0, line-character-count].
type Mark struct {
	buffer *Buffer
	Line   int
	Col    int
}

// Buffer returns the buffer this mark is registered with.
func (m *Mark) Buffer() *Buffer { return m.buffer }

// MoveTo moves the mark to an absolute (line, col), clamping into range.
func (m *Mark) MoveTo(line, col int) {
	m.buffer.clampMark(m, line, col)
}

// MoveBy moves the mark within its current line by delta columns, wrapping
// onto adjacent lines when it runs off either end.
func (m *Mark) MoveBy(delta int) {
	m.buffer.moveMarkBy(m, delta)
}

// MoveVert moves the mark up/down by delta lines, preserving column as
// closely as possible (clamped to the destination line's length).
func (m *Mark) MoveVert(delta int) {
	m.buffer.moveMarkVert(m, delta)
}

// MoveBOL moves the mark to the beginning of its current line.
func (m *Mark) MoveBOL() { m.Col = 0 }

// MoveEOL moves the mark to the end of its current line.
func (m *Mark) MoveEOL() { m.Col = m.buffer.lineLen(m.Line) }

// MoveBeginning moves the mark to line 0, col 0.
func (m *Mark) MoveBeginning() { m.Line, m.Col = 0, 0 }

// MoveEnd moves the mark to the last line, end column.
func (m *Mark) MoveEnd() {
	m.Line = m.buffer.LineCount() - 1
	m.Col = m.buffer.lineLen(m.Line)
}

// Offset returns the mark's absolute rune offset into the buffer.
func (m *Mark) Offset() int { return m.buffer.offsetOf(m.Line, m.Col) }

// Clone returns a new mark at the same position, registered with the
// same buffer.
func (m *Mark) Clone() *Mark { return m.buffer.AddMark(m.Line, m.Col) }

// MoveToNextMatch moves the mark to the start of the first match of
// pattern at or after its current position (a match starting exactly at
// the mark counts), wrapping to the start of the buffer if wrap is true
// and no match is found forward. Returns false, leaving the mark in
// place, if no match is found.
func (m *Mark) MoveToNextMatch(pattern string, wrap bool) bool {
	return m.buffer.moveMarkToMatch(m, pattern, 1, wrap)
}

// MoveToPrevMatch is the backward analogue of MoveToNextMatch.
func (m *Mark) MoveToPrevMatch(pattern string, wrap bool) bool {
	return m.buffer.moveMarkToMatch(m, pattern, -1, wrap)
}

// Less reports whether m sorts before other in document order.
func (m *Mark) Less(other *Mark) bool {
	if m.Line != other.Line {
		return m.Line < other.Line
	}
	return m.Col < other.Col
}

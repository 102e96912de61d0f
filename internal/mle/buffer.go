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
	"regexp"
	"sort"
)

// Buffer is the out-of-scope external collaborator of spec.md ยง1/ยง6: a
// mutable sequence of lines exposing insert/delete by offset or mark,
// regex search, mark registration and styling-rule registration. The
// core only ever refers to buffers by identity (pointer).
//
// The syntax-rule matching and on-disk persistence formats are
// deliberately minimal here -- spec.md places the real implementation of
// this collaborator outside the module's concern. This is a concrete
// stand-in so the rest of the engine has something to run and be tested
// against.
type Buffer struct {
	data       []rune
	lineStarts []int // lineStarts[i] = offset of first rune of line i

	marks    []*Mark
	rules    []*StyleRule
	nextRule int

	refCount int
	path     string
	dirty    bool
}

// NewBuffer creates a buffer over the given initial text.
func NewBuffer(text string) *Buffer {
	b := &Buffer{data: []rune(text)}
	b.recomputeLines()
	return b
}

// NewOpen reads path from disk into a new buffer (buffer_new_open).
func NewOpen(path string) (*Buffer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	b := NewBuffer(string(raw))
	b.path = path
	return b, nil
}

// Path returns the buffer's associated file path, if any.
func (b *Buffer) Path() string { return b.path }

// SetPath sets the buffer's associated file path (used by "save as").
func (b *Buffer) SetPath(path string) { b.path = path }

// Dirty reports whether the buffer has unsaved changes.
func (b *Buffer) Dirty() bool { return b.dirty }

// SaveAs writes the buffer's full contents to path (buffer_save_as).
func (b *Buffer) SaveAs(path string) error {
	if err := os.WriteFile(path, []byte(string(b.data)), 0644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	b.path = path
	b.dirty = false
	return nil
}

// Bind increments the buffer's view reference count (a view started
// displaying it).
func (b *Buffer) Bind() { b.refCount++ }

// Unbind decrements the reference count. Callers must not touch the
// buffer afterward if RefCount reaches 0; per spec.md invariant 3, that
// is the only point at which a buffer may be destroyed.
func (b *Buffer) Unbind() { b.refCount-- }

// RefCount returns the current view reference count.
func (b *Buffer) RefCount() int { return b.refCount }

// LineCount returns the number of lines in the buffer (always >= 1).
func (b *Buffer) LineCount() int { return len(b.lineStarts) }

// Get returns the full contents of the buffer (buffer_get).
func (b *Buffer) Get() string { return string(b.data) }

// Line returns the text of a single line, without its trailing newline.
func (b *Buffer) Line(i int) string {
	if i < 0 || i >= len(b.lineStarts) {
		return ""
	}
	start := b.lineStarts[i]
	end := start + b.lineLen(i)
	return string(b.data[start:end])
}

func (b *Buffer) lineLen(i int) int {
	if i < 0 || i >= len(b.lineStarts) {
		return 0
	}
	start := b.lineStarts[i]
	var end int
	if i+1 < len(b.lineStarts) {
		end = b.lineStarts[i+1] - 1 // exclude the '\n'
	} else {
		end = len(b.data)
	}
	if end < start {
		end = start
	}
	return end - start
}

func (b *Buffer) recomputeLines() {
	b.lineStarts = b.lineStarts[:0]
	b.lineStarts = append(b.lineStarts, 0)
	for i, r := range b.data {
		if r == '\n' {
			b.lineStarts = append(b.lineStarts, i+1)
		}
	}
}

func (b *Buffer) offsetOf(line, col int) int {
	if line < 0 {
		return 0
	}
	if line >= len(b.lineStarts) {
		return len(b.data)
	}
	off := b.lineStarts[line] + col
	if off > len(b.data) {
		off = len(b.data)
	}
	return off
}

func (b *Buffer) lineColOf(off int) (int, int) {
	if off < 0 {
		off = 0
	}
	if off > len(b.data) {
		off = len(b.data)
	}
	// last lineStarts[i] <= off
	i := sort.Search(len(b.lineStarts), func(i int) bool { return b.lineStarts[i] > off }) - 1
	if i < 0 {
		i = 0
	}
	return i, off - b.lineStarts[i]
}

func (b *Buffer) clampMark(m *Mark, line, col int) {
	if line < 0 {
		line = 0
	}
	if line >= len(b.lineStarts) {
		line = len(b.lineStarts) - 1
	}
	ll := b.lineLen(line)
	if col < 0 {
		col = 0
	}
	if col > ll {
		col = ll
	}
	m.Line, m.Col = line, col
}

// AddMark registers and returns a new mark at (line, col) (add_mark).
func (b *Buffer) AddMark(line, col int) *Mark {
	m := &Mark{buffer: b}
	b.clampMark(m, line, col)
	b.marks = append(b.marks, m)
	return m
}

// DestroyMark unregisters a mark. It is a no-op if the mark is not
// registered with this buffer (destroy_mark).
func (b *Buffer) DestroyMark(m *Mark) {
	for i, mk := range b.marks {
		if mk == m {
			b.marks = append(b.marks[:i], b.marks[i+1:]...)
			return
		}
	}
}

func (b *Buffer) moveMarkBy(m *Mark, delta int) {
	off := b.offsetOf(m.Line, m.Col) + delta
	if off < 0 {
		off = 0
	}
	if off > len(b.data) {
		off = len(b.data)
	}
	m.Line, m.Col = b.lineColOf(off)
}

func (b *Buffer) moveMarkVert(m *Mark, delta int) {
	line := m.Line + delta
	if line < 0 {
		line = 0
	}
	if line >= len(b.lineStarts) {
		line = len(b.lineStarts) - 1
	}
	col := m.Col
	if ll := b.lineLen(line); col > ll {
		col = ll
	}
	m.Line, m.Col = line, col
}

func (b *Buffer) moveMarkToMatch(m *Mark, pattern string, dir int, wrap bool) bool {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	cur := b.offsetOf(m.Line, m.Col)
	if dir > 0 {
		if loc := re.FindIndex([]byte(string(b.data[cur:]))); loc != nil {
			// FindIndex works on byte offsets of the UTF-8 encoding of the
			// suffix; translate back to rune offset.
			off := cur + runeOffsetOfByteOffset(b.data[cur:], loc[0])
			m.Line, m.Col = b.lineColOf(off)
			return true
		}
		if wrap {
			if loc := re.FindIndex([]byte(string(b.data))); loc != nil {
				off := runeOffsetOfByteOffset(b.data, loc[0])
				m.Line, m.Col = b.lineColOf(off)
				return true
			}
		}
		return false
	}
	// Backward search: find the last match strictly before cur.
	find := func(s []rune) (int, bool) {
		locs := re.FindAllIndex([]byte(string(s)), -1)
		if len(locs) == 0 {
			return 0, false
		}
		last := locs[len(locs)-1]
		return runeOffsetOfByteOffset(s, last[0]), true
	}
	if cur > 0 {
		if off, ok := find(b.data[:cur]); ok {
			m.Line, m.Col = b.lineColOf(off)
			return true
		}
	}
	if wrap {
		if off, ok := find(b.data); ok {
			m.Line, m.Col = b.lineColOf(off)
			return true
		}
	}
	return false
}

func runeOffsetOfByteOffset(s []rune, byteOff int) int {
	n := 0
	for i, r := range string(s) {
		if i >= byteOff {
			return n
		}
		n++
		_ = r
	}
	return len(s)
}

// GetOffset returns the absolute rune offset of a mark (get_offset).
func (b *Buffer) GetOffset(m *Mark) int { return b.offsetOf(m.Line, m.Col) }

// PositionAt converts an absolute rune offset back to (line, col).
func (b *Buffer) PositionAt(offset int) (line, col int) { return b.lineColOf(offset) }

// DeleteRange deletes the runes in [lo, hi), clamped to the buffer's
// bounds, fixing up every registered mark.
func (b *Buffer) DeleteRange(lo, hi int) { b.deleteRange(lo, hi) }

// isWordRune classifies a rune as a "word" constituent: letters, digits
// and underscore. Go's regexp package (RE2) has no lookbehind, so the
// literal word-boundary patterns of the original ("(?<=\W)\w", etc.)
// cannot be compiled; WordStartBefore/WordEndAfter reproduce the same
// word/non-word transition semantics directly via rune classification.
func isWordRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		return true
	default:
		return false
	}
}

// WordStartBefore returns the offset of the start of the word run
// immediately before off, skipping any non-word runes first -- the
// move/delete-by-word-before semantics of spec.md ยง4.2.
func (b *Buffer) WordStartBefore(off int) int {
	i := off
	for i > 0 && !isWordRune(b.data[i-1]) {
		i--
	}
	for i > 0 && isWordRune(b.data[i-1]) {
		i--
	}
	return i
}

// WordEndAfter returns the offset just past the end of the word run
// immediately after off, skipping any non-word runes first -- the
// move/delete-by-word-after semantics of spec.md ยง4.2.
func (b *Buffer) WordEndAfter(off int) int {
	i := off
	n := len(b.data)
	for i < n && !isWordRune(b.data[i]) {
		i++
	}
	for i < n && isWordRune(b.data[i]) {
		i++
	}
	return i
}

// GetBetweenMarks returns the text between two marks in document order
// (get_between_marks).
func (b *Buffer) GetBetweenMarks(a, c *Mark) string {
	lo, hi := b.offsetOf(a.Line, a.Col), b.offsetOf(c.Line, c.Col)
	if lo > hi {
		lo, hi = hi, lo
	}
	return string(b.data[lo:hi])
}

type fixupEntry struct {
	mark   *Mark
	offset int
}

func (b *Buffer) snapshotOffsets(excl *Mark) []fixupEntry {
	entries := make([]fixupEntry, 0, len(b.marks))
	for _, mk := range b.marks {
		if mk == excl {
			continue
		}
		entries = append(entries, fixupEntry{mk, b.offsetOf(mk.Line, mk.Col)})
	}
	return entries
}

func (b *Buffer) applyFixup(entries []fixupEntry, insertAt, insertLen, deleteAt, deleteLen int) {
	for _, e := range entries {
		off := e.offset
		if insertLen > 0 && off >= insertAt {
			off += insertLen
		}
		if deleteLen > 0 {
			if off >= deleteAt+deleteLen {
				off -= deleteLen
			} else if off > deleteAt {
				off = deleteAt
			}
		}
		line, col := b.lineColOf(off)
		e.mark.Line, e.mark.Col = line, col
	}
}

// Insert inserts data at an absolute rune offset (buffer_insert), fixing
// up every registered mark.
func (b *Buffer) Insert(offset int, data string) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(b.data) {
		offset = len(b.data)
	}
	entries := b.snapshotOffsets(nil)
	runes := []rune(data)
	merged := make([]rune, 0, len(b.data)+len(runes))
	merged = append(merged, b.data[:offset]...)
	merged = append(merged, runes...)
	merged = append(merged, b.data[offset:]...)
	b.data = merged
	b.recomputeLines()
	b.applyFixup(entries, offset, len(runes), 0, 0)
	if data != "" {
		b.dirty = true
	}
}

// InsertBeforeMark inserts data immediately before m, then advances m to
// just past the inserted text (insert_before_mark).
func (b *Buffer) InsertBeforeMark(m *Mark, data string) {
	off := b.offsetOf(m.Line, m.Col)
	entries := b.snapshotOffsets(m)
	runes := []rune(data)
	merged := make([]rune, 0, len(b.data)+len(runes))
	merged = append(merged, b.data[:off]...)
	merged = append(merged, runes...)
	merged = append(merged, b.data[off:]...)
	b.data = merged
	b.recomputeLines()
	b.applyFixup(entries, off, len(runes), 0, 0)
	m.Line, m.Col = b.lineColOf(off + len(runes))
	if data != "" {
		b.dirty = true
	}
}

func (b *Buffer) deleteRange(lo, hi int) {
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo < 0 {
		lo = 0
	}
	if hi > len(b.data) {
		hi = len(b.data)
	}
	if lo >= hi {
		return
	}
	entries := b.snapshotOffsets(nil)
	merged := make([]rune, 0, len(b.data)-(hi-lo))
	merged = append(merged, b.data[:lo]...)
	merged = append(merged, b.data[hi:]...)
	b.data = merged
	b.recomputeLines()
	b.applyFixup(entries, 0, 0, lo, hi-lo)
	b.dirty = true
}

// DeleteBeforeMark deletes count runes immediately before m
// (delete_before_mark). It clamps at the buffer start.
func (b *Buffer) DeleteBeforeMark(m *Mark, count int) {
	off := b.offsetOf(m.Line, m.Col)
	b.deleteRange(off-count, off)
}

// DeleteAfterMark deletes count runes immediately after m
// (delete_after_mark). It clamps at the buffer end.
func (b *Buffer) DeleteAfterMark(m *Mark, count int) {
	off := b.offsetOf(m.Line, m.Col)
	b.deleteRange(off, off+count)
}

// DeleteBetweenMarks deletes the inclusive-exclusive range spanned by two
// marks, in document order (delete_between_marks).
func (b *Buffer) DeleteBetweenMarks(a, c *Mark) {
	lo, hi := b.offsetOf(a.Line, a.Col), b.offsetOf(c.Line, c.Col)
	b.deleteRange(lo, hi)
}

// AddStylingRule registers a new styling rule and returns it
// (add_styling_rule).
func (b *Buffer) AddStylingRule(rule *StyleRule) *StyleRule {
	b.nextRule++
	rule.ID = b.nextRule
	b.rules = append(b.rules, rule)
	return rule
}

// RemoveStylingRule unregisters a styling rule (remove_styling_rule).
func (b *Buffer) RemoveStylingRule(rule *StyleRule) {
	for i, r := range b.rules {
		if r == rule {
			b.rules = append(b.rules[:i], b.rules[i+1:]...)
			return
		}
	}
}

// Rules returns the currently registered styling rules, for the render
// path to consult.
func (b *Buffer) Rules() []*StyleRule { return b.rules }

// HasRule reports whether rule is currently registered, used by tests
// asserting invariant 2 of spec.md ยง8.
func (b *Buffer) HasRule(rule *StyleRule) bool {
	for _, r := range b.rules {
		if r == rule {
			return true
		}
	}
	return false
}

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
	"crypto/sha1"
	"fmt"
	"os"

	"github.com/gdamore/tcell"
	"github.com/gdamore/tcell/terminfo"
	"github.com/mattn/go-runewidth"
)

// InitScreen brings up the tcell-backed terminal collaborator (spec.md
// ยง6). Grounded directly on the teacher's initTUI: same terminfo-missing
// diagnostic, same init/shutdown sequence.
func InitScreen() (tcell.Screen, error) {
	scr, err := tcell.NewScreen()
	if err == terminfo.ErrTermNotFound {
		term := os.Getenv("TERM")
		hash := sha1.Sum([]byte(term))
		return nil, fmt.Errorf(`terminal %q not found in tcell's terminfo database (hash %x); see https://github.com/gdamore/tcell/issues`, term, hash)
	}
	if err != nil {
		return nil, err
	}
	if err := scr.Init(); err != nil {
		return nil, err
	}
	return scr, nil
}

// TriggerRefresh posts a synthetic interrupt so a blocked PollEvent call
// wakes up to redraw, the same trick the teacher uses for async data
// arrival notifications.
func TriggerRefresh(scr tcell.Screen) {
	scr.PostEvent(tcell.NewEventInterrupt(nil))
}

// TranslateKey turns a tcell key event into the Chord grammar of
// spec.md ยง6.
func TranslateKey(ev *tcell.EventKey) Chord {
	var c Chord
	if ev.Modifiers()&tcell.ModAlt != 0 {
		c.Alt = true
	}
	if ev.Key() == tcell.KeyRune {
		c.Rune = ev.Rune()
		return c
	}
	if special, ok := specialFromTcell[ev.Key()]; ok {
		c.Special = special
		return c
	}
	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		c.Ctrl = rune('a' + int(ev.Key()-tcell.KeyCtrlA))
		return c
	}
	// Unmapped key: surface as its rune if it carries one, else as a
	// zero-value Chord that will simply fail to match any binding.
	c.Rune = ev.Rune()
	return c
}

var specialFromTcell = map[tcell.Key]SpecialKey{
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace2,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyPgUp:       KeyPageUp,
	tcell.KeyPgDn:       KeyPageDown,
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
}

// Region is a sub-rectangle of the screen with an origin-relative
// SetCell, the same shape as the teacher's Region/TuiRegion.
type Region struct {
	W, H    int
	SetCell func(x, y int, style tcell.Style, ch rune)
}

// ScreenRegion clips drawing to (x,y,w,h) of scr, optionally disabling
// colors (spec's `-no-colors`-equivalent is carried on the editor, not
// here, so the flag is passed in).
func ScreenRegion(scr tcell.Screen, x, y, w, h int, noColors bool) Region {
	return Region{
		W: w, H: h,
		SetCell: func(dx, dy int, style tcell.Style, ch rune) {
			if dx < 0 || dx >= w || dy < 0 || dy >= h {
				return
			}
			if noColors {
				style = tcell.StyleDefault
			}
			scr.SetContent(x+dx, y+dy, ch, nil, style)
		},
	}
}

// tabExpander expands tabs to the next multiple of 8 columns while
// iterating a line's runes, adapted from the teacher's tabExpander.
type tabExpander struct {
	runes []rune
	i     int
	x     int
}

func newTabExpander(line string) *tabExpander { return &tabExpander{runes: []rune(line)} }

func (t *tabExpander) next() (rune, bool) {
	if t.x < 0 {
		t.x++
		return ' ', true
	}
	if t.i >= len(t.runes) {
		return 0, false
	}
	r := t.runes[t.i]
	t.i++
	const tabWidth = 8
	if r == '\t' {
		t.x = t.x - tabWidth
		return t.next()
	}
	w := runewidth.RuneWidth(r)
	if w < 1 {
		w = 1
	}
	t.x = (t.x + w) % tabWidth
	return r, true
}

// DrawLine renders a single expanded-tab buffer line into region row y,
// starting at horizontal scroll offset scrollX, trimming (not wrapping)
// runs that overflow either edge -- same visual contract as the
// teacher's RowView, generalized from a byte Buf to a Buffer line.
func DrawLine(region Region, y int, line string, scrollX int, style tcell.Style) {
	exp := newTabExpander(line)
	x := -scrollX
	overflowLeft := false
	for {
		ch, ok := exp.next()
		if !ok {
			break
		}
		w := runewidth.RuneWidth(ch)
		if w < 1 {
			w = 1
		}
		switch {
		case x < 0 && x+w > 0:
			overflowLeft = true
			for fx := 0; fx < w && fx < region.W; fx++ {
				region.SetCell(fx, y, style, '«')
			}
		case x < 0:
		case x >= region.W:
			// stop early, nothing more fits
		default:
			if x+w > region.W {
				for fx := x; fx < region.W; fx++ {
					region.SetCell(fx, y, style, '»')
				}
			} else {
				region.SetCell(x, y, style, ch)
			}
		}
		x += w
	}
	_ = overflowLeft
}

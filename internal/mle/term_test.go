package mle

import (
	"testing"

	"github.com/gdamore/tcell"
	"github.com/kylelemons/godebug/diff"

	"github.com/go-mle/mle/internal/mle/testutil"
)

func TestDrawLineTrimsOverflowRight(t *testing.T) {
	scr := tcell.NewSimulationScreen("")
	if err := scr.Init(); err != nil {
		t.Fatal(err)
	}
	defer scr.Fini()
	scr.SetSize(10, 1)

	region := ScreenRegion(scr, 0, 0, 10, 1, false)
	DrawLine(region, 0, "1234567890xyz", 0, tcell.StyleDefault)
	scr.Sync()

	// No wide rune straddles the boundary, so the line is clipped at
	// the width with no overflow marker -- "xyz" is simply never drawn.
	want := testutil.Screen{
		testutil.Raw("1234567890"), testutil.Endline{W: 0},
	}.String()
	have := testutil.CellsToString(scr)
	if have != want {
		t.Errorf("DrawLine overflow-right:\n%s", diff.Diff(have, want))
	}
}

func TestDrawLineExpandsTabs(t *testing.T) {
	scr := tcell.NewSimulationScreen("")
	if err := scr.Init(); err != nil {
		t.Fatal(err)
	}
	defer scr.Fini()
	scr.SetSize(10, 1)

	region := ScreenRegion(scr, 0, 0, 10, 1, false)
	DrawLine(region, 0, "\tA", 0, tcell.StyleDefault)
	scr.Sync()

	want := testutil.Screen{
		testutil.Raw("        A"), testutil.Endline{W: 1},
	}.String()
	have := testutil.CellsToString(scr)
	if have != want {
		t.Errorf("DrawLine tab expansion:\n%s", diff.Diff(have, want))
	}
}

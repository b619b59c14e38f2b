package teepee

import "testing"

func TestScreenPutCharAdvancesCursor(t *testing.T) {
	s := NewScreen(10, 5, nil)
	s.PutChar('a')
	s.PutChar('b')
	if s.Cursor.X != 2 {
		t.Fatalf("Cursor.X = %d, want 2", s.Cursor.X)
	}
	if s.Lines[0].String()[:2] != "ab" {
		t.Fatalf("line = %q, want prefix %q", s.Lines[0].String(), "ab")
	}
}

func TestScreenWrapOffClampsAtRightEdge(t *testing.T) {
	s := NewScreen(10, 5, nil)
	s.SetMode(ModeWrap, false)
	for i := 0; i < 12; i++ {
		s.PutChar('a' + rune(i))
	}
	if s.Cursor.Y != 0 {
		t.Fatalf("Cursor.Y = %d, want 0 (no wrap)", s.Cursor.Y)
	}
	if s.Cursor.X != s.Cols-1 {
		t.Fatalf("Cursor.X = %d, want %d", s.Cursor.X, s.Cols-1)
	}
}

func TestScreenWrapOnMovesToNextLine(t *testing.T) {
	s := NewScreen(10, 5, nil)
	for i := 0; i < 11; i++ {
		s.PutChar('a' + rune(i))
	}
	if s.Cursor.Y != 1 {
		t.Fatalf("Cursor.Y = %d, want 1", s.Cursor.Y)
	}
	if s.Cursor.X != 1 {
		t.Fatalf("Cursor.X = %d, want 1", s.Cursor.X)
	}
	if s.Lines[0].String() != "abcdefghij" {
		t.Fatalf("line 0 = %q", s.Lines[0].String())
	}
}

func TestScreenDoubleWidthCharWrap(t *testing.T) {
	s := NewScreen(10, 5, nil)
	for i := 0; i < 9; i++ {
		s.PutChar('a')
	}
	// Cursor.X is now 9 (last column); a wide char needs 2 cols so it must wrap.
	s.PutChar('中') // wide CJK char
	if s.Cursor.Y != 1 {
		t.Fatalf("wide char should have wrapped to next line, Cursor.Y = %d", s.Cursor.Y)
	}
	if s.Cursor.X != 2 {
		t.Fatalf("Cursor.X = %d, want 2 after wide char", s.Cursor.X)
	}
	if !s.Lines[1].Cells[0].Style.Rendition.Has(RenditionWide) {
		t.Fatal("left half of wide char not marked RenditionWide")
	}
}

func TestScreenResizeGrowAndShrinkRoundTrip(t *testing.T) {
	s := NewScreen(80, 24, NewScrollback(1<<20))
	s.PutChar('x')

	s.Resize(10, 5)
	if s.Cols != 10 || s.Rows != 5 {
		t.Fatalf("after shrink: %dx%d, want 10x5", s.Cols, s.Rows)
	}

	s.Resize(80, 24)
	if s.Cols != 80 || s.Rows != 24 {
		t.Fatalf("after grow: %dx%d, want 80x24", s.Cols, s.Rows)
	}
	if s.Lines[0].String()[:1] != "x" {
		t.Fatalf("content lost across resize round trip: %q", s.Lines[0].String()[:1])
	}
}

func TestScreenResizeClampsToMinimum(t *testing.T) {
	s := NewScreen(80, 24, nil)
	s.Resize(1, 1)
	if s.Cols != MinCols || s.Rows != MinRows {
		t.Fatalf("got %dx%d, want clamp to %dx%d", s.Cols, s.Rows, MinCols, MinRows)
	}
}

func TestScreenScrollRegionRoundTrip(t *testing.T) {
	s := NewScreen(80, 24, nil)
	s.SetScrollRegion(5, 20)
	if s.ScrollTop != 4 || s.ScrollBottom != 19 {
		t.Fatalf("region = [%d,%d], want [4,19]", s.ScrollTop, s.ScrollBottom)
	}
	if s.Cursor.X != 0 || s.Cursor.Y != 0 {
		t.Fatalf("cursor should home on region set, got (%d,%d)", s.Cursor.X, s.Cursor.Y)
	}

	s.SetScrollRegion(0, 0)
	if s.ScrollTop != 0 || s.ScrollBottom != s.Rows-1 {
		t.Fatalf("region reset failed: [%d,%d]", s.ScrollTop, s.ScrollBottom)
	}
}

func TestScreenScrollRegionMalformedResetsFull(t *testing.T) {
	s := NewScreen(80, 24, nil)
	s.SetScrollRegion(20, 5) // bottom <= top
	if s.ScrollTop != 0 || s.ScrollBottom != s.Rows-1 {
		t.Fatalf("malformed region should reset to full screen, got [%d,%d]", s.ScrollTop, s.ScrollBottom)
	}
}

func TestScreenCursorSaveLoadRoundTripWithOrigin(t *testing.T) {
	s := NewScreen(80, 24, nil)
	s.SetScrollRegion(5, 20)
	s.SetMode(ModeOrigin, true)
	s.Cursor.X, s.Cursor.Y = 3, 2
	s.CursorSave()

	s.Cursor.X, s.Cursor.Y = 0, 0
	s.SetMode(ModeOrigin, false)

	s.CursorLoad()
	if s.Cursor.X != 3 || s.Cursor.Y != 2 {
		t.Fatalf("cursor not restored: (%d,%d)", s.Cursor.X, s.Cursor.Y)
	}
	if !s.Mode.Has(ModeOrigin) {
		t.Fatal("origin mode bit not restored with cursor")
	}
}

func TestScreenScrollPushesToScrollbackOnlyAtRowZero(t *testing.T) {
	sb := NewScrollback(1 << 20)
	s := NewScreen(10, 5, sb)
	s.Lines[0].Cells[0].SetRune('z', DefaultStyle)
	s.Scroll(1)
	if sb.Len() != 1 {
		t.Fatalf("Scrollback.Len() = %d, want 1", sb.Len())
	}
	got, _ := sb.Line(0)
	if got.String()[:1] != "z" {
		t.Fatalf("scrolled line content = %q", got.String())
	}
}

func TestScreenScrollRegionRestrictsEviction(t *testing.T) {
	sb := NewScrollback(1 << 20)
	s := NewScreen(10, 5, sb)
	s.SetScrollRegion(2, 5)
	s.Cursor.Y = s.ScrollBottom
	s.Scroll(1)
	if sb.Len() != 0 {
		t.Fatalf("scrolling a region not anchored at row 0 should not push to scrollback, got Len()=%d", sb.Len())
	}
}

func TestScreenEraseAllPreservesDimensions(t *testing.T) {
	s := NewScreen(10, 5, nil)
	s.PutChar('a')
	s.Erase(EraseAll, 0)
	if s.Lines[0].String() != "          " {
		t.Fatalf("line not cleared: %q", s.Lines[0].String())
	}
	if len(s.Lines) != 5 {
		t.Fatalf("row count changed: %d", len(s.Lines))
	}
}

func TestScreenTabMovesToNextDefaultStop(t *testing.T) {
	s := NewScreen(20, 5, nil)
	s.Tab(1)
	if s.Cursor.X != 7 {
		t.Fatalf("Cursor.X = %d, want 7", s.Cursor.X)
	}
	s.Tab(1)
	if s.Cursor.X != 15 {
		t.Fatalf("Cursor.X = %d, want 15", s.Cursor.X)
	}
}

func TestScreenTabSetAndClear(t *testing.T) {
	s := NewScreen(20, 5, nil)
	s.TabsClear()
	s.Cursor.X = 3
	s.TabSet(true)
	s.Cursor.X = 0
	s.Tab(1)
	if s.Cursor.X != 3 {
		t.Fatalf("Cursor.X = %d, want 3", s.Cursor.X)
	}
}

func TestScreenResetStyleRestoresDefault(t *testing.T) {
	s := NewScreen(10, 5, nil)
	s.SetFg(Indexed(1))
	s.ResetStyle()
	if !s.Cursor.Style.IsDefault() {
		t.Fatalf("style not reset to default: %+v", s.Cursor.Style)
	}
}

func TestScreenEraseAllFillsWithCursorStyle(t *testing.T) {
	s := NewScreen(10, 5, nil)
	s.SetBg(Indexed(4)) // blue background
	s.Erase(EraseAll, 0)
	for i := range s.Lines {
		for j := range s.Lines[i].Cells {
			if s.Lines[i].Cells[j].Style.Bg != Indexed(4) {
				t.Fatalf("cell (%d,%d) Bg = %+v, want blue", i, j, s.Lines[i].Cells[j].Style.Bg)
			}
		}
	}
}

func TestScreenEraseLineFillsWithCursorStyle(t *testing.T) {
	s := NewScreen(10, 5, nil)
	s.SetBg(Indexed(4))
	s.Erase(EraseLine, 0)
	for j := range s.Lines[s.Cursor.Y].Cells {
		if s.Lines[s.Cursor.Y].Cells[j].Style.Bg != Indexed(4) {
			t.Fatalf("cell %d Bg = %+v, want blue", j, s.Lines[s.Cursor.Y].Cells[j].Style.Bg)
		}
	}
}

func TestScreenEraseAboveBelowWholeLinesFillWithCursorStyle(t *testing.T) {
	s := NewScreen(10, 5, nil)
	s.Cursor.Y = 2
	s.SetBg(Indexed(4))
	s.Erase(EraseAbove, 0)
	if s.Lines[0].Cells[0].Style.Bg != Indexed(4) {
		t.Fatalf("EraseAbove: line 0 Bg = %+v, want blue", s.Lines[0].Cells[0].Style.Bg)
	}
	s.Erase(EraseBelow, 0)
	if s.Lines[4].Cells[0].Style.Bg != Indexed(4) {
		t.Fatalf("EraseBelow: line 4 Bg = %+v, want blue", s.Lines[4].Cells[0].Style.Bg)
	}
}

func TestScreenScrollFillsRevealedLineWithCursorStyle(t *testing.T) {
	s := NewScreen(10, 5, nil)
	s.SetBg(Indexed(4))
	s.Scroll(1)
	if s.Lines[4].Cells[0].Style.Bg != Indexed(4) {
		t.Fatalf("scrolled-in line Bg = %+v, want blue", s.Lines[4].Cells[0].Style.Bg)
	}
}

func TestScreenResizeGrowFillsNewLinesWithCursorStyle(t *testing.T) {
	s := NewScreen(10, 5, nil)
	s.SetBg(Indexed(4))
	s.Resize(10, 8)
	if s.Lines[7].Cells[0].Style.Bg != Indexed(4) {
		t.Fatalf("new line from resize Bg = %+v, want blue", s.Lines[7].Cells[0].Style.Bg)
	}
}

func TestNewCursorIsDefaultStyle(t *testing.T) {
	c := NewCursor()
	if !c.Style.IsDefault() {
		t.Fatalf("NewCursor().Style = %+v, want default", c.Style)
	}
	if !c.Style.Equal(DefaultStyle) {
		t.Fatalf("NewCursor().Style != DefaultStyle: %+v vs %+v", c.Style, DefaultStyle)
	}
}

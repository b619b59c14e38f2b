package teepee

import "strings"

// MinCols and MinRows are the smallest grid dimensions Resize will settle
// for; requests below this are clamped up.
const (
	MinCols = 10
	MinRows = 5
)

// DefaultCols and DefaultRows size a freshly constructed Screen when the
// caller doesn't have a real pty size yet.
const (
	DefaultCols = 80
	DefaultRows = 24
)

// Screen owns one rectangular grid of styled cells together with
// everything the VT verbs need to mutate it: a cursor (with its own saved
// copy), a scrolling region, a flat tab-stop vector, a mode bitset, and
// optionally a Scrollback that receives lines evicted off the top. The
// alternate screen is built with a nil Scrollback, since xterm never keeps
// history for it.
//
// All positions in Screen's public methods are 0-indexed unless the method
// name says otherwise (the CursorSet VT verb takes 1-indexed coordinates,
// matching the wire protocol it is dispatched from).
type Screen struct {
	Cols, Rows int

	Cursor      Cursor
	cursorSaved Cursor

	Mode Mode

	ScrollTop, ScrollBottom int // 0-indexed, inclusive

	Tabs []bool

	Lines []Line

	Scrollback *Scrollback

	ScreenDirty   bool
	ScrolledLines int
}

// NewScreen builds a Screen of the given size (clamped to the minimum) with
// every cell blank, default tab stops every 8 columns, and the scroll
// region spanning the whole grid. Pass a non-nil sb for a screen that keeps
// scrollback (the primary screen); pass nil for one that doesn't (the
// alternate screen).
func NewScreen(cols, rows int, sb *Scrollback) *Screen {
	cols, rows = clampSize(cols, rows)
	s := &Screen{
		Cols:         cols,
		Rows:         rows,
		Cursor:       NewCursor(),
		cursorSaved:  NewCursor(),
		Mode:         DefaultMode,
		ScrollBottom: rows - 1,
		Scrollback:   sb,
		ScreenDirty:  true,
	}
	s.Lines = make([]Line, rows)
	for i := range s.Lines {
		s.Lines[i] = NewLine(cols)
	}
	s.Tabs = defaultTabs(cols)
	return s
}

func clampSize(cols, rows int) (int, int) {
	if cols < MinCols {
		cols = MinCols
	}
	if rows < MinRows {
		rows = MinRows
	}
	return cols, rows
}

func defaultTabs(cols int) []bool {
	tabs := make([]bool, cols)
	for i := 7; i < cols; i += 8 {
		tabs[i] = true
	}
	return tabs
}

// blankCell returns a cell matching the cursor's current style, used to
// fill cells cleared by erase, put_chars, and scroll — blanks carry the
// current background/rendition rather than the hard-coded default style,
// so an erase after `CSI 44 m` (blue background) leaves blue, not black.
func (s *Screen) blankCell() Cell {
	var c Cell
	c.Reset()
	c.Style = s.Cursor.Style
	return c
}

// blankLine returns a Line of width s.Cols with every cell matching the
// cursor's current style, marked dirty. Used wherever a whole new line is
// needed — scroll and resize grow — so those fills carry the current
// background/rendition too, the same as blankCell does for partial-range
// erases (whole-line erases refill in place with fillLine).
func (s *Screen) blankLine() Line {
	cells := make([]Cell, s.Cols)
	blank := s.blankCell()
	for i := range cells {
		cells[i] = blank
	}
	return Line{Cells: cells, Dirty: true}
}

// fillLine resets every cell of an existing line in place to the cursor's
// current blank style, rather than allocating a new Line (used where the
// Line's identity/capacity must be kept, e.g. erase of a line in place).
func (s *Screen) fillLine(line *Line) {
	blank := s.blankCell()
	for i := range line.Cells {
		line.Cells[i] = blank
	}
	line.Dirty = true
}

// PutChar writes one decoded character at the cursor, translating it
// through the active charset, handling wrap/clamp at the right edge, wide
// character bookkeeping, and insert mode, then advances the cursor by the
// character's display width.
func (s *Screen) PutChar(ch rune) {
	ch = s.Cursor.Charsets[s.Cursor.Charset].Translate(ch)
	width := runeWidth(ch)

	if width == 0 {
		x := s.Cursor.X - 1
		if x < 0 {
			x = 0
		}
		s.Lines[s.Cursor.Y].Cells[x].AppendRune(ch)
		s.Lines[s.Cursor.Y].Dirty = true
		return
	}

	if s.Cursor.X+width > s.Cols {
		if s.Mode.Has(ModeWrap) && s.Cursor.Y >= s.ScrollTop && s.Cursor.Y <= s.ScrollBottom {
			s.Newline()
			s.Cursor.X = 0
		} else {
			s.Cursor.X = s.Cols - width
			if s.Cursor.X < 0 {
				s.Cursor.X = 0
			}
		}
	}

	line := &s.Lines[s.Cursor.Y]

	// Writing over the right half of a previous wide character leaves its
	// left half dangling; blank it rather than show an orphaned glyph.
	if s.Cursor.X > 0 && line.Cells[s.Cursor.X-1].Style.Rendition.Has(RenditionWide) {
		line.Cells[s.Cursor.X-1].Reset()
	}

	if s.Mode.Has(ModeInsert) {
		blank := s.blankCell()
		for i := s.Cursor.X; i < s.Cols; i++ {
			line.Cells[i] = blank
		}
	}

	style := s.Cursor.Style
	if width == 2 {
		style.Rendition |= RenditionWide
	}
	line.Cells[s.Cursor.X].SetRune(ch, style)
	if width == 2 && s.Cursor.X+1 < s.Cols {
		line.Cells[s.Cursor.X+1].Reset()
	}
	line.Dirty = true
	s.ScreenDirty = true

	s.Cursor.X += width
	// Without wrap the cursor stays on the last column, so the next
	// character overwrites it.
	if !s.Mode.Has(ModeWrap) && s.Cursor.X > s.Cols-1 {
		s.Cursor.X = s.Cols - 1
	}
}

// PutChars blanks n cells starting at the cursor without moving it.
func (s *Screen) PutChars(n int) {
	if n <= 0 {
		n = 1
	}
	line := &s.Lines[s.Cursor.Y]
	blank := s.blankCell()
	end := s.Cursor.X + n
	if end > s.Cols {
		end = s.Cols
	}
	for i := s.Cursor.X; i < end; i++ {
		line.Cells[i] = blank
	}
	line.Dirty = true
}

// Newline moves the cursor down one line (scrolling if at the bottom of
// the region) and, in ModeNewLine, also returns it to column 0.
func (s *Screen) Newline() {
	s.Index(true)
	if s.Mode.Has(ModeNewLine) {
		s.Cursor.X = 0
	}
}

// Index moves the cursor vertically by one row. At the region boundary in
// the direction of travel it scrolls instead of moving past it; otherwise
// it moves, clipped to the screen (not just the region).
func (s *Screen) Index(forward bool) {
	if forward {
		if s.Cursor.Y == s.ScrollBottom {
			s.Scroll(1)
		} else if s.Cursor.Y < s.Rows-1 {
			s.Cursor.Y++
		}
	} else {
		if s.Cursor.Y == s.ScrollTop {
			s.Scroll(-1)
		} else if s.Cursor.Y > 0 {
			s.Cursor.Y--
		}
	}
}

// NextLine is Index(true) followed by a carriage return.
func (s *Screen) NextLine() {
	s.Index(true)
	s.Cursor.X = 0
}

// Erase clears part or all of the screen. n is only meaningful for
// EraseNumChars.
func (s *Screen) Erase(kind EraseKind, n int) {
	blank := s.blankCell()
	switch kind {
	case EraseAll:
		for i := range s.Lines {
			if s.Scrollback != nil {
				s.Scrollback.Push(&s.Lines[i])
			}
		}
		for i := range s.Lines {
			s.fillLine(&s.Lines[i])
		}
		s.ScreenDirty = true

	case EraseAbove:
		line := &s.Lines[s.Cursor.Y]
		for i := 0; i <= s.Cursor.X && i < s.Cols; i++ {
			line.Cells[i] = blank
		}
		line.Dirty = true
		for y := 0; y < s.Cursor.Y; y++ {
			s.fillLine(&s.Lines[y])
		}

	case EraseBelow:
		line := &s.Lines[s.Cursor.Y]
		for i := s.Cursor.X; i < s.Cols; i++ {
			line.Cells[i] = blank
		}
		line.Dirty = true
		for y := s.Cursor.Y + 1; y < s.Rows; y++ {
			s.fillLine(&s.Lines[y])
		}

	case EraseLine:
		s.fillLine(&s.Lines[s.Cursor.Y])

	case EraseLineLeft:
		line := &s.Lines[s.Cursor.Y]
		for i := 0; i <= s.Cursor.X && i < s.Cols; i++ {
			line.Cells[i] = blank
		}
		line.Dirty = true

	case EraseLineRight:
		line := &s.Lines[s.Cursor.Y]
		for i := s.Cursor.X; i < s.Cols; i++ {
			line.Cells[i] = blank
		}
		line.Dirty = true

	case EraseNumChars:
		s.PutChars(n)
	}
}

// Tab moves the cursor to the n-th next (n>0) or previous (n<0) tab stop.
// If fewer than |n| stops exist in that direction, it stops at the last
// one it found (or doesn't move at all if none exist).
func (s *Screen) Tab(n int) {
	if n > 0 {
		for ; n > 0; n-- {
			next := -1
			for x := s.Cursor.X + 1; x < s.Cols; x++ {
				if s.Tabs[x] {
					next = x
					break
				}
			}
			if next < 0 {
				break
			}
			s.Cursor.X = next
		}
	} else if n < 0 {
		for ; n < 0; n++ {
			prev := -1
			for x := s.Cursor.X - 1; x >= 0; x-- {
				if s.Tabs[x] {
					prev = x
					break
				}
			}
			if prev < 0 {
				break
			}
			s.Cursor.X = prev
		}
	}
}

// TabSet sets or clears the tab stop at the cursor's current column.
func (s *Screen) TabSet(set bool) {
	s.Tabs[s.Cursor.X] = set
}

// TabsClear clears every tab stop.
func (s *Screen) TabsClear() {
	for i := range s.Tabs {
		s.Tabs[i] = false
	}
}

func (s *Screen) shiftUp(top, bottom int) {
	if top == 0 && s.Scrollback != nil {
		s.Scrollback.Push(&s.Lines[top])
	}
	copy(s.Lines[top:bottom], s.Lines[top+1:bottom+1])
	s.Lines[bottom] = s.blankLine()
}

func (s *Screen) shiftDown(top, bottom int) {
	copy(s.Lines[top+1:bottom+1], s.Lines[top:bottom])
	s.Lines[top] = s.blankLine()
}

// Scroll shifts the scroll region up (n>0) or down (n<0) by n lines,
// clamped to the region's height. Lines scrolled off the top of the region
// go to Scrollback only when the region's top is row 0.
func (s *Screen) Scroll(n int) {
	s.scrollRange(s.ScrollTop, s.ScrollBottom, n)
}

// ScrollAtCursor is Scroll restricted to [cursor.Y, ScrollBottom]; it is a
// no-op if the cursor is outside the scroll region.
func (s *Screen) ScrollAtCursor(n int) {
	if s.Cursor.Y < s.ScrollTop || s.Cursor.Y > s.ScrollBottom {
		return
	}
	s.scrollRange(s.Cursor.Y, s.ScrollBottom, n)
}

func (s *Screen) scrollRange(top, bottom, n int) {
	height := bottom - top + 1
	if height <= 0 {
		return
	}
	if n > 0 {
		if n > height {
			n = height
		}
		for i := 0; i < n; i++ {
			s.shiftUp(top, bottom)
		}
		s.ScrolledLines += n
	} else if n < 0 {
		n = -n
		if n > height {
			n = height
		}
		for i := 0; i < n; i++ {
			s.shiftDown(top, bottom)
		}
	}
	s.ScreenDirty = true
}

// SetScrollRegion sets the scroll region from 1-indexed top/bottom, where 0
// means "use the default" for that side. A malformed region (bottom <= top
// or out of range) resets to the full screen. Either way, the cursor moves
// to (0,0).
func (s *Screen) SetScrollRegion(top, bottom int) {
	if top <= 0 {
		top = 1
	}
	if bottom <= 0 {
		bottom = s.Rows
	}
	top0, bottom0 := top-1, bottom-1
	if bottom0 <= top0 || top0 < 0 || bottom0 > s.Rows-1 {
		top0, bottom0 = 0, s.Rows-1
	}
	s.ScrollTop, s.ScrollBottom = top0, bottom0
	s.Cursor.X, s.Cursor.Y = 0, 0
}

// SetMode enables or disables mode bits on this screen.
func (s *Screen) SetMode(mode Mode, enable bool) {
	s.Mode = s.Mode.Set(mode, enable)
}

// SetRendition enables or disables rendition bits in the cursor's style.
func (s *Screen) SetRendition(bits Rendition, enable bool) {
	if enable {
		s.Cursor.Style.Rendition |= bits
	} else {
		s.Cursor.Style.Rendition &^= bits
	}
}

// ResetStyle returns the cursor's style to DefaultStyle (SGR 0).
func (s *Screen) ResetStyle() {
	s.Cursor.Style = DefaultStyle
}

// SetFg sets the cursor's foreground color.
func (s *Screen) SetFg(c Color) { s.Cursor.Style.Fg = c }

// SetBg sets the cursor's background color.
func (s *Screen) SetBg(c Color) { s.Cursor.Style.Bg = c }

// CharsetUse selects which of the four designated charsets is active.
// Out-of-range slots are ignored.
func (s *Screen) CharsetUse(slot int) {
	if slot >= 0 && slot < 4 {
		s.Cursor.Charset = slot
	}
}

// CharsetDesignate writes cs into one of the four charset slots.
// Out-of-range slots are ignored.
func (s *Screen) CharsetDesignate(slot int, cs Charset) {
	if slot >= 0 && slot < 4 {
		s.Cursor.Charsets[slot] = cs
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CursorSet moves the cursor to 1-indexed (x, y); either may be nil to keep
// the current value on that axis. In ModeOrigin, y is relative to the
// scroll region's top and clipped to the region; otherwise it is clipped to
// the screen.
func (s *Screen) CursorSet(x, y *int) {
	newX, newY := s.Cursor.X, s.Cursor.Y
	if x != nil {
		newX = *x - 1
	}
	if y != nil {
		if s.Mode.Has(ModeOrigin) {
			newY = s.ScrollTop + *y - 1
		} else {
			newY = *y - 1
		}
	}
	s.Cursor.X = clampInt(newX, 0, s.Cols-1)
	if s.Mode.Has(ModeOrigin) {
		s.Cursor.Y = clampInt(newY, s.ScrollTop, s.ScrollBottom)
	} else {
		s.Cursor.Y = clampInt(newY, 0, s.Rows-1)
	}
}

// CursorMove moves the cursor by a relative offset, with the same clipping
// rules as CursorSet.
func (s *Screen) CursorMove(dx, dy int) {
	newX := s.Cursor.X + dx
	newY := s.Cursor.Y + dy
	s.Cursor.X = clampInt(newX, 0, s.Cols-1)
	if s.Mode.Has(ModeOrigin) {
		s.Cursor.Y = clampInt(newY, s.ScrollTop, s.ScrollBottom)
	} else {
		s.Cursor.Y = clampInt(newY, 0, s.Rows-1)
	}
}

// CursorSave stashes the cursor's position, style, and charset state,
// along with whether origin mode is currently active.
func (s *Screen) CursorSave() {
	saved := s.Cursor
	saved.Origin = s.Mode.Has(ModeOrigin)
	s.cursorSaved = saved
}

// CursorLoad restores the cursor from the last CursorSave, including the
// origin mode bit it was saved with.
func (s *Screen) CursorLoad() {
	origin := s.cursorSaved.Origin
	s.Cursor = s.cursorSaved
	s.Mode = s.Mode.Set(ModeOrigin, origin)
}

// AlignmentTest fills every cell on the screen with 'E' at default style,
// per DECALN (ESC # 8).
func (s *Screen) AlignmentTest() {
	for i := range s.Lines {
		line := &s.Lines[i]
		for j := range line.Cells {
			line.Cells[j].SetRune('E', DefaultStyle)
		}
		line.Dirty = true
	}
	s.ScreenDirty = true
}

func isLineBlank(l *Line) bool {
	return l.TrimCount() == len(l.Cells)
}

// String renders the grid as plain text, rows joined by newlines, for
// debugging and quick demos. It carries no styling information; a real
// renderer should walk Lines directly and consult each Cell's Style.
func (s *Screen) String() string {
	var b strings.Builder
	for i := range s.Lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(s.Lines[i].String())
	}
	return b.String()
}

// Resize changes the grid's dimensions in place, clamped to the minimum
// size. Width changes resize every line and extend the tab stop vector;
// height shrinkage first drops blank trailing lines, then evicts remaining
// excess from the top into Scrollback (if any); height growth appends
// blank lines and extends a scroll region that reached the old bottom.
func (s *Screen) Resize(cols, rows int) {
	cols, rows = clampSize(cols, rows)

	if cols != s.Cols {
		for i := range s.Lines {
			s.Lines[i].Resize(cols)
		}
		if s.Cursor.X >= cols {
			s.Cursor.X = cols - 1
		}
		s.Tabs = resizeTabs(s.Tabs, cols)
		s.Cols = cols
	}

	switch {
	case rows < s.Rows:
		toRemove := s.Rows - rows
		for toRemove > 0 && len(s.Lines) > 0 && isLineBlank(&s.Lines[len(s.Lines)-1]) {
			s.Lines = s.Lines[:len(s.Lines)-1]
			toRemove--
		}
		for toRemove > 0 && len(s.Lines) > 0 {
			if s.Scrollback != nil {
				s.Scrollback.Push(&s.Lines[0])
			}
			s.Lines = s.Lines[1:]
			toRemove--
			if s.Cursor.Y > 0 {
				s.Cursor.Y--
			}
		}
		for len(s.Lines) > rows {
			s.Lines = s.Lines[:len(s.Lines)-1]
		}
		if s.Cursor.Y >= rows {
			s.Cursor.Y = rows - 1
		}
		if s.ScrollBottom >= rows {
			s.ScrollBottom = rows - 1
		}
		if s.ScrollTop > s.ScrollBottom {
			s.ScrollTop = 0
		}

	case rows > s.Rows:
		wasFullBottom := s.ScrollBottom == s.Rows-1
		for len(s.Lines) < rows {
			s.Lines = append(s.Lines, s.blankLine())
		}
		if wasFullBottom {
			s.ScrollBottom = rows - 1
		}
	}

	s.Rows = rows
	s.ScreenDirty = true
}

func resizeTabs(old []bool, newCols int) []bool {
	tabs := make([]bool, newCols)
	copy(tabs, old)
	for i := len(old); i < newCols; i++ {
		if (i+1)%8 == 0 {
			tabs[i] = true
		}
	}
	return tabs
}

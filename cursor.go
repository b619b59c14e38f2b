package teepee

// Cursor is the terminal's insertion point plus all of the state that
// travels with it across a save/restore: the style new characters are
// written with, which of the four charset slots is active, the four
// designated charsets themselves, and whether origin mode was in effect
// when the cursor was saved. Folding the origin-mode bit into Cursor rather
// than threading it through separately keeps Save/Load a single struct
// copy.
type Cursor struct {
	X, Y     int
	Style    Style
	Charset  int // index 0-3 into Charsets, currently selected
	Charsets [4]Charset
	Origin   bool // mode_origin at the time this cursor was saved
}

// NewCursor returns a cursor at (0,0) with default style and US-ASCII on
// every charset slot.
func NewCursor() Cursor {
	return Cursor{Style: DefaultStyle}
}

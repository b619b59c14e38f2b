package teepee

import "unicode/utf8"

// cellInline is the number of bytes a Cell stores without a heap
// allocation. One codepoint is the overwhelming common case (at most 4
// UTF-8 bytes); a combining mark or two pushes a cell into its overflow
// string, matching the small-string optimization the engine this package
// is modeled on relies on for scrollback memory pressure.
const cellInline = 4

// Cell holds the text content of one grid position plus its Style. The
// content is the base character followed by zero or more combining marks,
// accessed through String(). The zero Cell has empty content and is not a
// blank; NewCell and Reset produce a blank: a single space with
// DefaultStyle.
type Cell struct {
	inline   [cellInline]byte
	inlineN  uint8
	overflow string // non-empty only once inline capacity is exceeded
	Style    Style
}

// NewCell returns a blank cell: one space, default style.
func NewCell() Cell {
	var c Cell
	c.Reset()
	return c
}

// Reset clears the cell back to a blank space with default style.
func (c *Cell) Reset() {
	c.inline = [cellInline]byte{}
	c.inline[0] = ' '
	c.inlineN = 1
	c.overflow = ""
	c.Style = DefaultStyle
}

// SetRune replaces the cell's content with a single rune, discarding any
// combining marks previously attached, and applies the given style.
func (c *Cell) SetRune(r rune, style Style) {
	c.overflow = ""
	n := encodeRuneInto(c.inline[:], r)
	c.inlineN = uint8(n)
	c.Style = style
}

// AppendRune appends a combining mark to the cell's existing content,
// spilling to the heap-backed overflow string if it no longer fits inline.
func (c *Cell) AppendRune(r rune) {
	if c.overflow == "" {
		var buf [4]byte
		n := encodeRuneInto(buf[:], r)
		if int(c.inlineN)+n <= cellInline {
			copy(c.inline[c.inlineN:], buf[:n])
			c.inlineN += uint8(n)
			return
		}
		c.overflow = string(c.inline[:c.inlineN]) + string(buf[:n])
		return
	}
	c.overflow += string(r)
}

// String returns the cell's content: the base character followed by any
// combining marks.
func (c *Cell) String() string {
	if c.overflow != "" {
		return c.overflow
	}
	return string(c.inline[:c.inlineN])
}

// IsBlank reports whether the cell is a single space with a default style,
// the canonical "nothing here" value used by right-trimming in scrollback
// encoding and by erase operations.
func (c *Cell) IsBlank() bool {
	return c.inlineN == 1 && c.overflow == "" && c.inline[0] == ' ' && c.Style.IsDefault()
}

func encodeRuneInto(buf []byte, r rune) int {
	return utf8.EncodeRune(buf, r)
}

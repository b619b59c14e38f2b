package teepee

// ColorKind discriminates the variants of Color.
type ColorKind uint8

const (
	ColorDefaultFg ColorKind = iota
	ColorDefaultBg
	ColorIndexed
	ColorRGB
)

// Color is a tagged value identifying a foreground or background color.
// DefaultFg/DefaultBg are sentinels left for the renderer to resolve
// against its own palette; Indexed names one of the 256 standard palette
// slots; RGB carries an exact 24-bit color from an SGR 38/48;2;... sequence.
type Color struct {
	Kind ColorKind
	// Index is valid when Kind == ColorIndexed.
	Index uint8
	// R, G, B are valid when Kind == ColorRGB.
	R, G, B uint8
}

// DefaultFg is the sentinel foreground color.
var DefaultFg = Color{Kind: ColorDefaultFg}

// DefaultBg is the sentinel background color.
var DefaultBg = Color{Kind: ColorDefaultBg}

// Indexed builds a Color referring to palette slot i (0-255).
func Indexed(i uint8) Color { return Color{Kind: ColorIndexed, Index: i} }

// RGB builds a Color with an exact 24-bit value.
func RGB(r, g, b uint8) Color { return Color{Kind: ColorRGB, R: r, G: g, B: b} }

// Rendition is a bitset of boolean style attributes, independent of color.
type Rendition uint8

const (
	RenditionBold Rendition = 1 << iota
	RenditionUnderlined
	RenditionBlinking
	RenditionInverse
	RenditionInvisible
	// RenditionAll covers every real attribute bit; used to mask WIDE and
	// DIRTY out of equality checks.
	RenditionAll = RenditionBold | RenditionUnderlined | RenditionBlinking | RenditionInverse | RenditionInvisible

	// RenditionWide marks the left half of a double-width glyph.
	RenditionWide Rendition = 1 << 5
	// RenditionDirty is a rendering hint, not a real display attribute.
	RenditionDirty Rendition = 1 << 6
)

// Has reports whether every bit in mask is set.
func (r Rendition) Has(mask Rendition) bool { return r&mask == mask }

// Style bundles a foreground color, background color, and rendition bits.
// The default is DefaultStyle: both colors default, no attributes set. The
// zero Style differs from it, since its Bg has Kind ColorDefaultFg.
type Style struct {
	Fg        Color
	Bg        Color
	Rendition Rendition
}

// DefaultStyle is the default style: default colors, no rendition.
var DefaultStyle = Style{Fg: DefaultFg, Bg: DefaultBg}

// IsDefault reports whether s equals DefaultStyle, ignoring RenditionWide and
// RenditionDirty.
func (s Style) IsDefault() bool {
	return s.Fg == DefaultStyle.Fg && s.Bg == DefaultStyle.Bg && s.Rendition&RenditionAll == 0
}

// Equal compares two styles ignoring RenditionWide and RenditionDirty; only
// the bits in RenditionAll take part in the comparison.
func (s Style) Equal(o Style) bool {
	return s.Fg == o.Fg && s.Bg == o.Bg && s.Rendition&RenditionAll == o.Rendition&RenditionAll
}

// Mode is the screen-level bitset of VT modes that affect interpretation of
// subsequent bytes: line wrap, origin mode, newline mode, insert mode, and
// reverse video. TerminalState mirrors changes to this bitset onto both the
// primary and alternate screens, since xterm treats most of these as global.
type Mode uint8

const (
	ModeWrap Mode = 1 << iota
	ModeOrigin
	ModeNewLine
	ModeInsert
	ModeReverseVideo
	// ModeAppCursorKeys mirrors DECCKM (CSI ?1h/l): it doesn't change how the
	// screen is drawn, only how the input encoder translates the cursor keys,
	// but it lives in the same mirrored bitset since xterm treats it the same
	// global-to-the-terminal way as the display modes above.
	ModeAppCursorKeys
)

// DefaultMode is the mode bitset a freshly constructed screen starts with:
// wrap-on-overflow is the only VT100 default that is actually on.
const DefaultMode Mode = ModeWrap

// Has reports whether every bit in mask is set.
func (m Mode) Has(mask Mode) bool { return m&mask == mask }

// Set returns m with mask enabled or disabled according to enable.
func (m Mode) Set(mask Mode, enable bool) Mode {
	if enable {
		return m | mask
	}
	return m &^ mask
}

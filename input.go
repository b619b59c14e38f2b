package teepee

import "fmt"

// Modifier is a bitset of the keyboard modifiers held during a key event.
type Modifier int

const (
	ModShift Modifier = 1 << iota
	ModAlt
	ModControl
)

// vtModifierArg returns the VT escape-sequence modifier argument for m: 0x30
// (ASCII '0', meaning "no argument needed") when no modifier is held, else
// bits+1+0x30 per the VT convention (shift=2, alt=3, shift+alt=4, ctrl=5, …).
func vtModifierArg(m Modifier) int {
	if m == 0 {
		return 0x30
	}
	return int(m) + 1 + 0x30
}

// Key is a cursor/editing key with no character representation.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyRight
	KeyLeft
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
)

// FKey is a function key, F1 through F20.
type FKey int

const (
	F1 FKey = 1 + iota
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
	F13
	F14
	F15
	F16
	F17
	F18
	F19
	F20
)

// fkeyCSINumber is the well-known skip-numbering table xterm uses for the
// CSI <n>~ encoding of F5 upward: F6 really is "17", not a typo, because F5
// took plain CSI 15~ and the sequence deliberately leaves a gap where PF6
// would have collided with an older DEC keyboard's F6 mapping.
var fkeyCSINumber = [...]int{
	F5: 15, F6: 17, F7: 18, F8: 19,
	F9: 20, F10: 21, F11: 23, F12: 24,
	F13: 25, F14: 26, F15: 28, F16: 29,
	F17: 31, F18: 32, F19: 33, F20: 34,
}

// InputKind discriminates the payload carried by an InputData value.
type InputKind int

const (
	InputKey InputKind = iota
	InputFKey
	InputChar
	InputStr
	InputEmpty
)

// InputData is the tagged union of everything Encode can turn into pty
// bytes: a cursor/editing Key, a function key, a single character, or a
// literal string to send untouched.
type InputData struct {
	Kind Kind
	Key  Key
	FKey FKey
	Char rune
	Str  string
	Mod  Modifier
}

// Kind is an alias kept for InputData's Kind field; see InputKind.
type Kind = InputKind

// NewKeyInput, NewFKeyInput, NewCharInput, and NewStrInput build an
// InputData of the matching kind.
func NewKeyInput(k Key, m Modifier) InputData   { return InputData{Kind: InputKey, Key: k, Mod: m} }
func NewFKeyInput(f FKey, m Modifier) InputData { return InputData{Kind: InputFKey, FKey: f, Mod: m} }
func NewCharInput(ch rune, m Modifier) InputData {
	return InputData{Kind: InputChar, Char: ch, Mod: m}
}
func NewStrInput(s string) InputData { return InputData{Kind: InputStr, Str: s} }

// ErrEncodeCapacity is returned by EncodeInto when the caller-supplied
// buffer is too small to hold the encoded sequence; no partial write
// occurs.
type ErrEncodeCapacity struct {
	Need int
}

func (e ErrEncodeCapacity) Error() string {
	return fmt.Sprintf("teepee: input buffer too small, need %d bytes", e.Need)
}

// Encode translates ev into the exact VT byte sequence to write to the pty,
// consulting appCursorKeys (DECCKM) and newlineMode (LNM) for the two
// sequences whose encoding depends on terminal mode.
func Encode(ev InputData, appCursorKeys, newlineMode bool) []byte {
	switch ev.Kind {
	case InputKey:
		return encodeKey(ev.Key, ev.Mod, appCursorKeys)
	case InputFKey:
		return encodeFKey(ev.FKey, ev.Mod)
	case InputChar:
		return encodeChar(ev.Char, ev.Mod, newlineMode)
	case InputStr:
		return []byte(ev.Str)
	default:
		return nil
	}
}

// EncodeInto writes ev's encoding into buf and returns the number of bytes
// written, or ErrEncodeCapacity if buf is too small. This mirrors the
// caller-owned-buffer API the wire format is traditionally described with;
// Encode above is the idiomatic Go entry point for callers who don't need
// to avoid an allocation.
func EncodeInto(buf []byte, ev InputData, appCursorKeys, newlineMode bool) (int, error) {
	out := Encode(ev, appCursorKeys, newlineMode)
	if len(out) > len(buf) {
		return 0, ErrEncodeCapacity{Need: len(out)}
	}
	return copy(buf, out), nil
}

func encodeKey(k Key, m Modifier, appCursorKeys bool) []byte {
	switch k {
	case KeyUp:
		return csiOrSS3(appCursorKeys, 'A', m)
	case KeyDown:
		return csiOrSS3(appCursorKeys, 'B', m)
	case KeyRight:
		return csiOrSS3(appCursorKeys, 'C', m)
	case KeyLeft:
		return csiOrSS3(appCursorKeys, 'D', m)
	case KeyHome:
		return csi(nil, 'H', m)
	case KeyEnd:
		return csi(nil, 'F', m)
	case KeyPageUp:
		return csi([]byte("5"), '~', m)
	case KeyPageDown:
		return csi([]byte("6"), '~', m)
	case KeyInsert:
		return csi([]byte("2"), '~', m)
	case KeyDelete:
		return csi([]byte("3"), '~', m)
	default:
		return nil
	}
}

// csiOrSS3 picks CSI vs SS3 for the cursor-direction keys depending on
// DECCKM (application cursor keys mode).
func csiOrSS3(appCursorKeys bool, letter byte, m Modifier) []byte {
	if appCursorKeys {
		return ss3(letter, m)
	}
	return csi(nil, letter, m)
}

// ss3 encodes ESC O [<modarg>] <cmd>: no separator between the modifier
// argument and the command byte when there's no numeric argument to its
// left.
func ss3(cmd byte, m Modifier) []byte {
	out := []byte{0x1b, 'O'}
	if m != 0 {
		out = append(out, byte(vtModifierArg(m)))
	}
	return append(out, cmd)
}

// csi encodes ESC [ [<arg>[;<modarg>]] <cmd>. When arg is nil and a
// modifier is present, the modifier argument is written directly with no
// leading ';' (there's nothing to its left to separate it from); when arg
// is given, the modifier argument (if any) is separated from it by ';'.
func csi(arg []byte, cmd byte, m Modifier) []byte {
	out := []byte{0x1b, '['}
	if arg != nil {
		out = append(out, arg...)
		if m != 0 {
			out = append(out, ';', byte(vtModifierArg(m)))
		}
	} else if m != 0 {
		out = append(out, byte(vtModifierArg(m)))
	}
	return append(out, cmd)
}

func encodeFKey(f FKey, m Modifier) []byte {
	if f >= F1 && f <= F4 {
		return ss3(byte('P'+(f-F1)), m)
	}
	if int(f) < len(fkeyCSINumber) {
		if n := fkeyCSINumber[f]; n != 0 {
			return csi([]byte(itoa(n)), '~', m)
		}
	}
	return nil
}

func encodeChar(ch rune, m Modifier, newlineMode bool) []byte {
	switch ch {
	case '\r':
		if newlineMode && m == 0 {
			return []byte{'\r', '\n'}
		}
		return altPrefixed('\r', m)
	case '\t':
		return altPrefixed(0x09, m)
	case 0x7f:
		return altPrefixed(0x7f, m)
	}

	if ch > 0x7f {
		// Non-ASCII: emitted untransformed, CONTROL/ALT have no defined
		// effect on it (different real terminals disagree here).
		buf := make([]byte, 4)
		n := encodeRuneInto(buf, ch)
		return buf[:n]
	}

	b := byte(ch)
	if m&ModControl != 0 {
		switch {
		case b >= 0x40 && b <= 0x5f:
			b -= 0x40
		case b >= 0x60 && b <= 0x7f:
			b -= 0x60
		}
	}
	return altPrefixed(b, m)
}

func altPrefixed(b byte, m Modifier) []byte {
	if m&ModAlt != 0 {
		return []byte{0x1b, b}
	}
	return []byte{b}
}

// itoa is a tiny non-allocating-friendly decimal formatter so this file
// doesn't need strconv for single- and double-digit report numbers.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [8]byte
	i := len(buf)
	neg := n < 0
	if neg {
		n = -n
	}
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// AnswerBack is the literal identifying string emitted for Report ==
// ReportAnswerBack. Its content is implementation-defined; this one
// identifies the engine by name.
const AnswerBack = "TeePee"

// EncodeReport produces the fixed byte string for a pending status report,
// given the active screen's current 1-indexed cursor position.
func EncodeReport(r Report, cursorX, cursorY int) []byte {
	switch r {
	case ReportAnswerBack:
		return []byte(AnswerBack)
	case ReportPrimaryAttrs:
		return []byte("\x1b[?1;2c")
	case ReportSecondaryAttrs:
		return []byte("\x1b>0;0;0c")
	case ReportDeviceStatus:
		return []byte("\x1b[0n")
	case ReportCursorPos:
		return []byte("\x1b[" + itoa(cursorY) + ";" + itoa(cursorX) + "R")
	case ReportTermParams0:
		return []byte("\x1b[2;1;1;120;120;1;0;x")
	case ReportTermParams1:
		return []byte("\x1b[3;1;1;120;120;1;0;x")
	case ReportBell:
		return nil // bell has no byte encoding; it's a side channel flag
	default:
		return nil
	}
}

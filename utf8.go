package teepee

// ReplacementChar is emitted in place of any malformed UTF-8 byte sequence.
const ReplacementChar rune = '�'

// utf8State is the streaming decoder's state: either Ground (no sequence in
// progress) or Continues, waiting for the remaining continuation bytes of a
// multi-byte sequence.
type utf8State int

const (
	utf8Ground utf8State = iota
	utf8Continues
)

// UTF8Decoder decodes a byte stream one byte at a time, carrying partial
// multi-byte sequences across calls. It never panics and never blocks; a
// malformed sequence yields a replacement character and the decoder
// recovers to Ground.
type UTF8Decoder struct {
	state     utf8State
	expected  uint8 // total continuation bytes for the sequence in progress
	remaining uint8 // continuation bytes still needed
	accum     rune  // codepoint bits accumulated so far
}

// utf8Result classifies the outcome of feeding one byte to the decoder.
type utf8Result int

const (
	// UTF8Pending means the byte was consumed as part of a multi-byte
	// sequence that is not yet complete.
	UTF8Pending utf8Result = iota
	// UTF8Emit means a complete codepoint is returned as Push's second value.
	UTF8Emit
	// UTF8Error means the byte sequence was malformed; the decoder has
	// already reset to Ground.
	UTF8Error
)

// lower bound of the valid codepoint range for a sequence with the given
// number of continuation bytes (1, 2, or 3; index 0 is unused since a
// single ASCII byte never goes through the Continues path).
var utf8MinForLen = [4]rune{0, 0x80, 0x800, 0x10000}

const utf8MaxCodepoint rune = 0x10FFFF

// Push feeds one byte to the decoder. On UTF8Emit the decoded rune is
// returned as the second value; on UTF8Pending and UTF8Error the second
// value is 0.
func (d *UTF8Decoder) Push(b byte) (utf8Result, rune) {
	switch d.state {
	case utf8Ground:
		return d.ground(b)
	default:
		return d.continues(b)
	}
}

func (d *UTF8Decoder) ground(b byte) (utf8Result, rune) {
	switch {
	case b <= 0x7f:
		return UTF8Emit, rune(b)
	case b <= 0xbf:
		// stray continuation byte with no lead
		return UTF8Error, 0
	case b <= 0xdf:
		d.start(1, rune(b&0x1f))
		return UTF8Pending, 0
	case b <= 0xef:
		d.start(2, rune(b&0x0f))
		return UTF8Pending, 0
	case b <= 0xf4:
		d.start(3, rune(b&0x07))
		return UTF8Pending, 0
	default:
		return UTF8Error, 0
	}
}

func (d *UTF8Decoder) start(expected uint8, lead rune) {
	d.state = utf8Continues
	d.expected = expected
	d.remaining = expected
	d.accum = lead
}

func (d *UTF8Decoder) continues(b byte) (utf8Result, rune) {
	if b < 0x80 || b > 0xbf {
		// Not a continuation byte: the in-flight sequence is abandoned and
		// this byte is consumed as the error, not reprocessed as the start
		// of a fresh sequence (matches the reference decoder this engine
		// is modeled on).
		d.reset()
		return UTF8Error, 0
	}

	d.accum = (d.accum << 6) | rune(b&0x3f)
	d.remaining--
	if d.remaining > 0 {
		return UTF8Pending, 0
	}

	cp := d.accum
	length := d.expected
	d.reset()

	if cp < utf8MinForLen[length] || cp > utf8MaxCodepoint {
		return UTF8Error, 0
	}
	if cp >= 0xd800 && cp <= 0xdfff {
		// surrogate halves are never valid scalar values
		return UTF8Error, 0
	}
	return UTF8Emit, cp
}

func (d *UTF8Decoder) reset() {
	d.state = utf8Ground
	d.expected = 0
	d.remaining = 0
	d.accum = 0
}

// Pending reports whether a multi-byte sequence is currently in progress.
func (d *UTF8Decoder) Pending() bool {
	return d.state == utf8Continues
}

// Reset discards any in-flight sequence and reports whether one was
// discarded (callers may want to know whether data was lost).
func (d *UTF8Decoder) Reset() bool {
	had := d.Pending()
	d.reset()
	return had
}

// DecodeLossy decodes a full byte slice, substituting ReplacementChar for
// every malformed sequence. It is a convenience wrapper around Push for
// callers that do not need streaming behavior (e.g. tests).
func DecodeLossy(data []byte) []rune {
	var d UTF8Decoder
	out := make([]rune, 0, len(data))
	for _, b := range data {
		switch res, r := d.Push(b); res {
		case UTF8Emit:
			out = append(out, r)
		case UTF8Error:
			out = append(out, ReplacementChar)
		}
	}
	if d.Reset() {
		out = append(out, ReplacementChar)
	}
	return out
}

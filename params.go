package teepee

// paramsMax is the maximum number of numeric parameters the parser keeps;
// further parameters are silently discarded rather than grown without
// bound, bounding per-sequence work regardless of how many `;`-separated
// values a hostile or buggy sender supplies.
const paramsMax = 17

// Params accumulates the semicolon-separated numeric parameters of a CSI
// sequence as they arrive one digit at a time.
type Params struct {
	ints []int32
	open bool // true while the last int is still accepting digits
}

// reset discards all accumulated parameters.
func (p *Params) reset() {
	p.ints = p.ints[:0]
	p.open = false
}

// pushDigit folds one ASCII digit into the currently open parameter,
// opening a new zero-valued parameter first if none is open. Once
// paramsMax parameters exist, further digits and separators are dropped.
func (p *Params) pushDigit(d byte) {
	if !p.open {
		if len(p.ints) >= paramsMax {
			return
		}
		p.ints = append(p.ints, 0)
		p.open = true
	}
	i := len(p.ints) - 1
	v := int64(p.ints[i])*10 + int64(d-'0')
	if v > 0x7fffffff {
		v = 0x7fffffff // saturate rather than overflow
	}
	p.ints[i] = int32(v)
}

// pushSeparator closes the currently open parameter (or opens an implicit
// zero-valued one for a bare `;`), so the next digit starts a fresh value.
func (p *Params) pushSeparator() {
	if len(p.ints) >= paramsMax {
		p.open = false
		return
	}
	if !p.open {
		p.ints = append(p.ints, 0)
	}
	p.open = false
}

// Len returns the number of parameters accumulated so far.
func (p *Params) Len() int { return len(p.ints) }

// Get returns the value at index i, or def if i is out of range or the
// value stored there is 0 — VT sequences conventionally treat an omitted
// or explicit 0 parameter as "use the default" for most final bytes.
func (p *Params) Get(i int, def int) int {
	if i < 0 || i >= len(p.ints) || p.ints[i] == 0 {
		return def
	}
	return int(p.ints[i])
}

// GetRaw returns the literal value at index i without default substitution,
// or ok=false if i is out of range. Used by SGR sub-parameter parsing where
// a literal 0 (e.g. palette index 0 or an RGB component of 0) is meaningful.
func (p *Params) GetRaw(i int) (int, bool) {
	if i < 0 || i >= len(p.ints) {
		return 0, false
	}
	return int(p.ints[i]), true
}

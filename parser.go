package teepee

// ScreenChoice selects which of TerminalState's two screens is addressed.
type ScreenChoice int

const (
	ScreenPrimary ScreenChoice = iota
	ScreenAlternate
)

// VTScreen is the full set of verbs the parser dispatches onto a single
// screen grid. Screen is the real implementation; tests may substitute a
// spy that only records calls, since this interface is the parser's only
// polymorphic surface.
type VTScreen interface {
	PutChar(ch rune)
	PutChars(n int)
	Newline()
	Index(forward bool)
	NextLine()
	Erase(kind EraseKind, n int)
	Tab(n int)
	TabSet(set bool)
	TabsClear()
	Scroll(n int)
	ScrollAtCursor(n int)
	SetScrollRegion(top, bottom int)
	SetMode(mode Mode, enable bool)
	SetRendition(bits Rendition, enable bool)
	ResetStyle()
	SetFg(c Color)
	SetBg(c Color)
	CharsetUse(slot int)
	CharsetDesignate(slot int, cs Charset)
	CursorSet(x, y *int)
	CursorMove(dx, dy int)
	CursorSave()
	CursorLoad()
	AlignmentTest()
}

var _ VTScreen = (*Screen)(nil)

// Dispatch is the terminal-level collaborator the parser talks to for
// anything that doesn't belong to a single screen: which screen is active,
// mode bits that mirror across both screens, queued status reports, and a
// full reset. TerminalState implements this.
type Dispatch interface {
	ActiveScreen() VTScreen
	Screen(choice ScreenChoice) VTScreen
	SwitchScreen(choice ScreenChoice)
	SetGlobalMode(mode Mode, enable bool)
	RequestReport(r Report)
	Reset()
}

type parserState int

const (
	stGround parserState = iota
	stEscape
	stEscapeInterm
	stCsiEntry
	stCsiParam
	stCsiInterm
	stCsiIgnore
	stApcEntry
	stApcInterm
	stApcTp
	stCtrlStrIgnore
)

// Parser is a byte-driven VT/ANSI escape sequence state machine. It carries
// no reference to any particular screen; each call to Input takes the
// Dispatch to act on, so one Parser could in principle drive several
// terminals (TerminalState does not do this, but nothing prevents it).
type Parser struct {
	state            parserState
	utf8             UTF8Decoder
	interm1, interm2 byte
	params           Params

	apcBuf []byte
	apc    APCProvider
}

// NewParser returns a Parser in the Ground state.
func NewParser() *Parser {
	return &Parser{}
}

// SetAPCProvider wires a collaborator to receive the payload of recognized
// `ESC _ T P ...` application program command sequences. A nil provider
// (the default) means such sequences are parsed and discarded.
func (p *Parser) SetAPCProvider(provider APCProvider) {
	p.apc = provider
}

// Input feeds one byte through the state machine, dispatching any
// completed verb onto d. It never returns an error: malformed sequences
// are always absorbed and the machine converges back to Ground.
func (p *Parser) Input(d Dispatch, b byte) {
	if b == 0x18 || b == 0x1a {
		p.cancel()
		return
	}
	if b == 0x1b {
		p.flushAPC()
		p.state = stEscape
		p.params.reset()
		p.interm1, p.interm2 = 0, 0
		return
	}

	if p.inControlString() {
		if b == 0x07 {
			p.flushAPC()
			p.state = stGround
			return
		}
		p.controlStringByte(b)
		return
	}

	if b < 0x20 || b == 0x7f {
		p.c0(d, b)
		return
	}

	switch p.state {
	case stGround:
		p.ground(d, b)
	case stEscape:
		p.escape(d, b)
	case stEscapeInterm:
		p.escapeInterm(d, b)
	case stCsiEntry, stCsiParam:
		p.csiParam(d, b)
	case stCsiInterm:
		p.csiIntermState(d, b)
	case stCsiIgnore:
		p.csiIgnore(b)
	}
}

func (p *Parser) cancel() {
	p.utf8.Reset()
	p.flushAPC()
	p.state = stGround
	p.params.reset()
	p.interm1, p.interm2 = 0, 0
}

func (p *Parser) inControlString() bool {
	switch p.state {
	case stApcEntry, stApcInterm, stApcTp, stCtrlStrIgnore:
		return true
	default:
		return false
	}
}

func (p *Parser) controlStringByte(b byte) {
	switch p.state {
	case stApcEntry:
		if b == 'T' {
			p.state = stApcInterm
		} else {
			p.state = stCtrlStrIgnore
		}
	case stApcInterm:
		if b == 'P' {
			p.state = stApcTp
		} else {
			p.state = stCtrlStrIgnore
		}
	case stApcTp:
		p.apcBuf = append(p.apcBuf, b)
	case stCtrlStrIgnore:
		// no provider recognizes this prefix; bytes are discarded
	}
}

func (p *Parser) flushAPC() {
	if p.apc != nil && len(p.apcBuf) > 0 {
		p.apc.Receive(p.apcBuf)
	}
	p.apcBuf = p.apcBuf[:0]
}

// c0 executes the C0 control codes that take effect immediately without
// leaving the current parser state (only reached outside control strings).
func (p *Parser) c0(d Dispatch, b byte) {
	scr := d.ActiveScreen()
	switch b {
	case 0x05: // ENQ
		d.RequestReport(ReportAnswerBack)
	case 0x07: // BEL
		d.RequestReport(ReportBell)
	case 0x08: // BS
		scr.CursorMove(-1, 0)
	case 0x09: // HT
		scr.Tab(1)
	case 0x0a, 0x0b, 0x0c: // LF, VT, FF
		scr.Newline()
	case 0x0d: // CR
		one := 1
		scr.CursorSet(&one, nil)
	case 0x0e: // SO
		scr.CharsetUse(1)
	case 0x0f: // SI
		scr.CharsetUse(0)
	default:
		// NUL, SOH, STX, ETX, EOT, ACK, DLE, DC1-4, NAK, SYN, ETB, FS, GS, RS, US, DEL
	}
}

func (p *Parser) ground(d Dispatch, b byte) {
	switch res, r := p.utf8.Push(b); res {
	case UTF8Emit:
		d.ActiveScreen().PutChar(r)
	case UTF8Error:
		d.ActiveScreen().PutChar(ReplacementChar)
	}
}

func (p *Parser) escape(d Dispatch, b byte) {
	if b >= 0x20 && b <= 0x2f {
		p.interm1 = b
		p.state = stEscapeInterm
		return
	}

	p.state = stGround
	scr := d.ActiveScreen()
	switch b {
	case 'D':
		scr.Index(true)
	case 'M':
		scr.Index(false)
	case 'E':
		scr.NextLine()
	case 'H':
		scr.TabSet(true)
	case 'Z':
		d.RequestReport(ReportPrimaryAttrs)
	case '7':
		scr.CursorSave()
	case '8':
		scr.CursorLoad()
	case 'c':
		d.Reset()
	case 'n':
		scr.CharsetUse(2)
	case 'o':
		scr.CharsetUse(3)
	case '[':
		p.state = stCsiEntry
		p.params.reset()
		p.interm1, p.interm2 = 0, 0
	case '_':
		p.state = stApcEntry
		p.apcBuf = p.apcBuf[:0]
	case 'P', 'X', ']', '^':
		p.state = stCtrlStrIgnore
	default:
		// unrecognized single-byte escape, ignored
	}
}

func charsetSlotFromInterm(interm byte) (int, bool) {
	switch interm {
	case '(':
		return 0, true
	case ')':
		return 1, true
	case '*':
		return 2, true
	case '+':
		return 3, true
	default:
		return 0, false
	}
}

func (p *Parser) escapeInterm(d Dispatch, b byte) {
	p.state = stGround
	switch {
	case p.interm1 == '#' && b == '8':
		d.ActiveScreen().AlignmentTest()
	default:
		if slot, ok := charsetSlotFromInterm(p.interm1); ok {
			if cs, ok := DecodeCharsetDesignator(b); ok {
				d.ActiveScreen().CharsetDesignate(slot, cs)
			}
		}
	}
}

func (p *Parser) csiParam(d Dispatch, b byte) {
	switch {
	case b >= '0' && b <= '9':
		p.params.pushDigit(b)
		p.state = stCsiParam
	case b == ';':
		p.params.pushSeparator()
		p.state = stCsiParam
	case b == ':':
		p.state = stCsiIgnore
	case b == '<' || b == '=' || b == '>' || b == '?':
		p.interm1 = b
		p.state = stCsiParam
	case b >= 0x20 && b <= 0x2f:
		p.interm2 = b
		p.state = stCsiInterm
	case b >= 0x40 && b <= 0x7e:
		p.csiDispatch(d, b)
		p.state = stGround
	default:
		// stray byte, stay in place
	}
}

func (p *Parser) csiIntermState(d Dispatch, b byte) {
	switch {
	case b >= 0x20 && b <= 0x2f:
		p.interm2 = b
	case b >= 0x40 && b <= 0x7e:
		p.csiDispatch(d, b)
		p.state = stGround
	default:
		p.state = stCsiIgnore
	}
}

func (p *Parser) csiIgnore(b byte) {
	if b >= 0x40 && b <= 0x7e {
		p.state = stGround
	}
}

func (p *Parser) csiDispatch(d Dispatch, b byte) {
	switch {
	case p.interm2 != 0:
		// SGR and friends never carry a second intermediate in practice;
		// combinations this parser doesn't recognize are ignored.
	case p.interm1 == '?':
		if b == 'h' || b == 'l' {
			p.csiModesDec(d, b == 'h')
		}
	case p.interm1 == '>':
		if b == 'c' {
			d.RequestReport(ReportSecondaryAttrs)
		}
	case p.interm1 == 0:
		p.csiDispatchPlain(d, b)
	default:
		// '<', '=' private markers: no sequences in scope use them
	}
}

func intp(v int) *int { return &v }

func (p *Parser) csiDispatchPlain(d Dispatch, b byte) {
	scr := d.ActiveScreen()
	switch b {
	case '@':
		scr.PutChars(p.params.Get(0, 1))
	case 'A':
		scr.CursorMove(0, -p.params.Get(0, 1))
	case 'B':
		scr.CursorMove(0, p.params.Get(0, 1))
	case 'C':
		scr.CursorMove(p.params.Get(0, 1), 0)
	case 'D':
		scr.CursorMove(-p.params.Get(0, 1), 0)
	case 'G':
		scr.CursorSet(intp(p.params.Get(0, 1)), nil)
	case 'H', 'f':
		scr.CursorSet(intp(p.params.Get(1, 1)), intp(p.params.Get(0, 1)))
	case 'I':
		scr.Tab(p.params.Get(0, 1))
	case 'Z':
		scr.Tab(-p.params.Get(0, 1))
	case 'J':
		switch p.params.Get(0, 0) {
		case 0:
			scr.Erase(EraseBelow, 0)
		case 1:
			scr.Erase(EraseAbove, 0)
		case 2:
			scr.Erase(EraseAll, 0)
		}
	case 'K':
		switch p.params.Get(0, 0) {
		case 0:
			scr.Erase(EraseLineRight, 0)
		case 1:
			scr.Erase(EraseLineLeft, 0)
		case 2:
			scr.Erase(EraseLine, 0)
		}
	case 'L':
		scr.ScrollAtCursor(-p.params.Get(0, 1))
	case 'M':
		scr.ScrollAtCursor(p.params.Get(0, 1))
	case 'P':
		scr.Erase(EraseNumChars, p.params.Get(0, 1))
	case 'X':
		scr.Erase(EraseNumChars, p.params.Get(0, 1))
	case 'S':
		scr.Scroll(p.params.Get(0, 1))
	case 'T':
		scr.Scroll(-p.params.Get(0, 1))
	case 'c':
		d.RequestReport(ReportPrimaryAttrs)
	case 'd':
		scr.CursorSet(nil, intp(p.params.Get(0, 1)))
	case 'g':
		switch p.params.Get(0, 0) {
		case 0:
			scr.TabSet(false)
		case 3:
			scr.TabsClear()
		}
	case 'h', 'l':
		enable := b == 'h'
		switch p.params.Get(0, 0) {
		case 4:
			d.SetGlobalMode(ModeInsert, enable)
		case 20:
			d.SetGlobalMode(ModeNewLine, enable)
		}
	case 'm':
		p.csiSGR(d)
	case 'n':
		switch p.params.Get(0, 0) {
		case 5:
			d.RequestReport(ReportDeviceStatus)
		case 6:
			d.RequestReport(ReportCursorPos)
		}
	case 'r':
		scr.SetScrollRegion(p.params.Get(0, 0), p.params.Get(1, 0))
	case 's':
		scr.CursorSave()
	case 'u':
		scr.CursorLoad()
	case 'x':
		if p.params.Get(0, 0) == 1 {
			d.RequestReport(ReportTermParams1)
		} else {
			d.RequestReport(ReportTermParams0)
		}
	}
}

func (p *Parser) csiModesDec(d Dispatch, enable bool) {
	switch p.params.Get(0, 0) {
	case 1:
		d.SetGlobalMode(ModeAppCursorKeys, enable)
	case 5:
		d.SetGlobalMode(ModeReverseVideo, enable)
	case 6:
		d.SetGlobalMode(ModeOrigin, enable)
		home := 1
		d.Screen(ScreenPrimary).CursorSet(&home, &home)
		d.Screen(ScreenAlternate).CursorSet(&home, &home)
	case 20:
		d.SetGlobalMode(ModeNewLine, enable)
	case 47, 1047:
		if enable {
			d.SwitchScreen(ScreenAlternate)
		} else {
			d.SwitchScreen(ScreenPrimary)
		}
	case 1048:
		if enable {
			d.ActiveScreen().CursorSave()
		} else {
			d.ActiveScreen().CursorLoad()
		}
	case 1049:
		if enable {
			d.Screen(ScreenPrimary).CursorSave()
			d.SwitchScreen(ScreenAlternate)
			d.ActiveScreen().Erase(EraseAll, 0)
		} else {
			d.SwitchScreen(ScreenPrimary)
			d.Screen(ScreenPrimary).CursorLoad()
		}
	}
}

// csiSGR applies Select Graphic Rendition parameters in order, stopping at
// the first malformed 38/48 extended-color sub-sequence (an SGR sequence
// either fully applies or bails on its unparsed remainder, never partially
// misapplies a color).
func (p *Parser) csiSGR(d Dispatch) {
	scr := d.ActiveScreen()
	if p.params.Len() == 0 {
		scr.ResetStyle()
		return
	}

	i := 0
paramsLoop:
	for i < p.params.Len() {
		v, _ := p.params.GetRaw(i)
		switch {
		case v == 0:
			scr.ResetStyle()
		case v == 1:
			scr.SetRendition(RenditionBold, true)
		case v == 4:
			scr.SetRendition(RenditionUnderlined, true)
		case v == 5:
			scr.SetRendition(RenditionBlinking, true)
		case v == 7:
			scr.SetRendition(RenditionInverse, true)
		case v == 8:
			scr.SetRendition(RenditionInvisible, true)
		case v == 22:
			scr.SetRendition(RenditionBold, false)
		case v == 24:
			scr.SetRendition(RenditionUnderlined, false)
		case v == 25:
			scr.SetRendition(RenditionBlinking, false)
		case v == 27:
			scr.SetRendition(RenditionInverse, false)
		case v == 28:
			scr.SetRendition(RenditionInvisible, false)
		case v == 39:
			scr.SetFg(DefaultFg)
		case v == 49:
			scr.SetBg(DefaultBg)
		case v >= 30 && v <= 37:
			scr.SetFg(Indexed(byte(v - 30)))
		case v >= 90 && v <= 97:
			scr.SetFg(Indexed(byte(v - 90 + 8)))
		case v >= 40 && v <= 47:
			scr.SetBg(Indexed(byte(v - 40)))
		case v >= 100 && v <= 107:
			scr.SetBg(Indexed(byte(v - 100 + 8)))
		case v == 38 || v == 48:
			sel, ok := p.params.GetRaw(i + 1)
			if !ok {
				break paramsLoop
			}
			switch sel {
			case 5:
				idx, ok := p.params.GetRaw(i + 2)
				if !ok {
					break paramsLoop
				}
				c := Indexed(byte(idx))
				if v == 38 {
					scr.SetFg(c)
				} else {
					scr.SetBg(c)
				}
				i += 2
			case 2:
				r, ok1 := p.params.GetRaw(i + 2)
				g, ok2 := p.params.GetRaw(i + 3)
				b, ok3 := p.params.GetRaw(i + 4)
				if !ok1 || !ok2 || !ok3 {
					break paramsLoop
				}
				c := RGB(byte(r), byte(g), byte(b))
				if v == 38 {
					scr.SetFg(c)
				} else {
					scr.SetBg(c)
				}
				i += 4
			default:
				break paramsLoop
			}
		}
		i++
	}
}

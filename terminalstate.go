package teepee

import "sync"

// ScrollbackCap is the default memory cap, in bytes, for a newly
// constructed TerminalState's scrollback.
const ScrollbackCap = 4 * 1024 * 1024

// TerminalState is the façade over the whole engine: it owns both the
// primary screen (with scrollback) and the alternate screen (without), the
// active-screen selector, a VT Parser, and the outbox of pending bell and
// report events the renderer/pty writer drains between frames.
//
// TerminalState is safe for concurrent use: Write, Resize, and every
// accessor take an internal RWMutex, matching how a pty-reading goroutine
// and a UI-rendering goroutine typically share one terminal.
type TerminalState struct {
	mu sync.RWMutex

	parser *Parser

	primary   *Screen
	alternate *Screen
	active    ScreenChoice

	bell           bool
	reportRequests []Report

	recording RecordingProvider
}

var _ Dispatch = (*TerminalState)(nil)

// NewTerminalState returns a TerminalState sized cols x rows, primary
// screen backed by a scrollback capped at ScrollbackCap bytes.
func NewTerminalState(cols, rows int) *TerminalState {
	return NewTerminalStateWithScrollback(cols, rows, ScrollbackCap)
}

// NewTerminalStateWithScrollback is like NewTerminalState but lets the
// caller choose the primary screen's scrollback memory cap.
func NewTerminalStateWithScrollback(cols, rows, scrollbackCap int) *TerminalState {
	return &TerminalState{
		parser:    NewParser(),
		primary:   NewScreen(cols, rows, NewScrollback(scrollbackCap)),
		alternate: NewScreen(cols, rows, nil),
		recording: NoopRecording{},
	}
}

// SetAPCProvider wires a collaborator for `ESC _ T P ...` sequences; see
// Parser.SetAPCProvider.
func (t *TerminalState) SetAPCProvider(p APCProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.parser.SetAPCProvider(p)
}

// SetRecordingProvider wires a collaborator that sees every raw byte
// passed to Write, before parsing.
func (t *TerminalState) SetRecordingProvider(p RecordingProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if p == nil {
		p = NoopRecording{}
	}
	t.recording = p
}

// Write feeds bytes from the pty through the VT parser. It never returns
// an error — malformed sequences are absorbed by the parser — and always
// reports the full length written, matching io.Writer's contract for a
// sink that cannot reject input.
func (t *TerminalState) Write(data []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.recording.Record(data)
	for _, b := range data {
		t.parser.Input(t, b)
	}
	return len(data), nil
}

// ActiveScreenState returns the active screen (primary or alternate) as a
// concrete *Screen, for callers that need more than the VTScreen verb set
// (e.g. a renderer walking Lines directly).
func (t *TerminalState) ActiveScreenState() *Screen {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.screenFor(t.active)
}

// PrimaryScreen always returns the primary screen, regardless of which is
// active.
func (t *TerminalState) PrimaryScreen() *Screen {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.primary
}

// AlternateScreen always returns the alternate screen, regardless of which
// is active.
func (t *TerminalState) AlternateScreen() *Screen {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.alternate
}

// ActiveScreenChoice reports which screen is currently active.
func (t *TerminalState) ActiveScreenChoice() ScreenChoice {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active
}

// Resize sets both screens to cols x rows (clamped to the minimum size).
func (t *TerminalState) Resize(cols, rows int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.primary.Resize(cols, rows)
	t.alternate.Resize(cols, rows)
}

// ResetBell reports whether the bell fired since the last call and clears
// the flag.
func (t *TerminalState) ResetBell() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	rang := t.bell
	t.bell = false
	return rang
}

// ResetReportRequests returns and clears the queue of pending status
// reports the parser has asked to have sent back to the pty.
func (t *TerminalState) ResetReportRequests() []Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	reqs := t.reportRequests
	t.reportRequests = nil
	return reqs
}

// ResetScrolledLines returns and clears the active screen's scroll
// counter, a renderer optimization hint (how many lines to blit rather
// than redraw from scratch).
func (t *TerminalState) ResetScrolledLines() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	scr := t.screenFor(t.active)
	n := scr.ScrolledLines
	scr.ScrolledLines = 0
	return n
}

// --- Dispatch implementation, called only from within Write's lock ---

func (t *TerminalState) screenFor(choice ScreenChoice) *Screen {
	if choice == ScreenAlternate {
		return t.alternate
	}
	return t.primary
}

// ActiveScreen implements Dispatch.
func (t *TerminalState) ActiveScreen() VTScreen {
	return t.screenFor(t.active)
}

// Screen implements Dispatch: it addresses a screen by choice even when it
// isn't the active one, which DEC 1049's save/restore sequencing and the
// DEC 6 origin-mode reset (both screens' cursors move to 1,1) need.
func (t *TerminalState) Screen(choice ScreenChoice) VTScreen {
	return t.screenFor(choice)
}

// SwitchScreen implements Dispatch.
func (t *TerminalState) SwitchScreen(choice ScreenChoice) {
	t.active = choice
}

// SetGlobalMode implements Dispatch: mode bits are mirrored onto both
// screens, since xterm treats wrap/origin/insert/newline/reverse-video as
// terminal-wide rather than per-buffer.
func (t *TerminalState) SetGlobalMode(mode Mode, enable bool) {
	t.primary.SetMode(mode, enable)
	t.alternate.SetMode(mode, enable)
}

// RequestReport implements Dispatch.
func (t *TerminalState) RequestReport(r Report) {
	if r == ReportBell {
		t.bell = true
		return
	}
	t.reportRequests = append(t.reportRequests, r)
}

// Reset implements Dispatch (ESC c, full terminal reset): both screens are
// rebuilt at their current size, the active screen returns to primary, and
// pending flags are cleared. Scrollback content is preserved, matching how
// RIS behaves on real terminals (it clears the display, not history).
func (t *TerminalState) Reset() {
	cols, rows := t.primary.Cols, t.primary.Rows
	sb := t.primary.Scrollback
	t.primary = NewScreen(cols, rows, sb)
	t.alternate = NewScreen(cols, rows, nil)
	t.active = ScreenPrimary
	t.bell = false
	t.reportRequests = nil
}

// Package teepee implements a headless VT/ANSI terminal emulator engine: a
// byte-driven escape sequence parser, a two-screen styled character grid
// with cursor, scrolling regions and tab stops, a memory-bounded scrollback
// encoder, and an input encoder that turns key and character events into
// the byte sequences a VT-aware program expects on its stdin.
//
// The engine is split into four layers, each built on the one before it:
// a streaming UTF-8 decoder, the Screen grid model, the VT parser that
// dispatches parsed verbs onto a Screen, and the Scrollback encoder that
// stores lines evicted off the top of the primary screen. TerminalState
// ties two Screens (primary and alternate) together behind one mode bitset
// and a queue of pending status reports. Session, in the session
// subpackage, couples a TerminalState with a real pty and child process;
// everything else in this package has no knowledge of ptys, files, or I/O.
//
// Basic usage:
//
//	ts := teepee.NewTerminalState(80, 24)
//	n, _ := ts.Write([]byte("\x1b[31mHello\x1b[0m\r\n"))
//	_ = n
//	screen := ts.ActiveScreenState()
//	for _, line := range screen.Lines {
//		fmt.Println(line.String())
//	}
//
// The core is single-threaded and non-reentrant: exactly one goroutine may
// call Write, Resize, or any Screen accessor at a time unless the caller
// adds its own locking (TerminalState does add a RWMutex around the public
// API, matching how a UI thread and a pty reader thread might share one
// terminal).
package teepee

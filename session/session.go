// Package session wires a teepee.TerminalState to a real child process
// running in a pty: the non-core layer the engine package itself stays
// agnostic of, so it can be embedded in a UI without pulling in os/exec.
package session

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/creack/pty"

	"github.com/vojtechkral/teepee-go"
)

// Session couples a TerminalState with a child process's pty master. The
// owner is expected to call NotifyRead whenever the pty fd becomes
// readable and Input/ScreenResize serially on the same thread; Session
// itself does no internal locking beyond what TerminalState already does,
// matching the single-threaded, non-reentrant core.
type Session struct {
	cmd   *exec.Cmd
	ptmx  *os.File
	State *teepee.TerminalState
}

// New starts program (already configured with args, dir, etc. by the
// caller) attached to a fresh pty, sized cols x rows. The child's
// stdin/stdout/stderr are the pty slave; it is placed in a new session
// with the slave as its controlling terminal, and TERM is set to
// xterm-256color. The master fd is closed in the child before exec — all
// of this is pty.Start's job.
func New(program *exec.Cmd, cols, rows int) (*Session, error) {
	program.Env = append(os.Environ(), "TERM=xterm-256color")

	ptmx, err := pty.StartWithSize(program, &pty.Winsize{
		Cols: uint16(cols),
		Rows: uint16(rows),
	})
	if err != nil {
		return nil, fmt.Errorf("session: start pty: %w", err)
	}

	return &Session{
		cmd:   program,
		ptmx:  ptmx,
		State: teepee.NewTerminalState(cols, rows),
	}, nil
}

// NotifyRead drains up to one read's worth of pty output and feeds it to
// the terminal state. Call this when the pty fd reports readable; it
// blocks for the duration of one Read call, so the owner should poll or
// select on the fd rather than call this from a tight loop.
func (s *Session) NotifyRead() (int, error) {
	buf := make([]byte, 4096)
	n, err := s.ptmx.Read(buf)
	if n > 0 {
		s.State.Write(buf[:n])
	}
	if err != nil {
		return n, fmt.Errorf("session: pty read: %w", err)
	}
	return n, nil
}

// Input encodes ev per the terminal's current cursor-key and newline
// modes and writes it to the pty.
func (s *Session) Input(ev teepee.InputData) (int, error) {
	scr := s.State.ActiveScreenState()
	appCursorKeys := scr.Mode.Has(teepee.ModeAppCursorKeys)
	newlineMode := scr.Mode.Has(teepee.ModeNewLine)

	out := teepee.Encode(ev, appCursorKeys, newlineMode)
	if len(out) == 0 {
		return 0, nil
	}
	n, err := s.ptmx.Write(out)
	if err != nil {
		return n, fmt.Errorf("session: pty write: %w", err)
	}
	return n, nil
}

// SendReports encodes and writes every report TerminalState has queued
// since the last drain.
func (s *Session) SendReports() (int, error) {
	reqs := s.State.ResetReportRequests()
	if len(reqs) == 0 {
		return 0, nil
	}
	scr := s.State.ActiveScreenState()
	total := 0
	for _, r := range reqs {
		out := teepee.EncodeReport(r, scr.Cursor.X+1, scr.Cursor.Y+1)
		if len(out) == 0 {
			continue
		}
		n, err := s.ptmx.Write(out)
		total += n
		if err != nil {
			return total, fmt.Errorf("session: pty write: %w", err)
		}
	}
	return total, nil
}

// ScreenResize sets the pty's winsize and resizes both screens to match.
func (s *Session) ScreenResize(cols, rows int) error {
	if err := pty.Setsize(s.ptmx, &pty.Winsize{
		Cols: uint16(cols),
		Rows: uint16(rows),
	}); err != nil {
		return fmt.Errorf("session: set winsize: %w", err)
	}
	s.State.Resize(cols, rows)
	return nil
}

// Close closes the pty master. It does not wait for the child to exit;
// call Wait for that.
func (s *Session) Close() error {
	return s.ptmx.Close()
}

// Wait waits for the child process to exit.
func (s *Session) Wait() error {
	return s.cmd.Wait()
}

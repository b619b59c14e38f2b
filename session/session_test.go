package session

import (
	"os/exec"
	"strings"
	"testing"
	"time"
)

func TestSessionEchoOutputReachesTerminalState(t *testing.T) {
	cmd := exec.Command("/bin/sh", "-c", "printf 'hello\\r\\n'; sleep 0.2")
	sess, err := New(cmd, 20, 5)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer sess.Close()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := sess.NotifyRead(); err != nil {
			break
		}
		if strings.Contains(sess.State.ActiveScreenState().Lines[0].String(), "hello") {
			break
		}
	}

	if !strings.Contains(sess.State.ActiveScreenState().Lines[0].String(), "hello") {
		t.Fatalf("expected pty output to reach the terminal state, got %q", sess.State.ActiveScreenState().Lines[0].String())
	}

	sess.Wait()
}

func TestSessionScreenResizeUpdatesState(t *testing.T) {
	cmd := exec.Command("/bin/sh", "-c", "sleep 0.2")
	sess, err := New(cmd, 20, 5)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer sess.Close()

	if err := sess.ScreenResize(40, 10); err != nil {
		t.Fatalf("ScreenResize: %v", err)
	}
	scr := sess.State.ActiveScreenState()
	if scr.Cols != 40 || scr.Rows != 10 {
		t.Fatalf("got %dx%d, want 40x10", scr.Cols, scr.Rows)
	}

	sess.Wait()
}

package teepee

import "testing"

func TestTerminalStateWriteNeverErrors(t *testing.T) {
	ts := NewTerminalState(20, 5)
	n, err := ts.Write([]byte("hello\x1b[31mworld"))
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if n != len("hello\x1b[31mworld") {
		t.Fatalf("n = %d, want full length", n)
	}
}

func TestTerminalStateResizeAffectsBothScreens(t *testing.T) {
	ts := NewTerminalState(80, 24)
	ts.Resize(10, 5)
	if ts.PrimaryScreen().Cols != 10 || ts.PrimaryScreen().Rows != 5 {
		t.Fatalf("primary not resized: %dx%d", ts.PrimaryScreen().Cols, ts.PrimaryScreen().Rows)
	}
	if ts.AlternateScreen().Cols != 10 || ts.AlternateScreen().Rows != 5 {
		t.Fatalf("alternate not resized: %dx%d", ts.AlternateScreen().Cols, ts.AlternateScreen().Rows)
	}
}

func TestTerminalStateResetPreservesScrollbackAcrossRIS(t *testing.T) {
	ts := NewTerminalStateWithScrollback(10, 3, 1<<20)
	for i := 0; i < 5; i++ {
		ts.Write([]byte("row\r\n"))
	}
	before := ts.PrimaryScreen().Scrollback.Len()
	if before == 0 {
		t.Fatal("expected some scrollback before reset")
	}
	ts.Write([]byte("\x1bc"))
	after := ts.PrimaryScreen().Scrollback.Len()
	if after != before {
		t.Fatalf("RIS should preserve scrollback: before=%d, after=%d", before, after)
	}
}

func TestTerminalStateReportRequestsDrainAndClear(t *testing.T) {
	ts := NewTerminalState(20, 5)
	ts.Write([]byte("\x1b[6n\x1b[5n"))
	reqs := ts.ResetReportRequests()
	if len(reqs) != 2 {
		t.Fatalf("got %d reports, want 2", len(reqs))
	}
	if more := ts.ResetReportRequests(); len(more) != 0 {
		t.Fatalf("queue should be empty after drain, got %d", len(more))
	}
}

func TestTerminalStateScrolledLinesResets(t *testing.T) {
	ts := NewTerminalState(10, 3)
	for i := 0; i < 5; i++ {
		ts.Write([]byte("x\r\n"))
	}
	if n := ts.ResetScrolledLines(); n == 0 {
		t.Fatal("expected nonzero scrolled lines after overflowing a screen clamped to MinRows rows")
	}
	if n := ts.ResetScrolledLines(); n != 0 {
		t.Fatalf("ResetScrolledLines should clear the counter, got %d", n)
	}
}

func TestTerminalStateActiveScreenFollowsSwitch(t *testing.T) {
	ts := NewTerminalState(20, 5)
	ts.Write([]byte("\x1b[?47h"))
	if ts.ActiveScreenChoice() != ScreenAlternate {
		t.Fatal("CSI ?47h should switch to alternate screen")
	}
	if ts.ActiveScreenState() != ts.AlternateScreen() {
		t.Fatal("ActiveScreenState should return the alternate screen once switched")
	}
}

func TestTerminalStateDispatchConformance(t *testing.T) {
	var _ Dispatch = NewTerminalState(20, 5)
}

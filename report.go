package teepee

// Report identifies a status response the parser has asked to be sent back
// to the pty. TerminalState queues these (ReportBell instead sets its bell
// flag); the Session layer (or any caller) drains the queue with
// ResetReportRequests and encodes each one with EncodeReport.
type Report int

const (
	ReportAnswerBack Report = iota
	ReportPrimaryAttrs
	ReportSecondaryAttrs
	ReportDeviceStatus
	ReportCursorPos
	ReportTermParams0
	ReportTermParams1
	ReportBell
)

// EraseKind selects the range an erase() call clears.
type EraseKind int

const (
	EraseAll EraseKind = iota
	EraseAbove
	EraseBelow
	EraseLine
	EraseLineLeft
	EraseLineRight
	EraseNumChars
)

package teepee

// APCProvider receives the payload of a recognized `ESC _ T P ... ST`
// application program command sequence, in one call once the sequence ends
// (on BEL, ESC, CAN or SUB). Apart from NoopAPC, nothing in this package
// implements it; it exists so a
// host application can layer an extension protocol on top of the VT
// stream without the parser needing to know about it.
type APCProvider interface {
	Receive(data []byte)
}

// NoopAPC discards every APC payload.
type NoopAPC struct{}

func (NoopAPC) Receive(data []byte) {}

var _ APCProvider = NoopAPC{}

// RecordingProvider captures raw bytes as they arrive, before parsing, for
// replay or debugging a session.
type RecordingProvider interface {
	Record(data []byte)
}

// NoopRecording discards everything written to it.
type NoopRecording struct{}

func (NoopRecording) Record(data []byte) {}

var _ RecordingProvider = NoopRecording{}

package midi

// Control event types
type EventType int

const (
	KnobTurn EventType = iota
	KnobTouch
	PadPress
	PadRelease
	ModeToggle
)

// Event is one decoded control event from the Push 2
type Event struct {
	Type     EventType
	Index    int   // knob index or pad index (0-63)
	Dir      int   // +1 clockwise / -1 counter-clockwise (KnobTurn)
	Velocity uint8 // pad strike velocity (PadPress)
	Pressed  bool  // KnobTouch / ModeToggle state
}

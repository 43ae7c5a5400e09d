package midi

import (
	"fmt"
	"strings"

	"push-paint/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// Push 2 User Port MIDI map (the subset this program uses)
const (
	ccEncoderFirst = 71 // top-row encoders, CC 71-78
	ccEncoderLast  = 78
	ccMaster       = 79 // master encoder (top right)
	ccJog          = 14 // jog wheel (top left)
	ccAssign       = 86 // assign-mode button

	noteTouchLast = 8  // encoder touch: notes 0-7 top row, 8 master
	noteTouchJog  = 10 // jog wheel touch

	notePadFirst = 36 // 8x8 grid, notes 36-99
	notePadLast  = 99
)

// Abstract knob indices handed to the engine for the master encoder and
// jog wheel (top-row encoders map to 0-7 directly).
const (
	knobMaster = 8
	knobJog    = 9
)

// sysexHeader is the Push 2 manufacturer preamble, without F0/F7.
var sysexHeader = []byte{0x00, 0x21, 0x1D, 0x01, 0x01}

// Push2 drives the Push 2 User Port: decodes control input into Events and
// writes pad colors through the RGB palette SysEx.
type Push2 struct {
	send     func(msg gomidi.Message) error
	stopFunc func()
	events   chan Event
}

// Open finds the named User Port, connects both directions and switches the
// device into User Mode.
func Open(portName string) (*Push2, error) {
	inPort, outPort, err := findPorts(portName)
	if err != nil {
		return nil, err
	}

	p := &Push2{events: make(chan Event, 64)}

	send, err := gomidi.SendTo(outPort)
	if err != nil {
		return nil, fmt.Errorf("open output: %w", err)
	}
	p.send = send

	if err := p.initialise(); err != nil {
		return nil, err
	}

	stop, err := gomidi.ListenTo(inPort, p.decode)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	p.stopFunc = stop

	return p, nil
}

// findPorts locates matching in/out ports, listing candidates on failure.
func findPorts(name string) (drivers.In, drivers.Out, error) {
	var in drivers.In
	for _, pt := range gomidi.GetInPorts() {
		if pt.String() == name {
			in = pt
			break
		}
	}
	var out drivers.Out
	for _, pt := range gomidi.GetOutPorts() {
		if pt.String() == name {
			out = pt
			break
		}
	}
	if in == nil || out == nil {
		var names []string
		for _, pt := range gomidi.GetInPorts() {
			names = append(names, pt.String())
		}
		return nil, nil, fmt.Errorf("port %q not found (available: %s)", name, strings.Join(names, ", "))
	}
	return in, out, nil
}

// Events returns the decoded control event stream.
func (p *Push2) Events() <-chan Event {
	return p.events
}

// initialise switches to User Mode and points every pad at its own palette
// slot (pad i shows palette entry i+1; SetPads rewrites the palette each
// frame).
func (p *Push2) initialise() error {
	if err := p.send(p.sysex(0x0A, 0x01)); err != nil {
		return fmt.Errorf("user mode: %w", err)
	}
	for i := 1; i <= 64; i++ {
		if err := p.send(gomidi.NoteOn(0, uint8(35+i), uint8(i))); err != nil {
			return fmt.Errorf("pad init: %w", err)
		}
	}
	return nil
}

func (p *Push2) decode(msg gomidi.Message, timestampms int32) {
	var channel, note, velocity uint8
	var cc, value uint8

	if msg.GetNoteOn(&channel, &note, &velocity) {
		switch {
		case note >= notePadFirst && note <= notePadLast:
			if velocity > 0 {
				p.emit(Event{Type: PadPress, Index: int(note - notePadFirst), Velocity: velocity})
			} else {
				p.emit(Event{Type: PadRelease, Index: int(note - notePadFirst)})
			}
		case note <= noteTouchLast:
			p.emit(Event{Type: KnobTouch, Index: int(note), Pressed: velocity > 0})
		case note == noteTouchJog:
			p.emit(Event{Type: KnobTouch, Index: knobJog, Pressed: velocity > 0})
		}
		return
	}

	if msg.GetNoteOff(&channel, &note, &velocity) {
		switch {
		case note >= notePadFirst && note <= notePadLast:
			p.emit(Event{Type: PadRelease, Index: int(note - notePadFirst)})
		case note <= noteTouchLast:
			p.emit(Event{Type: KnobTouch, Index: int(note), Pressed: false})
		case note == noteTouchJog:
			p.emit(Event{Type: KnobTouch, Index: knobJog, Pressed: false})
		}
		return
	}

	if msg.GetControlChange(&channel, &cc, &value) {
		switch {
		case cc >= ccEncoderFirst && cc <= ccEncoderLast:
			p.emit(Event{Type: KnobTurn, Index: int(cc - ccEncoderFirst), Dir: encoderDir(value)})
		case cc == ccMaster:
			p.emit(Event{Type: KnobTurn, Index: knobMaster, Dir: encoderDir(value)})
		case cc == ccJog:
			p.emit(Event{Type: KnobTurn, Index: knobJog, Dir: encoderDir(value)})
		case cc == ccAssign:
			p.emit(Event{Type: ModeToggle, Pressed: value > 0})
		default:
			debug.Log("midi", "cc %d=%d ignored", cc, value)
		}
	}
}

// encoderDir maps Push 2 relative encoder values (1..63 clockwise,
// 65..127 counter-clockwise) to a direction.
func encoderDir(value uint8) int {
	if value < 64 {
		return 1
	}
	return -1
}

func (p *Push2) emit(ev Event) {
	select {
	case p.events <- ev:
	default:
		debug.Log("midi", "event queue full, dropped type=%d", ev.Type)
	}
}

// SetPads rewrites the 64 pad palette entries from display bytes. Index
// i is pad (x,y) = (i mod 8, i div 8), bottom-left origin.
func (p *Push2) SetPads(colors *[64][3]uint8) error {
	for i, c := range colors {
		r, g, b := c[0], c[1], c[2]
		msg := p.sysex(0x03, uint8(1+i),
			r&0x7f, r>>7,
			g&0x7f, g>>7,
			b&0x7f, b>>7,
			0, 0)
		if err := p.send(msg); err != nil {
			return fmt.Errorf("pad %d: %w", i, err)
		}
	}
	return nil
}

func (p *Push2) sysex(data ...byte) gomidi.Message {
	body := make([]byte, 0, len(sysexHeader)+len(data))
	body = append(body, sysexHeader...)
	body = append(body, data...)
	return gomidi.SysEx(body)
}

// Close blacks out the pads and stops listening.
func (p *Push2) Close() error {
	if p.send != nil {
		var off [64][3]uint8
		p.SetPads(&off)
	}
	if p.stopFunc != nil {
		p.stopFunc()
	}
	close(p.events)
	return nil
}

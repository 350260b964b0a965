package shiftreg

import (
	"hapticcode-go/errcode"
	"hapticcode-go/x/conv"
)

const (
	// FrameSize is the length of the shift-register chain in bytes.
	FrameSize = 4
	// NumPins is the number of piezo actuator channels.
	NumPins = 20
)

// Frame is one full chain's worth of output bits. Frame[0] is shifted first.
type Frame [FrameSize]byte

// Bit locates one output line inside a Frame.
type Bit struct {
	Byte uint8
	Bit  uint8
}

// Layout is the board-revision specific routing from logical pins to chain
// outputs. Pins[i] is the position of pin i+1. Common marks the lines tied to
// the piezo common rail; those must never be driven.
type Layout struct {
	Name   string
	Common Frame
	Pins   [NumPins]Bit
}

// LayoutV1 is the routing of the first haptic board: the six lowest outputs
// of the first register and the six highest of the last are common lines, and
// pins 1..20 follow in shift order in between.
var LayoutV1 = Layout{
	Name:   "v1",
	Common: Frame{0b0011_1111, 0x00, 0x00, 0b1111_1100},
	Pins: [NumPins]Bit{
		{0, 6}, {0, 7},
		{1, 0}, {1, 1}, {1, 2}, {1, 3}, {1, 4}, {1, 5}, {1, 6}, {1, 7},
		{2, 0}, {2, 1}, {2, 2}, {2, 3}, {2, 4}, {2, 5}, {2, 6}, {2, 7},
		{3, 0}, {3, 1},
	},
}

var layouts = map[string]Layout{
	LayoutV1.Name: LayoutV1,
}

// LayoutByName returns a registered layout.
func LayoutByName(name string) (Layout, bool) {
	l, ok := layouts[name]
	return l, ok
}

// NewLayout builds and validates a layout for another board revision.
func NewLayout(name string, common Frame, pins [NumPins]Bit) (Layout, error) {
	l := Layout{Name: name, Common: common, Pins: pins}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// Validate checks every pin lands on a distinct, non-common output.
func (l Layout) Validate() error {
	if l.Name == "" {
		return layoutErr("missing name")
	}
	var used Frame
	for i, p := range l.Pins {
		if p.Byte >= FrameSize || p.Bit > 7 {
			return layoutErr("pin " + conv.Itoa(i+1) + " out of frame")
		}
		m := byte(1) << p.Bit
		if l.Common[p.Byte]&m != 0 {
			return layoutErr("pin " + conv.Itoa(i+1) + " on a common line")
		}
		if used[p.Byte]&m != 0 {
			return layoutErr("pin " + conv.Itoa(i+1) + " shares an output")
		}
		used[p.Byte] |= m
	}
	return nil
}

// All returns the frame with every pin driven and every common line low.
func (l Layout) All() Frame {
	var f Frame
	for _, p := range l.Pins {
		f[p.Byte] |= 1 << p.Bit
	}
	return f
}

// Only returns the frame with just pin driven.
func (l Layout) Only(pin int) (Frame, error) {
	var f Frame
	idx, m, err := l.locate(pin)
	if err != nil {
		return f, err
	}
	f[idx] = m
	return f, nil
}

func (l Layout) locate(pin int) (int, byte, error) {
	if pin < 1 || pin > NumPins {
		return 0, 0, &errcode.E{C: errcode.InvalidPin, Op: "shiftreg", Msg: "pin " + conv.Itoa(pin) + " not in 1..20"}
	}
	p := l.Pins[pin-1]
	return int(p.Byte), 1 << p.Bit, nil
}

func (l Layout) clearCommon(f *Frame) {
	for i := range f {
		f[i] &^= l.Common[i]
	}
}

func layoutErr(msg string) error {
	return &errcode.E{C: errcode.InvalidParams, Op: "shiftreg", Msg: "layout: " + msg}
}

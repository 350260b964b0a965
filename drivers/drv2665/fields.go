package drv2665

import "golang.org/x/exp/slices"

// Field names one bit subset of a control register.
type Field uint8

const (
	FieldGain Field = iota + 1
	FieldInput
	FieldStandby
	FieldTimeout
	FieldEnable
)

type fieldDef struct {
	name  string
	reg   byte
	mask  byte
	legal []byte // in-place encodings, already shifted into the mask
}

var fieldDefs = [...]fieldDef{
	FieldGain:    {"gain", regControl1, maskGain, []byte{byte(Gain25V), byte(Gain50V), byte(Gain75V), byte(Gain100V)}},
	FieldInput:   {"input", regControl1, maskInput, []byte{byte(InputDigital), byte(InputAnalog)}},
	FieldStandby: {"standby", regControl2, maskStandby, []byte{standbyFalse, standbyTrue}},
	FieldTimeout: {"timeout", regControl2, maskTimeout, []byte{byte(Timeout5ms), byte(Timeout10ms), byte(Timeout15ms), byte(Timeout20ms)}},
	FieldEnable:  {"enable", regControl2, maskEnable, []byte{byte(EnableAuto), byte(EnableOverride)}},
}

func (f Field) def() (fieldDef, bool) {
	if f == 0 || int(f) >= len(fieldDefs) {
		return fieldDef{}, false
	}
	return fieldDefs[f], true
}

func (f Field) String() string {
	if s, ok := f.def(); ok {
		return s.name
	}
	return "unknown"
}

// Legal reports whether v is one of the field's encodings.
func (f Field) Legal(v uint8) bool {
	s, ok := f.def()
	if !ok {
		return false
	}
	return slices.Contains(s.legal, v)
}

// Gain is the output full-scale range (CONTROL1[1:0]).
type Gain uint8

const (
	Gain25V  Gain = 0
	Gain50V  Gain = 1
	Gain75V  Gain = 2
	Gain100V Gain = 3
)

// PeakVolts returns the peak output voltage for the gain setting.
func (g Gain) PeakVolts() int { return 25 * (int(g&maskGain) + 1) }

// Input selects the signal source (CONTROL1[2]).
type Input uint8

const (
	InputDigital Input = 0 << 2
	InputAnalog  Input = 1 << 2
)

// Timeout is the idle time before auto standby in digital mode (CONTROL2[3:2]).
type Timeout uint8

const (
	Timeout5ms  Timeout = 0 << 2
	Timeout10ms Timeout = 1 << 2
	Timeout15ms Timeout = 2 << 2
	Timeout20ms Timeout = 3 << 2
)

// Millis returns the timeout in milliseconds.
func (t Timeout) Millis() int { return 5 * (int(t&maskTimeout)>>2 + 1) }

// Enable selects how the boost and amplifier are enabled (CONTROL2[1]).
type Enable uint8

const (
	EnableAuto     Enable = 0 << 1
	EnableOverride Enable = 1 << 1
)

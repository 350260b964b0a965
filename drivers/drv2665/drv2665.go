// Package drv2665 is a driver for the TI DRV2665/DRV2667 piezo haptic driver
// with integrated boost converter.
//
// The register model is cached: every getter re-reads its register first and
// every setter does a read-modify-write of its own bits against the cached
// byte, leaving the other fields untouched.
//
// NOTE: I2C.Tx MUST perform a write followed by a repeated-start read when both
// w and r are provided. When the bus is shared, wrap it with busx.I2C so each
// transaction holds the bus exclusively.
//
// Datasheet: https://www.ti.com/lit/ds/symlink/drv2665.pdf
package drv2665

import (
	"time"

	"hapticcode-go/errcode"
	"hapticcode-go/x/conv"

	"tinygo.org/x/drivers"
)

// Errors returned by the driver.
var (
	ErrWrongDevice  = errcode.New(errcode.WrongDevice, "drv2665", "DRV2665/DRV2667 not found, check wiring")
	ErrInvalidValue = errcode.New(errcode.InvalidValue, "drv2665", "value not legal for field")
	ErrFIFOFull     = errcode.New(errcode.FIFOFull, "drv2665", "fifo full")
)

// Variant identifies the detected part.
type Variant uint8

const (
	VariantUnknown Variant = iota
	VariantDRV2665
	VariantDRV2667
)

func (v Variant) String() string {
	switch v {
	case VariantDRV2665:
		return "DRV2665"
	case VariantDRV2667:
		return "DRV2667"
	default:
		return "unknown"
	}
}

// Config controls addressing and reset timing. All fields are optional.
type Config struct {
	// Address defaults to AddressDefault if zero.
	Address uint16
	// ResetSettle is the wait after writing the reset bit. Default 5 ms.
	ResetSettle time.Duration
	// Sleep is the delay primitive; defaults to time.Sleep.
	Sleep func(time.Duration)
}

// DefaultConfig returns the configuration used on the haptic board.
func DefaultConfig() Config {
	return Config{
		Address:     AddressDefault,
		ResetSettle: 5 * time.Millisecond,
		Sleep:       time.Sleep,
	}
}

// Device represents a DRV2665/DRV2667 on an I²C bus.
type Device struct {
	bus    drivers.I2C
	addr   uint16
	settle time.Duration
	sleep  func(time.Duration)

	chipID   uint8
	control1 byte
	control2 byte

	// Fixed buffers to avoid per-call heap allocations.
	w [2]byte
	r [1]byte
}

// New verifies the chip id and resets the device. A chip id outside
// {5, 7} aborts construction before any write reaches the device.
func New(bus drivers.I2C, cfg Config) (*Device, error) {
	def := DefaultConfig()
	if cfg.Address == 0 {
		cfg.Address = def.Address
	}
	if cfg.ResetSettle <= 0 {
		cfg.ResetSettle = def.ResetSettle
	}
	if cfg.Sleep == nil {
		cfg.Sleep = def.Sleep
	}
	d := &Device{
		bus:    bus,
		addr:   cfg.Address,
		settle: cfg.ResetSettle,
		sleep:  cfg.Sleep,
	}
	if err := d.validateChipID(); err != nil {
		return nil, err
	}
	if err := d.Reset(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Device) validateChipID() error {
	if err := d.readControl1(); err != nil {
		return err
	}
	id := (d.control1 & maskChipID) >> shiftChipID
	switch id {
	case ChipIDDRV2665, ChipIDDRV2667:
		d.chipID = id
		return nil
	}
	return &errcode.E{C: errcode.WrongDevice, Op: "drv2665", Msg: "chip id " + conv.Itoa(int(id)) + ", want 5 or 7"}
}

// Reset sets the device back to its power-on register defaults, waits for it
// to settle and refreshes both cached control registers.
func (d *Device) Reset() error {
	if err := d.writeReg(regControl2, bitReset); err != nil {
		return err
	}
	d.sleep(d.settle)
	if err := d.readControl1(); err != nil {
		return err
	}
	return d.readControl2()
}

// Address returns the 7-bit bus address in use.
func (d *Device) Address() uint16 { return d.addr }

// ChipID returns the id read at construction.
func (d *Device) ChipID() uint8 { return d.chipID }

// Variant maps the chip id to the part name.
func (d *Device) Variant() Variant {
	switch d.chipID {
	case ChipIDDRV2665:
		return VariantDRV2665
	case ChipIDDRV2667:
		return VariantDRV2667
	default:
		return VariantUnknown
	}
}

// Registers returns the cached CONTROL1 and CONTROL2 values without bus access.
func (d *Device) Registers() (control1, control2 byte) { return d.control1, d.control2 }

// ---- Generic field access ----

// ReadField re-reads the field's register and returns its masked value.
func (d *Device) ReadField(f Field) (uint8, error) {
	s, ok := f.def()
	if !ok {
		return 0, &errcode.E{C: errcode.InvalidParams, Op: "drv2665", Msg: "unknown field"}
	}
	v, err := d.refresh(s.reg)
	if err != nil {
		return 0, err
	}
	return v & s.mask, nil
}

// WriteField validates v against the field's legal encodings, updates the
// cached register in place and writes the whole register back. An illegal
// value or a failed write leaves the cache unchanged.
func (d *Device) WriteField(f Field, v uint8) error {
	s, ok := f.def()
	if !ok {
		return &errcode.E{C: errcode.InvalidParams, Op: "drv2665", Msg: "unknown field"}
	}
	if !f.Legal(v) {
		return &errcode.E{C: errcode.InvalidValue, Op: "drv2665", Msg: s.name + " " + conv.Hex8(v)}
	}
	cur := d.cached(s.reg)
	next := (cur &^ s.mask) | v
	if s.reg == regControl2 {
		next &^= bitReset // never trigger a reset from a field write
	}
	if err := d.writeReg(s.reg, next); err != nil {
		return err
	}
	d.setCached(s.reg, next)
	return nil
}

// ---- Typed accessors ----

func (d *Device) Gain() (Gain, error) {
	v, err := d.ReadField(FieldGain)
	return Gain(v), err
}

func (d *Device) SetGain(g Gain) error { return d.WriteField(FieldGain, uint8(g)) }

func (d *Device) Input() (Input, error) {
	v, err := d.ReadField(FieldInput)
	return Input(v), err
}

func (d *Device) SetInput(in Input) error { return d.WriteField(FieldInput, uint8(in)) }

// Standby reports whether the device is in low-power standby.
func (d *Device) Standby() (bool, error) {
	v, err := d.ReadField(FieldStandby)
	return v == standbyTrue, err
}

func (d *Device) SetStandby(on bool) error {
	v := uint8(standbyFalse)
	if on {
		v = standbyTrue
	}
	return d.WriteField(FieldStandby, v)
}

func (d *Device) Timeout() (Timeout, error) {
	v, err := d.ReadField(FieldTimeout)
	return Timeout(v), err
}

func (d *Device) SetTimeout(t Timeout) error { return d.WriteField(FieldTimeout, uint8(t)) }

func (d *Device) Enable() (Enable, error) {
	v, err := d.ReadField(FieldEnable)
	return Enable(v), err
}

func (d *Device) SetEnable(e Enable) error { return d.WriteField(FieldEnable, uint8(e)) }

// Settings is a complete control profile applied by Apply.
type Settings struct {
	Standby bool
	Input   Input
	Gain    Gain
	Timeout Timeout
	Enable  Enable
}

// BenchSettings is the profile used when driving the actuators from the
// analog input: awake, analog input, 100 V gain.
func BenchSettings() Settings {
	return Settings{
		Standby: false,
		Input:   InputAnalog,
		Gain:    Gain100V,
		Timeout: Timeout5ms,
		Enable:  EnableAuto,
	}
}

// Apply writes every field of s, stopping at the first error.
func (d *Device) Apply(s Settings) error {
	if err := d.SetStandby(s.Standby); err != nil {
		return err
	}
	if err := d.SetInput(s.Input); err != nil {
		return err
	}
	if err := d.SetGain(s.Gain); err != nil {
		return err
	}
	if err := d.SetTimeout(s.Timeout); err != nil {
		return err
	}
	return d.SetEnable(s.Enable)
}

// ---- Cache ----

func (d *Device) cached(reg byte) byte {
	if reg == regControl1 {
		return d.control1
	}
	return d.control2
}

func (d *Device) setCached(reg, v byte) {
	if reg == regControl1 {
		d.control1 = v
	} else {
		d.control2 = v
	}
}

func (d *Device) refresh(reg byte) (byte, error) {
	v, err := d.readReg(reg)
	if err != nil {
		return 0, err
	}
	d.setCached(reg, v)
	return v, nil
}

func (d *Device) readControl1() error {
	_, err := d.refresh(regControl1)
	return err
}

func (d *Device) readControl2() error {
	_, err := d.refresh(regControl2)
	return err
}

// ---- I2C byte operations ----

func (d *Device) readReg(reg byte) (byte, error) {
	d.w[0] = reg
	if err := d.bus.Tx(d.addr, d.w[:1], d.r[:1]); err != nil {
		return 0, &errcode.E{C: errcode.BusError, Op: "drv2665", Msg: "read " + regName(reg), Err: err}
	}
	return d.r[0], nil
}

func (d *Device) writeReg(reg, val byte) error {
	d.w[0] = reg
	d.w[1] = val
	if err := d.bus.Tx(d.addr, d.w[:2], nil); err != nil {
		return &errcode.E{C: errcode.BusError, Op: "drv2665", Msg: "write " + regName(reg), Err: err}
	}
	return nil
}

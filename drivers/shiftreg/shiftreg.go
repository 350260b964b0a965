// Package shiftreg drives the daisy-chained high-voltage shift registers that
// fan the amplifier output out to 20 piezo actuator channels.
//
// The chain is clocked over SPI. The latch line is held low while bits are
// shifted and its rising edge commits the chain to the outputs; MISO carries
// the bits shifted out of the end of the chain, i.e. the previous frame. A
// separate polarity line selects the drive polarity of all channels.
//
// Every Write is verified: the frame is shifted a second time inside the same
// latch window and the echo must equal the frame. On a mismatch an all-zero
// frame is committed before the error is returned.
package shiftreg

import (
	"errors"

	"hapticcode-go/errcode"
	"hapticcode-go/x/conv"

	"tinygo.org/x/drivers"
)

// OutputPin is a digital output line (latch, polarity).
type OutputPin interface {
	Set(high bool)
}

// scoper is implemented by shared buses (busx.SPI) that can hold the bus for
// several transfers.
type scoper interface {
	Do(fn func(raw drivers.SPI) error) error
}

// Errors returned by the driver.
var (
	ErrInvalidPin = errcode.New(errcode.InvalidPin, "shiftreg", "pin must be 1..20")
	ErrVerify     = errcode.New(errcode.Verify, "shiftreg", "readback mismatch")
	ErrLinkCheck  = errcode.New(errcode.LinkCheck, "shiftreg", "link check failed, check wiring")
)

// VerifyError reports a readback that did not echo the shifted frame.
type VerifyError struct {
	Sent, Got Frame
}

func (e *VerifyError) Error() string {
	return "shiftreg: verify_failed: sent " + conv.HexBytes(e.Sent[:]) + " got " + conv.HexBytes(e.Got[:])
}
func (e *VerifyError) Unwrap() error      { return ErrVerify }
func (e *VerifyError) Code() errcode.Code { return errcode.Verify }

// Config controls layout selection and power-on checks.
type Config struct {
	// Layout defaults to LayoutV1 when Name is empty.
	Layout Layout
	// SkipLinkCheck disables the shift-through test run by New.
	SkipLinkCheck bool
}

// DefaultConfig returns the configuration of the current board.
func DefaultConfig() Config {
	return Config{Layout: LayoutV1}
}

// Device is one shift-register chain with its latch and polarity lines.
type Device struct {
	spi      drivers.SPI
	latch    OutputPin
	polarity OutputPin

	layout Layout
	pol    bool

	frame Frame
	rb    Frame
}

// New takes ownership of the latch and polarity lines, drives them to idle
// (latch high, polarity low) and, unless disabled, runs CheckLink.
func New(spi drivers.SPI, latch, polarity OutputPin, cfg Config) (*Device, error) {
	if cfg.Layout.Name == "" {
		cfg.Layout = LayoutV1
	}
	if err := cfg.Layout.Validate(); err != nil {
		return nil, err
	}
	d := &Device{
		spi:      spi,
		latch:    latch,
		polarity: polarity,
		layout:   cfg.Layout,
	}
	d.latch.Set(true)
	d.polarity.Set(false)
	if !cfg.SkipLinkCheck {
		if err := d.CheckLink(); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Layout returns the pin routing in use.
func (d *Device) Layout() Layout { return d.layout }

// SetPin updates one pin in the frame buffer; nothing is sent until Write.
func (d *Device) SetPin(pin int, on bool) error {
	idx, m, err := d.layout.locate(pin)
	if err != nil {
		return err
	}
	if on {
		d.frame[idx] |= m
	} else {
		d.frame[idx] &^= m
	}
	d.layout.clearCommon(&d.frame)
	return nil
}

// Pin reports the buffered state of pin.
func (d *Device) Pin(pin int) (bool, error) {
	idx, m, err := d.layout.locate(pin)
	if err != nil {
		return false, err
	}
	return d.frame[idx]&m != 0, nil
}

// Frame returns a copy of the buffered frame.
func (d *Device) Frame() Frame { return d.frame }

// Readback returns the echo captured by the last verified transfer.
func (d *Device) Readback() Frame { return d.rb }

// Clear drops every pin in the frame buffer.
func (d *Device) Clear() { d.frame = Frame{} }

// Write commits the frame buffer to the outputs and verifies the echo.
// On a verification or bus failure the outputs are de-energized, the buffer is
// cleared and the error is returned.
func (d *Device) Write() error {
	d.layout.clearCommon(&d.frame)
	return d.scope(func(spi drivers.SPI) error {
		d.latch.Set(false)
		err := d.shiftVerify(spi, d.frame)
		if err == nil {
			d.latch.Set(true)
			return nil
		}
		d.frame = Frame{}
		if serr := d.commitZero(spi); serr != nil {
			return errors.Join(err, serr)
		}
		return err
	})
}

// Off commits an all-zero frame and clears the buffer.
func (d *Device) Off() error {
	d.frame = Frame{}
	return d.scope(func(spi drivers.SPI) error {
		d.latch.Set(false)
		return d.commitZero(spi)
	})
}

// Polarity returns the current level of the polarity line.
func (d *Device) Polarity() bool { return d.pol }

// TogglePolarity flips the polarity line. The frame buffer is not touched.
func (d *Device) TogglePolarity() {
	d.pol = !d.pol
	d.polarity.Set(d.pol)
}

// CheckLink shifts test patterns through the whole chain in one latch
// window: none, all (expect none back), none (expect all back), none (expect
// none back). Only the final all-zero pattern is committed.
func (d *Device) CheckLink() error {
	none, all := Frame{}, d.layout.All()
	return d.scope(func(spi drivers.SPI) error {
		d.latch.Set(false)
		steps := [...]struct{ send, want Frame }{
			{all, none},
			{none, all},
			{none, none},
		}
		err := d.tx(spi, none)
		for i := 0; err == nil && i < len(steps); i++ {
			if err = d.tx(spi, steps[i].send); err == nil && d.rb != steps[i].want {
				err = &errcode.E{C: errcode.LinkCheck, Op: "shiftreg", Msg: "step " + conv.Itoa(i+1) + " got " + conv.HexBytes(d.rb[:]), Err: ErrLinkCheck}
			}
		}
		if err != nil {
			if serr := d.commitZero(spi); serr != nil {
				return errors.Join(err, serr)
			}
			return err
		}
		d.latch.Set(true)
		return nil
	})
}

// ---- transfers ----

func (d *Device) scope(fn func(spi drivers.SPI) error) error {
	if s, ok := d.spi.(scoper); ok {
		return s.Do(fn)
	}
	return fn(d.spi)
}

func (d *Device) tx(spi drivers.SPI, f Frame) error {
	if err := spi.Tx(f[:], d.rb[:]); err != nil {
		return &errcode.E{C: errcode.BusError, Op: "shiftreg", Msg: "transfer", Err: err}
	}
	return nil
}

// shiftVerify shifts f twice; the second echo must be f itself.
func (d *Device) shiftVerify(spi drivers.SPI, f Frame) error {
	if err := d.tx(spi, f); err != nil {
		return err
	}
	if err := d.tx(spi, f); err != nil {
		return err
	}
	if d.rb != f {
		return &VerifyError{Sent: f, Got: d.rb}
	}
	return nil
}

// commitZero shifts an all-zero frame and raises the latch. If the transfer
// fails the latch stays low, so the outputs keep the last committed frame
// instead of latching whatever is left in the chain.
func (d *Device) commitZero(spi drivers.SPI) error {
	var zero, rb Frame
	if err := spi.Tx(zero[:], rb[:]); err != nil {
		return &errcode.E{C: errcode.BusError, Op: "shiftreg", Msg: "safety frame", Err: err}
	}
	d.latch.Set(true)
	return nil
}

// Package board assembles the haptic board: the DRV2665 amplifier on I²C and
// the 20-channel shift-register fanout on SPI.
//
// The amplifier is optional: Open scans the bus and carries on without it when
// it does not answer, unless Config.RequireAmp is set.
package board

import (
	"errors"

	"hapticcode-go/drivers/drv2665"
	"hapticcode-go/drivers/shiftreg"
	"hapticcode-go/errcode"
	"hapticcode-go/x/busx"
	"hapticcode-go/x/fmtx"

	"golang.org/x/exp/slices"
	"tinygo.org/x/drivers"
)

// ErrAmpNotFound is returned when RequireAmp is set and nothing answers at the
// amplifier address.
var ErrAmpNotFound = errcode.New(errcode.NotFound, "board", "DRV2665 not found")

// Resources are the platform handles the board is built from.
type Resources struct {
	I2C      drivers.I2C
	SPI      drivers.SPI
	Latch    shiftreg.OutputPin
	Polarity shiftreg.OutputPin
}

// Config selects driver options and bring-up behaviour.
type Config struct {
	Amp    drv2665.Config
	Fanout shiftreg.Config

	// Bench, when non-nil, is applied to the amplifier after its reset.
	Bench *drv2665.Settings
	// RequireAmp makes a missing amplifier fatal.
	RequireAmp bool
	// Logf defaults to fmtx.Logf.
	Logf func(format string, a ...any)
}

// DefaultConfig returns driver defaults with the bench amplifier profile.
func DefaultConfig() Config {
	bench := drv2665.BenchSettings()
	return Config{
		Amp:    drv2665.DefaultConfig(),
		Fanout: shiftreg.DefaultConfig(),
		Bench:  &bench,
	}
}

// Board owns both drivers.
type Board struct {
	Amp    *drv2665.Device // nil when not fitted
	Fanout *shiftreg.Device
	Found  []uint16 // addresses seen by the scan

	i2c  *busx.I2C
	spi  *busx.SPI
	logf func(format string, a ...any)
}

// Open scans the I²C bus, brings up the amplifier if present and builds the
// fanout. Both buses are wrapped so every transaction holds its bus exclusively.
// When bring-up fails after the amplifier was woken it is put back into standby.
func Open(res Resources, cfg Config) (*Board, error) {
	if res.I2C == nil || res.SPI == nil || res.Latch == nil || res.Polarity == nil {
		return nil, errcode.New(errcode.InvalidParams, "board", "missing resource")
	}
	b := &Board{
		i2c:  shareI2C(res.I2C),
		spi:  shareSPI(res.SPI),
		logf: cfg.Logf,
	}
	if b.logf == nil {
		b.logf = fmtx.Logf
	}

	addr := cfg.Amp.Address
	if addr == 0 {
		addr = drv2665.AddressDefault
	}
	_ = b.i2c.Do(func(raw drivers.I2C) error {
		b.Found = Scan(raw)
		return nil
	})
	b.logf("I2C addresses: %s", FormatAddrs(b.Found))

	if slices.Contains(b.Found, addr) {
		b.logf("DRV2665 found")
		amp, err := drv2665.New(b.i2c, cfg.Amp)
		if err != nil {
			return nil, err
		}
		b.Amp = amp
		b.logf("%s ready (chip id %d)", amp.Variant(), amp.ChipID())
		if cfg.Bench != nil {
			if err := amp.Apply(*cfg.Bench); err != nil {
				return nil, b.abort(err)
			}
		}
	} else {
		b.logf("DRV2665 not found")
		if cfg.RequireAmp {
			return nil, ErrAmpNotFound
		}
	}

	fan, err := shiftreg.New(b.spi, res.Latch, res.Polarity, cfg.Fanout)
	if err != nil {
		return nil, b.abort(err)
	}
	b.Fanout = fan
	b.logf("fanout ready (layout %s)", fan.Layout().Name)
	return b, nil
}

// Drive sets exactly the given pins and commits them.
func (b *Board) Drive(pins ...int) error {
	b.Fanout.Clear()
	for _, p := range pins {
		if err := b.Fanout.SetPin(p, true); err != nil {
			return err
		}
	}
	return b.Fanout.Write()
}

// SelfTest runs the fanout channel test and logs the outcome.
func (b *Board) SelfTest() shiftreg.Report {
	rep := b.Fanout.SelfTest()
	if rep.OK() {
		b.logf("self-test: all %d channels pass", shiftreg.NumPins)
	} else {
		b.logf("self-test: failed pins %v", rep.Failed())
	}
	return rep
}

// Close de-energizes the outputs and puts the amplifier into standby.
func (b *Board) Close() error {
	var errs []error
	if b.Fanout != nil {
		errs = append(errs, b.Fanout.Off())
	}
	if b.Amp != nil {
		errs = append(errs, b.Amp.SetStandby(true))
	}
	return errors.Join(errs...)
}

// abort puts an already woken amplifier back into standby.
func (b *Board) abort(err error) error {
	if b.Amp == nil {
		return err
	}
	if serr := b.Amp.SetStandby(true); serr != nil {
		return errors.Join(err, serr)
	}
	return err
}

func shareI2C(bus drivers.I2C) *busx.I2C {
	if s, ok := bus.(*busx.I2C); ok {
		return s
	}
	return busx.NewI2C(bus)
}

func shareSPI(bus drivers.SPI) *busx.SPI {
	if s, ok := bus.(*busx.SPI); ok {
		return s
	}
	return busx.NewSPI(bus)
}

//go:build linux && !(rp2040 || rp2350)

package platform

import (
	"errors"

	"hapticcode-go/board"
	"hapticcode-go/errcode"
	"hapticcode-go/x/fmtx"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
	"tinygo.org/x/drivers"
)

// Compile-time check.
var _ drivers.SPI = periphSPI{}

// periphSPI adds the single-byte Transfer tinygo drivers expect.
type periphSPI struct{ c spi.Conn }

func (p periphSPI) Tx(w, r []byte) error { return p.c.Tx(w, r) }

func (p periphSPI) Transfer(b byte) (byte, error) {
	var r [1]byte
	err := p.c.Tx([]byte{b}, r[:])
	return r[0], err
}

type periphPin struct{ p gpio.PinIO }

// Set drives the line; OutputPin has no error return, so failures are logged.
func (p periphPin) Set(high bool) {
	if err := p.p.Out(gpio.Level(high)); err != nil {
		fmtx.Logf("platform: gpio %s: %v", p.p.Name(), err)
	}
}

// OpenLinux initialises periph and opens the buses and lines. The returned
// close function releases both buses.
func OpenLinux(cfg LinuxConfig) (board.Resources, func() error, error) {
	var res board.Resources
	if _, err := host.Init(); err != nil {
		return res, nil, errcode.Wrap(errcode.NotFound, "platform: periph init", err)
	}
	if cfg.SPIHz == 0 {
		cfg.SPIHz = DefaultLinuxConfig().SPIHz
	}

	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return res, nil, errcode.Wrap(errcode.NotFound, "platform: i2c "+cfg.I2CBus, err)
	}
	port, err := spireg.Open(cfg.SPIPort)
	if err != nil {
		_ = bus.Close()
		return res, nil, errcode.Wrap(errcode.NotFound, "platform: spi "+cfg.SPIPort, err)
	}
	closeAll := func() error { return errors.Join(port.Close(), bus.Close()) }

	// The latch is driven as a GPIO so it can span several transfers.
	conn, err := port.Connect(physic.Frequency(cfg.SPIHz)*physic.Hertz, spi.Mode0|spi.NoCS, 8)
	if err != nil {
		_ = closeAll()
		return res, nil, errcode.Wrap(errcode.BusError, "platform: spi connect", err)
	}

	latch, err := outputPin(cfg.Latch, gpio.High)
	if err != nil {
		_ = closeAll()
		return res, nil, err
	}
	pol, err := outputPin(cfg.Polarity, gpio.Low)
	if err != nil {
		_ = closeAll()
		return res, nil, err
	}

	res = board.Resources{
		I2C:      bus,
		SPI:      periphSPI{conn},
		Latch:    latch,
		Polarity: pol,
	}
	return res, closeAll, nil
}

func outputPin(name string, initial gpio.Level) (periphPin, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return periphPin{}, errcode.New(errcode.NotFound, "platform", "gpio "+name)
	}
	if err := p.Out(initial); err != nil {
		return periphPin{}, errcode.Wrap(errcode.BusError, "platform: gpio "+name, err)
	}
	return periphPin{p}, nil
}

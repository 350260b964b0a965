//go:build rp2040 || rp2350

// Package platform supplies board.Resources for each build target: in-memory
// simulation on hosts, periph.io on Linux, and TinyGo machine on RP2.
package platform

import (
	"machine"

	"hapticcode-go/board"
	"hapticcode-go/errcode"
)

// OpenRP2 configures I2C0, SPI0 and the latch/polarity lines from plan.
func OpenRP2(plan board.Plan) (board.Resources, error) {
	var res board.Resources

	i2c := machine.I2C0
	if err := i2c.Configure(machine.I2CConfig{
		SDA:       machine.Pin(plan.I2C.SDA),
		SCL:       machine.Pin(plan.I2C.SCL),
		Frequency: plan.I2C.Hz,
	}); err != nil {
		return res, errcode.Wrap(errcode.InvalidParams, "platform: i2c0", err)
	}

	spi := machine.SPI0
	if err := spi.Configure(machine.SPIConfig{
		Frequency: plan.SPI.Hz,
		SCK:       machine.Pin(plan.SPI.SCK),
		SDO:       machine.Pin(plan.SPI.SDO),
		SDI:       machine.Pin(plan.SPI.SDI),
		Mode:      0,
	}); err != nil {
		return res, errcode.Wrap(errcode.InvalidParams, "platform: spi0", err)
	}

	latch := machine.Pin(plan.Latch)
	latch.Configure(machine.PinConfig{Mode: machine.PinOutput})
	latch.High()

	pol := machine.Pin(plan.Polarity)
	pol.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pol.Low()

	res = board.Resources{I2C: i2c, SPI: spi, Latch: latch, Polarity: pol}
	return res, nil
}

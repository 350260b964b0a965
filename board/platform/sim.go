//go:build !(rp2040 || rp2350)

// Package platform supplies board.Resources for each build target: in-memory
// simulation on hosts, periph.io on Linux, and TinyGo machine on RP2.
package platform

import (
	"hapticcode-go/board"
	"hapticcode-go/drivers/drv2665"
	"hapticcode-go/drivers/shiftreg"
)

// Sim bundles the simulated chips behind Simulated resources so callers can
// inject faults and inspect outputs.
type Sim struct {
	Amp   *drv2665.Sim
	Chain *shiftreg.Sim
}

// Simulated returns resources backed by a DRV2665 model reporting chipID and
// a fault-free register chain. A chipID of 0 leaves the amplifier off the bus.
func Simulated(chipID uint8) (board.Resources, *Sim) {
	s := &Sim{
		Amp:   drv2665.NewSim(chipID),
		Chain: shiftreg.NewSim(),
	}
	if chipID == 0 {
		s.Amp.Addr = 0 // never matches a probe
	}
	return board.Resources{
		I2C:      s.Amp,
		SPI:      s.Chain,
		Latch:    s.Chain.LatchPin(),
		Polarity: s.Chain.PolarityPin(),
	}, s
}

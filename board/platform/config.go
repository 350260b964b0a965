//go:build !(rp2040 || rp2350)

package platform

// LinuxConfig names the host devices. Empty bus names select the first
// registered bus.
type LinuxConfig struct {
	I2CBus   string // e.g. "1" or "/dev/i2c-1"
	SPIPort  string // e.g. "/dev/spidev0.0"
	SPIHz    uint32
	Latch    string // GPIO name, e.g. "GPIO5"
	Polarity string // GPIO name, e.g. "GPIO10"
}

// DefaultLinuxConfig mirrors the Pico wiring on a Raspberry Pi header.
func DefaultLinuxConfig() LinuxConfig {
	return LinuxConfig{
		SPIHz:    1_000_000,
		Latch:    "GPIO5",
		Polarity: "GPIO10",
	}
}

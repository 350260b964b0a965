// Package drv2665 provides constants for register addresses and bitfields of
// the TI DRV2665/DRV2667 piezo haptic driver.
package drv2665

const (
	// 7-bit I2C address.
	AddressDefault = 0x59

	// --- Register sub-addresses (8-bit registers) ---

	regStatus   = 0x00 // R: FIFO flags
	regControl1 = 0x01 // R/W: chip id, input mode, gain
	regControl2 = 0x02 // R/W: reset, standby, timeout, enable override
	regData     = 0x0B // W: FIFO sample

	// --- STATUS (0x00) ---
	statusFIFOEmpty = 0b0000_0010
	statusFIFOFull  = 0b0000_0001

	// --- CONTROL1 (0x01) ---
	maskChipID  = 0b0111_1000
	shiftChipID = 3
	maskInput   = 0b0000_0100
	maskGain    = 0b0000_0011

	// --- CONTROL2 (0x02) ---
	bitReset     = 1 << 7
	maskStandby  = 0b0100_0000
	maskTimeout  = 0b0000_1100
	maskEnable   = 0b0000_0010
	standbyTrue  = 1 << 6
	standbyFalse = 0 << 6

	// Values read back right after a reset (STANDBY set, everything else zero).
	control2AfterReset = standbyTrue

	// Chip ids reported in CONTROL1[6:3].
	ChipIDDRV2665 = 5
	ChipIDDRV2667 = 7

	// FIFO depth in samples.
	FIFODepth = 100
)

func regName(reg byte) string {
	switch reg {
	case regStatus:
		return "status"
	case regControl1:
		return "control1"
	case regControl2:
		return "control2"
	case regData:
		return "data"
	default:
		return "reg"
	}
}

package board

import (
	"hapticcode-go/x/conv"

	"tinygo.org/x/drivers"
)

// 7-bit address range probed by Scan (reserved addresses excluded).
const (
	scanFirst = 0x08
	scanLast  = 0x77
)

// Scan probes every 7-bit address with a one-byte read and returns those that
// acknowledged, in ascending order.
func Scan(bus drivers.I2C) []uint16 {
	var found []uint16
	var r [1]byte
	for a := uint16(scanFirst); a <= scanLast; a++ {
		if err := bus.Tx(a, nil, r[:]); err == nil {
			found = append(found, a)
		}
	}
	return found
}

// FormatAddrs renders addresses as "[0x38 0x59]".
func FormatAddrs(addrs []uint16) string {
	out := []byte{'['}
	for i, a := range addrs {
		if i > 0 {
			out = append(out, ' ')
		}
		out = conv.AppendHex8(out, uint8(a))
	}
	return string(append(out, ']'))
}

package drv2665

import (
	"errors"
	"sync"

	"tinygo.org/x/drivers"
)

// Compile-time check.
var _ drivers.I2C = (*Sim)(nil)

var (
	errSimNack        = errors.New("drv2665 sim: nack")
	errSimUnsupported = errors.New("drv2665 sim: unsupported transaction")
)

// Sim is an in-memory register model of a DRV2665 for host tests and dry runs.
// It answers the access shapes the driver uses: [reg]+read(1), [reg,val], and
// a bare 1-byte read used by address probes.
type Sim struct {
	mu sync.Mutex

	Addr   uint16
	ChipID uint8

	control1 byte
	control2 byte
	fifo     []int8

	// Err, when set, is returned by every transaction.
	Err error

	// Counters for assertions.
	Reads, Writes, Resets int
}

// NewSim returns a simulator in its post-reset state.
func NewSim(chipID uint8) *Sim {
	s := &Sim{Addr: AddressDefault, ChipID: chipID}
	s.reset()
	return s
}

// ResetDefaults returns the register values a device with chipID holds after reset.
func ResetDefaults(chipID uint8) (control1, control2 byte) {
	return (chipID << shiftChipID) & maskChipID, control2AfterReset
}

func (s *Sim) reset() {
	s.control1, s.control2 = ResetDefaults(s.ChipID)
	s.fifo = s.fifo[:0]
}

// Poke overwrites raw register contents (chip id bits of CONTROL1 included).
func (s *Sim) Poke(control1, control2 byte) {
	s.mu.Lock()
	s.control1, s.control2 = control1, control2
	s.mu.Unlock()
}

// Peek returns the raw register contents.
func (s *Sim) Peek() (control1, control2 byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.control1, s.control2
}

// Drain empties the FIFO and returns what was queued.
func (s *Sim) Drain() []int8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]int8(nil), s.fifo...)
	s.fifo = s.fifo[:0]
	return out
}

func (s *Sim) Tx(addr uint16, w, r []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if addr != s.Addr {
		return errSimNack
	}
	switch {
	case len(w) == 0 && len(r) == 1:
		r[0] = 0
		return nil
	case len(w) == 1 && len(r) == 1:
		s.Reads++
		r[0] = s.read(w[0])
		return nil
	case len(w) == 2 && len(r) == 0:
		s.Writes++
		s.write(w[0], w[1])
		return nil
	}
	return errSimUnsupported
}

func (s *Sim) read(reg byte) byte {
	switch reg {
	case regStatus:
		var v byte
		if len(s.fifo) == 0 {
			v |= statusFIFOEmpty
		}
		if len(s.fifo) >= FIFODepth {
			v |= statusFIFOFull
		}
		return v
	case regControl1:
		return s.control1
	case regControl2:
		return s.control2
	}
	return 0
}

func (s *Sim) write(reg, v byte) {
	switch reg {
	case regControl1:
		s.control1 = (s.control1 & maskChipID) | (v &^ maskChipID)
	case regControl2:
		if v&bitReset != 0 {
			s.Resets++
			s.reset()
			return
		}
		s.control2 = v
	case regData:
		if len(s.fifo) < FIFODepth {
			s.fifo = append(s.fifo, int8(v))
		}
	}
}

package shiftreg

import (
	"errors"
	"sync"

	"tinygo.org/x/drivers"
)

// Compile-time check.
var _ drivers.SPI = (*Sim)(nil)

var errSimLength = errors.New("shiftreg sim: frame length")

// Sim models the register chain, its latch and the polarity line for host
// tests and dry runs. Every full-frame Tx returns the previous chain contents
// and loads the new frame; the latch rising edge copies the chain to Outputs.
// Faults are applied to bits as they are loaded into the chain.
type Sim struct {
	mu sync.Mutex

	chain   Frame
	outputs Frame
	latchLo bool
	pol     bool

	// StuckLow/StuckHigh force chain bits (open line, short to rail).
	StuckLow, StuckHigh Frame
	bridges             []bridge
	// Err, when set, is returned by every transfer.
	Err error

	// History of committed frames, oldest first.
	Commits []Frame
	Shifts  int
}

// NewSim returns an idle, fault-free chain.
func NewSim() *Sim { return &Sim{} }

// Open forces pin's line low in layout l.
func (s *Sim) Open(l Layout, pin int) {
	idx, m, err := l.locate(pin)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.StuckLow[idx] |= m
	s.mu.Unlock()
}

// bridge raises bit (toIdx, toMask) whenever (idx, mask) is loaded high.
type bridge struct {
	idx, toIdx   int
	mask, toMask byte
}

// Short bridges pin onto neighbour in layout l: driving pin also pulls
// neighbour high, so only frames with pin set read back wrong.
func (s *Sim) Short(l Layout, pin, neighbour int) {
	idx, m, err := l.locate(pin)
	if err != nil {
		return
	}
	toIdx, toM, err := l.locate(neighbour)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.bridges = append(s.bridges, bridge{idx: idx, toIdx: toIdx, mask: m, toMask: toM})
	s.mu.Unlock()
}

func (s *Sim) Tx(w, r []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if len(w) != FrameSize || (r != nil && len(r) != FrameSize) {
		return errSimLength
	}
	out := s.chain
	var in Frame
	copy(in[:], w)
	for _, b := range s.bridges {
		if in[b.idx]&b.mask != 0 {
			in[b.toIdx] |= b.toMask
		}
	}
	for i := range s.chain {
		s.chain[i] = (in[i] &^ s.StuckLow[i]) | s.StuckHigh[i]
	}
	copy(r, out[:])
	s.Shifts++
	return nil
}

// Transfer shifts a single byte through the chain; faults are not applied.
func (s *Sim) Transfer(b byte) (byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	out := s.chain[0]
	copy(s.chain[:], s.chain[1:])
	s.chain[FrameSize-1] = b
	return out, nil
}

// Outputs returns the committed output state.
func (s *Sim) Outputs() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outputs
}

// PolarityLevel returns the level last driven on the polarity line.
func (s *Sim) PolarityLevel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pol
}

// LatchLow reports whether the latch is currently held low.
func (s *Sim) LatchLow() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latchLo
}

// LatchPin returns the latch line of the chain.
func (s *Sim) LatchPin() OutputPin { return simLatch{s} }

// PolarityPin returns the polarity line of the chain.
func (s *Sim) PolarityPin() OutputPin { return simPolarity{s} }

type simLatch struct{ s *Sim }

func (p simLatch) Set(high bool) {
	s := p.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if high && s.latchLo {
		s.outputs = s.chain
		s.Commits = append(s.Commits, s.chain)
	}
	s.latchLo = !high
}

type simPolarity struct{ s *Sim }

func (p simPolarity) Set(high bool) {
	p.s.mu.Lock()
	p.s.pol = high
	p.s.mu.Unlock()
}

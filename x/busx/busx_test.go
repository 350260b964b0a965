package busx

import (
	"errors"
	"sync"
	"testing"

	"tinygo.org/x/drivers"
)

// lockProbe fails the test if it is entered while another call is active.
type lockProbe struct {
	t      *testing.T
	active sync.Mutex
	err    error
	calls  int
}

func (p *lockProbe) enter() {
	if !p.active.TryLock() {
		p.t.Error("bus entered concurrently")
		return
	}
	p.calls++
	p.active.Unlock()
}

func (p *lockProbe) Tx(addr uint16, w, r []byte) error { p.enter(); return p.err }

type spiProbe struct{ lockProbe }

func (p *spiProbe) Tx(w, r []byte) error { p.enter(); return p.err }
func (p *spiProbe) Transfer(b byte) (byte, error) {
	p.enter()
	return b, p.err
}

func TestI2C_ReleasesOnError(t *testing.T) {
	raw := &lockProbe{t: t, err: errors.New("nack")}
	b := NewI2C(raw)
	for i := 0; i < 3; i++ {
		if err := b.Tx(0x59, []byte{1}, make([]byte, 1)); err == nil {
			t.Fatal("expected error")
		}
	}
	// Would deadlock if an error path kept the lock.
	if !b.mu.TryLock() {
		t.Fatal("lock still held after failed Tx")
	}
	b.mu.Unlock()
	if raw.calls != 3 {
		t.Fatalf("calls=%d", raw.calls)
	}
}

func TestI2C_SerialisesConcurrentCallers(t *testing.T) {
	raw := &lockProbe{t: t}
	b := NewI2C(raw)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = b.Tx(0x59, nil, nil)
			}
		}()
	}
	wg.Wait()
	if raw.calls != 400 {
		t.Fatalf("calls=%d, want 400", raw.calls)
	}
}

func TestSPI_DoHoldsLockAndReleasesOnPanic(t *testing.T) {
	raw := &spiProbe{lockProbe{t: t}}
	b := NewSPI(raw)

	err := b.Do(func(r drivers.SPI) error {
		if b.mu.TryLock() {
			t.Fatal("lock not held inside Do")
		}
		_ = r.Tx([]byte{1, 2, 3, 4}, make([]byte, 4))
		_, _ = r.Transfer(0xAA)
		return errors.New("scope failed")
	})
	if err == nil {
		t.Fatal("Do lost callback error")
	}

	func() {
		defer func() { _ = recover() }()
		_ = b.Do(func(drivers.SPI) error { panic("boom") })
	}()
	if !b.mu.TryLock() {
		t.Fatal("lock still held after panic")
	}
	b.mu.Unlock()

	if _, err := b.Transfer(0x55); err != nil {
		t.Fatal(err)
	}
	if raw.calls != 3 {
		t.Fatalf("calls=%d, want 3", raw.calls)
	}
}

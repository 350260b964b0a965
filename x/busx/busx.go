// Package busx serialises access to buses shared by several drivers.
//
// Every wrapped call acquires the bus lock, performs the transaction and
// releases the lock on every exit path. Do holds the lock for a multi-step
// scope (for example a latch pulse around several SPI transfers) and hands the
// raw bus to the callback, so nested calls never re-enter the lock.
package busx

import (
	"sync"

	"tinygo.org/x/drivers"
)

// Compile-time checks.
var (
	_ drivers.I2C = (*I2C)(nil)
	_ drivers.SPI = (*SPI)(nil)
)

// I2C is a drivers.I2C whose transactions are mutually exclusive.
type I2C struct {
	mu  sync.Mutex
	raw drivers.I2C
}

// NewI2C wraps raw. All users of the bus must share the returned value.
func NewI2C(raw drivers.I2C) *I2C { return &I2C{raw: raw} }

func (b *I2C) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.raw.Tx(addr, w, r)
}

// Do runs fn with exclusive access to the raw bus.
func (b *I2C) Do(fn func(raw drivers.I2C) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return fn(b.raw)
}

// SPI is a drivers.SPI whose transfers are mutually exclusive.
type SPI struct {
	mu  sync.Mutex
	raw drivers.SPI
}

// NewSPI wraps raw. All users of the bus must share the returned value.
func NewSPI(raw drivers.SPI) *SPI { return &SPI{raw: raw} }

func (b *SPI) Tx(w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.raw.Tx(w, r)
}

func (b *SPI) Transfer(c byte) (byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.raw.Transfer(c)
}

// Do runs fn with exclusive access to the raw bus.
func (b *SPI) Do(fn func(raw drivers.SPI) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return fn(b.raw)
}

package ident

import (
	"crypto/rand"
	"encoding/binary"
	"math/big"
)

// Source produces the randomness behind ids, room codes, and seeds.
type Source interface {
	// Intn returns a uniformly distributed int in [0, n).
	Intn(n int) int
	// Uint32 returns a uniformly distributed 32-bit unsigned integer.
	Uint32() uint32
}

// cryptoSource implements Source using crypto/rand.
//
// Invariant: All values produced are uniformly distributed; Intn values are
// in [0, n) for any n > 0.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Intn returns a cryptographically secure random int in [0, n).
//
// Precondition: n > 0. Panics with "ident: Intn called with n <= 0" if n <= 0.
// Panics with "ident: crypto/rand failure: <err>" if crypto/rand fails.
func (c *cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("ident: Intn called with n <= 0")
	}
	val, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("ident: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}

// Uint32 returns a cryptographically secure random uint32.
//
// Panics with "ident: crypto/rand failure: <err>" if crypto/rand fails.
func (c *cryptoSource) Uint32() uint32 {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic("ident: crypto/rand failure: " + err.Error())
	}
	return binary.BigEndian.Uint32(buf[:])
}

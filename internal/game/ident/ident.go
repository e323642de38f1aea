// Package ident generates connection ids, room codes, and world seeds for
// the relay. Ids are probabilistically unique; nothing here verifies
// uniqueness against historical values.
package ident

import (
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CodeAlphabet is the room code alphabet. Easily confused characters
// (0/O, 1/I) are excluded so codes survive being read aloud.
const CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CodeLength is the length of a room code.
const CodeLength = 6

// Generator produces connection ids, room codes, and seeds.
type Generator struct {
	src Source
	now func() time.Time
}

// NewGenerator creates a Generator backed by the given Source.
//
// Precondition: src must be non-nil.
func NewGenerator(src Source) *Generator {
	return &Generator{
		src: src,
		now: time.Now,
	}
}

// ConnectionID returns a new connection id: an uppercase base-36 timestamp
// prefix plus a random suffix. Unique with overwhelming probability among
// concurrently live connections; collisions are not checked.
//
// Postcondition: Returns a non-empty uppercase string.
func (g *Generator) ConnectionID() string {
	prefix := strconv.FormatInt(g.now().UnixMilli(), 36)
	u := uuid.New()
	suffix := hex.EncodeToString(u[:4])
	return strings.ToUpper(prefix + suffix)
}

// RoomCode returns a 6-character code drawn from CodeAlphabet. Callers that
// need uniqueness among active rooms must retry against their registry.
//
// Postcondition: Returns a string of exactly CodeLength characters, each in
// CodeAlphabet.
func (g *Generator) RoomCode() string {
	var b strings.Builder
	b.Grow(CodeLength)
	for i := 0; i < CodeLength; i++ {
		b.WriteByte(CodeAlphabet[g.src.Intn(len(CodeAlphabet))])
	}
	return b.String()
}

// Seed returns a uniformly distributed 32-bit world seed.
func (g *Generator) Seed() uint32 {
	return g.src.Uint32()
}

package room

// reseedMultiplier is the odd 32-bit multiplier used to derive a fresh
// collectible seed from the base world seed and the reset generation.
const reseedMultiplier uint32 = 2654435761

// reseed deterministically mixes the base world seed with a reset
// generation. Every client computes the same value from the same inputs.
func reseed(base uint32, seq uint32) uint32 {
	return base ^ (seq * reseedMultiplier)
}

// Collectibles tracks which world items have been picked up this generation,
// plus the deterministic seed clients use to place the current generation's
// spawn points.
//
// Invariant: Count() always equals the number of distinct collected ids.
// Invariant: Seed() == reseed(base, Seq()) for the room's base world seed.
type Collectibles struct {
	base  uint32
	seq   uint32
	seed  uint32
	taken map[string]struct{}
	order []string
}

// NewCollectibles creates an empty generation-0 collectible set derived from
// the room's base world seed.
func NewCollectibles(base uint32) *Collectibles {
	return &Collectibles{
		base:  base,
		seed:  reseed(base, 0),
		taken: make(map[string]struct{}),
	}
}

// Collect marks itemID as taken. Idempotent: collecting an id twice leaves
// the count unchanged and reports changed=false, so duplicate or late
// collection messages are harmless.
//
// Postcondition: Returns the (possibly unchanged) count after the call.
func (c *Collectibles) Collect(itemID string) (count int, changed bool) {
	if _, dup := c.taken[itemID]; dup {
		return len(c.taken), false
	}
	c.taken[itemID] = struct{}{}
	c.order = append(c.order, itemID)
	return len(c.taken), true
}

// Reset clears the taken set, advances the generation, and recomputes the
// collectible seed deterministically from the base world seed.
//
// Postcondition: Count() is 0 and Seed() is the new generation's seed.
func (c *Collectibles) Reset() (newSeed uint32) {
	c.seq++
	c.seed = reseed(c.base, c.seq)
	c.taken = make(map[string]struct{})
	c.order = nil
	return c.seed
}

// Count returns the number of items taken this generation.
func (c *Collectibles) Count() int {
	return len(c.taken)
}

// Taken returns the collected item ids in collection order.
//
// Postcondition: The returned slice is a copy; len equals Count().
func (c *Collectibles) Taken() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Seq returns the reset generation counter. Generation 0 is the room's
// initial layout.
func (c *Collectibles) Seq() uint32 {
	return c.seq
}

// Seed returns the current generation's collectible seed.
func (c *Collectibles) Seed() uint32 {
	return c.seed
}

package room

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestCollectiblesInitialGeneration(t *testing.T) {
	c := NewCollectibles(0xDEADBEEF)
	assert.Equal(t, uint32(0), c.Seq())
	// Generation 0 mixes to the base seed itself.
	assert.Equal(t, uint32(0xDEADBEEF), c.Seed())
	assert.Equal(t, 0, c.Count())
	assert.Empty(t, c.Taken())
}

func TestCollectIdempotent(t *testing.T) {
	c := NewCollectibles(1)

	count, changed := c.Collect("item_7")
	assert.True(t, changed)
	assert.Equal(t, 1, count)

	count, changed = c.Collect("item_7")
	assert.False(t, changed)
	assert.Equal(t, 1, count)
	assert.Equal(t, []string{"item_7"}, c.Taken())
}

func TestCollectCountMatchesTaken(t *testing.T) {
	c := NewCollectibles(1)
	c.Collect("a")
	c.Collect("b")
	c.Collect("a")
	c.Collect("c")
	assert.Equal(t, 3, c.Count())
	assert.Equal(t, []string{"a", "b", "c"}, c.Taken())
}

func TestResetClearsAndAdvances(t *testing.T) {
	c := NewCollectibles(77)
	c.Collect("a")
	c.Collect("b")

	seed := c.Reset()
	assert.Equal(t, uint32(1), c.Seq())
	assert.Equal(t, c.Seed(), seed)
	assert.Equal(t, 0, c.Count())
	assert.Empty(t, c.Taken())
	assert.NotEqual(t, uint32(77), seed)
}

func TestResetDeterministic(t *testing.T) {
	a := NewCollectibles(0xCAFE)
	b := NewCollectibles(0xCAFE)
	for i := 0; i < 5; i++ {
		require.Equal(t, a.Reset(), b.Reset(), "generation %d diverged", i+1)
	}
}

func TestReseedMixing(t *testing.T) {
	base := uint32(0x12345678)
	assert.Equal(t, base, reseed(base, 0))
	assert.Equal(t, base^reseedMultiplier, reseed(base, 1))

	// Distinct generations give distinct seeds for small seq values.
	seen := make(map[uint32]bool)
	for seq := uint32(0); seq < 1000; seq++ {
		seen[reseed(base, seq)] = true
	}
	assert.Len(t, seen, 1000)
}

func TestCollectiblesCountProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := NewCollectibles(rapid.Uint32().Draw(t, "base"))
		distinct := make(map[string]bool)

		numOps := rapid.IntRange(0, 80).Draw(t, "num_ops")
		for i := 0; i < numOps; i++ {
			if rapid.Bool().Draw(t, "collect") {
				id := fmt.Sprintf("item_%d", rapid.IntRange(0, 20).Draw(t, "item"))
				count, _ := c.Collect(id)
				distinct[id] = true
				if count != len(distinct) {
					t.Fatalf("count %d after collecting %d distinct items", count, len(distinct))
				}
			} else {
				c.Reset()
				distinct = make(map[string]bool)
			}
			if c.Count() != len(distinct) {
				t.Fatalf("count %d, expected %d", c.Count(), len(distinct))
			}
			if len(c.Taken()) != c.Count() {
				t.Fatalf("taken length %d != count %d", len(c.Taken()), c.Count())
			}
		}
	})
}

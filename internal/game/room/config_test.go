package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeClampsDifficulty(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"above range", float64(5), 2},
		{"below range", float64(-3), 0},
		{"in range", float64(1), 1},
		{"fractional floors", float64(1.9), 1},
		{"string invalid", "hard", 0},
		{"bool invalid", true, 0},
		{"null invalid", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig().merge(map[string]any{"difficulty": tt.in})
			assert.Equal(t, tt.want, cfg.Difficulty)
		})
	}
}

func TestMergeNoahEnabledTruthiness(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want bool
	}{
		{"true", true, true},
		{"false", false, false},
		{"zero", float64(0), false},
		{"nonzero", float64(7), true},
		{"empty string", "", false},
		{"string", "yes", true},
		{"null", nil, false},
		{"object", map[string]any{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig().merge(map[string]any{"noahEnabled": tt.in})
			assert.Equal(t, tt.want, cfg.NoahEnabled)
		})
	}
}

func TestMergeKeepsUnspecifiedKeys(t *testing.T) {
	cfg := GameConfig{Difficulty: 2, NoahEnabled: true}
	next := cfg.merge(map[string]any{"noahEnabled": false})
	assert.Equal(t, 2, next.Difficulty)
	assert.False(t, next.NoahEnabled)
}

func TestMergeDropsUnrecognizedKeys(t *testing.T) {
	cfg := DefaultConfig().merge(map[string]any{"speedHack": true, "difficulty": float64(1)})
	assert.Equal(t, GameConfig{Difficulty: 1, NoahEnabled: false}, cfg)
}

package room

import "math"

// MaxDifficulty is the upper clamp for the difficulty option.
const MaxDifficulty = 2

// GameConfig holds the recognized game options. Only the host may change
// them; clients receive the full struct on every config broadcast.
type GameConfig struct {
	// Difficulty is an integer in [0, MaxDifficulty].
	Difficulty int `json:"difficulty"`
	// NoahEnabled toggles the optional Noah nextbot.
	NoahEnabled bool `json:"noahEnabled"`
}

// DefaultConfig returns the options applied at room creation.
func DefaultConfig() GameConfig {
	return GameConfig{Difficulty: 0, NoahEnabled: false}
}

// merge applies recognized keys from patch onto cfg and returns the result.
// Unrecognized keys are dropped; unspecified keys keep their prior value.
func (cfg GameConfig) merge(patch map[string]any) GameConfig {
	next := cfg
	if v, ok := patch["difficulty"]; ok {
		next.Difficulty = coerceDifficulty(v)
	}
	if v, ok := patch["noahEnabled"]; ok {
		next.NoahEnabled = truthy(v)
	}
	return next
}

// coerceDifficulty floors a JSON number and clamps it to [0, MaxDifficulty].
// Anything non-numeric coerces to 0.
func coerceDifficulty(v any) int {
	var d float64
	switch n := v.(type) {
	case float64:
		d = n
	case int:
		d = float64(n)
	default:
		return 0
	}
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0
	}
	i := int(math.Floor(d))
	if i < 0 {
		return 0
	}
	if i > MaxDifficulty {
		return MaxDifficulty
	}
	return i
}

// truthy mirrors the client protocol's loose boolean coercion: false, 0,
// "", and null are false; any other present value is true.
func truthy(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case float64:
		return b != 0
	case int:
		return b != 0
	case string:
		return b != ""
	default:
		return true
	}
}

package difficulty

import "fmt"

// Tier is the difficulty classification a question is generated for.
type Tier int

const (
	TierEasy   Tier = 1
	TierMedium Tier = 2
	TierHard   Tier = 3
)

// AllTiers lists the tiers from easiest to hardest.
var AllTiers = []Tier{TierEasy, TierMedium, TierHard}

func (t Tier) String() string {
	switch t {
	case TierEasy:
		return "easy"
	case TierMedium:
		return "medium"
	case TierHard:
		return "hard"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// Valid reports whether t is one of the three defined tiers.
func (t Tier) Valid() bool {
	return t >= TierEasy && t <= TierHard
}

package difficulty

import (
	"errors"
	"fmt"
)

// Age bands for the starting tier. Each band includes its lower bound.
const (
	MediumFromAge = 6
	HardFromAge   = 8
)

var (
	// ErrNoQuestionsAsked is returned by NextTier when no question has been
	// counted yet. Accuracy is undefined in that case.
	ErrNoQuestionsAsked = errors.New("next tier needs at least one counted question")

	// ErrInvalidScore is returned when a score is negative or exceeds the
	// number of questions asked.
	ErrInvalidScore = errors.New("score out of range")
)

// InitialTier maps a learner's age to the tier of the first section.
// Ages are not checked for plausibility.
func InitialTier(age int) Tier {
	switch {
	case age < MediumFromAge:
		return TierEasy
	case age < HardFromAge:
		return TierMedium
	default:
		return TierHard
	}
}

// NextTier picks the tier for the next section from cumulative accuracy.
//
// Accuracy of at least 80% moves to Hard, at least 50% to Medium, anything
// lower to Easy. The comparison is done on integers so that exactly 0.8 and
// 0.5 land in the higher band.
func NextTier(score, total int) (Tier, error) {
	if total <= 0 {
		return 0, ErrNoQuestionsAsked
	}
	if score < 0 || score > total {
		return 0, fmt.Errorf("%w: %d of %d", ErrInvalidScore, score, total)
	}

	switch {
	case score*10 >= total*8:
		return TierHard, nil
	case score*2 >= total:
		return TierMedium, nil
	default:
		return TierEasy, nil
	}
}

// Accuracy returns score/total, or 0 when nothing was asked.
func Accuracy(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(score) / float64(total)
}

package quiz

import (
	"fmt"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
	"github.com/google/uuid"
)

// Phase is where a session is in its lifecycle.
type Phase int

const (
	PhaseInitializing    Phase = iota // Config checked, tier not yet chosen
	PhaseInSection                    // Asking questions
	PhaseSectionBoundary              // Between sections, waiting on the learner
	PhaseFinished                     // Done; the result is final
)

func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhaseInSection:
		return "in-section"
	case PhaseSectionBoundary:
		return "section-boundary"
	case PhaseFinished:
		return "finished"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Session is the mutable state of one run. It is owned by a single Run
// call and dropped when Run returns.
type Session struct {
	ID string

	// Score counts correct answers, TotalAsked counts answered questions.
	// Score never exceeds TotalAsked.
	Score      int
	TotalAsked int

	Tier difficulty.Tier

	// SectionIndex is zero-based.
	SectionIndex int

	Phase Phase
}

// newSession starts a session at the tier the learner's age calls for.
func newSession(age int) *Session {
	return &Session{
		ID:    uuid.NewString(),
		Tier:  difficulty.InitialTier(age),
		Phase: PhaseInitializing,
	}
}

// record counts one answered question and credits it when correct.
func (s *Session) record(correct bool) {
	s.TotalAsked++
	if correct {
		s.Score++
	}
	s.mustHold()
}

// mustHold panics unless 0 <= Score <= TotalAsked. A violation can only
// happen through a bug in this package.
func (s *Session) mustHold() {
	if s.Score < 0 || s.TotalAsked < 0 || s.Score > s.TotalAsked {
		panic(fmt.Sprintf("quiz: session %s score %d out of range for %d asked", s.ID, s.Score, s.TotalAsked))
	}
}

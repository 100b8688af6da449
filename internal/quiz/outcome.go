package quiz

import (
	"time"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
	"github.com/abhisek/adaptiquiz/internal/problemgen"
)

// Status is what happened to one question slot.
type Status string

const (
	StatusCorrect          Status = "correct"
	StatusIncorrect        Status = "incorrect"
	StatusSkipped          Status = "skipped"
	StatusGenerationFailed Status = "generation-failed"
	StatusEvaluationFailed Status = "evaluation-failed"
)

// Counted reports whether a slot with this status added to TotalAsked.
func (s Status) Counted() bool {
	return s == StatusCorrect || s == StatusIncorrect || s == StatusEvaluationFailed
}

// Outcome describes one question slot after it was played.
type Outcome struct {
	Section int // 1-based
	Number  int // 1-based within the section
	Tier    difficulty.Tier

	// Question is nil when generation failed.
	Question *problemgen.Question
	Answer   string
	Status   Status

	// Err is an *InputError or *CollaboratorError for the non-graded statuses.
	Err error

	// Elapsed is the time the learner took to answer.
	Elapsed time.Duration

	// Running totals after this slot.
	Score      int
	TotalAsked int
}

// Start is reported once, before the first question.
type Start struct {
	SessionID string
	Age       int
	Tier      difficulty.Tier
	Config    Config
}

// SectionSummary is reported at every section boundary.
type SectionSummary struct {
	Section int // 1-based
	Tier    difficulty.Tier

	// Asked and Correct cover this section only.
	Asked   int
	Correct int

	// Score and TotalAsked are cumulative.
	Score      int
	TotalAsked int

	// Last is set on the final configured section.
	Last bool
}

// Result is the final state of a run.
type Result struct {
	SessionID      string
	FinalScore     int
	FinalTotal     int
	SectionsPlayed int
	FinalTier      difficulty.Tier

	// EndedEarly is set when the learner declined to continue.
	EndedEarly bool

	// Interrupted is set when the context was cancelled mid-run.
	Interrupted bool
}

// Accuracy is FinalScore/FinalTotal, or 0 before any counted answer.
func (r *Result) Accuracy() float64 {
	return difficulty.Accuracy(r.FinalScore, r.FinalTotal)
}

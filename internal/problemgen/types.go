package problemgen

import "github.com/abhisek/adaptiquiz/internal/difficulty"

// Question is one generated question ready for display.
type Question struct {
	// Text is the prompt shown to the learner, e.g. "What is 7 + 5?".
	Text string

	// Tier is the tier this question was generated for.
	Tier difficulty.Tier

	// Answer is the generator's canonical answer: "12", "0.5", "3/4".
	// Empty when the source could not provide one.
	Answer string

	// AnswerType describes the numeric type of the answer.
	AnswerType AnswerType

	// Explanation is a short worked solution shown after the learner answers.
	Explanation string
}

// AnswerType describes the numeric representation of the correct answer.
type AnswerType string

const (
	AnswerTypeInteger  AnswerType = "integer"  // e.g. "623", "-15"
	AnswerTypeDecimal  AnswerType = "decimal"  // e.g. "3.75", "0.5"
	AnswerTypeFraction AnswerType = "fraction" // e.g. "3/4", "7/2"
)

// Valid reports whether t is one of the known answer types.
func (t AnswerType) Valid() bool {
	switch t {
	case AnswerTypeInteger, AnswerTypeDecimal, AnswerTypeFraction:
		return true
	}
	return false
}

// GenerateInput is what validators see besides the question itself.
type GenerateInput struct {
	Tier difficulty.Tier

	// PriorQuestions holds the texts already asked in this session, oldest
	// first.
	PriorQuestions []string
}

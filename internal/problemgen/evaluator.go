package problemgen

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
)

var (
	// ErrMalformedAnswer means the learner's input is not a number.
	ErrMalformedAnswer = errors.New("answer is not a number")

	// ErrUngradable means neither the question text nor the generator
	// gave anything to compare against.
	ErrUngradable = errors.New("question cannot be graded")
)

// ArithmeticEvaluator grades numeric answers. When the question text holds
// a single computable operation the result is recomputed from it, so a
// wrong generator answer never marks a right learner answer as wrong.
// Otherwise the generator's answer is used.
type ArithmeticEvaluator struct{}

// Evaluate reports whether answer solves q.
func (ArithmeticEvaluator) Evaluate(_ context.Context, q *Question, answer string) (bool, error) {
	if strings.TrimSpace(answer) == "" {
		return false, ErrMalformedAnswer
	}

	expected, err := ExpectedAnswer(q)
	if err != nil {
		return false, err
	}
	return CheckAnswer(answer, expected, answerTypeOrDefault(q.AnswerType))
}

// ExpectedAnswer returns the answer an evaluator grades against: the value
// recomputed from the question text when possible, else the generator's.
func ExpectedAnswer(q *Question) (string, error) {
	answerType := answerTypeOrDefault(q.AnswerType)
	if computed, err := computeAnswer(q.Text, answerType); err == nil {
		return computed, nil
	}
	if strings.TrimSpace(q.Answer) == "" {
		return "", ErrUngradable
	}
	return q.Answer, nil
}

func answerTypeOrDefault(t AnswerType) AnswerType {
	if t.Valid() {
		return t
	}
	return AnswerTypeInteger
}

// CoinFlipEvaluator ignores the answer and marks it correct at random. It
// only exists to rehearse the adaptive flow without grading.
type CoinFlipEvaluator struct {
	// Rand is the randomness source; nil uses the global generator.
	Rand *rand.Rand
}

// Evaluate returns true or false with equal probability.
func (e CoinFlipEvaluator) Evaluate(_ context.Context, _ *Question, answer string) (bool, error) {
	if strings.TrimSpace(answer) == "" {
		return false, ErrMalformedAnswer
	}
	if e.Rand != nil {
		return e.Rand.IntN(2) == 0, nil
	}
	return rand.IntN(2) == 0, nil
}

package problemgen

import (
	"fmt"
	"strings"
)

// buildDedup formats prior questions for the prompt, respecting the max limit.
// Returns "None" if there are no prior questions.
func buildDedup(priorQuestions []string, max int) string {
	if len(priorQuestions) == 0 {
		return "None"
	}

	// Keep only the most recent N questions.
	if max > 0 && len(priorQuestions) > max {
		priorQuestions = priorQuestions[len(priorQuestions)-max:]
	}

	var b strings.Builder
	for i, q := range priorQuestions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}

// questionKey folds case and whitespace so "What is 2+2?" and
// "what is 2 + 2 ?" count as the same question.
func questionKey(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if r == ' ' || r == '\t' || r == '\n' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// DuplicateValidator rejects a question already asked in this session.
type DuplicateValidator struct{}

func (v *DuplicateValidator) Name() string { return "duplicate" }

func (v *DuplicateValidator) Validate(q *Question, input GenerateInput) *ValidationError {
	key := questionKey(q.Text)
	for _, prior := range input.PriorQuestions {
		if questionKey(prior) == key {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %q was already asked", q.Text),
				Retryable: true,
			}
		}
	}
	return nil
}

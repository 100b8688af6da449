package problemgen

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Length limits in characters. A question has to fit on one terminal line
// for a young reader.
const (
	MaxQuestionChars    = 200
	MaxExplanationChars = 400
)

// StructuralValidator rejects questions with missing fields, oversized text
// or an unknown answer type.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question, _ GenerateInput) *ValidationError {
	fields := []struct {
		name  string
		value string
		limit int
	}{
		{"question_text", q.Text, MaxQuestionChars},
		{"answer", q.Answer, 32},
		{"explanation", q.Explanation, MaxExplanationChars},
	}
	for _, f := range fields {
		n := utf8.RuneCountInString(strings.TrimSpace(f.value))
		switch {
		case n == 0:
			return v.fail(f.name + " is empty")
		case n > f.limit:
			return v.fail(fmt.Sprintf("%s is %d characters, limit %d", f.name, n, f.limit))
		}
	}
	if !q.AnswerType.Valid() {
		return v.fail(fmt.Sprintf("answer_type %q is not integer, decimal or fraction", q.AnswerType))
	}
	return nil
}

func (v *StructuralValidator) fail(msg string) *ValidationError {
	return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
}

package problemgen

import (
	"strings"
	"testing"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
)

func validQuestion() *Question {
	return &Question{
		Text:        "What is 345 + 278?",
		Tier:        difficulty.TierHard,
		Answer:      "623",
		AnswerType:  AnswerTypeInteger,
		Explanation: "345 + 278 = 623",
	}
}

func TestStructural(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(q *Question)
		wantMsg string
	}{
		{"valid", func(*Question) {}, ""},
		{"empty text", func(q *Question) { q.Text = "" }, "question_text is empty"},
		{"blank text", func(q *Question) { q.Text = "   " }, "question_text is empty"},
		{"long text", func(q *Question) { q.Text = strings.Repeat("a", MaxQuestionChars+1) }, "question_text is 201"},
		{"text at limit", func(q *Question) { q.Text = strings.Repeat("é", MaxQuestionChars) }, ""},
		{"empty answer", func(q *Question) { q.Answer = "" }, "answer is empty"},
		{"empty explanation", func(q *Question) { q.Explanation = "" }, "explanation is empty"},
		{"long explanation", func(q *Question) { q.Explanation = strings.Repeat("a", MaxExplanationChars+1) }, "explanation is 401"},
		{"unknown answer type", func(q *Question) { q.AnswerType = "boolean" }, `answer_type "boolean"`},
	}

	v := &StructuralValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.mutate(q)
			err := v.Validate(q, GenerateInput{})
			if tt.wantMsg == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected rejection")
			}
			if err.Validator != "structural" || !err.Retryable {
				t.Errorf("got %+v, want retryable structural error", err)
			}
			if !strings.Contains(err.Message, tt.wantMsg) {
				t.Errorf("message = %q, want it to contain %q", err.Message, tt.wantMsg)
			}
		})
	}
}

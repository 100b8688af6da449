package problemgen

import (
	"reflect"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Validator: "math-check", Message: "computed \"12\""}
	if got, want := err.Error(), `validator "math-check": computed "12"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	var names []string
	for _, v := range cfg.Validators {
		names = append(names, v.Name())
	}
	want := []string{"structural", "answer-format", "math-check", "duplicate"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("validators = %v, want %v", names, want)
	}
	if cfg.MaxTokens != 256 || cfg.Temperature != 0.4 || cfg.TopP != 0.9 {
		t.Errorf("sampling = %d/%v/%v", cfg.MaxTokens, cfg.Temperature, cfg.TopP)
	}
	if cfg.MaxPriorQuestions != 10 || cfg.MaxAttempts != 3 {
		t.Errorf("history/attempts = %d/%d, want 10/3", cfg.MaxPriorQuestions, cfg.MaxAttempts)
	}
}

func TestDuplicateValidator(t *testing.T) {
	v := &DuplicateValidator{}
	q := validQuestion()

	if err := v.Validate(q, GenerateInput{PriorQuestions: []string{"What is 1 + 1?"}}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err := v.Validate(q, GenerateInput{PriorQuestions: []string{"What is 1 + 1?", "what is 345+278 ?"}})
	if err == nil {
		t.Fatal("expected duplicate rejection")
	}
	if !err.Retryable || err.Validator != "duplicate" {
		t.Errorf("got %+v, want retryable duplicate error", err)
	}
}

func TestQuestionKey(t *testing.T) {
	if questionKey("What is 2+2?") != questionKey(" what IS 2 + 2 ?\n") {
		t.Error("keys should ignore case and spacing")
	}
	if questionKey("What is 2+2?") == questionKey("What is 2+3?") {
		t.Error("different questions should have different keys")
	}
}

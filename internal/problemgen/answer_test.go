package problemgen

import (
	"errors"
	"testing"
)

func TestCheckAnswer(t *testing.T) {
	tests := []struct {
		input      string
		expected   string
		answerType AnswerType
		want       bool
	}{
		{"42", "42", AnswerTypeInteger, true},
		{" 42 ", "42", AnswerTypeInteger, true},
		{"042", "42", AnswerTypeInteger, true},
		{"42.0", "42", AnswerTypeInteger, true},
		{"84/2", "42", AnswerTypeInteger, true},
		{"1,000", "1000", AnswerTypeInteger, true},
		{"12,345,678", "12345678", AnswerTypeInteger, true},
		{"43", "42", AnswerTypeInteger, false},
		{"-42", "42", AnswerTypeInteger, false},

		{"3.50", "3.5", AnswerTypeDecimal, true},
		{"1,234.5", "1234.5", AnswerTypeDecimal, true},
		{"7/2", "3.5", AnswerTypeDecimal, true},
		{"3.6", "3.5", AnswerTypeDecimal, false},

		{"2/4", "1/2", AnswerTypeFraction, true},
		{" 1/2 ", "1/2", AnswerTypeFraction, true},
		{"0.5", "1/2", AnswerTypeFraction, true},
		{"1/3", "1/2", AnswerTypeFraction, false},
	}

	for _, tt := range tests {
		got, err := CheckAnswer(tt.input, tt.expected, tt.answerType)
		if err != nil {
			t.Errorf("CheckAnswer(%q, %q): unexpected error: %v", tt.input, tt.expected, err)
			continue
		}
		if got != tt.want {
			t.Errorf("CheckAnswer(%q, %q) = %v, want %v", tt.input, tt.expected, got, tt.want)
		}
	}
}

func TestCheckAnswer_Malformed(t *testing.T) {
	inputs := []string{
		"", "   ", "abc", "twelve", "1/0",
		"1,5", "10,00", ",15", "1 5", "1 / 5",
		"0x0f", "0b1111", "1.5e1", "15e0", "+15", "15.", ".5", "--15",
	}
	for _, input := range inputs {
		got, err := CheckAnswer(input, "15", AnswerTypeInteger)
		if !errors.Is(err, ErrMalformedAnswer) {
			t.Errorf("CheckAnswer(%q) = %v, %v; want ErrMalformedAnswer", input, got, err)
		}
	}
}

func TestCheckAnswer_ExpectedNotNumeric(t *testing.T) {
	_, err := CheckAnswer("3", "three", AnswerTypeInteger)
	if !errors.Is(err, ErrUngradable) {
		t.Errorf("err = %v, want ErrUngradable", err)
	}
}

package problemgen

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

// AnswerFormatValidator checks that the answer is written in the canonical
// form for its declared type. Kids' questions never have negative integer
// answers.
type AnswerFormatValidator struct{}

func (v *AnswerFormatValidator) Name() string { return "answer-format" }

func (v *AnswerFormatValidator) Validate(q *Question, _ GenerateInput) *ValidationError {
	check, ok := answerFormats[q.AnswerType]
	if !ok {
		return nil
	}
	if err := check(q.Answer); err != nil {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("%s answer %q: %s", q.AnswerType, q.Answer, err),
			Retryable: true,
		}
	}
	return nil
}

var (
	integerRe  = regexp.MustCompile(`^-?(?:0|[1-9]\d*)$`)
	decimalRe  = regexp.MustCompile(`^-?(?:0|[1-9]\d*)(?:\.\d*[1-9])?$`)
	fractionRe = regexp.MustCompile(`^(-?\d+)/(\d+)$`)
)

var answerFormats = map[AnswerType]func(string) error{
	AnswerTypeInteger: func(s string) error {
		if !integerRe.MatchString(s) {
			return errors.New("not an integer without leading zeros")
		}
		if strings.HasPrefix(s, "-") {
			return errors.New("negative")
		}
		return nil
	},
	AnswerTypeDecimal: func(s string) error {
		if !decimalRe.MatchString(s) {
			return errors.New("not a decimal without leading or trailing zeros")
		}
		return nil
	},
	AnswerTypeFraction: func(s string) error {
		m := fractionRe.FindStringSubmatch(s)
		if m == nil {
			return errors.New("not written as a/b")
		}
		num, _ := new(big.Int).SetString(m[1], 10)
		den, _ := new(big.Int).SetString(m[2], 10)
		if den.Sign() == 0 {
			return errors.New("zero denominator")
		}
		if new(big.Int).GCD(nil, nil, num.Abs(num), den).Cmp(big.NewInt(1)) != 0 {
			return errors.New("not in lowest terms")
		}
		return nil
	},
}

package problemgen

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

// CheckAnswer compares the learner's input with expected. It reports
// ErrMalformedAnswer when the input is not a number and ErrUngradable when
// expected is not one.
//
// Numbers compare by exact value, so "2/4" matches "1/2", "3.50" matches
// "3.5", "007" matches "7" and "0.5" answers a fraction question. The answer
// type only matters for how expected was written, not for how the learner
// may answer.
func CheckAnswer(learnerAnswer, expected string, _ AnswerType) (bool, error) {
	learner, ok := parseNumber(learnerAnswer)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrMalformedAnswer, strings.TrimSpace(learnerAnswer))
	}
	want, ok := parseNumber(expected)
	if !ok {
		return false, fmt.Errorf("%w: expected answer %q is not a number", ErrUngradable, expected)
	}
	return learner.Cmp(want) == 0, nil
}

var (
	// Commas are accepted only as thousands separators: "1,000" but not
	// "1,5" or "10,00".
	plainNumberRe = regexp.MustCompile(`^-?(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?$`)
	fractionNumRe = regexp.MustCompile(`^-?\d+/\d+$`)
)

// parseNumber reads an integer, decimal or a/b fraction as an exact rational.
// Surrounding whitespace is ignored. Inner spaces, exponents and base
// prefixes are not numbers here.
func parseNumber(s string) (*big.Rat, bool) {
	s = strings.TrimSpace(s)
	switch {
	case plainNumberRe.MatchString(s):
		s = strings.ReplaceAll(s, ",", "")
	case fractionNumRe.MatchString(s):
	default:
		return nil, false
	}
	return new(big.Rat).SetString(s)
}

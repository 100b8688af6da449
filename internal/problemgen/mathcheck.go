package problemgen

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

// MathCheckValidator recomputes the answer from the question text when it
// holds a single binary operation. Word problems and longer expressions
// pass through silently.
type MathCheckValidator struct{}

func (v *MathCheckValidator) Name() string { return "math-check" }

func (v *MathCheckValidator) Validate(q *Question, _ GenerateInput) *ValidationError {
	computed, err := computeAnswer(q.Text, q.AnswerType)
	if err != nil {
		return nil
	}
	if !answersEqual(computed, q.Answer) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("computed %q but LLM claimed %q", computed, q.Answer),
			Retryable: true,
		}
	}
	return nil
}

var errNotComputable = errors.New("no single arithmetic expression")

const (
	// An operand is a fraction written without spaces ("3/4") or a plain
	// integer or decimal. A slash with spaces around it is division.
	operandPattern  = `-?(?:\d+/\d+|\d+(?:\.\d+)?)`
	operatorPattern = `(?:\s*[+\-*×÷]\s*|\s+[xX/]\s+)`
)

var (
	// expressionRe matches a run of operands joined by operators.
	expressionRe = regexp.MustCompile(operandPattern + `(?:` + operatorPattern + operandPattern + `)+`)

	tokenRe = regexp.MustCompile(`\d+/\d+|\d+(?:\.\d+)?|[+\-*×÷/xX]`)
)

// computeAnswer evaluates the one arithmetic expression in text and formats
// the result for answerType. Text with no expression, more than one, or a
// chain of several operators is not computable.
func computeAnswer(text string, answerType AnswerType) (string, error) {
	runs := expressionRe.FindAllString(text, 2)
	if len(runs) != 1 {
		return "", errNotComputable
	}

	a, op, b, err := splitExpression(runs[0])
	if err != nil {
		return "", err
	}
	result, err := apply(a, op, b)
	if err != nil {
		return "", err
	}
	return formatResult(result, answerType), nil
}

// splitExpression reads "operand op operand". A minus where an operand is
// expected is a sign.
func splitExpression(run string) (*big.Rat, string, *big.Rat, error) {
	var (
		operands  []*big.Rat
		operators []string
		negative  bool
	)
	for _, tok := range tokenRe.FindAllString(run, -1) {
		if len(operands) == len(operators) {
			if tok == "-" && !negative {
				negative = true
				continue
			}
			r, ok := new(big.Rat).SetString(tok)
			if !ok {
				return nil, "", nil, errNotComputable
			}
			if negative {
				r.Neg(r)
				negative = false
			}
			operands = append(operands, r)
			continue
		}
		operators = append(operators, canonicalOperator(tok))
	}
	if len(operands) != 2 || len(operators) != 1 {
		return nil, "", nil, errNotComputable
	}
	return operands[0], operators[0], operands[1], nil
}

func canonicalOperator(tok string) string {
	switch tok {
	case "×", "x", "X":
		return "*"
	case "÷":
		return "/"
	}
	return tok
}

func apply(a *big.Rat, op string, b *big.Rat) (*big.Rat, error) {
	r := new(big.Rat)
	switch op {
	case "+":
		return r.Add(a, b), nil
	case "-":
		return r.Sub(a, b), nil
	case "*":
		return r.Mul(a, b), nil
	case "/":
		if b.Sign() == 0 {
			return nil, errors.New("division by zero")
		}
		return r.Quo(a, b), nil
	}
	return nil, fmt.Errorf("unsupported operator %q", op)
}

// formatResult writes r the way the generator is asked to write answers:
// decimals without trailing zeros, everything else as an integer or a
// reduced fraction.
func formatResult(r *big.Rat, answerType AnswerType) string {
	if answerType != AnswerTypeDecimal || r.IsInt() {
		return r.RatString()
	}
	s := strings.TrimRight(r.FloatString(10), "0")
	return strings.TrimSuffix(s, ".")
}

// answersEqual compares two answers by value, falling back to text when
// either side is not a number.
func answersEqual(a, b string) bool {
	ra, okA := parseNumber(a)
	rb, okB := parseNumber(b)
	if okA && okB {
		return ra.Cmp(rb) == 0
	}
	return strings.TrimSpace(a) == strings.TrimSpace(b)
}

package problemgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
)

const systemPrompt = `You write arithmetic practice questions for children aged 5 to 8.

Rules:
- Generate exactly one question that matches the requested difficulty.
- Use plain ASCII text. Use + for addition, - for subtraction and * for multiplication.
- Whole numbers only. Answers are never negative.
- Keep the question short: one sentence a young child can read.
- The answer must be correct. Give it as digits, with no units or words.
- The explanation shows the calculation in one or two short sentences.
- Do not repeat any question from the "already asked" list.`

// tierInstruction is the per-tier request sent as the user message.
func tierInstruction(tier difficulty.Tier) string {
	switch tier {
	case difficulty.TierEasy:
		return "Generate a simple addition or subtraction math problem for a 6-year-old."
	case difficulty.TierMedium:
		return "Generate a medium-difficulty math problem involving addition and subtraction for a 7-year-old."
	default:
		return "Generate a complex math problem for an 8-year-old involving addition, subtraction, or simple multiplication."
	}
}

// buildUserMessage constructs the user message from GenerateInput and Config limits.
func buildUserMessage(input GenerateInput, cfg Config) string {
	var b strings.Builder

	b.WriteString(tierInstruction(input.Tier))
	fmt.Fprintf(&b, "\nDifficulty: %s\n", input.Tier)

	b.WriteString("\nAlready asked in this session:\n")
	b.WriteString(buildDedup(input.PriorQuestions, cfg.MaxPriorQuestions))

	return b.String()
}

// retryMessage tells the model why its last question was rejected.
func retryMessage(rejected *ValidationError) string {
	return fmt.Sprintf("That question was rejected (%s: %s). Write a different question that follows the rules.",
		rejected.Validator, rejected.Message)
}

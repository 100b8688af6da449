package problemgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every generated question; the first
	// failure stops the pipeline.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature and TopP are the sampling parameters sent with each request.
	Temperature float64
	TopP        float64

	// MaxPriorQuestions caps how many already-asked questions are listed
	// in the prompt.
	MaxPriorQuestions int

	// MaxAttempts bounds regeneration after a retryable validation failure.
	// Values below 1 mean a single attempt.
	MaxAttempts int
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&AnswerFormatValidator{},
			&MathCheckValidator{},
			&DuplicateValidator{},
		},
		MaxTokens:         256,
		Temperature:       0.4,
		TopP:              0.9,
		MaxPriorQuestions: 10,
		MaxAttempts:       3,
	}
}

package problemgen

import (
	"context"
	"fmt"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
)

// Generator produces questions for a difficulty tier.
type Generator interface {
	// Generate returns a validated question for tier. Failures are
	// *GenerationError.
	Generate(ctx context.Context, tier difficulty.Tier) (*Question, error)
}

// GenerationError reports that no usable question could be produced.
type GenerationError struct {
	Tier     difficulty.Tier
	Attempts int
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate %s question (%d attempts): %v", e.Tier, e.Attempts, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

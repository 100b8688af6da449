package problemgen

import (
	"context"
	"strings"
	"testing"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalGenerator_QuestionsGradeThemselves(t *testing.T) {
	gen := NewLocalGenerator(42)
	ctx := context.Background()
	validators := DefaultConfig().Validators

	for _, tier := range difficulty.AllTiers {
		for range 30 {
			q, err := gen.Generate(ctx, tier)
			require.NoError(t, err)
			assert.Equal(t, tier, q.Tier)

			for _, v := range validators[:3] {
				assert.Nil(t, v.Validate(q, GenerateInput{Tier: tier}), "%s rejected %q", v.Name(), q.Text)
			}

			ok, err := ArithmeticEvaluator{}.Evaluate(ctx, q, q.Answer)
			require.NoError(t, err)
			assert.True(t, ok, "%q should accept its own answer %q", q.Text, q.Answer)
		}
	}
}

func TestLocalGenerator_TierShapes(t *testing.T) {
	gen := NewLocalGenerator(7)
	ctx := context.Background()

	sawMul := false
	for range 100 {
		q, err := gen.Generate(ctx, difficulty.TierEasy)
		require.NoError(t, err)
		assert.NotContains(t, q.Text, "*", "easy questions are add/sub only")

		q, err = gen.Generate(ctx, difficulty.TierHard)
		require.NoError(t, err)
		if strings.Contains(q.Text, "*") {
			sawMul = true
		}
	}
	assert.True(t, sawMul, "hard tier should include multiplication")
}

func TestLocalGenerator_Deterministic(t *testing.T) {
	a, b := NewLocalGenerator(99), NewLocalGenerator(99)
	for range 10 {
		qa, err := a.Generate(context.Background(), difficulty.TierMedium)
		require.NoError(t, err)
		qb, err := b.Generate(context.Background(), difficulty.TierMedium)
		require.NoError(t, err)
		assert.Equal(t, qa.Text, qb.Text)
	}
}

func TestLocalGenerator_AvoidsRepeats(t *testing.T) {
	gen := NewLocalGenerator(3)
	seen := map[string]bool{}
	for range 10 {
		q, err := gen.Generate(context.Background(), difficulty.TierHard)
		require.NoError(t, err)
		assert.False(t, seen[q.Text], "repeated %q", q.Text)
		seen[q.Text] = true
	}
}

func TestLocalGenerator_Errors(t *testing.T) {
	gen := NewLocalGenerator(1)

	_, err := gen.Generate(context.Background(), difficulty.Tier(9))
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = gen.Generate(ctx, difficulty.TierEasy)
	assert.ErrorIs(t, err, context.Canceled)
}

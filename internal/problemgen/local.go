package problemgen

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
)

// operandRange bounds the operands of one tier.
type operandRange struct {
	min, max int
	mulMax   int // multiplication factor bound; 0 disables multiplication
}

var localRanges = map[difficulty.Tier]operandRange{
	difficulty.TierEasy:   {min: 0, max: 10},
	difficulty.TierMedium: {min: 5, max: 50},
	difficulty.TierHard:   {min: 10, max: 100, mulMax: 10},
}

// LocalGenerator builds arithmetic questions from templates, with no
// network access. It is used when no LLM provider is configured.
type LocalGenerator struct {
	mu   sync.Mutex
	rng  *rand.Rand
	seen map[string]bool
}

// NewLocalGenerator returns a generator whose sequence is fixed by seed.
func NewLocalGenerator(seed uint64) *LocalGenerator {
	return &LocalGenerator{
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seen: make(map[string]bool),
	}
}

// Generate returns a fresh question for tier. A repeat is only returned
// once the tier's question space looks exhausted.
func (g *LocalGenerator) Generate(ctx context.Context, tier difficulty.Tier) (*Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, &GenerationError{Tier: tier, Err: err}
	}
	r, ok := localRanges[tier]
	if !ok {
		return nil, &GenerationError{Tier: tier, Err: fmt.Errorf("unknown tier %d", int(tier))}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	var q *Question
	for range 20 {
		q = g.build(tier, r)
		if !g.seen[questionKey(q.Text)] {
			break
		}
	}
	g.seen[questionKey(q.Text)] = true
	return q, nil
}

func (g *LocalGenerator) build(tier difficulty.Tier, r operandRange) *Question {
	op := "+-"[g.rng.IntN(2)]
	if r.mulMax > 0 && g.rng.IntN(3) == 0 {
		op = '*'
	}

	var a, b, answer int
	switch op {
	case '*':
		a, b = 2+g.rng.IntN(r.mulMax-1), 2+g.rng.IntN(r.mulMax-1)
		answer = a * b
	case '-':
		a, b = g.operand(r), g.operand(r)
		if a < b {
			a, b = b, a
		}
		answer = a - b
	default:
		a, b = g.operand(r), g.operand(r)
		answer = a + b
	}

	return &Question{
		Text:        fmt.Sprintf("What is %d %c %d?", a, op, b),
		Tier:        tier,
		Answer:      fmt.Sprint(answer),
		AnswerType:  AnswerTypeInteger,
		Explanation: fmt.Sprintf("%d %c %d = %d", a, op, b, answer),
	}
}

func (g *LocalGenerator) operand(r operandRange) int {
	return r.min + g.rng.IntN(r.max-r.min+1)
}

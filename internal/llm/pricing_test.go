package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupCost(t *testing.T) {
	c := LookupCost("meta-llama/Meta-Llama-3.1-8B-Instruct-Turbo")
	require.NotNil(t, c, "default together model must be priced")
	assert.Equal(t, 0.18, c.InputPerMTok)

	dated := LookupCost("gpt-4o-mini-2024-07-18")
	require.NotNil(t, dated, "dated snapshot falls back to base model")
	assert.Equal(t, 0.15, dated.InputPerMTok)

	assert.Nil(t, LookupCost("mock"))
	assert.Nil(t, LookupCost(""))
}

func TestModelCost_Cost(t *testing.T) {
	c := ModelCost{InputPerMTok: 1, OutputPerMTok: 5}
	assert.InDelta(t, 0.0035, c.Cost(1000, 500), 1e-12)
	assert.Zero(t, c.Cost(0, 0))
}

func TestAliasesArePriced(t *testing.T) {
	for _, aliases := range []map[string]string{togetherModels, anthropicModels, openaiModels, geminiModels} {
		for alias, id := range aliases {
			assert.NotNil(t, LookupCost(id), "%s -> %s has no price", alias, id)
		}
	}
}

package llm

import (
	"regexp"
	"strings"
)

// ModelCost is a model's list price in USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD price of one call.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1e6
}

// dateSuffix matches the snapshot date OpenAI appends to model ids in
// replies, e.g. "gpt-4o-mini-2024-07-18".
var dateSuffix = regexp.MustCompile(`-\d{4}-\d{2}-\d{2}$`)

// LookupCost returns the pricing for a model id, or nil if unknown. Ids
// are matched case-insensitively, with a dated snapshot falling back to
// its base model.
func LookupCost(modelID string) *ModelCost {
	id := strings.ToLower(strings.TrimSpace(modelID))
	for _, candidate := range []string{id, dateSuffix.ReplaceAllString(id, "")} {
		if c, ok := modelCosts[candidate]; ok {
			return &c
		}
	}
	return nil
}

// modelCosts covers the models reachable through the provider aliases
// plus common alternatives. Keys are lower case. Prices as published by
// each vendor on 2026-09-30.
var modelCosts = map[string]ModelCost{
	// Together AI, the default provider.
	"meta-llama/meta-llama-3.1-8b-instruct-turbo":  {0.18, 0.18},
	"meta-llama/meta-llama-3.1-70b-instruct-turbo": {0.88, 0.88},
	"meta-llama/llama-3.3-70b-instruct-turbo":      {0.88, 0.88},

	// OpenRouter
	"meta-llama/llama-3.1-8b-instruct":  {0.02, 0.03},
	"meta-llama/llama-3.3-70b-instruct": {0.13, 0.39},

	// Anthropic
	"claude-haiku-4-5-20251001":  {1, 5},
	"claude-haiku-4-5":           {1, 5},
	"claude-sonnet-4-20250514":   {3, 15},
	"claude-sonnet-4-5":          {3, 15},
	"claude-3-5-haiku-20241022":  {0.8, 4},
	"claude-sonnet-4-5-20250929": {3, 15},

	// OpenAI
	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1-nano": {0.1, 0.4},
	"gpt-5-mini":   {0.25, 2},
	"gpt-5-nano":   {0.05, 0.4},

	// Google
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-pro":        {1.25, 10},
	"gemini-2.0-flash":      {0.1, 0.4},
}

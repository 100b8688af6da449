package llm

import "errors"

const defaultTogetherBaseURL = "https://api.together.xyz/v1"

var togetherModels = map[string]string{
	"llama-3.1-8b":  "meta-llama/Meta-Llama-3.1-8B-Instruct-Turbo",
	"llama-3.1-70b": "meta-llama/Meta-Llama-3.1-70B-Instruct-Turbo",
	"llama-3.3-70b": "meta-llama/Llama-3.3-70B-Instruct-Turbo",
}

// TogetherProvider talks to Together AI through its OpenAI-compatible API.
type TogetherProvider struct {
	*OpenAIProvider
}

// NewTogetherProvider creates a provider for Together AI.
func NewTogetherProvider(cfg TogetherConfig) (*TogetherProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("together API key is required")
	}
	inner, err := compatibleProvider(cfg.APIKey, resolveModel(cfg.Model, togetherModels), cfg.BaseURL, defaultTogetherBaseURL)
	if err != nil {
		return nil, err
	}
	// Together only honours json_object, not strict json_schema.
	inner.jsonObjectOnly = true
	return &TogetherProvider{OpenAIProvider: inner}, nil
}

package llm

import "errors"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider routes through OpenRouter's OpenAI-compatible API.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider for OpenRouter.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}
	inner, err := compatibleProvider(cfg.APIKey, cfg.Model, cfg.BaseURL, defaultOpenRouterBaseURL)
	if err != nil {
		return nil, err
	}
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}

// compatibleProvider builds an OpenAIProvider for a third-party endpoint,
// falling back to fallbackURL when baseURL is empty.
func compatibleProvider(apiKey, model, baseURL, fallbackURL string) (*OpenAIProvider, error) {
	if baseURL == "" {
		baseURL = fallbackURL
	}
	return NewOpenAIProvider(OpenAIConfig{APIKey: apiKey, Model: model, BaseURL: baseURL})
}

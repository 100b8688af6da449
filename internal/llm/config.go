package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// EnvPrefix prefixes every environment variable the program reads.
const EnvPrefix = "ADAPTIQUIZ_"

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderTogether   = "together"
	ProviderMock       = "mock"
)

// discoveryOrder is the order DiscoverConfig probes the vendors' own key
// variables in. Together comes first because its default model is cheapest.
var discoveryOrder = []string{
	ProviderTogether,
	ProviderGemini,
	ProviderOpenAI,
	ProviderAnthropic,
	ProviderOpenRouter,
}

// Config selects and configures the LLM backend.
type Config struct {
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Together   TogetherConfig
	Retry      RetryConfig

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

// VendorConfig is the per-vendor part of Config. BaseURL is ignored by
// vendors without an OpenAI-compatible endpoint.
type VendorConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type (
	AnthropicConfig  = VendorConfig
	OpenAIConfig     = VendorConfig
	GeminiConfig     = VendorConfig
	OpenRouterConfig = VendorConfig
	TogetherConfig   = VendorConfig
)

// RetryConfig configures exponential backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the built-in defaults. No API keys are set.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderTogether,
		Anthropic:  VendorConfig{Model: "claude-haiku"},
		OpenAI:     VendorConfig{Model: "gpt-4o-mini"},
		Gemini:     VendorConfig{Model: "gemini-flash"},
		OpenRouter: VendorConfig{Model: "meta-llama/llama-3.1-8b-instruct"},
		Together:   VendorConfig{Model: "llama-3.1-8b"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

// vendor returns the settings block for name, or nil for mock and unknown
// providers.
func (c *Config) vendor(name string) *VendorConfig {
	switch name {
	case ProviderAnthropic:
		return &c.Anthropic
	case ProviderOpenAI:
		return &c.OpenAI
	case ProviderGemini:
		return &c.Gemini
	case ProviderOpenRouter:
		return &c.OpenRouter
	case ProviderTogether:
		return &c.Together
	}
	return nil
}

// ConfigFromEnv overlays ADAPTIQUIZ_* variables on the defaults, e.g.
// ADAPTIQUIZ_LLM_PROVIDER, ADAPTIQUIZ_GEMINI_API_KEY, ADAPTIQUIZ_OPENAI_MODEL,
// ADAPTIQUIZ_TOGETHER_BASE_URL and ADAPTIQUIZ_LLM_TIMEOUT.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	overrideFromEnv(&cfg.Provider, "LLM_PROVIDER")

	for _, name := range discoveryOrder {
		v := cfg.vendor(name)
		prefix := strings.ToUpper(name) + "_"
		overrideFromEnv(&v.APIKey, prefix+"API_KEY")
		overrideFromEnv(&v.Model, prefix+"MODEL")
		overrideFromEnv(&v.BaseURL, prefix+"BASE_URL")
	}

	if d, err := time.ParseDuration(os.Getenv(EnvPrefix + "LLM_TIMEOUT")); err == nil {
		cfg.Timeout = d
	}
	return cfg
}

func overrideFromEnv(dst *string, name string) {
	if v := os.Getenv(EnvPrefix + name); v != "" {
		*dst = v
	}
}

// DiscoverConfig picks the first vendor whose conventional key variable
// (TOGETHER_API_KEY, GEMINI_API_KEY and so on) is set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	for _, name := range discoveryOrder {
		if key := os.Getenv(strings.ToUpper(name) + "_API_KEY"); key != "" {
			cfg.Provider = name
			cfg.vendor(name).APIKey = key
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider exists and has an API key.
func (c Config) Validate() error {
	if c.Provider == ProviderMock {
		return nil
	}
	v := c.vendor(c.Provider)
	if v == nil {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if v.APIKey == "" {
		return fmt.Errorf("%s%s_API_KEY is required for the %s provider",
			EnvPrefix, strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}

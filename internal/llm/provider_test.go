package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/adaptiquiz/internal/store"
)

func TestMockProvider_ServesQueueInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)
	ctx := context.Background()

	first, err := mock.Generate(ctx, Request{System: "sys"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(first.Content))
	assert.Equal(t, Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}, first.Usage)
	assert.Equal(t, StopEnd, first.StopReason)

	second, err := mock.Generate(ctx, Request{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":2}`, string(second.Content))

	_, err = mock.Generate(ctx, Request{})
	var unavailable *ErrProviderUnavailable
	require.ErrorAs(t, err, &unavailable)
	assert.ErrorIs(t, err, errMockExhausted)

	assert.Equal(t, 3, mock.CallCount())
	assert.Equal(t, "sys", mock.Calls[0].System)
}

func TestMockProvider_FallbackAndModel(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"n":1}`)})
	mock.Fallback = &MockResponse{Content: json.RawMessage(`{"n":0}`), Usage: Usage{InputTokens: 3, OutputTokens: 2}}
	mock.Model = "mock-llama"

	_, ok := mock.LastRequest()
	assert.False(t, ok)

	for i, want := range []string{`{"n":1}`, `{"n":0}`, `{"n":0}`} {
		resp, err := mock.Generate(context.Background(), Request{System: fmt.Sprint(i)})
		require.NoError(t, err)
		assert.JSONEq(t, want, string(resp.Content), "call %d", i)
		assert.Equal(t, "mock-llama", resp.Model)
	}

	last, ok := mock.LastRequest()
	require.True(t, ok)
	assert.Equal(t, "2", last.System)
	assert.Equal(t, "mock-llama", mock.ModelID())
	assert.Equal(t, "mock", NewMockProvider().ModelID())
}

func TestMockProvider_ConfiguredError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{}})
	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	assert.ErrorAs(t, err, &rl)
}

func TestContextTags(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(ctx))
	assert.Empty(t, SessionFrom(ctx))

	ctx = WithSession(WithPurpose(ctx, "question-gen"), "abc")
	assert.Equal(t, "question-gen", PurposeFrom(ctx))
	assert.Equal(t, "abc", SessionFrom(ctx))
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("ADAPTIQUIZ_LLM_PROVIDER", "gemini")
	t.Setenv("ADAPTIQUIZ_GEMINI_API_KEY", "g-key")
	t.Setenv("ADAPTIQUIZ_TOGETHER_BASE_URL", "http://localhost:9000/v1")
	t.Setenv("ADAPTIQUIZ_LLM_TIMEOUT", "5s")

	cfg := ConfigFromEnv()
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "g-key", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-flash", cfg.Gemini.Model, "default model survives")
	assert.Equal(t, "http://localhost:9000/v1", cfg.Together.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.NoError(t, cfg.Validate())
}

func TestConfigFromEnv_BadTimeoutKeepsDefault(t *testing.T) {
	t.Setenv("ADAPTIQUIZ_LLM_TIMEOUT", "soon")
	assert.Equal(t, DefaultConfig().Timeout, ConfigFromEnv().Timeout)
}

func TestDiscoverConfig(t *testing.T) {
	for _, name := range discoveryOrder {
		t.Setenv(strings.ToUpper(name)+"_API_KEY", "")
	}
	_, ok := DiscoverConfig()
	assert.False(t, ok)

	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	cfg, ok := DiscoverConfig()
	require.True(t, ok)
	assert.Equal(t, ProviderOpenAI, cfg.Provider, "openai is probed before anthropic")
	assert.Equal(t, "sk-openai", cfg.OpenAI.APIKey)

	t.Setenv("TOGETHER_API_KEY", "tg")
	cfg, _ = DiscoverConfig()
	assert.Equal(t, ProviderTogether, cfg.Provider)
	assert.Equal(t, "tg", cfg.Together.APIKey)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"anthropic without key", Config{Provider: ProviderAnthropic}, "ADAPTIQUIZ_ANTHROPIC_API_KEY"},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: VendorConfig{APIKey: "k"}}, ""},
		{"openai with key", Config{Provider: ProviderOpenAI, OpenAI: VendorConfig{APIKey: "k"}}, ""},
		{"openrouter without key", Config{Provider: ProviderOpenRouter}, "ADAPTIQUIZ_OPENROUTER_API_KEY"},
		{"together with key", Config{Provider: ProviderTogether, Together: VendorConfig{APIKey: "k"}}, ""},
		{"key on the wrong vendor", Config{Provider: ProviderGemini, Together: VendorConfig{APIKey: "k"}}, "ADAPTIQUIZ_GEMINI_API_KEY"},
		{"mock needs no key", Config{Provider: ProviderMock}, ""},
		{"unknown provider", Config{Provider: "llamafile"}, "unknown LLM provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: ProviderMock}, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &MockProvider{}, p, "mock is not wrapped")

	_, err = NewProvider(context.Background(), Config{Provider: ProviderTogether}, nil, nil)
	assert.Error(t, err)
}

func TestWithLogging_Journals(t *testing.T) {
	st, err := store.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"ok":true}`), Usage: Usage{InputTokens: 7, OutputTokens: 3}},
		MockResponse{Err: errors.New("boom")},
	)
	p := WithLogging(mock, ProviderMock, st.EventRepo(), nil)
	ctx := WithSession(WithPurpose(context.Background(), "question-gen"), "s-1")

	resp, err := p.Generate(ctx, Request{System: "be brief"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Content))

	_, err = p.Generate(ctx, Request{System: "again"})
	require.EqualError(t, err, "boom")

	events, err := st.EventRepo().QueryLLMEvents(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)

	failed, ok := events[0], events[1]
	assert.False(t, failed.Success)
	assert.Equal(t, "boom", failed.ErrorMessage)

	assert.True(t, ok.Success)
	assert.Equal(t, "s-1", ok.SessionID)
	assert.Equal(t, "question-gen", ok.Purpose)
	assert.Equal(t, "mock", ok.Model)
	assert.Equal(t, 7, ok.InputTokens)
	assert.Equal(t, "[system]\nbe brief\n\n", ok.RequestBody)
}

func TestWithLogging_NilRepo(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	_, err := WithLogging(mock, ProviderMock, nil, nil).Generate(context.Background(), Request{})
	assert.NoError(t, err)
}

func TestTranscript(t *testing.T) {
	got := transcript(Request{
		System:   "be brief",
		Messages: []Message{{Role: RoleUser, Content: "hi"}, {Role: RoleAssistant, Content: "{}"}},
		Schema:   &Schema{Name: "tiny", Definition: map[string]any{"type": "object"}},
	})
	want := "[system]\nbe brief\n\n[user]\nhi\n\n[assistant]\n{}\n\n[schema: tiny]\n{\"type\":\"object\"}\n"
	assert.Equal(t, want, got)
}

package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClaude answers every Messages call with reply and records the
// decoded request body.
type fakeClaude struct {
	status int
	reply  map[string]any
	body   map[string]any
}

func (f *fakeClaude) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_ = json.NewDecoder(r.Body).Decode(&f.body)
	w.Header().Set("Content-Type", "application/json")
	if f.status != 0 {
		w.WriteHeader(f.status)
	}
	_ = json.NewEncoder(w).Encode(f.reply)
}

func claudeMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func claudeError(status int, kind string) *fakeClaude {
	return &fakeClaude{
		status: status,
		reply:  map[string]any{"type": "error", "error": map[string]any{"type": kind, "message": "nope"}},
	}
}

func newFakeClaudeProvider(t *testing.T, f *fakeClaude) *AnthropicProvider {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return &AnthropicProvider{
		client: anthropic.NewClient(
			option.WithAPIKey("test-key"),
			option.WithBaseURL(srv.URL),
			option.WithMaxRetries(0),
		),
		model: "claude-haiku-4-5-20251001",
	}
}

func TestAnthropicProvider_Generate(t *testing.T) {
	f := &fakeClaude{reply: claudeMessage(`Sure: {"question_text":"What is 4 + 3?","attempts":1}`, "end_turn")}
	p := newFakeClaudeProvider(t, f)

	resp, err := p.Generate(context.Background(), Request{
		System:    "You write math questions.",
		Messages:  []Message{{Role: RoleUser, Content: "Tier: easy"}, {Role: RoleAssistant, Content: "{}"}, {Role: RoleUser, Content: "again"}},
		Schema:    answerSchema(),
		MaxTokens: 256,
		TopP:      0.9,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"question_text":"What is 4 + 3?","attempts":1}`, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 50, OutputTokens: 30, TotalTokens: 80}, resp.Usage)
	assert.Equal(t, StopEnd, resp.StopReason)
	assert.Equal(t, "claude-haiku-4-5-20251001", resp.Model)

	assert.Equal(t, 0.9, f.body["top_p"])
	assert.NotContains(t, f.body, "temperature")
	assert.EqualValues(t, 256, f.body["max_tokens"])
	msgs, ok := f.body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 3)
	assert.Equal(t, "assistant", msgs[1].(map[string]any)["role"])
}

func TestAnthropicProvider_TemperatureWinsOverTopP(t *testing.T) {
	f := &fakeClaude{reply: claudeMessage("ok", "end_turn")}
	p := newFakeClaudeProvider(t, f)

	resp, err := p.Generate(context.Background(), Request{
		Messages:    []Message{{Role: RoleUser, Content: "hi"}},
		MaxTokens:   16,
		Temperature: 0.4,
		TopP:        0.9,
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", string(resp.Content))
	assert.Equal(t, 0.4, f.body["temperature"])
	assert.NotContains(t, f.body, "top_p")
}

func TestAnthropicProvider_TruncatedStructuredReply(t *testing.T) {
	p := newFakeClaudeProvider(t, &fakeClaude{reply: claudeMessage(`{"question_text":"What`, "max_tokens")})

	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "hi"}},
		Schema:    answerSchema(),
		MaxTokens: 8,
	})
	var truncated *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &truncated)
}

func TestAnthropicProvider_Errors(t *testing.T) {
	tests := []struct {
		name   string
		server *fakeClaude
		check  func(t *testing.T, err error)
	}{
		{"rate limited", claudeError(http.StatusTooManyRequests, "rate_limit_error"), func(t *testing.T, err error) {
			var rl *ErrRateLimit
			assert.ErrorAs(t, err, &rl)
		}},
		{"overloaded", claudeError(http.StatusInternalServerError, "api_error"), func(t *testing.T, err error) {
			var unavailable *ErrProviderUnavailable
			assert.ErrorAs(t, err, &unavailable)
		}},
		{"bad request", claudeError(http.StatusBadRequest, "invalid_request_error"), func(t *testing.T, err error) {
			var unavailable *ErrProviderUnavailable
			assert.False(t, errors.As(err, &unavailable))
			assert.ErrorContains(t, err, "status 400")
			assert.Equal(t, retryNever, retryKind(err))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newFakeClaudeProvider(t, tt.server)
			_, err := p.Generate(context.Background(), Request{
				Messages:  []Message{{Role: RoleUser, Content: "test"}},
				MaxTokens: 100,
			})
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestAnthropicModels(t *testing.T) {
	assert.Equal(t, "claude-haiku-4-5-20251001", resolveModel("claude-haiku", anthropicModels))
	assert.Equal(t, "claude-opus-4-1", resolveModel("claude-opus-4-1", anthropicModels), "unknown names pass through")

	_, err := NewAnthropicProvider(VendorConfig{})
	assert.Error(t, err)
}

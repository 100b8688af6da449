package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/adaptiquiz/internal/store"
)

// journaledProvider writes one debug log line and, with a repository, one
// journal row per request.
type journaledProvider struct {
	inner  Provider
	vendor string
	events store.EventRepo
	logger *slog.Logger
}

// WithLogging wraps p with request logging. events may be nil.
func WithLogging(p Provider, vendor string, events store.EventRepo, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &journaledProvider{inner: p, vendor: vendor, events: events, logger: logger}
}

func (j *journaledProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := j.inner.Generate(ctx, req)
	ev := j.event(ctx, req, resp, err, time.Since(start))

	j.logger.DebugContext(ctx, "llm request",
		slog.String("provider", ev.Provider),
		slog.String("model", ev.Model),
		slog.String("purpose", ev.Purpose),
		slog.Int64("latency_ms", ev.LatencyMs),
		slog.Int("input_tokens", ev.InputTokens),
		slog.Int("output_tokens", ev.OutputTokens),
		slog.Bool("ok", ev.Success))

	if j.events != nil {
		if jerr := j.events.AppendLLMRequest(ctx, ev); jerr != nil {
			j.logger.Warn("llm request not journaled", "error", jerr)
		}
	}
	return resp, err
}

func (j *journaledProvider) event(ctx context.Context, req Request, resp *Response, err error, latency time.Duration) store.LLMRequestEventData {
	ev := store.LLMRequestEventData{
		SessionID:   SessionFrom(ctx),
		Provider:    j.vendor,
		Model:       j.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   latency.Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
		if resp.Model != "" {
			ev.Model = resp.Model
		}
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}
	return ev
}

func (j *journaledProvider) ModelID() string { return j.inner.ModelID() }

// transcript renders a request as labelled blocks, the form `llm view`
// prints it in.
func transcript(req Request) string {
	var b strings.Builder
	block := func(label, body string) {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", label, body)
	}
	if req.System != "" {
		block("system", req.System)
	}
	for _, m := range req.Messages {
		block(string(m.Role), m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}

package llm

import (
	"context"
	"encoding/json"
)

// Provider is a single LLM backend. Implementations translate a Request
// into the vendor API call and normalize the answer into a Response.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set the returned Content has already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the model this provider sends requests to.
	ModelID() string
}

// Request is a provider-neutral completion request.
type Request struct {
	System   string
	Messages []Message

	// Schema asks for structured JSON output. Nil means free text.
	Schema *Schema

	MaxTokens int

	// Temperature and TopP are sent only when positive, leaving the
	// vendor default in place otherwise.
	Temperature float64
	TopP        float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema describes the JSON object a structured request expects back.
type Schema struct {
	// Name is a kebab-case identifier, e.g. "quiz-question". Providers use
	// it as the schema or tool name and the validator caches by it.
	Name string

	Description string

	// Definition is a JSON Schema document.
	Definition map[string]any
}

// Response is the normalized provider output.
type Response struct {
	// Content holds the JSON object for structured requests, otherwise the
	// raw model text.
	Content json.RawMessage

	Usage Usage
	Model string

	// StopReason is StopEnd or StopMaxTokens.
	StopReason string
}

// Stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Usage is the token accounting for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// vendorOutput is what an adapter extracted from a vendor reply before
// the shared checks run.
type vendorOutput struct {
	content json.RawMessage
	stop    string
	usage   Usage
	model   string
}

// finish turns a vendor reply into a Response. A structured reply cut off
// at the token limit is an error, and structured content must pass the
// request schema.
func finish(req Request, out vendorOutput) (*Response, error) {
	if out.stop == StopMaxTokens && req.Schema != nil {
		return nil, &ErrMaxTokensExceeded{Content: out.content}
	}
	content, err := validateResponse(req.Schema, out.content)
	if err != nil {
		return nil, err
	}
	if out.usage.TotalTokens == 0 {
		out.usage.TotalTokens = out.usage.InputTokens + out.usage.OutputTokens
	}
	if out.stop == "" {
		out.stop = StopEnd
	}
	return &Response{
		Content:    content,
		Usage:      out.usage,
		Model:      out.model,
		StopReason: out.stop,
	}, nil
}

// resolveModel maps a short alias such as "gemini-flash" to the vendor's
// model id. Anything else is taken as a literal id.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}

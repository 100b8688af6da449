package problemgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
	"github.com/abhisek/adaptiquiz/internal/llm"
)

// LLMGenerator asks an LLM provider for questions. It remembers what it
// has produced so later prompts can ask for fresh ones.
type LLMGenerator struct {
	provider llm.Provider
	config   Config

	mu    sync.Mutex
	prior []string
}

// New creates an LLMGenerator.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// wireQuestion is QuestionSchema's JSON shape.
type wireQuestion struct {
	QuestionText string `json:"question_text"`
	Answer       string `json:"answer"`
	AnswerType   string `json:"answer_type"`
	Explanation  string `json:"explanation"`
}

// Generate asks for a question of the given tier. A reply a validator
// rejects as fixable is sent back with the reason, up to
// Config.MaxAttempts requests in total.
func (g *LLMGenerator) Generate(ctx context.Context, tier difficulty.Tier) (*Question, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")
	input := GenerateInput{Tier: tier, PriorQuestions: g.Prior()}
	messages := []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)}}

	attempts := max(g.config.MaxAttempts, 1)
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		var (
			q     *Question
			reply json.RawMessage
		)
		q, reply, err = g.ask(ctx, input, messages)
		if err == nil {
			g.remember(q.Text)
			return q, nil
		}

		var rejected *ValidationError
		if !errors.As(err, &rejected) || !rejected.Retryable || ctx.Err() != nil {
			return nil, &GenerationError{Tier: tier, Attempts: attempt, Err: err}
		}
		messages = append(messages,
			llm.Message{Role: llm.RoleAssistant, Content: string(reply)},
			llm.Message{Role: llm.RoleUser, Content: retryMessage(rejected)},
		)
	}
	return nil, &GenerationError{Tier: tier, Attempts: attempts, Err: err}
}

// ask sends one request and validates the reply, which is returned even
// when validation fails.
func (g *LLMGenerator) ask(ctx context.Context, input GenerateInput, messages []llm.Message) (*Question, json.RawMessage, error) {
	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    messages,
		Schema:      QuestionSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
		TopP:        g.config.TopP,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var w wireQuestion
	if err := json.Unmarshal(resp.Content, &w); err != nil {
		return nil, resp.Content, fmt.Errorf("decode question: %w", err)
	}
	q := &Question{
		Text:        w.QuestionText,
		Tier:        input.Tier,
		Answer:      w.Answer,
		AnswerType:  AnswerType(w.AnswerType),
		Explanation: w.Explanation,
	}
	for _, v := range g.config.Validators {
		if verr := v.Validate(q, input); verr != nil {
			return nil, resp.Content, verr
		}
	}
	return q, resp.Content, nil
}

// Prior returns a copy of the question texts generated so far.
func (g *LLMGenerator) Prior() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.prior...)
}

// Reset forgets the questions generated so far.
func (g *LLMGenerator) Reset() {
	g.mu.Lock()
	g.prior = nil
	g.mu.Unlock()
}

func (g *LLMGenerator) remember(text string) {
	g.mu.Lock()
	g.prior = append(g.prior, text)
	g.mu.Unlock()
}

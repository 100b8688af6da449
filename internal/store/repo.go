package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	Purpose   string    // LLM events only
	SessionID string
}

// LLMRequestEventData captures a single LLM API call.
type LLMRequestEventData struct {
	SessionID    string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStat aggregates LLM calls per purpose.
type LLMUsageStat struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates token usage per model, for cost estimates.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// AnswerEventData records what happened to one question slot.
type AnswerEventData struct {
	SessionID     string
	Section       int
	Number        int
	Tier          int
	QuestionText  string
	CorrectAnswer string
	LearnerAnswer string
	// Status is the outcome label, e.g. "correct" or "skipped".
	Status string
	// Counted is true when the slot added to the session total.
	Counted bool
	Correct bool
	TimeMs  int64
}

// Session actions.
const (
	SessionStart   = "start"
	SessionSection = "section"
	SessionEnd     = "end"
)

// SessionEventData marks a session lifecycle point.
type SessionEventData struct {
	SessionID  string
	Action     string
	Age        int
	Section    int
	Tier       int
	Score      int
	Total      int
	EndedEarly bool
	// Interrupted is set when the run was cancelled.
	Interrupted bool
}

// TierStat is the per-tier accuracy of one session.
type TierStat struct {
	Tier    int
	Asked   int
	Correct int
}

// EventRepo appends and queries journal events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event, or nil if there is none with that id.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStat, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// AppendAnswer records one question slot.
	AppendAnswer(ctx context.Context, data AnswerEventData) error

	// AppendSession records a session lifecycle marker.
	AppendSession(ctx context.Context, data SessionEventData) error

	// TierBreakdown sums counted and correct answers per tier for a
	// session, ordered by tier.
	TierBreakdown(ctx context.Context, sessionID string) ([]TierStat, error)
}

package quiz

import (
	"context"
	"log/slog"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
	"github.com/abhisek/adaptiquiz/internal/problemgen"
	"github.com/abhisek/adaptiquiz/internal/store"
)

// Journal is a Reporter that appends every slot and lifecycle marker to
// the event store. Write failures are logged and never interrupt play.
type Journal struct {
	NopReporter

	repo   store.EventRepo
	logger *slog.Logger

	sessionID string
	age       int
}

// NewJournal creates a Journal writing to repo.
func NewJournal(repo store.EventRepo, logger *slog.Logger) *Journal {
	if logger == nil {
		logger = slog.Default()
	}
	return &Journal{repo: repo, logger: logger}
}

// SessionID is the id of the session being journaled, once started.
func (j *Journal) SessionID() string { return j.sessionID }

func (j *Journal) Started(ctx context.Context, s Start) {
	j.sessionID = s.SessionID
	j.age = s.Age
	j.appendSession(ctx, store.SessionEventData{
		SessionID: s.SessionID,
		Action:    store.SessionStart,
		Age:       s.Age,
		Tier:      int(s.Tier),
	})
}

func (j *Journal) Outcome(ctx context.Context, o Outcome) {
	data := store.AnswerEventData{
		SessionID:     j.sessionID,
		Section:       o.Section,
		Number:        o.Number,
		Tier:          int(o.Tier),
		LearnerAnswer: o.Answer,
		Status:        string(o.Status),
		Counted:       o.Status.Counted(),
		Correct:       o.Status == StatusCorrect,
		TimeMs:        o.Elapsed.Milliseconds(),
	}
	if o.Question != nil {
		data.QuestionText = o.Question.Text
		data.CorrectAnswer = o.Question.Answer
		if want, err := problemgen.ExpectedAnswer(o.Question); err == nil {
			data.CorrectAnswer = want
		}
	}
	if err := j.repo.AppendAnswer(ctx, data); err != nil {
		j.logger.Warn("journal: append answer failed", "session", j.sessionID, "error", err)
	}
}

func (j *Journal) SectionFinished(ctx context.Context, s SectionSummary) {
	j.appendSession(ctx, store.SessionEventData{
		SessionID: j.sessionID,
		Action:    store.SessionSection,
		Age:       j.age,
		Section:   s.Section,
		Tier:      int(s.Tier),
		Score:     s.Score,
		Total:     s.TotalAsked,
	})
}

func (j *Journal) Finished(ctx context.Context, r Result) {
	j.appendSession(ctx, store.SessionEventData{
		SessionID:   j.sessionID,
		Action:      store.SessionEnd,
		Age:         j.age,
		Section:     r.SectionsPlayed,
		Tier:        int(r.FinalTier),
		Score:       r.FinalScore,
		Total:       r.FinalTotal,
		EndedEarly:  r.EndedEarly,
		Interrupted: r.Interrupted,
	})
}

func (j *Journal) appendSession(ctx context.Context, data store.SessionEventData) {
	if err := j.repo.AppendSession(ctx, data); err != nil {
		j.logger.Warn("journal: append session event failed", "session", data.SessionID, "action", data.Action, "error", err)
	}
}

// TierResult is the accuracy a session reached on one tier.
type TierResult struct {
	Tier    difficulty.Tier
	Asked   int
	Correct int
}

// Breakdown returns per-tier totals for the journaled session.
func (j *Journal) Breakdown(ctx context.Context) ([]TierResult, error) {
	stats, err := j.repo.TierBreakdown(ctx, j.sessionID)
	if err != nil {
		return nil, err
	}
	out := make([]TierResult, 0, len(stats))
	for _, st := range stats {
		out = append(out, TierResult{Tier: difficulty.Tier(st.Tier), Asked: st.Asked, Correct: st.Correct})
	}
	return out, nil
}

package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendAnswer(ctx context.Context, data AnswerEventData) error {
	err := r.insert(ctx, answerEventsTable,
		[]string{
			"session_id", "section", "number", "tier",
			"question_text", "correct_answer", "learner_answer",
			"status", "counted", "correct", "time_ms",
		},
		[]any{
			data.SessionID, data.Section, data.Number, data.Tier,
			data.QuestionText, data.CorrectAnswer, data.LearnerAnswer,
			data.Status, data.Counted, data.Correct, data.TimeMs,
		})
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendSession(ctx context.Context, data SessionEventData) error {
	err := r.insert(ctx, sessionEventsTable,
		[]string{
			"session_id", "action", "age", "section", "tier",
			"score", "total", "ended_early", "interrupted",
		},
		[]any{
			data.SessionID, data.Action, data.Age, data.Section, data.Tier,
			data.Score, data.Total, data.EndedEarly, data.Interrupted,
		})
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) TierBreakdown(ctx context.Context, sessionID string) ([]TierStat, error) {
	sel := builder().Select(
		"tier",
		entsql.As(entsql.Sum("counted"), "asked"),
		entsql.As(entsql.Sum("correct"), "right"),
	).
		From(entsql.Table(answerEventsTable)).
		Where(entsql.EQ("session_id", sessionID)).
		GroupBy("tier").
		OrderBy("tier")

	var stats []TierStat
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var st TierStat
		if err := rows.Scan(&st.Tier, &st.Asked, &st.Correct); err != nil {
			return err
		}
		stats = append(stats, st)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query tier breakdown: %w", err)
	}
	return stats, nil
}

package quiz

import (
	"context"
	"testing"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
	"github.com/abhisek/adaptiquiz/internal/problemgen"
	"github.com/abhisek/adaptiquiz/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openJournalStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestJournal_RecordsRun(t *testing.T) {
	st := openJournalStore(t)
	journal := NewJournal(st.EventRepo(), nil)

	h := newHarness(t)
	h.prompt.answers = []bool{true}
	h.answers.replies = []reply{{text: "2"}, {text: ""}, {text: "9"}, {text: "0"}, {text: "0"}, {text: "0"}}
	h.eval = problemgen.ArithmeticEvaluator{}

	q := New(Options{
		Source:    h.source,
		Evaluator: h.eval,
		Answers:   h.answers,
		Prompt:    h.prompt,
		Reporter:  MultiReporter{h.reporter, journal},
	})

	// Section 1 (Easy): "What is 1 + 1?" answered 2, then a blank, then a
	// wrong 9 for "What is 3 + 1?". 1/2 moves section 2 to Medium.
	res, err := q.Run(context.Background(), 4, Config{Sections: 2, QuestionsPerSection: 3})
	require.NoError(t, err)
	assert.Equal(t, res.SessionID, journal.SessionID())
	assert.Equal(t, 1, res.FinalScore)
	assert.Equal(t, 5, res.FinalTotal)

	breakdown, err := journal.Breakdown(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []TierResult{
		{Tier: difficulty.TierEasy, Asked: 2, Correct: 1},
		{Tier: difficulty.TierMedium, Asked: 3, Correct: 0},
	}, breakdown)

	var sessions, answers int
	require.NoError(t, st.DB().QueryRow(
		`SELECT COUNT(*) FROM session_events WHERE session_id = ?`, res.SessionID).Scan(&sessions))
	require.NoError(t, st.DB().QueryRow(
		`SELECT COUNT(*) FROM answer_events WHERE session_id = ?`, res.SessionID).Scan(&answers))
	assert.Equal(t, 4, sessions, "start, two sections, end")
	assert.Equal(t, 6, answers)

	var want, status string
	require.NoError(t, st.DB().QueryRow(
		`SELECT correct_answer, status FROM answer_events WHERE session_id = ? AND section = 1 AND number = 3`,
		res.SessionID).Scan(&want, &status))
	assert.Equal(t, "4", want)
	assert.Equal(t, "incorrect", status)
}

func TestJournal_BreakdownOfUnknownSession(t *testing.T) {
	st := openJournalStore(t)
	journal := NewJournal(st.EventRepo(), nil)

	breakdown, err := journal.Breakdown(context.Background())
	require.NoError(t, err)
	assert.Empty(t, breakdown)
}

package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
	"github.com/abhisek/adaptiquiz/internal/problemgen"
	"github.com/abhisek/adaptiquiz/internal/quiz"
)

func newTestTerminal(input string) (*Terminal, *bytes.Buffer) {
	var out bytes.Buffer
	return New(strings.NewReader(input), &out), &out
}

func TestIsAffirmative(t *testing.T) {
	tests := []struct {
		reply string
		want  bool
	}{
		{"yes", true},
		{"YES", true},
		{"  Yes \n", true},
		{"y", false},
		{"yeah", false},
		{"no", false},
		{"", false},
		{"yes please", false},
	}

	for _, tt := range tests {
		if got := IsAffirmative(tt.reply); got != tt.want {
			t.Errorf("IsAffirmative(%q) = %v, want %v", tt.reply, got, tt.want)
		}
	}
}

func TestNew_PipesUseLineModeWithoutColor(t *testing.T) {
	term, _ := newTestTerminal("")
	assert.False(t, term.Interactive())
	assert.False(t, term.color)
}

func TestAskAge_RepromptsUntilInteger(t *testing.T) {
	term, out := newTestTerminal("seven\n\n 7 \n")

	age, err := term.AskAge(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, age)
	assert.Equal(t, 3, strings.Count(out.String(), agePrompt))
	assert.Equal(t, 2, strings.Count(out.String(), "whole number"))
}

func TestAskAge_EndOfInput(t *testing.T) {
	term, _ := newTestTerminal("abc\n")

	_, err := term.AskAge(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadAnswer_LinesInOrder(t *testing.T) {
	term, out := newTestTerminal("12\r\n 3/4\nlast")
	ctx := context.Background()

	for _, want := range []string{"12", " 3/4", "last"} {
		got, err := term.ReadAnswer(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := term.ReadAnswer(ctx, nil)
	assert.ErrorIs(t, err, io.EOF)

	_, err = term.ReadAnswer(ctx, nil)
	assert.ErrorIs(t, err, io.EOF, "stays at EOF")
	assert.Contains(t, out.String(), answerPrompt)
}

func TestReadAnswer_HonorsCancellation(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	var out bytes.Buffer
	term := New(pr, &out)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := term.ReadAnswer(ctx, nil)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
}

func TestConfirm(t *testing.T) {
	term, out := newTestTerminal("Yes\nno\ny\n")
	ctx := context.Background()

	for _, want := range []bool{true, false, false} {
		got, err := term.Confirm(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Contains(t, out.String(), continuePrompt)

	_, err := term.Confirm(ctx)
	assert.Error(t, err)
}

func TestReporter_RendersRun(t *testing.T) {
	term, out := newTestTerminal("")
	ctx := context.Background()
	q := &problemgen.Question{Text: "What is 2 + 3?", Answer: "5", AnswerType: problemgen.AnswerTypeInteger}

	term.Started(ctx, quiz.Start{Tier: difficulty.TierEasy, Config: quiz.Config{Sections: 2, QuestionsPerSection: 3}})
	term.SectionStarted(ctx, 1, difficulty.TierEasy)
	term.QuestionPresented(ctx, 1, 1, q)
	term.Outcome(ctx, quiz.Outcome{Question: q, Status: quiz.StatusCorrect})
	term.Outcome(ctx, quiz.Outcome{Question: q, Answer: "6", Status: quiz.StatusIncorrect})
	term.Outcome(ctx, quiz.Outcome{Status: quiz.StatusSkipped})
	term.Outcome(ctx, quiz.Outcome{Status: quiz.StatusGenerationFailed})
	term.Outcome(ctx, quiz.Outcome{Status: quiz.StatusEvaluationFailed})
	term.SectionFinished(ctx, quiz.SectionSummary{Section: 1, Asked: 2, Correct: 1, Score: 1, TotalAsked: 2})
	term.Finished(ctx, quiz.Result{FinalScore: 1, FinalTotal: 2, EndedEarly: true})

	got := out.String()
	for _, want := range []string{
		"2 sections of 3 questions. Starting on easy.",
		"Section 1 (easy)",
		"Question 1: What is 2 + 3?",
		"Correct!",
		"Not quite. The answer is 5.",
		"Skipped.",
		"couldn't think of a question",
		"couldn't check that answer",
		"Your current score: 1/2",
		"[##",
		"50%",
		"Thanks for playing!",
		"Final Score: 1/2",
	} {
		assert.Contains(t, got, want)
	}
	assert.NotContains(t, got, "\x1b[", "no escape codes without a TTY")
}

func TestReporter_SkipNotices(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"empty", &quiz.InputError{Err: quiz.ErrEmptyAnswer}, "No answer was given"},
		{"not a number", &quiz.InputError{Answer: "1,5", Err: problemgen.ErrMalformedAnswer}, "didn't look like a number"},
		{"read failure", &quiz.InputError{Err: io.ErrUnexpectedEOF}, "couldn't read that answer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, out := newTestTerminal("")
			term.Outcome(context.Background(), quiz.Outcome{Status: quiz.StatusSkipped, Err: tt.err})
			assert.Contains(t, out.String(), tt.want)
			assert.Contains(t, out.String(), "won't count")
		})
	}
}

func TestReporter_Interrupted(t *testing.T) {
	term, out := newTestTerminal("")
	term.Finished(context.Background(), quiz.Result{FinalScore: 3, FinalTotal: 4, Interrupted: true})
	assert.Contains(t, out.String(), "Quiz stopped.")
	assert.Contains(t, out.String(), "Final Score: 3/4")
}

func TestPrintBreakdown(t *testing.T) {
	term, out := newTestTerminal("")
	term.PrintBreakdown([]quiz.TierResult{
		{Tier: difficulty.TierEasy, Asked: 4, Correct: 4},
		{Tier: difficulty.TierHard, Asked: 4, Correct: 1},
	})

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "easy")
	assert.Contains(t, lines[1], "100%")
	assert.Contains(t, lines[2], "hard")
	assert.Contains(t, lines[2], "25%")
}

func TestPrintBreakdown_Empty(t *testing.T) {
	term, out := newTestTerminal("")
	term.PrintBreakdown(nil)
	assert.Empty(t, out.String())
}

func TestPromptModel_SubmitAndInterrupt(t *testing.T) {
	m := newPromptModel(answerPrompt, "", true)

	next, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	pm := next.(promptModel)
	assert.True(t, pm.done)
	assert.NotNil(t, cmd)

	next, _ = m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	pm = next.(promptModel)
	assert.True(t, pm.interrupted)
	assert.False(t, pm.done)
}

func TestPromptModel_NumericInputDropsLetters(t *testing.T) {
	var m tea.Model = newPromptModel(answerPrompt, "", true)
	for _, r := range "1a2/b3" {
		m, _ = m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	assert.Equal(t, "12/3", m.(promptModel).input.Value())
}

package console

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
	"github.com/abhisek/adaptiquiz/internal/problemgen"
	"github.com/abhisek/adaptiquiz/internal/quiz"
	"github.com/abhisek/adaptiquiz/internal/ui/components"
	"github.com/abhisek/adaptiquiz/internal/ui/theme"
)

const barWidth = 40

var _ quiz.Reporter = (*Terminal)(nil)

func (t *Terminal) Started(_ context.Context, s quiz.Start) {
	t.println(t.render("Adaptive Math Quiz", theme.Title))
	t.println(t.render(fmt.Sprintf("%d sections of %d questions. Starting on %s.",
		s.Config.Sections, s.Config.QuestionsPerSection, s.Tier), theme.Subtitle))
}

func (t *Terminal) SectionStarted(_ context.Context, section int, tier difficulty.Tier) {
	t.println("")
	t.println(t.render(fmt.Sprintf("Section %d", section), theme.SectionHeader) +
		" " + t.render("("+tier.String()+")", theme.Tier(int(tier))))
}

func (t *Terminal) QuestionPresented(_ context.Context, _, number int, q *problemgen.Question) {
	t.println(t.render(fmt.Sprintf("Question %d: %s", number, q.Text), theme.Question))
}

func (t *Terminal) Outcome(_ context.Context, o quiz.Outcome) {
	switch o.Status {
	case quiz.StatusCorrect:
		t.println(t.render("Correct!", theme.Correct))
	case quiz.StatusIncorrect:
		msg := "Not quite."
		if o.Question != nil {
			if want, err := problemgen.ExpectedAnswer(o.Question); err == nil {
				msg = fmt.Sprintf("Not quite. The answer is %s.", want)
			}
		}
		t.println(t.render(msg, theme.Incorrect))
		if o.Question != nil && o.Question.Explanation != "" {
			t.println(t.render(o.Question.Explanation, theme.Hint))
		}
	case quiz.StatusSkipped:
		t.println(t.render(skipNotice(o.Err), theme.Notice))
	case quiz.StatusGenerationFailed:
		t.println(t.render("Sorry, I couldn't think of a question. Let's move on.", theme.Notice))
	case quiz.StatusEvaluationFailed:
		t.println(t.render("Sorry, I couldn't check that answer.", theme.Notice))
	}
}

// skipNotice explains why a slot was skipped.
func skipNotice(err error) string {
	switch {
	case errors.Is(err, quiz.ErrEmptyAnswer):
		return "Skipped. No answer was given, so it won't count."
	case errors.Is(err, problemgen.ErrMalformedAnswer):
		return "Skipped. That didn't look like a number, so it won't count."
	default:
		return "Skipped. I couldn't read that answer, so it won't count."
	}
}

func (t *Terminal) SectionFinished(_ context.Context, s quiz.SectionSummary) {
	t.println(t.render(fmt.Sprintf("Your current score: %d/%d", s.Score, s.TotalAsked), theme.Score))
	bar := components.NewProgressBar(
		fmt.Sprintf("Section %d", s.Section),
		difficulty.Accuracy(s.Correct, s.Asked),
		true,
		barWidth,
	)
	bar.Plain = !t.color
	t.println(bar.View())
}

func (t *Terminal) Finished(_ context.Context, r quiz.Result) {
	t.println("")
	switch {
	case r.Interrupted:
		t.println(t.render("Quiz stopped.", theme.Notice))
	case r.EndedEarly:
		t.println(t.render("Thanks for playing!", theme.Subtitle))
	}
	t.println(t.render(fmt.Sprintf("Final Score: %d/%d", r.FinalScore, r.FinalTotal), theme.Score))
}

// PrintBreakdown shows accuracy per tier after a run.
func (t *Terminal) PrintBreakdown(rows []quiz.TierResult) {
	if len(rows) == 0 {
		return
	}
	t.println(t.render("By difficulty:", theme.Subtitle))
	for _, row := range rows {
		bar := components.NewProgressBar(
			fmt.Sprintf("%-6s %2d/%-2d", row.Tier, row.Correct, row.Asked),
			difficulty.Accuracy(row.Correct, row.Asked),
			true,
			barWidth,
		)
		bar.Plain = !t.color
		t.println(bar.View())
	}
}

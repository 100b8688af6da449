package quiz

import (
	"context"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
	"github.com/abhisek/adaptiquiz/internal/problemgen"
)

// QuestionSource produces one question for a tier.
type QuestionSource interface {
	Generate(ctx context.Context, tier difficulty.Tier) (*problemgen.Question, error)
}

// AnswerEvaluator grades a learner's answer. Input that cannot be parsed
// is reported with problemgen.ErrMalformedAnswer.
type AnswerEvaluator interface {
	Evaluate(ctx context.Context, q *problemgen.Question, answer string) (bool, error)
}

// historyResetter is implemented by sources that remember the questions
// they produced. Run clears that history before the first question.
type historyResetter interface {
	Reset()
}

// AnswerInput obtains the learner's raw answer to q. An error wrapping
// io.EOF means no more answers will come and ends the run.
type AnswerInput interface {
	ReadAnswer(ctx context.Context, q *problemgen.Question) (string, error)
}

// ContinuationPrompt asks whether to play another section.
type ContinuationPrompt interface {
	Confirm(ctx context.Context) (bool, error)
}

// Reporter observes a run. Calls arrive in order on the goroutine running
// the quiz, so implementations need no locking.
type Reporter interface {
	Started(ctx context.Context, s Start)
	SectionStarted(ctx context.Context, section int, tier difficulty.Tier)
	QuestionPresented(ctx context.Context, section, number int, q *problemgen.Question)
	Outcome(ctx context.Context, o Outcome)
	SectionFinished(ctx context.Context, s SectionSummary)
	Finished(ctx context.Context, r Result)
}

// NopReporter ignores every event. Embed it to implement only some methods.
type NopReporter struct{}

func (NopReporter) Started(context.Context, Start)                                    {}
func (NopReporter) SectionStarted(context.Context, int, difficulty.Tier)              {}
func (NopReporter) QuestionPresented(context.Context, int, int, *problemgen.Question) {}
func (NopReporter) Outcome(context.Context, Outcome)                                  {}
func (NopReporter) SectionFinished(context.Context, SectionSummary)                   {}
func (NopReporter) Finished(context.Context, Result)                                  {}

// MultiReporter fans every event out to each reporter in order.
type MultiReporter []Reporter

func (m MultiReporter) Started(ctx context.Context, s Start) {
	for _, r := range m {
		r.Started(ctx, s)
	}
}

func (m MultiReporter) SectionStarted(ctx context.Context, section int, tier difficulty.Tier) {
	for _, r := range m {
		r.SectionStarted(ctx, section, tier)
	}
}

func (m MultiReporter) QuestionPresented(ctx context.Context, section, number int, q *problemgen.Question) {
	for _, r := range m {
		r.QuestionPresented(ctx, section, number, q)
	}
}

func (m MultiReporter) Outcome(ctx context.Context, o Outcome) {
	for _, r := range m {
		r.Outcome(ctx, o)
	}
}

func (m MultiReporter) SectionFinished(ctx context.Context, s SectionSummary) {
	for _, r := range m {
		r.SectionFinished(ctx, s)
	}
}

func (m MultiReporter) Finished(ctx context.Context, res Result) {
	for _, r := range m {
		r.Finished(ctx, res)
	}
}

package quiz

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
	"github.com/abhisek/adaptiquiz/internal/llm"
	"github.com/abhisek/adaptiquiz/internal/problemgen"
)

// Options wires a Quiz to its collaborators. Source, Evaluator, Answers
// and Prompt are required.
type Options struct {
	Source    QuestionSource
	Evaluator AnswerEvaluator
	Answers   AnswerInput
	Prompt    ContinuationPrompt

	// Reporter is optional.
	Reporter Reporter

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Quiz runs adaptive quiz sessions. A Quiz holds no per-run state and
// may be reused for several sequential runs.
type Quiz struct {
	source    QuestionSource
	evaluator AnswerEvaluator
	answers   AnswerInput
	prompt    ContinuationPrompt
	reporter  Reporter
	logger    *slog.Logger
}

// New creates a Quiz. It panics if a required collaborator is missing.
func New(opts Options) *Quiz {
	if opts.Source == nil || opts.Evaluator == nil || opts.Answers == nil || opts.Prompt == nil {
		panic("quiz: Source, Evaluator, Answers and Prompt are required")
	}
	q := &Quiz{
		source:    opts.Source,
		evaluator: opts.Evaluator,
		answers:   opts.Answers,
		prompt:    opts.Prompt,
		reporter:  opts.Reporter,
		logger:    opts.Logger,
	}
	if q.reporter == nil {
		q.reporter = NopReporter{}
	}
	if q.logger == nil {
		q.logger = slog.Default()
	}
	return q
}

// Run plays a session for a learner of the given age.
//
// The only error returned is a *ConfigError, before anything is asked.
// Every other failure is confined to a question slot or ends the run
// with a partial Result: a declined continuation or closed answer input
// sets EndedEarly and a cancelled ctx sets Interrupted.
func (q *Quiz) Run(ctx context.Context, age int, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if r, ok := q.source.(historyResetter); ok {
		r.Reset()
	}

	s := newSession(age)
	ctx = llm.WithSession(ctx, s.ID)
	log := q.logger.With("session", s.ID)
	log.Info("quiz started", "age", age, "tier", s.Tier, "sections", cfg.Sections, "questions", cfg.QuestionsPerSection)

	q.reporter.Started(ctx, Start{SessionID: s.ID, Age: age, Tier: s.Tier, Config: cfg})

	res := &Result{SessionID: s.ID}
	for {
		s.Phase = PhaseInSection
		res.SectionsPlayed = s.SectionIndex + 1
		q.reporter.SectionStarted(ctx, s.SectionIndex+1, s.Tier)

		scoreBefore, askedBefore := s.Score, s.TotalAsked
		for n := 1; n <= cfg.QuestionsPerSection; n++ {
			out, stop := q.playSlot(ctx, log, s, n)
			switch stop {
			case stopInterrupted:
				res.Interrupted = true
				return q.finish(ctx, log, s, res), nil
			case stopInputClosed:
				log.Info("answer input closed; ending quiz", "section", out.Section, "number", n)
				res.EndedEarly = true
				return q.finish(ctx, log, s, res), nil
			}
			q.reporter.Outcome(ctx, out)
		}

		s.Phase = PhaseSectionBoundary
		last := s.SectionIndex+1 >= cfg.Sections
		q.reporter.SectionFinished(ctx, SectionSummary{
			Section:    s.SectionIndex + 1,
			Tier:       s.Tier,
			Asked:      s.TotalAsked - askedBefore,
			Correct:    s.Score - scoreBefore,
			Score:      s.Score,
			TotalAsked: s.TotalAsked,
			Last:       last,
		})
		if last {
			return q.finish(ctx, log, s, res), nil
		}

		more, err := q.prompt.Confirm(ctx)
		if ctx.Err() != nil {
			res.Interrupted = true
			return q.finish(ctx, log, s, res), nil
		}
		if err != nil {
			log.Warn("continuation prompt failed; ending quiz", "error", err)
		}
		if err != nil || !more {
			res.EndedEarly = true
			return q.finish(ctx, log, s, res), nil
		}

		q.advanceTier(log, s)
		s.SectionIndex++
	}
}

// advanceTier recomputes the tier from cumulative accuracy. With nothing
// counted yet the current tier is kept.
func (q *Quiz) advanceTier(log *slog.Logger, s *Session) {
	next, err := difficulty.NextTier(s.Score, s.TotalAsked)
	if err != nil {
		if errors.Is(err, difficulty.ErrNoQuestionsAsked) {
			log.Warn("no answered questions yet; keeping tier", "tier", s.Tier)
		} else {
			log.Error("tier recompute failed; keeping tier", "tier", s.Tier, "error", err)
		}
		return
	}
	if next != s.Tier {
		log.Info("tier changed", "from", s.Tier, "to", next, "score", s.Score, "asked", s.TotalAsked)
	}
	s.Tier = next
}

// slotStop says why a slot ended the run.
type slotStop int

const (
	stopNone slotStop = iota
	stopInterrupted
	stopInputClosed
)

// playSlot plays one question slot. A slot cut short by a cancelled ctx
// or by closed answer input is not reported.
func (q *Quiz) playSlot(ctx context.Context, log *slog.Logger, s *Session, number int) (Outcome, slotStop) {
	out := Outcome{Section: s.SectionIndex + 1, Number: number, Tier: s.Tier}
	if ctx.Err() != nil {
		return out, stopInterrupted
	}

	question, err := q.source.Generate(ctx, s.Tier)
	if ctx.Err() != nil {
		return out, stopInterrupted
	}
	if err != nil {
		log.Warn("question generation failed", "section", out.Section, "number", number, "tier", s.Tier, "error", err)
		out.Status = StatusGenerationFailed
		out.Err = &CollaboratorError{Op: "generate", Err: err}
		return q.withTotals(out, s), stopNone
	}
	out.Question = question
	q.reporter.QuestionPresented(ctx, out.Section, number, question)

	started := time.Now()
	answer, err := q.answers.ReadAnswer(ctx, question)
	out.Elapsed = time.Since(started)
	if ctx.Err() != nil {
		return out, stopInterrupted
	}
	out.Answer = answer
	if errors.Is(err, io.EOF) {
		return out, stopInputClosed
	}
	if err != nil {
		log.Warn("reading answer failed; skipping question", "error", err)
		out.Status = StatusSkipped
		out.Err = &InputError{Answer: answer, Err: err}
		return q.withTotals(out, s), stopNone
	}
	if strings.TrimSpace(answer) == "" {
		out.Status = StatusSkipped
		out.Err = &InputError{Answer: answer, Err: ErrEmptyAnswer}
		return q.withTotals(out, s), stopNone
	}

	correct, err := q.evaluator.Evaluate(ctx, question, answer)
	if ctx.Err() != nil {
		return out, stopInterrupted
	}
	switch {
	case errors.Is(err, problemgen.ErrMalformedAnswer):
		out.Status = StatusSkipped
		out.Err = &InputError{Answer: answer, Err: err}
	case err != nil:
		log.Warn("answer evaluation failed", "section", out.Section, "number", number, "error", err)
		s.record(false)
		out.Status = StatusEvaluationFailed
		out.Err = &CollaboratorError{Op: "evaluate", Err: err}
	case correct:
		s.record(true)
		out.Status = StatusCorrect
	default:
		s.record(false)
		out.Status = StatusIncorrect
	}
	return q.withTotals(out, s), stopNone
}

func (q *Quiz) withTotals(out Outcome, s *Session) Outcome {
	out.Score = s.Score
	out.TotalAsked = s.TotalAsked
	return out
}

func (q *Quiz) finish(ctx context.Context, log *slog.Logger, s *Session, res *Result) *Result {
	s.Phase = PhaseFinished
	res.FinalScore = s.Score
	res.FinalTotal = s.TotalAsked
	res.FinalTier = s.Tier

	// The run's ctx may already be cancelled; reporters still get the result.
	rctx := context.WithoutCancel(ctx)
	q.reporter.Finished(rctx, *res)

	log.Info("quiz finished",
		"score", res.FinalScore,
		"total", res.FinalTotal,
		"sections", res.SectionsPlayed,
		"ended_early", res.EndedEarly,
		"interrupted", res.Interrupted,
	)
	return res
}

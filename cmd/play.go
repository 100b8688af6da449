package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiquiz/internal/console"
	"github.com/abhisek/adaptiquiz/internal/llm"
	"github.com/abhisek/adaptiquiz/internal/problemgen"
	"github.com/abhisek/adaptiquiz/internal/quiz"
	"github.com/abhisek/adaptiquiz/internal/store"
)

type playOptions struct {
	age       int
	ageSet    bool // false means ask
	sections  int
	questions int
	offline   bool
	simulate  bool
	plain     bool
	seed      uint64 // 0 means time-based
}

func defaultPlayOptions() playOptions {
	cfg := quiz.DefaultConfig()
	return playOptions{sections: cfg.Sections, questions: cfg.QuestionsPerSection}
}

var playFlags = defaultPlayOptions()

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := playFlags
		opts.ageSet = cmd.Flags().Changed("age")
		return runPlay(cmd, opts)
	},
}

func init() {
	playCmd.Flags().IntVar(&playFlags.age, "age", playFlags.age, "Learner's age (asked when not set)")
	playCmd.Flags().IntVar(&playFlags.sections, "sections", playFlags.sections, "Number of sections")
	playCmd.Flags().IntVar(&playFlags.questions, "questions", playFlags.questions, "Questions per section")
	playCmd.Flags().BoolVar(&playFlags.offline, "offline", false, "Use built-in questions instead of an LLM")
	playCmd.Flags().BoolVar(&playFlags.simulate, "simulate", false, "Grade answers at random instead of checking them")
	playCmd.Flags().BoolVar(&playFlags.plain, "plain", false, "Read answers line by line even on a terminal")
	playCmd.Flags().Uint64Var(&playFlags.seed, "seed", 0, "Random seed for built-in questions and --simulate")
}

func runPlay(cmd *cobra.Command, opts playOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger := slog.Default()

	st, dsn, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()
	repo := st.EventRepo()
	if !store.IsMemoryDSN(dsn) {
		logger.Info("journaling to file", "path", dsn)
	}

	termOpts := []console.Option{console.WithInterrupt(cancel)}
	if opts.plain {
		termOpts = append(termOpts, console.WithLineMode())
	}
	term := console.New(cmd.InOrStdin(), cmd.OutOrStdout(), termOpts...)

	age := opts.age
	if !opts.ageSet {
		age, err = term.AskAge(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read age: %w", err)
		}
	}

	seed := opts.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	journal := quiz.NewJournal(repo, logger)
	q := quiz.New(quiz.Options{
		Source:    questionSource(ctx, cmd, opts, seed, repo, logger),
		Evaluator: answerEvaluator(opts, seed),
		Answers:   term,
		Prompt:    term,
		Reporter:  quiz.MultiReporter{term, journal},
		Logger:    logger,
	})

	_, err = q.Run(ctx, age, quiz.Config{Sections: opts.sections, QuestionsPerSection: opts.questions})
	if err != nil {
		return err
	}

	breakdown, err := journal.Breakdown(context.WithoutCancel(ctx))
	if err != nil {
		logger.Warn("tier breakdown unavailable", "error", err)
		return nil
	}
	term.PrintBreakdown(breakdown)
	return nil
}

// questionSource returns the LLM generator when a provider is configured
// and the built-in generator otherwise.
func questionSource(ctx context.Context, cmd *cobra.Command, opts playOptions, seed uint64, repo store.EventRepo, logger *slog.Logger) quiz.QuestionSource {
	if opts.offline {
		return problemgen.NewLocalGenerator(seed)
	}
	provider, err := llm.NewProviderFromEnv(ctx, repo, logger)
	if err != nil {
		logger.Debug("no LLM provider", "error", err)
		fmt.Fprintln(cmd.ErrOrStderr(), "LLM provider not configured; using built-in questions.")
		return problemgen.NewLocalGenerator(seed)
	}
	return problemgen.New(provider, problemgen.DefaultConfig())
}

func answerEvaluator(opts playOptions, seed uint64) quiz.AnswerEvaluator {
	if opts.simulate {
		return problemgen.CoinFlipEvaluator{Rand: rand.New(rand.NewPCG(seed, seed>>1))}
	}
	return problemgen.ArithmeticEvaluator{}
}

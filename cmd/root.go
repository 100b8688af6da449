package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiquiz/internal/llm"
	"github.com/abhisek/adaptiquiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "adaptiquiz",
	Short: "Adaptive math quiz for kids",
	Long: "adaptiquiz asks young learners arithmetic questions in sections and\n" +
		"adjusts the difficulty between sections to how well they are doing.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd, defaultPlayOptions())
	},
}

// Execute loads .env and runs the root command.
func Execute() error {
	// A missing .env is normal.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "",
		"Journal database file, or \"default\" for the XDG data dir (overrides "+store.DBEnvVar+"; in-memory when unset)")
	rootCmd.PersistentFlags().String("log-level", "",
		"Log level: debug, info, warn or error (overrides "+llm.EnvPrefix+"LOG_LEVEL; default warn)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// setupLogging installs a text slog handler on stderr as the default
// logger.
func setupLogging(cmd *cobra.Command) error {
	name, _ := cmd.Flags().GetString("log-level")
	if name == "" {
		name = os.Getenv(llm.EnvPrefix + "LOG_LEVEL")
	}
	level, err := parseLevel(name)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

func parseLevel(name string) (slog.Level, error) {
	if strings.TrimSpace(name) == "" {
		return slog.LevelWarn, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", name)
	}
	return level, nil
}

// resolveDSN returns the journal DSN using the --db flag (highest
// priority), then the ADAPTIQUIZ_DB env var, then a private in-memory
// database.
func resolveDSN(cmd *cobra.Command) (string, error) {
	p, _ := cmd.Flags().GetString("db")
	return store.ResolveDSN(p)
}

// openStore opens the journal selected by the flags.
func openStore(cmd *cobra.Command) (*store.Store, string, error) {
	dsn, err := resolveDSN(cmd)
	if err != nil {
		return nil, "", fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dsn)
	if err != nil {
		return nil, "", fmt.Errorf("open database: %w", err)
	}
	return s, dsn, nil
}

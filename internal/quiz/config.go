package quiz

// Config shapes a run.
type Config struct {
	Sections            int
	QuestionsPerSection int
}

// DefaultConfig returns three sections of ten questions.
func DefaultConfig() Config {
	return Config{Sections: 3, QuestionsPerSection: 10}
}

// Validate returns a *ConfigError when either count is not positive.
func (c Config) Validate() error {
	if c.Sections <= 0 {
		return &ConfigError{Field: "Sections", Value: c.Sections, Reason: "must be at least 1"}
	}
	if c.QuestionsPerSection <= 0 {
		return &ConfigError{Field: "QuestionsPerSection", Value: c.QuestionsPerSection, Reason: "must be at least 1"}
	}
	return nil
}

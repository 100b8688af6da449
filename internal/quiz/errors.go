package quiz

import (
	"errors"
	"fmt"
)

// ErrEmptyAnswer is wrapped in an InputError when the learner submitted
// nothing but whitespace.
var ErrEmptyAnswer = errors.New("empty answer")

// ConfigError rejects a Config before the run starts.
type ConfigError struct {
	Field  string
	Value  int
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid quiz config: %s=%d %s", e.Field, e.Value, e.Reason)
}

// InputError means the learner's answer could not be used. The question
// is skipped without counting against the learner.
type InputError struct {
	Answer string
	Err    error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("unusable answer %q: %v", e.Answer, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// CollaboratorError wraps a failure of the question source or the
// evaluator. It affects a single question slot.
type CollaboratorError struct {
	// Op is "generate" or "evaluate".
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }

package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/adaptiquiz/internal/problemgen"
	"github.com/abhisek/adaptiquiz/internal/ui/components"
	"github.com/abhisek/adaptiquiz/internal/ui/theme"
)

var styleLabel = theme.Body

const (
	agePrompt      = "Enter your age: "
	answerPrompt   = "Your answer: "
	continuePrompt = "Do you want to continue to the next section? (yes/no): "
)

// IsAffirmative reports whether a reply to the continuation prompt means
// yes. Only "yes" counts, ignoring case and surrounding space.
func IsAffirmative(reply string) bool {
	return strings.EqualFold(strings.TrimSpace(reply), "yes")
}

// AskAge prompts until a whole number is entered. It returns the read
// error when input ends or ctx is done.
func (t *Terminal) AskAge(ctx context.Context) (int, error) {
	for {
		reply, err := t.readInput(ctx, agePrompt, "e.g. 7", true)
		if err != nil {
			return 0, err
		}
		age, err := strconv.Atoi(strings.TrimSpace(reply))
		if err == nil {
			return age, nil
		}
		t.println(t.render("Please enter your age as a whole number.", theme.Notice))
	}
}

// ReadAnswer reads the learner's answer to q.
func (t *Terminal) ReadAnswer(ctx context.Context, _ *problemgen.Question) (string, error) {
	return t.readInput(ctx, answerPrompt, "type a number", true)
}

// Confirm asks whether to play another section.
func (t *Terminal) Confirm(ctx context.Context) (bool, error) {
	reply, err := t.readInput(ctx, continuePrompt, "yes or no", false)
	if err != nil {
		return false, err
	}
	return IsAffirmative(reply), nil
}

// promptModel is a one-shot bubbletea model around a text input.
type promptModel struct {
	label       string
	input       components.TextInput
	done        bool
	interrupted bool
}

func newPromptModel(label, placeholder string, numeric bool) promptModel {
	return promptModel{
		label: label,
		input: components.NewTextInput(placeholder, numeric, 32),
	}
}

func (m promptModel) Init() tea.Cmd {
	return m.input.Init()
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "enter":
			m.done = true
			return m, tea.Quit
		case "ctrl+c":
			m.interrupted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() tea.View {
	if m.done || m.interrupted {
		// Leave the submitted line behind in the scrollback.
		return tea.NewView(theme.Body.Render(m.label) + m.input.Value() + "\n")
	}
	return tea.NewView(theme.Body.Render(m.label) + m.input.View())
}

func (t *Terminal) runPrompt(ctx context.Context, label, placeholder string, numeric bool) (string, error) {
	p := tea.NewProgram(newPromptModel(label, placeholder, numeric),
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	)
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("prompt: %w", err)
	}

	m, ok := final.(promptModel)
	if !ok {
		return "", errors.New("prompt: unexpected model type")
	}
	if m.interrupted {
		if t.interrupt != nil {
			t.interrupt()
		}
		return "", ErrInterrupted
	}
	return m.input.Value(), nil
}

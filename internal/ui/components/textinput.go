package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// numericKeys are the printable keys a numeric answer may contain.
const numericKeys = "0123456789-./ "

// TextInput wraps bubbles/textinput for single-line answers.
type TextInput struct {
	Model   textinput.Model
	Numeric bool
}

// NewTextInput creates a focused text input. A positive maxWidth caps the
// number of characters.
func NewTextInput(placeholder string, numeric bool, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}

	return TextInput{
		Model:   ti,
		Numeric: numeric,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages. In numeric mode single printable keys outside
// digits, sign, decimal point and fraction bar are dropped.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.Numeric {
		if kmsg, ok := msg.(tea.KeyMsg); ok {
			key := kmsg.String()
			if key == "space" {
				key = " "
			}
			if len(key) == 1 && !strings.Contains(numericKeys, key) {
				return t, nil
			}
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	return t.Model.View()
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

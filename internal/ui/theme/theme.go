// Package theme holds the quiz's colors and text styles. Colors are picked
// to stay readable on dark terminals.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

var (
	Primary   = lipgloss.Color("#8B5CF6")
	Secondary = lipgloss.Color("#14B8A6")
	Accent    = lipgloss.Color("#F97316")
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Warning   = lipgloss.Color("#EAB308")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	Border    = lipgloss.Color("#334155")
)

func fg(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

var (
	Title         = fg(Primary).Bold(true)
	Subtitle      = fg(TextDim)
	Body          = fg(Text)
	Hint          = fg(TextDim).Italic(true)
	Question      = fg(Text).Bold(true)
	Correct       = fg(Success).Bold(true)
	Incorrect     = fg(Error).Bold(true)
	Notice        = fg(Warning)
	Score         = fg(Accent).Bold(true)
	SectionHeader = fg(Secondary).Bold(true).Underline(true)
)

// tierColors is indexed by difficulty level, 1 being the easiest.
var tierColors = [...]color.Color{1: Success, 2: Warning, 3: Error}

// Tier returns the style for a difficulty level. Levels above the hardest
// share its color.
func Tier(level int) lipgloss.Style {
	level = min(max(level, 1), len(tierColors)-1)
	return fg(tierColors[level])
}

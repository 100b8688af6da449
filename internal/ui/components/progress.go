package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptiquiz/internal/ui/theme"
)

// minBarCells keeps the bar readable when the label eats the width.
const minBarCells = 4

// ProgressBar draws "label  [bar]  pct%" for a fraction in [0, 1] within
// Width columns.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int

	// Plain draws '#' and '.' cells and no color.
	Plain bool
}

// NewProgressBar returns a colored bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, ShowPercent: showPercent, Width: width}
}

// View renders the bar.
func (p ProgressBar) View() string {
	paint := func(s string, style lipgloss.Style) string {
		if p.Plain {
			return s
		}
		return style.Render(s)
	}

	var label, pct string
	if p.Label != "" {
		label = paint(p.Label, lipgloss.NewStyle().Foreground(theme.Text)) + "  "
	}
	if p.ShowPercent {
		pct = paint(fmt.Sprintf("  %d%%", int(clamp01(p.Percent)*100)), lipgloss.NewStyle().Foreground(theme.TextDim))
	}

	cells := max(p.Width-lipgloss.Width(label)-lipgloss.Width(pct), minBarCells)
	filled := int(float64(cells) * clamp01(p.Percent))

	var bar string
	if p.Plain {
		bar = "[" + strings.Repeat("#", filled) + strings.Repeat(".", cells-filled) + "]"
	} else {
		bar = lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled)) +
			lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", cells-filled))
	}
	return label + bar + pct
}

func clamp01(f float64) float64 {
	return min(max(f, 0), 1)
}

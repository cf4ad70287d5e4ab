package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/drumkit/drumkit/internal/theme"
)

// Pane is a rounded box with the title set into the top border.
type Pane struct {
	Title   string
	Content string
	Focused bool
	// Accent overrides the border color, for example for the error panel.
	Accent lipgloss.Color
}

func (p Pane) Render(width, height int) string {
	if width < 4 {
		width = 4
	}
	if height < 3 {
		height = 3
	}

	border := theme.Colors.Border.Medium
	if p.Focused {
		border = theme.Focus
	}
	if p.Accent != "" {
		border = p.Accent
	}
	borderStyle := lipgloss.NewStyle().Foreground(border)
	titleStyle := theme.Title

	innerWidth := width - 2
	contentWidth := max(1, innerWidth-2)

	titleText := ""
	if t := strings.TrimSpace(p.Title); t != "" {
		titleText = " " + ansi.Truncate(t, max(1, innerWidth-4), "…") + " "
	}
	dashes := max(0, innerWidth-ansi.StringWidth(titleText))
	leftDash := min(1, dashes)
	rightDash := dashes - leftDash

	v := borderStyle.Render("│")
	top := borderStyle.Render("╭"+strings.Repeat("─", leftDash)) +
		titleStyle.Render(titleText) +
		borderStyle.Render(strings.Repeat("─", rightDash)+"╮")
	bottom := borderStyle.Render("╰" + strings.Repeat("─", innerWidth) + "╯")

	lines := strings.Split(p.Content, "\n")
	rows := make([]string, 0, height)
	rows = append(rows, top)
	for i := 0; i < height-2; i++ {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		rows = append(rows, v+" "+PadRight(line, contentWidth)+" "+v)
	}
	rows = append(rows, bottom)
	return strings.Join(rows, "\n")
}

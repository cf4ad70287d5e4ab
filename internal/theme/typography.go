package theme

import "github.com/charmbracelet/lipgloss"

// Terminal cells have no font sizes, so typography collapses to weight and
// emphasis. The names mirror the scale the views are written against.

var (
	Title    = lipgloss.NewStyle().Foreground(Colors.Text.Primary).Bold(true)
	Subtitle = lipgloss.NewStyle().Foreground(Colors.Text.Secondary)
	Body     = lipgloss.NewStyle().Foreground(Colors.Text.Primary)
	Caption  = lipgloss.NewStyle().Foreground(Colors.Text.Tertiary)
	Label    = lipgloss.NewStyle().Foreground(Colors.Text.Secondary).Bold(true)
	Mono     = lipgloss.NewStyle().Foreground(Colors.Text.Secondary).Italic(true)
	ErrorMsg = lipgloss.NewStyle().Foreground(Colors.Status.Error)
	KeyHint  = lipgloss.NewStyle().Foreground(Accent).Bold(true)
)

// Severity names a status tag color class.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeverityDanger  Severity = "danger"
)

// SeverityColor maps a severity to its status color. Unknown severities are
// rendered as info.
func SeverityColor(s Severity) lipgloss.Color {
	switch s {
	case SeveritySuccess:
		return Colors.Status.Success
	case SeverityWarning:
		return Colors.Status.Warning
	case SeverityDanger:
		return Colors.Status.Error
	default:
		return Colors.Status.Info
	}
}

// Tag renders a rounded-looking status pill.
func Tag(text string, s Severity) string {
	return lipgloss.NewStyle().
		Foreground(Colors.Background.Primary).
		Background(SeverityColor(s)).
		Bold(true).
		Padding(0, 1).
		Render(text)
}

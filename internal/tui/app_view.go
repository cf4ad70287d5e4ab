package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/drumkit/drumkit/internal/api"
	"github.com/drumkit/drumkit/internal/theme"
	"github.com/drumkit/drumkit/internal/tui/widgets"
)

const (
	brand        = "🥁 DRUMKIT"
	sectionLoads = "Loads"
	sidebarWidth = 20
)

var (
	appStyle       = lipgloss.NewStyle().Foreground(theme.Colors.Text.Primary)
	headerBarStyle = lipgloss.NewStyle().Background(theme.Colors.Background.Secondary).Foreground(theme.Colors.Text.Primary)
	brandStyle     = lipgloss.NewStyle().Foreground(theme.Accent).Background(theme.Colors.Background.Secondary).Bold(true)
	sectionStyle   = lipgloss.NewStyle().Foreground(theme.Colors.Text.Secondary).Background(theme.Colors.Background.Secondary)
	navActiveStyle = lipgloss.NewStyle().Foreground(theme.Colors.Brand.Primary).Bold(true)
	actionStyle    = lipgloss.NewStyle().
			Foreground(theme.Colors.Background.Primary).
			Background(theme.Colors.Brand.Primary).
			Bold(true).
			Padding(0, 1)
	statusBarStyle    = lipgloss.NewStyle().Foreground(theme.Colors.Status.Success).Background(theme.Colors.Background.Tertiary)
	statusErrBarStyle = lipgloss.NewStyle().Foreground(theme.Colors.Status.Error).Background(theme.Colors.Background.Tertiary)
	footerStyle       = lipgloss.NewStyle().Background(theme.Colors.Background.Secondary)
)

func (m Model) View() string {
	if m.quitting {
		return "Goodbye\n"
	}
	header := m.renderHeader()
	status := m.renderStatusBar()
	footer := m.renderFooter()
	bodyHeight := max(0, m.height-lipgloss.Height(header)-lipgloss.Height(status)-lipgloss.Height(footer))

	var body string
	if bodyHeight > 0 {
		body = m.renderBody(m.width, bodyHeight)
		if top := m.screens.Top(); top != nil {
			body = widgets.RenderPopup(body, top.View(max(20, m.width-12), max(8, bodyHeight-4)), m.width, bodyHeight)
		}
	}
	body = widgets.FitHeight(body, bodyHeight)
	view := strings.Join([]string{header, status, body, footer}, "\n")
	view = widgets.FitHeight(view, max(1, m.height))
	return appStyle.Width(max(1, m.width)).MaxWidth(max(1, m.width)).Render(view)
}

func (m Model) renderHeader() string {
	left := brandStyle.Render(" " + brand + " ")
	right := sectionStyle.Render(sectionLoads + " ")
	gap := max(1, m.width-ansi.StringWidth(left)-ansi.StringWidth(right))
	return renderBar(headerBarStyle, max(1, m.width), left+sectionStyle.Render(strings.Repeat(" ", gap))+right)
}

func (m Model) renderBody(width, height int) string {
	nav := widgets.Pane{
		Title:   "Navigation",
		Content: navActiveStyle.Render("▸ " + sectionLoads),
	}
	main := widgets.VStack{
		Widgets: m.mainWidgets(),
		Ratios:  m.mainRatios(),
	}
	return widgets.HStack{
		Widgets: []widgets.Widget{nav, main},
		Fixed:   []int{sidebarWidth, 0},
		Gap:     1,
	}.Render(width, height)
}

func (m Model) actionBar() widgets.Widget {
	return widgets.Func(func(width, _ int) string {
		button := actionStyle.Render("c  Create Load")
		return strings.Repeat(" ", max(0, width-ansi.StringWidth(button))) + button
	})
}

func (m Model) mainWidgets() []widgets.Widget {
	out := []widgets.Widget{m.actionBar()}
	if err := m.list.Err(); err != nil {
		out = append(out, widgets.Pane{
			Title:   "Error",
			Accent:  theme.Colors.Status.Error,
			Content: theme.ErrorMsg.Render("Failed to load data:") + "\n" + theme.Mono.Render(api.Describe(err)),
		})
	}
	return append(out, m.list)
}

func (m Model) mainRatios() []float64 {
	if m.list.Err() != nil {
		return []float64{0.05, 0.35, 0.6}
	}
	return []float64{0.05, 0.95}
}

func (m Model) renderStatusBar() string {
	msg := strings.TrimSpace(m.status)
	if msg == "" {
		msg = "Ready"
	}
	if m.statusErr {
		return renderBar(statusErrBarStyle, max(1, m.width), " "+msg)
	}
	return renderBar(statusBarStyle, max(1, m.width), " "+msg)
}

func (m Model) renderFooter() string {
	h := m.help
	h.Width = max(1, m.width)
	line := h.ShortHelpView(m.keys.Help(m.ActiveScope()))
	if strings.TrimSpace(line) == "" {
		line = theme.Caption.Render("No shortcuts")
	}
	return renderBar(footerStyle, max(1, m.width), " "+line)
}

func renderBar(style lipgloss.Style, width int, text string) string {
	line := ansi.Truncate(strings.ReplaceAll(text, "\n", " "), width, "")
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}
	return style.Width(width).MaxWidth(width).Render(line)
}

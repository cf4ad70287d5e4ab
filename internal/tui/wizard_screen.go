package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/drumkit/drumkit/internal/api"
	"github.com/drumkit/drumkit/internal/load"
	"github.com/drumkit/drumkit/internal/theme"
	"github.com/drumkit/drumkit/internal/wizard"
)

const wizardTitle = "Create New Load"

// SubmitFunc starts the create mutation for a composed payload.
type SubmitFunc func(payload load.Load) tea.Cmd

// WizardScreen renders a wizard.Wizard as a modal form. Keys go through the
// key registry; everything else is forwarded to the focused input.
type WizardScreen struct {
	w      *wizard.Wizard
	keys   *KeyRegistry
	submit SubmitFunc

	inputs   map[wizard.Field]*textinput.Model
	focus    int
	progress progress.Model

	// inFlight outlives Reset: a create started before the modal closed
	// still blocks the next submission until its result arrives.
	inFlight bool
}

func NewWizardScreen(w *wizard.Wizard, keys *KeyRegistry, submit SubmitFunc) *WizardScreen {
	s := &WizardScreen{
		w:      w,
		keys:   keys,
		submit: submit,
		inputs: map[wizard.Field]*textinput.Model{},
		progress: progress.New(
			progress.WithSolidFill(string(theme.Colors.Brand.Primary)),
			progress.WithoutPercentage(),
		),
	}
	statuses := lo.Map(load.Statuses(), func(st load.Status, _ int) string { return string(st) })
	for _, spec := range wizard.Fields() {
		in := textinput.New()
		in.Placeholder = spec.Placeholder
		in.Prompt = ""
		in.CharLimit = 64
		in.Width = 24
		if spec.Kind == wizard.KindStatus {
			in.ShowSuggestions = true
			in.SetSuggestions(statuses)
		}
		s.inputs[spec.Name] = &in
	}
	s.Reset()
	return s
}

func (s *WizardScreen) Title() string { return wizardTitle }
func (s *WizardScreen) Scope() string { return scopeWizard }

// Wizard exposes the underlying form state.
func (s *WizardScreen) Wizard() *wizard.Wizard { return s.w }

// InFlight reports whether a create issued from this screen is pending.
func (s *WizardScreen) InFlight() bool { return s.inFlight }

func (s *WizardScreen) busy() bool {
	return s.w.Step() == wizard.StepSchedule && (s.inFlight || s.w.Submitting())
}

// Reset closes the wizard and syncs the inputs to its blank state.
func (s *WizardScreen) Reset() {
	s.w.Close()
	s.syncInputs()
	s.setFocus(0)
}

func (s *WizardScreen) fields() []wizard.FieldSpec {
	return wizard.StepFields(s.w.Step())
}

func (s *WizardScreen) focused() wizard.FieldSpec {
	fields := s.fields()
	return fields[min(s.focus, len(fields)-1)]
}

func (s *WizardScreen) syncInputs() {
	for f, in := range s.inputs {
		in.SetValue(s.w.Value(f))
	}
}

func (s *WizardScreen) setFocus(i int) {
	fields := s.fields()
	s.focus = (i + len(fields)) % len(fields)
	for _, in := range s.inputs {
		in.Blur()
	}
	s.inputs[fields[s.focus].Name].Focus()
}

// leave marks the focused field touched and completes a status value.
func (s *WizardScreen) leave() {
	spec := s.focused()
	if spec.Kind == wizard.KindStatus {
		if raw := strings.TrimSpace(s.w.Value(spec.Name)); raw != "" {
			if st, ok := load.SuggestStatus(raw); ok {
				s.w.Set(spec.Name, string(st))
				s.inputs[spec.Name].SetValue(string(st))
			}
		}
	}
	s.w.Blur(spec.Name)
}

func (s *WizardScreen) Update(msg tea.Msg) (Screen, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		in := s.inputs[s.focused().Name]
		next, cmd := in.Update(msg)
		*in = next
		return s, cmd, false
	}

	switch {
	case s.keys.IsAction(km, actionClose, scopeWizard):
		s.Reset()
		return s, nil, true
	case s.keys.IsAction(km, actionNextField, scopeWizard):
		s.leave()
		s.setFocus(s.focus + 1)
		return s, nil, false
	case s.keys.IsAction(km, actionPrevField, scopeWizard):
		s.leave()
		s.setFocus(s.focus - 1)
		return s, nil, false
	case s.keys.IsAction(km, actionPrevious, scopeWizard):
		if s.w.Previous() {
			s.setFocus(0)
		}
		return s, nil, false
	case s.keys.IsAction(km, actionNext, scopeWizard):
		return s, s.next(), false
	}

	in := s.inputs[s.focused().Name]
	next, cmd := in.Update(km)
	*in = next
	s.w.Set(s.focused().Name, in.Value())
	return s, cmd, false
}

func (s *WizardScreen) next() tea.Cmd {
	s.leave()
	if s.busy() {
		return nil
	}
	out := s.w.Next()
	switch out.Result {
	case wizard.Blocked:
		errs := s.w.VisibleErrors()
		if _, i, found := lo.FindIndexOf(s.fields(), func(f wizard.FieldSpec) bool { _, bad := errs[f.Name]; return bad }); found {
			s.setFocus(i)
		}
	case wizard.Advanced:
		s.setFocus(0)
	case wizard.Submit:
		if s.submit != nil {
			s.inFlight = true
			return s.submit(out.Payload)
		}
	}
	return nil
}

// Finish applies a create outcome. It reports whether the wizard reset.
func (s *WizardScreen) Finish(err error) bool {
	s.inFlight = false
	if err != nil {
		s.w.Failed(err)
		return false
	}
	if !s.w.Submitting() {
		return false
	}
	s.w.Succeeded()
	s.syncInputs()
	s.setFocus(0)
	return true
}

var (
	wizardLabelStyle   = theme.Label
	wizardErrorStyle   = theme.ErrorMsg
	wizardInputStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, true, false).BorderForeground(theme.Colors.Border.Medium)
	wizardFocusStyle   = wizardInputStyle.BorderForeground(theme.Focus)
	wizardInvalidStyle = wizardInputStyle.BorderForeground(theme.Colors.Status.Error)
)

func (s *WizardScreen) renderField(spec wizard.FieldSpec, errs map[wizard.Field]string, width int) string {
	in := s.inputs[spec.Name]
	in.Width = max(8, width-2)
	style := wizardInputStyle
	if in.Focused() {
		style = wizardFocusStyle
	}
	msg, bad := errs[spec.Name]
	if bad {
		style = wizardInvalidStyle
	}
	lines := []string{
		wizardLabelStyle.Render(spec.Label),
		style.Width(width).Render(in.View()),
	}
	if bad {
		lines = append(lines, wizardErrorStyle.Render(msg))
	} else {
		lines = append(lines, "")
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (s *WizardScreen) View(width, height int) string {
	width = max(40, min(width, 84))
	colWidth := (width - 4) / 2
	errs := s.w.VisibleErrors()

	s.progress.Width = width
	stepLine := theme.Caption.Render("Step " + lo.Ternary(s.w.Step() == wizard.StepParties, "1", "2") + " of 2 · " + s.w.Step().String())

	rows := make([]string, 0, 8)
	for _, pair := range lo.Chunk(s.fields(), 2) {
		cells := make([]string, 0, 3)
		for i, f := range pair {
			if i > 0 {
				cells = append(cells, "    ")
			}
			cells = append(cells, s.renderField(f, errs, colWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	parts := []string{
		theme.Title.Render(wizardTitle),
		s.progress.ViewAs(s.w.Progress()),
		stepLine,
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	}
	if err := s.w.SubmitErr(); err != nil {
		parts = append(parts, wizardErrorStyle.Render("Failed to create load:"), theme.Mono.Render(api.Describe(err)))
	}
	parts = append(parts, "", s.footer())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *WizardScreen) footer() string {
	hint := func(k, desc string) string { return theme.KeyHint.Render(k) + " " + theme.Caption.Render(desc) }
	items := []string{}
	if s.w.Step() == wizard.StepSchedule {
		items = append(items, hint("ctrl+b", "Previous"))
	}
	switch {
	case s.busy():
		items = append(items, theme.Subtitle.Render("Submitting…"))
	case s.w.Step() == wizard.StepParties:
		items = append(items, hint("enter", "Next"))
	default:
		items = append(items, hint("enter", "Submit"))
	}
	items = append(items, hint("esc", "Close"))
	return strings.Join(items, "   ")
}

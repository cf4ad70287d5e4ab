package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	scopeList   = "list"
	scopeWizard = "screen:wizard"
)

const (
	actionQuit         = "quit"
	actionCreate       = "create-load"
	actionNextPage     = "next-page"
	actionPrevPage     = "prev-page"
	actionPageSizeUp   = "page-size-up"
	actionPageSizeDown = "page-size-down"
	actionRefresh      = "refresh"
	actionClose        = "close"
	actionNextField    = "next-field"
	actionPrevField    = "prev-field"
	actionNext         = "next"
	actionPrevious     = "previous"
)

type KeyBinding struct {
	Keys        []string
	Action      string
	Description string
	Scopes      []string
}

type KeyRegistry struct {
	bindings []KeyBinding
}

func NewKeyRegistry(bindings []KeyBinding) *KeyRegistry {
	return &KeyRegistry{bindings: slices.Clone(bindings)}
}

func (r *KeyRegistry) BindingsForScope(scope string) []KeyBinding {
	out := make([]KeyBinding, 0, len(r.bindings))
	for _, b := range r.bindings {
		if scopeMatch(scope, b.Scopes) {
			out = append(out, b)
		}
	}
	return out
}

// Help converts the bindings of a scope into bubbles key bindings for the
// help footer.
func (r *KeyRegistry) Help(scope string) []key.Binding {
	bindings := r.BindingsForScope(scope)
	out := make([]key.Binding, 0, len(bindings))
	for _, b := range bindings {
		if len(b.Keys) == 0 || b.Description == "" {
			continue
		}
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(strings.Join(b.Keys, "/"), b.Description)))
	}
	return out
}

func (r *KeyRegistry) IsAction(msg tea.KeyMsg, action, scope string) bool {
	pressed := normalizeKey(msg.String())
	for _, b := range r.bindings {
		if b.Action != action || !scopeMatch(scope, b.Scopes) {
			continue
		}
		for _, k := range b.Keys {
			if normalizeKey(k) == pressed {
				return true
			}
		}
	}
	return false
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

func scopeMatch(scope string, scopes []string) bool {
	if len(scopes) == 0 {
		return true
	}
	for _, s := range scopes {
		if s == "*" || s == scope {
			return true
		}
	}
	return false
}

func DefaultKeyBindings() []KeyBinding {
	return []KeyBinding{
		{Keys: []string{"c"}, Action: actionCreate, Description: "create load", Scopes: []string{scopeList}},
		{Keys: []string{"n", "right"}, Action: actionNextPage, Description: "next page", Scopes: []string{scopeList}},
		{Keys: []string{"p", "left"}, Action: actionPrevPage, Description: "prev page", Scopes: []string{scopeList}},
		{Keys: []string{"+", "="}, Action: actionPageSizeUp, Description: "more rows", Scopes: []string{scopeList}},
		{Keys: []string{"-"}, Action: actionPageSizeDown, Description: "fewer rows", Scopes: []string{scopeList}},
		{Keys: []string{"r"}, Action: actionRefresh, Description: "refresh", Scopes: []string{scopeList}},
		{Keys: []string{"q"}, Action: actionQuit, Description: "quit", Scopes: []string{scopeList}},
		{Keys: []string{"tab"}, Action: actionNextField, Description: "next field", Scopes: []string{scopeWizard}},
		{Keys: []string{"shift+tab"}, Action: actionPrevField, Description: "prev field", Scopes: []string{scopeWizard}},
		{Keys: []string{"enter"}, Action: actionNext, Description: "next/submit", Scopes: []string{scopeWizard}},
		{Keys: []string{"ctrl+b"}, Action: actionPrevious, Description: "previous step", Scopes: []string{scopeWizard}},
		{Keys: []string{"esc"}, Action: actionClose, Description: "close", Scopes: []string{scopeWizard}},
	}
}

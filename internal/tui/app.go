package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/drumkit/drumkit/internal/load"
	"github.com/drumkit/drumkit/internal/store"
	"github.com/drumkit/drumkit/internal/theme"
	"github.com/drumkit/drumkit/internal/wizard"
)

// Options configures the shell.
type Options struct {
	PageSize     int
	PageSizes    []int
	TotalRecords int
	Location     *time.Location
	Logger       *zap.Logger
	Sheets       *theme.Sheets
	Keys         []KeyBinding
}

type Model struct {
	ctx    context.Context
	store  *store.Store
	logger *zap.Logger

	width  int
	height int

	keys    *KeyRegistry
	help    help.Model
	screens ScreenStack
	list    *ListView
	wizard  *WizardScreen

	status    string
	statusErr bool
	quitting  bool
}

// New builds the shell around st. ctx bounds every request the shell issues.
func New(ctx context.Context, st *store.Store, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Sheets == nil {
		opts.Sheets = theme.NewSheets()
	}
	if opts.Keys == nil {
		opts.Keys = DefaultKeyBindings()
	}
	keys := NewKeyRegistry(opts.Keys)
	m := Model{
		ctx:    ctx,
		store:  st,
		logger: opts.Logger.With(zap.String("component", "tui")),
		width:  100,
		height: 32,
		keys:   keys,
		help:   help.New(),
		list:   NewListView(opts.Sheets, opts.Location, opts.PageSize, opts.PageSizes, opts.TotalRecords),
		status: "Ready",
	}
	m.wizard = NewWizardScreen(wizard.New(opts.Location), keys, func(payload load.Load) tea.Cmd {
		return createCmd(ctx, st, payload)
	})
	return m
}

// List exposes the list view.
func (m Model) List() *ListView { return m.list }

// WizardScreen exposes the create-load modal.
func (m Model) WizardScreen() *WizardScreen { return m.wizard }

// WizardOpen reports whether the create-load modal is showing.
func (m Model) WizardOpen() bool { return m.screens.Contains(m.wizard) }

func (m Model) Init() tea.Cmd {
	m.list.Mount()
	return m.load()
}

// load starts the query for the list's current window.
func (m Model) load() tea.Cmd {
	p := m.list.Params()
	cached, ok := m.store.Peek(p)
	tick := m.list.Begin(cached, ok)
	return tea.Batch(tick, queryCmd(m.ctx, m.store, p))
}

func (m Model) reload() tea.Cmd {
	p := m.list.Params()
	cached, ok := m.store.Peek(p)
	tick := m.list.Begin(cached, ok)
	return tea.Batch(tick, refetchCmd(m.ctx, m.store, p))
}

func (m *Model) SetStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) SetError(msg string) {
	m.status = msg
	m.statusErr = true
}

func (m Model) ActiveScope() string {
	if top := m.screens.Top(); top != nil {
		return top.Scope()
	}
	return scopeList
}

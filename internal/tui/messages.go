package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/drumkit/drumkit/internal/api"
	"github.com/drumkit/drumkit/internal/load"
	"github.com/drumkit/drumkit/internal/store"
)

// loadsMsg carries a finished list query.
type loadsMsg struct {
	entry store.Entry
}

// createResultMsg carries a finished create mutation.
type createResultMsg struct {
	resp []byte
	err  error
}

func queryCmd(ctx context.Context, st *store.Store, p api.ListParams) tea.Cmd {
	return func() tea.Msg {
		return loadsMsg{entry: st.Query(ctx, p)}
	}
}

func refetchCmd(ctx context.Context, st *store.Store, p api.ListParams) tea.Cmd {
	return func() tea.Msg {
		return loadsMsg{entry: st.Refetch(ctx, p)}
	}
}

func createCmd(ctx context.Context, st *store.Store, payload load.Load) tea.Cmd {
	return func() tea.Msg {
		resp, err := st.CreateLoad(ctx, payload)
		return createResultMsg{resp: resp, err: err}
	}
}

package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case spinner.TickMsg:
		return m, m.list.Update(msg)
	case loadsMsg:
		if !m.list.Apply(msg.entry) {
			m.logger.Debug("dropped result for previous window", zap.String("key", msg.entry.Key))
			return m, nil
		}
		if msg.entry.Err != nil {
			m.SetError("Failed to load data")
			return m, nil
		}
		m.SetStatus(fmt.Sprintf("Loaded %d loads", len(msg.entry.Data)))
		return m, nil
	case createResultMsg:
		if msg.err != nil {
			m.logger.Warn("create load failed", zap.Error(msg.err))
			m.wizard.Finish(msg.err)
			m.SetError("Create load failed")
			return m, nil
		}
		m.logger.Info("load created", zap.Int("response_bytes", len(msg.resp)))
		if m.wizard.Finish(nil) {
			m.screens.Remove(m.wizard)
		}
		m.SetStatus("Load created")
		// The store invalidated the list; this query goes back to the network.
		return m, m.load()
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		if top := m.screens.Top(); top != nil {
			return m.routeToScreen(top, msg)
		}
		return m.handleListKey(msg)
	}

	if top := m.screens.Top(); top != nil {
		return m.routeToScreen(top, msg)
	}
	return m, nil
}

func (m Model) routeToScreen(top Screen, msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd, pop := top.Update(msg)
	if pop {
		m.screens.Pop()
		return m, cmd
	}
	if next != nil {
		m.screens.Replace(next)
	}
	return m, cmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.list.Unmount()
	return m, tea.Quit
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	scope := scopeList
	switch {
	case m.keys.IsAction(msg, actionQuit, scope):
		return m.quit()
	case m.keys.IsAction(msg, actionCreate, scope):
		if !m.wizard.Wizard().Submitting() {
			m.wizard.Reset()
		}
		m.screens.Push(m.wizard)
		return m, nil
	case m.keys.IsAction(msg, actionNextPage, scope):
		if m.list.NextPage() {
			return m, m.load()
		}
	case m.keys.IsAction(msg, actionPrevPage, scope):
		if m.list.PrevPage() {
			return m, m.load()
		}
	case m.keys.IsAction(msg, actionPageSizeUp, scope):
		if m.list.CyclePageSize(1) {
			return m, m.load()
		}
	case m.keys.IsAction(msg, actionPageSizeDown, scope):
		if m.list.CyclePageSize(-1) {
			return m, m.load()
		}
	case m.keys.IsAction(msg, actionRefresh, scope):
		return m, m.reload()
	}
	return m, nil
}

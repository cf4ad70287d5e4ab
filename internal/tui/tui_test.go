package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/drumkit/drumkit/internal/api"
	"github.com/drumkit/drumkit/internal/load"
	"github.com/drumkit/drumkit/internal/store"
	"github.com/drumkit/drumkit/internal/theme"
	"github.com/drumkit/drumkit/internal/wizard"
)

type fakeBackend struct {
	mu        sync.Mutex
	lists     []api.ListParams
	creates   []load.Load
	rows      []load.LoadData
	createErr error
}

func (f *fakeBackend) ListLoads(_ context.Context, p api.ListParams) ([]load.LoadData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, p)
	return f.rows, nil
}

func (f *fakeBackend) CreateLoad(_ context.Context, payload load.Load) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, payload)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return []byte(`{"id":"new"}`), nil
}

func (f *fakeBackend) listCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.lists)
}

func sampleRows() []load.LoadData {
	return []load.LoadData{
		{ID: 1, CustomID: "L-1", Status: load.LoadStatus{Code: load.StatusCode{Value: "Covered"}}, Created: "2025-01-02T15:04:05Z"},
		{ID: 2, CustomID: "L-2", Status: load.LoadStatus{Code: load.StatusCode{Value: "Tendered"}}},
	}
}

func newTestModel(t *testing.T, backend *fakeBackend) Model {
	t.Helper()
	st := store.New(backend)
	m := New(context.Background(), st, Options{
		PageSize:     25,
		PageSizes:    []int{10, 25, 50, 100},
		TotalRecords: 100,
		Location:     time.UTC,
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	return next.(Model)
}

// collect runs cmd and one level of batched commands, returning the messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		if c != nil {
			out = append(out, c())
		}
	}
	return out
}

func findLoads(t *testing.T, msgs []tea.Msg) loadsMsg {
	t.Helper()
	for _, msg := range msgs {
		if lm, ok := msg.(loadsMsg); ok {
			return lm
		}
	}
	t.Fatalf("no loads message in %v", msgs)
	return loadsMsg{}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m, cmd
}

func TestInitLoadsFirstPage(t *testing.T) {
	backend := &fakeBackend{rows: sampleRows()}
	m := newTestModel(t, backend)

	lm := findLoads(t, collect(m.Init()))
	next, _ := m.Update(lm)
	m = next.(Model)

	if got := m.List().Rows(); len(got) != 2 {
		t.Fatalf("rows = %d, want 2", len(got))
	}
	if backend.lists[0].Query() != "pageSize=25&start=0" {
		t.Fatalf("query = %q", backend.lists[0].Query())
	}
	view := m.View()
	for _, want := range []string{"DRUMKIT", "Navigation", "Create Load", "L-1", "Covered", "Tendered"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestEmptyListShowsMessage(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})
	next, _ := m.Update(findLoads(t, collect(m.Init())))
	m = next.(Model)
	if !strings.Contains(m.View(), EmptyMessage) {
		t.Fatalf("expected empty message")
	}
}

func TestLateResultForPreviousWindowIsIgnored(t *testing.T) {
	backend := &fakeBackend{rows: sampleRows()}
	m := newTestModel(t, backend)
	first := findLoads(t, collect(m.Init()))

	m, cmd := press(m, "n")
	if m.List().Start() != 25 {
		t.Fatalf("start = %d, want 25", m.List().Start())
	}
	second := findLoads(t, collect(cmd))

	next, _ := m.Update(first)
	m = next.(Model)
	if !m.List().Loading() || len(m.List().Rows()) != 0 {
		t.Fatalf("stale window result was applied")
	}

	next, _ = m.Update(second)
	m = next.(Model)
	if m.List().Loading() || len(m.List().Rows()) != 2 {
		t.Fatalf("current window result not applied")
	}
}

func TestPageSizeCycleResetsOffset(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})
	m, _ = press(m, "n", "n")
	if m.List().Start() != 50 {
		t.Fatalf("start = %d", m.List().Start())
	}
	m, cmd := press(m, "+")
	if m.List().PageSize() != 50 || m.List().Start() != 0 {
		t.Fatalf("page size = %d start = %d", m.List().PageSize(), m.List().Start())
	}
	if cmd == nil {
		t.Fatalf("page size change should query")
	}
	m, _ = press(m, "-", "-")
	if m.List().PageSize() != 10 {
		t.Fatalf("page size = %d, want 10", m.List().PageSize())
	}
	if _, cmd = press(m, "-"); cmd != nil {
		t.Fatalf("no smaller size, expected no query")
	}
}

func TestNextPageStopsAtPlaceholderTotal(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})
	m, _ = press(m, "n", "n", "n")
	if m.List().Start() != 75 {
		t.Fatalf("start = %d", m.List().Start())
	}
	if _, cmd := press(m, "n"); cmd != nil {
		t.Fatalf("expected no query past the last page")
	}
}

func TestErrorPanelShowsDescribedError(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})
	entry := store.Entry{Key: store.Key(m.List().Params()), Err: &api.Error{Kind: api.KindStatus, StatusCode: 500, Body: []byte(`{"message":"boom"}`)}}
	next, _ := m.Update(loadsMsg{entry: entry})
	m = next.(Model)
	view := m.View()
	if !strings.Contains(view, "Failed to load data:") || !strings.Contains(view, "500") {
		t.Fatalf("error panel missing:\n%s", view)
	}
}

func fillWizard(w *wizard.Wizard) {
	for f, v := range map[wizard.Field]string{
		wizard.PickupName: "Acme", wizard.PickupCity: "Chicago", wizard.PickupState: "IL",
		wizard.ConsigneeName: "Cold", wizard.ConsigneeCity: "Denver", wizard.ConsigneeState: "CO",
	} {
		w.Set(f, v)
	}
}

func fillSchedule(w *wizard.Wizard) {
	for f, v := range map[wizard.Field]string{
		wizard.PickupDate: "2025-03-04 08:30", wizard.DeliveryDate: "2025-03-06 17:00",
		wizard.Status: "Covered", wizard.CustomerName: "Fresh", wizard.CustomerTMSID: "T-1",
		wizard.TotalWeight: "500",
	} {
		w.Set(f, v)
	}
}

func TestWizardCreateFlowRefreshesList(t *testing.T) {
	backend := &fakeBackend{rows: sampleRows()}
	m := newTestModel(t, backend)
	next, _ := m.Update(findLoads(t, collect(m.Init())))
	m = next.(Model)

	m, _ = press(m, "c")
	if !m.WizardOpen() || m.ActiveScope() != scopeWizard {
		t.Fatalf("wizard not open")
	}
	w := m.WizardScreen().Wizard()

	m, _ = press(m, "enter")
	if w.Step() != wizard.StepParties || len(w.VisibleErrors()) == 0 {
		t.Fatalf("blank step 1 should be blocked with visible errors")
	}
	if !strings.Contains(m.View(), "Pickup name is required") {
		t.Fatalf("inline error not rendered")
	}

	fillWizard(w)
	m, _ = press(m, "enter")
	if w.Step() != wizard.StepSchedule {
		t.Fatalf("step = %v", w.Step())
	}
	fillSchedule(w)
	m, cmd := press(m, "enter")
	if !w.Submitting() || cmd == nil {
		t.Fatalf("expected submission")
	}
	if _, again := press(m, "enter"); again != nil {
		t.Fatalf("duplicate submission while submitting")
	}

	msgs := collect(cmd)
	res, ok := msgs[0].(createResultMsg)
	if !ok || res.err != nil {
		t.Fatalf("create result = %#v", msgs)
	}
	before := backend.listCalls()
	next, cmd = m.Update(res)
	m = next.(Model)
	if m.WizardOpen() {
		t.Fatalf("wizard should close after success")
	}
	if w.Step() != wizard.StepParties || w.Value(wizard.PickupName) != "" {
		t.Fatalf("wizard not reset")
	}
	findLoads(t, collect(cmd))
	if backend.listCalls() != before+1 {
		t.Fatalf("list was not re-fetched after create")
	}
	if len(backend.creates) != 1 || backend.creates[0].Pickup.Country != "USA" {
		t.Fatalf("creates = %+v", backend.creates)
	}
}

func TestPendingCreateGatesReopenedWizard(t *testing.T) {
	backend := &fakeBackend{rows: sampleRows()}
	m := newTestModel(t, backend)

	m, _ = press(m, "c")
	w := m.WizardScreen().Wizard()
	fillWizard(w)
	m, _ = press(m, "enter")
	fillSchedule(w)
	m, first := press(m, "enter")
	if first == nil {
		t.Fatalf("expected first submission")
	}

	m, _ = press(m, "esc", "c")
	if !m.WizardOpen() || w.Submitting() {
		t.Fatalf("reopened wizard should be blank and idle")
	}
	fillWizard(w)
	m, _ = press(m, "enter")
	fillSchedule(w)
	m, second := press(m, "enter")
	if second != nil {
		t.Fatalf("second create issued while the first is pending")
	}
	if !m.WizardScreen().InFlight() || !strings.Contains(m.View(), "Submitting…") {
		t.Fatalf("pending create not shown")
	}

	res := collect(first)[0].(createResultMsg)
	next, _ := m.Update(res)
	m = next.(Model)
	if !m.WizardOpen() || w.Value(wizard.CustomerName) != "Fresh" {
		t.Fatalf("late result for a closed form must not reset the new one")
	}
	if m.WizardScreen().InFlight() {
		t.Fatalf("in-flight flag not cleared")
	}
	m, third := press(m, "enter")
	if third == nil || !w.Submitting() {
		t.Fatalf("submission should be allowed once the first create finished")
	}
	if len(backend.creates) != 1 {
		t.Fatalf("creates = %d, want 1", len(backend.creates))
	}
}

func TestWizardFailureKeepsModalOpen(t *testing.T) {
	backend := &fakeBackend{createErr: &api.Error{Kind: api.KindStatus, StatusCode: 400, Body: []byte(`bad`)}}
	m := newTestModel(t, backend)
	m, _ = press(m, "c")
	w := m.WizardScreen().Wizard()
	fillWizard(w)
	m, _ = press(m, "enter")
	fillSchedule(w)
	m, cmd := press(m, "enter")

	next, _ := m.Update(collect(cmd)[0])
	m = next.(Model)
	if !m.WizardOpen() || w.Step() != wizard.StepSchedule || w.Submitting() {
		t.Fatalf("wizard should stay open on step 2")
	}
	if w.Value(wizard.CustomerName) != "Fresh" {
		t.Fatalf("data lost")
	}
	if !strings.Contains(m.View(), "Failed to create load:") {
		t.Fatalf("inline create error missing")
	}
}

func TestWizardEscClosesAndResets(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})
	m, _ = press(m, "c")
	fillWizard(m.WizardScreen().Wizard())
	m, _ = press(m, "enter", "esc")
	if m.WizardOpen() {
		t.Fatalf("wizard still open")
	}
	w := m.WizardScreen().Wizard()
	if w.Step() != wizard.StepParties || w.Value(wizard.PickupName) != "" {
		t.Fatalf("wizard not reset on close")
	}
}

func TestWizardTypingUpdatesFormAndCompletesStatus(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})
	m, _ = press(m, "c", "A", "c", "m", "e")
	w := m.WizardScreen().Wizard()
	if w.Value(wizard.PickupName) != "Acme" {
		t.Fatalf("pickup name = %q", w.Value(wizard.PickupName))
	}
	m, _ = press(m, "tab")
	if !w.Touched(wizard.PickupName) {
		t.Fatalf("leaving a field should touch it")
	}

	fillWizard(w)
	m, _ = press(m, "enter")
	// Status is the third field on step 2.
	m, _ = press(m, "tab", "tab", "c", "o", "v", "tab")
	if got := w.Value(wizard.Status); got != "Covered" {
		t.Fatalf("status = %q, want completion to Covered", got)
	}
}

func TestListSheetAcquireRelease(t *testing.T) {
	sheets := theme.NewSheets()
	a := NewListView(sheets, time.UTC, 25, nil, 100)
	b := NewListView(sheets, time.UTC, 25, nil, 100)
	a.Mount()
	b.Mount()
	a.Mount()
	if sheets.Refs(SheetLoadTable) != 2 || sheets.Builds() != 1 {
		t.Fatalf("refs = %d builds = %d", sheets.Refs(SheetLoadTable), sheets.Builds())
	}
	a.Unmount()
	b.Unmount()
	if sheets.Refs(SheetLoadTable) != 0 {
		t.Fatalf("sheet still mounted")
	}
}

func TestListApplyIgnoresOtherWindow(t *testing.T) {
	v := NewListView(nil, time.UTC, 25, nil, 100)
	v.Begin(store.Entry{}, false)
	other := store.Entry{Key: store.Key(api.ListParams{Start: "25", PageSize: "25"}), HasData: true, Data: sampleRows()}
	if v.Apply(other) {
		t.Fatalf("applied another window")
	}
	current := store.Entry{Key: store.Key(v.Params()), HasData: true, Data: sampleRows()}
	if !v.Apply(current) || len(v.Rows()) != 2 {
		t.Fatalf("current window not applied")
	}
}

func TestScreenGetsKeysBeforeList(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})
	m, _ = press(m, "c", "n")
	if m.List().Start() != 0 {
		t.Fatalf("list handled a key while the wizard was open")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel(t, &fakeBackend{})
	m.Init()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestCreateErrorIsNotAPIErrorStillShown(t *testing.T) {
	m := newTestModel(t, &fakeBackend{createErr: errors.New("dial tcp: refused")})
	m, _ = press(m, "c")
	w := m.WizardScreen().Wizard()
	fillWizard(w)
	m, _ = press(m, "enter")
	fillSchedule(w)
	m, cmd := press(m, "enter")
	next, _ := m.Update(collect(cmd)[0])
	m = next.(Model)
	if !strings.Contains(m.View(), "FETCH_ERROR") {
		t.Fatalf("expected transport-shaped error in view")
	}
}

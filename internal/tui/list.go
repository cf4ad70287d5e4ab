package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"

	"github.com/drumkit/drumkit/internal/api"
	"github.com/drumkit/drumkit/internal/load"
	"github.com/drumkit/drumkit/internal/store"
	"github.com/drumkit/drumkit/internal/theme"
)

// SheetLoadTable is the style sheet the list mounts.
const SheetLoadTable = "load-table"

// EmptyMessage is shown when a finished query returned no rows.
const EmptyMessage = "No loads found."

var listHeaders = []string{"Load ID", "Status", "Customer", "Created", "Last Updated", "Carrier"}

func buildLoadTableSheet() map[string]lipgloss.Style {
	return map[string]lipgloss.Style{
		"header":    lipgloss.NewStyle().Foreground(theme.Colors.Text.Secondary).Bold(true).Padding(0, 1),
		"cell":      lipgloss.NewStyle().Foreground(theme.Colors.Text.Primary).Padding(0, 1),
		"muted":     lipgloss.NewStyle().Foreground(theme.Colors.Text.Tertiary).Padding(0, 1),
		"border":    lipgloss.NewStyle().Foreground(theme.Colors.Border.Light),
		"paginator": lipgloss.NewStyle().Foreground(theme.Colors.Text.Secondary),
		"current":   lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true),
		"empty":     lipgloss.NewStyle().Foreground(theme.Colors.Text.Tertiary).Italic(true),
	}
}

// ListView renders one page of loads with a lazy paginator. Only the page
// currently requested is displayed; results for any other window are dropped.
type ListView struct {
	sheets *theme.Sheets
	sheet  *theme.Sheet
	loc    *time.Location

	pageSizes []int
	total     int
	start     int
	pageSize  int

	rows    []load.LoadData
	loaded  bool
	loading bool
	err     error

	spinner spinner.Model
}

func NewListView(sheets *theme.Sheets, loc *time.Location, pageSize int, pageSizes []int, total int) *ListView {
	if loc == nil {
		loc = time.Local
	}
	if len(pageSizes) == 0 {
		pageSizes = []int{10, 25, 50, 100}
	}
	if pageSize <= 0 {
		pageSize = pageSizes[0]
	}
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(theme.Colors.Brand.Primary)
	return &ListView{
		sheets:    sheets,
		loc:       loc,
		pageSizes: slices.Clone(pageSizes),
		total:     total,
		pageSize:  pageSize,
		spinner:   sp,
	}
}

// Mount acquires the table style sheet.
func (v *ListView) Mount() {
	if v.sheet == nil && v.sheets != nil {
		v.sheet = v.sheets.Acquire(SheetLoadTable, buildLoadTableSheet)
	}
}

// Unmount releases the style sheet.
func (v *ListView) Unmount() {
	if v.sheet != nil && v.sheets != nil {
		v.sheets.Release(SheetLoadTable)
	}
	v.sheet = nil
}

func (v *ListView) style(name string) lipgloss.Style {
	if v.sheet == nil {
		return lipgloss.NewStyle()
	}
	return v.sheet.Style(name)
}

// Params is the window currently requested.
func (v *ListView) Params() api.ListParams {
	return api.ListParams{Start: strconv.Itoa(v.start), PageSize: strconv.Itoa(v.pageSize)}
}

func (v *ListView) Start() int    { return v.start }
func (v *ListView) PageSize() int { return v.pageSize }
func (v *ListView) Loading() bool { return v.loading }
func (v *ListView) Err() error    { return v.err }

func (v *ListView) Rows() []load.LoadData { return v.rows }

// NextPage moves one page forward if the placeholder total allows it.
func (v *ListView) NextPage() bool {
	if v.start+v.pageSize >= v.total {
		return false
	}
	v.start += v.pageSize
	return true
}

func (v *ListView) PrevPage() bool {
	if v.start == 0 {
		return false
	}
	v.start = max(0, v.start-v.pageSize)
	return true
}

// CyclePageSize steps through the page size options and resets the offset.
func (v *ListView) CyclePageSize(dir int) bool {
	i := slices.Index(v.pageSizes, v.pageSize)
	next := i + dir
	if i < 0 {
		next = 0
	}
	if next < 0 || next >= len(v.pageSizes) {
		return false
	}
	v.pageSize = v.pageSizes[next]
	v.start = 0
	return true
}

// Begin marks the current window as loading and seeds it from a cached entry.
func (v *ListView) Begin(cached store.Entry, ok bool) tea.Cmd {
	v.loading = true
	v.err = nil
	if ok && cached.HasData {
		v.rows = cached.Data
		v.loaded = true
	} else {
		v.rows = nil
		v.loaded = false
	}
	return v.spinner.Tick
}

// Apply shows a finished query. A result for any window other than the
// current one is ignored and Apply returns false.
func (v *ListView) Apply(e store.Entry) bool {
	if e.Key != store.Key(v.Params()) {
		return false
	}
	v.loading = false
	v.err = e.Err
	if e.HasData {
		v.rows = e.Data
		v.loaded = true
	}
	return true
}

func (v *ListView) Update(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinner.TickMsg)
	if !ok || !v.loading {
		return nil
	}
	var cmd tea.Cmd
	v.spinner, cmd = v.spinner.Update(tick)
	return cmd
}

type listRow struct {
	id, status, customer, created, updated, carrier string
}

func (v *ListView) project(d load.LoadData) listRow {
	customer := load.CustomerLabel(d)
	if _, ok := d.PrimaryCustomer(); ok {
		customer += " " + v.style("muted").UnsetPadding().Render(load.CustomerIDLabel(d))
	}
	id := strconv.FormatInt(d.ID, 10)
	if d.CustomID != "" {
		id += " " + v.style("muted").UnsetPadding().Render(d.CustomID)
	}
	status := d.StatusValue()
	tag := load.Placeholder
	if status != "" {
		tag = theme.Tag(status, theme.Severity(load.SeverityOf(status)))
	}
	return listRow{
		id:       id,
		status:   tag,
		customer: customer,
		created:  load.FormatTimestamp(d.Created, v.loc),
		updated:  load.FormatTimestamp(d.Updated, v.loc),
		carrier:  load.CarrierLabel(d),
	}
}

// Paginator renders the window position, e.g. "1–25 of 100 · page 1/4 · 25 rows".
func (v *ListView) Paginator() string {
	pages := 1
	if v.pageSize > 0 && v.total > 0 {
		pages = (v.total + v.pageSize - 1) / v.pageSize
	}
	page := v.start/max(1, v.pageSize) + 1
	first, last := 0, 0
	if v.total > 0 {
		first = v.start + 1
		last = min(v.start+v.pageSize, v.total)
	}
	sizes := lo.Map(v.pageSizes, func(n int, _ int) string {
		s := strconv.Itoa(n)
		if n == v.pageSize {
			return v.style("current").Render("[" + s + "]")
		}
		return s
	})
	return v.style("paginator").Render(fmt.Sprintf("%d-%d of %d  ·  page %d/%d  ·  rows ", first, last, v.total, page, pages)) +
		strings.Join(sizes, " ")
}

// Render draws the table (or loading/empty state) and the paginator.
func (v *ListView) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	paginator := v.Paginator()
	if v.loading {
		paginator = v.spinner.View() + " Loading…  " + paginator
	}

	var body string
	switch {
	case len(v.rows) > 0:
		body = v.renderTable(width, max(1, height-1))
	case v.loading:
		body = ""
	case v.err != nil && !v.loaded:
		body = ""
	default:
		body = v.style("empty").Render(EmptyMessage)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, paginator)
}

func (v *ListView) renderTable(width, height int) string {
	rows := lo.Map(v.rows, func(d load.LoadData, _ int) []string {
		r := v.project(d)
		return []string{r.id, r.status, r.customer, r.created, r.updated, r.carrier}
	})
	// Border plus header take four lines.
	if limit := height - 4; limit >= 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(v.style("border")).
		BorderColumn(false).
		Headers(listHeaders...).
		Rows(rows...).
		Width(width).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return v.style("header")
			}
			if col == 3 || col == 4 {
				return v.style("muted")
			}
			return v.style("cell")
		})
	return t.Render()
}

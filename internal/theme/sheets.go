package theme

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Sheet is a named set of styles that a view mounts while it is on screen.
type Sheet struct {
	id     string
	styles map[string]lipgloss.Style
}

func (s *Sheet) ID() string { return s.id }

// Style returns the named style, or an empty style when the sheet has none.
func (s *Sheet) Style(name string) lipgloss.Style {
	if s == nil {
		return lipgloss.NewStyle()
	}
	if st, ok := s.styles[name]; ok {
		return st
	}
	return lipgloss.NewStyle()
}

type mount struct {
	sheet *Sheet
	refs  int
}

// Sheets registers style sheets once per id and reference-counts the views
// that use them. The builder runs on the first Acquire only; the sheet is
// dropped when the last holder releases it.
type Sheets struct {
	mu      sync.Mutex
	mounted map[string]*mount
	builds  int
}

func NewSheets() *Sheets {
	return &Sheets{mounted: map[string]*mount{}}
}

// Acquire mounts the sheet with the given id, building it if this is the
// first holder, and returns the shared instance.
func (r *Sheets) Acquire(id string, build func() map[string]lipgloss.Style) *Sheet {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.mounted[id]; ok {
		m.refs++
		return m.sheet
	}
	styles := map[string]lipgloss.Style{}
	if build != nil {
		for k, v := range build() {
			styles[k] = v
		}
	}
	r.builds++
	sheet := &Sheet{id: id, styles: styles}
	r.mounted[id] = &mount{sheet: sheet, refs: 1}
	return sheet
}

// Release drops one reference. Releasing an id that is not mounted is a no-op.
func (r *Sheets) Release(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.mounted[id]
	if !ok {
		return
	}
	m.refs--
	if m.refs <= 0 {
		delete(r.mounted, id)
	}
}

// Refs reports how many holders the sheet currently has.
func (r *Sheets) Refs(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.mounted[id]; ok {
		return m.refs
	}
	return 0
}

// Builds reports how many times a sheet builder has run.
func (r *Sheets) Builds() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.builds
}

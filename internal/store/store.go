// Package store is the query cache between the views and the load API.
//
// Results are cached per distinct set of list parameters. Entries carry tags;
// a successful create invalidates the Load tag, which marks every list entry
// stale so the next query for it goes back to the network. Identical
// concurrent queries share one request.
package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/drumkit/drumkit/internal/api"
	"github.com/drumkit/drumkit/internal/load"
)

// TagLoad is carried by every list entry and invalidated by creates.
const TagLoad = "Load"

// Backend is the subset of the API client the store drives.
type Backend interface {
	ListLoads(ctx context.Context, params api.ListParams) ([]load.LoadData, error)
	CreateLoad(ctx context.Context, payload load.Load) ([]byte, error)
}

// Snapshot is a persisted list result.
type Snapshot struct {
	Key       string
	Params    api.ListParams
	Rows      []load.LoadData
	FetchedAt time.Time
}

// Snapshotter persists successful list results across runs.
type Snapshotter interface {
	SaveSnapshot(ctx context.Context, snap Snapshot) error
	LoadSnapshots(ctx context.Context) ([]Snapshot, error)
}

// Entry is a point-in-time copy of a cache entry.
type Entry struct {
	Key       string
	Params    api.ListParams
	Data      []load.LoadData
	HasData   bool
	Err       error
	Loading   bool
	Stale     bool
	FetchedAt time.Time
}

// OK reports whether the last attempt succeeded.
func (e Entry) OK() bool { return e.HasData && e.Err == nil }

type entry struct {
	Entry
	gen      uint64
	inflight int
	tags     []string
}

func (e *entry) copy() Entry {
	out := e.Entry
	out.Data = slices.Clone(e.Data)
	out.Loading = e.inflight > 0
	return out
}

type Store struct {
	backend Backend
	snap    Snapshotter
	logger  *zap.Logger
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
	group   singleflight.Group
}

type Option func(*Store)

func WithSnapshotter(s Snapshotter) Option {
	return func(st *Store) { st.snap = s }
}

func WithLogger(l *zap.Logger) Option {
	return func(st *Store) {
		if l != nil {
			st.logger = l
		}
	}
}

// WithClock overrides the clock used for FetchedAt.
func WithClock(now func() time.Time) Option {
	return func(st *Store) {
		if now != nil {
			st.now = now
		}
	}
}

func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		logger:  zap.NewNop(),
		now:     time.Now,
		entries: map[string]*entry{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("component", "store"))
	return s
}

// Key serializes list parameters into a cache key.
func Key(p api.ListParams) string {
	return "viewLoads(" + p.Query() + ")"
}

// entryLocked returns the entry for p, creating it. Caller holds s.mu.
func (s *Store) entryLocked(p api.ListParams) *entry {
	key := Key(p)
	e, ok := s.entries[key]
	if !ok {
		e = &entry{Entry: Entry{Key: key, Params: p}, tags: []string{TagLoad}}
		s.entries[key] = e
	}
	return e
}

// Peek returns the cached entry for p without any I/O.
func (s *Store) Peek(p api.ListParams) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[Key(p)]
	if !ok {
		return Entry{Key: Key(p), Params: p}, false
	}
	return e.copy(), true
}

// Query returns the entry for p, fetching when there is no fresh result.
// A fetch error is recorded on the entry; previously fetched rows are kept.
func (s *Store) Query(ctx context.Context, p api.ListParams) Entry {
	s.mu.Lock()
	e := s.entryLocked(p)
	if e.HasData && !e.Stale && e.Err == nil {
		out := e.copy()
		s.mu.Unlock()
		return out
	}
	gen := e.gen
	e.inflight++
	s.mu.Unlock()

	flight := fmt.Sprintf("%s#%d", e.Key, gen)
	v, err, shared := s.group.Do(flight, func() (any, error) {
		return s.backend.ListLoads(ctx, p)
	})
	if shared {
		s.logger.Debug("query coalesced", zap.String("key", e.Key))
	}

	s.mu.Lock()
	e.inflight--
	var saved *Snapshot
	if err != nil {
		e.Err = err
		s.logger.Warn("query failed", zap.String("key", e.Key), zap.Error(err))
	} else {
		rows, _ := v.([]load.LoadData)
		e.Data = rows
		e.HasData = true
		e.Err = nil
		e.FetchedAt = s.now()
		// A fetch that started before an invalidation is kept but stays stale.
		e.Stale = gen != e.gen
		if !shared || e.inflight == 0 {
			saved = &Snapshot{Key: e.Key, Params: p, Rows: slices.Clone(rows), FetchedAt: e.FetchedAt}
		}
	}
	out := e.copy()
	s.mu.Unlock()

	if saved != nil && s.snap != nil {
		if err := s.snap.SaveSnapshot(ctx, *saved); err != nil {
			s.logger.Warn("snapshot save failed", zap.String("key", saved.Key), zap.Error(err))
		}
	}
	return out
}

// Refetch invalidates the entry for p and queries it again.
func (s *Store) Refetch(ctx context.Context, p api.ListParams) Entry {
	s.mu.Lock()
	e := s.entryLocked(p)
	e.Stale = true
	e.gen++
	s.mu.Unlock()
	return s.Query(ctx, p)
}

// Invalidate marks every entry carrying tag stale.
func (s *Store) Invalidate(tag string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.entries {
		if !slices.Contains(e.tags, tag) {
			continue
		}
		e.Stale = true
		e.gen++
		n++
	}
	s.logger.Debug("invalidated", zap.String("tag", tag), zap.Int("entries", n))
	return n
}

// CreateLoad runs the create mutation and, on success, invalidates the list.
func (s *Store) CreateLoad(ctx context.Context, payload load.Load) ([]byte, error) {
	resp, err := s.backend.CreateLoad(ctx, payload)
	if err != nil {
		return nil, err
	}
	s.Invalidate(TagLoad)
	return resp, nil
}

// Warm seeds the cache from persisted snapshots. Seeded entries are stale so
// they are shown immediately and re-fetched on first query.
func (s *Store) Warm(ctx context.Context) (int, error) {
	if s.snap == nil {
		return 0, nil
	}
	snaps, err := s.snap.LoadSnapshots(ctx)
	if err != nil {
		return 0, fmt.Errorf("load snapshots: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, snap := range snaps {
		e := s.entryLocked(snap.Params)
		if e.HasData {
			continue
		}
		e.Data = snap.Rows
		e.HasData = true
		e.FetchedAt = snap.FetchedAt
		e.Stale = true
		n++
	}
	return n, nil
}

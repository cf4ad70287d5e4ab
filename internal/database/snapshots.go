package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"github.com/drumkit/drumkit/internal/api"
	"github.com/drumkit/drumkit/internal/load"
	"github.com/drumkit/drumkit/internal/store"
)

// MaxSnapshots bounds the table; older pages are dropped on save.
const MaxSnapshots = 20

// SnapshotRepo stores one row per list cache key.
type SnapshotRepo struct {
	db    *sql.DB
	limit int
}

var _ store.Snapshotter = (*SnapshotRepo)(nil)

func NewSnapshotRepo(db *sql.DB) *SnapshotRepo {
	return &SnapshotRepo{db: db, limit: MaxSnapshots}
}

func (r *SnapshotRepo) SaveSnapshot(ctx context.Context, snap store.Snapshot) error {
	rows, err := json.Marshal(snap.Rows)
	if err != nil {
		return fmt.Errorf("encode snapshot rows: %w", err)
	}
	fetched := snap.FetchedAt
	if fetched.IsZero() {
		fetched = Now()
	}
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO query_snapshots (cache_key, start, page_size, rows_json, fetched_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(cache_key) DO UPDATE SET
				start = excluded.start,
				page_size = excluded.page_size,
				rows_json = excluded.rows_json,
				fetched_at = excluded.fetched_at`,
			snap.Key, snap.Params.Start, snap.Params.PageSize, rows, fetched.UTC())
		if err != nil {
			return fmt.Errorf("save snapshot %s: %w", snap.Key, err)
		}
		_, err = tx.ExecContext(ctx, `
			DELETE FROM query_snapshots
			WHERE cache_key NOT IN (
				SELECT cache_key FROM query_snapshots
				ORDER BY fetched_at DESC, cache_key
				LIMIT ?
			)`, r.limit)
		if err != nil {
			return fmt.Errorf("prune snapshots: %w", err)
		}
		return nil
	})
}

func (r *SnapshotRepo) LoadSnapshots(ctx context.Context) ([]store.Snapshot, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT cache_key, start, page_size, rows_json, fetched_at
		FROM query_snapshots
		ORDER BY fetched_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var out []store.Snapshot
	for rows.Next() {
		var (
			snap    store.Snapshot
			raw     []byte
			fetched time.Time
		)
		if err := rows.Scan(&snap.Key, &snap.Params.Start, &snap.Params.PageSize, &raw, &fetched); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		var data []load.LoadData
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("decode snapshot %s: %w", snap.Key, err)
		}
		snap.Rows = data
		snap.FetchedAt = fetched
		if snap.Key == "" {
			snap.Key = store.Key(api.ListParams{Start: snap.Params.Start, PageSize: snap.Params.PageSize})
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

// Clear removes every snapshot.
func (r *SnapshotRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM query_snapshots`); err != nil {
		return fmt.Errorf("clear snapshots: %w", err)
	}
	return nil
}

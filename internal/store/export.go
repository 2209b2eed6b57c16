package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rcliao/bmi-percentile/internal/model"
)

// ExportAll returns every record oldest first, optionally of one kind.
func (s *SQLiteStore) ExportAll(ctx context.Context, kind model.Kind) ([]model.Record, error) {
	if kind == "" {
		return s.query(ctx, selectColumns+` ORDER BY created_at, id`)
	}
	return s.query(ctx, selectColumns+` WHERE kind = ? ORDER BY created_at, id`, string(kind))
}

// Import stores records from an export in one transaction. Records whose
// ID already exists are skipped. Returns the number of records inserted.
func (s *SQLiteStore) Import(ctx context.Context, records []model.Record) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	imported := 0
	for i, r := range records {
		if !model.ValidKinds[r.Kind] {
			return 0, fmt.Errorf("record %d: invalid kind %q", i, r.Kind)
		}
		if r.CreatedAt.IsZero() {
			r.CreatedAt = time.Now().UTC()
		}
		r.CreatedAt = r.CreatedAt.UTC().Truncate(time.Second)
		if r.ID == "" {
			r.ID = s.newID(r.CreatedAt)
		}
		n, err := s.insert(ctx, tx, r, true)
		if err != nil {
			return 0, fmt.Errorf("record %d: %w", i, err)
		}
		imported += int(n)
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return imported, nil
}

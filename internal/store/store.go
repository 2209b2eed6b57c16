// Package store provides the measurement history interface and its SQLite
// implementation.
package store

import (
	"context"

	"github.com/rcliao/bmi-percentile/internal/model"
)

// ListParams holds parameters for listing history.
type ListParams struct {
	Kind  model.Kind // empty lists every kind
	Limit int        // 0 means no limit
}

// Store defines the measurement history interface. Adult and minor records
// are partitioned by Record.Kind.
type Store interface {
	// Save stores a record and returns it with its ID and timestamp set.
	Save(ctx context.Context, r model.Record) (*model.Record, error)

	// List returns records newest first.
	List(ctx context.Context, p ListParams) ([]model.Record, error)

	// Delete removes every record of kind, or all records when kind is
	// empty. Returns the number of rows removed.
	Delete(ctx context.Context, kind model.Kind) (int64, error)

	// Series returns chart points oldest first: BMI for adults, percentile
	// for minors.
	Series(ctx context.Context, kind model.Kind) ([]model.Point, error)

	// Close closes the store.
	Close() error
}

package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath       string      `json:"db_path"`
	DBSizeBytes  int64       `json:"db_size_bytes"`
	TotalRecords int         `json:"total_records"`
	Kinds        []KindStats `json:"kinds"`
}

// KindStats summarizes the records of one kind.
type KindStats struct {
	Kind    string  `json:"kind"`
	Count   int     `json:"count"`
	MinBMI  float64 `json:"min_bmi"`
	MaxBMI  float64 `json:"max_bmi"`
	AvgBMI  float64 `json:"avg_bmi"`
	FirstAt string  `json:"first_at"`
	LastAt  string  `json:"last_at"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM measurements`).Scan(&st.TotalRecords); err != nil {
		return st, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, COUNT(*), MIN(bmi), MAX(bmi), ROUND(AVG(bmi), 2), MIN(created_at), MAX(created_at)
		FROM measurements GROUP BY kind ORDER BY kind`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var k KindStats
		if err := rows.Scan(&k.Kind, &k.Count, &k.MinBMI, &k.MaxBMI, &k.AvgBMI, &k.FirstAt, &k.LastAt); err != nil {
			return st, err
		}
		st.Kinds = append(st.Kinds, k)
	}
	return st, rows.Err()
}

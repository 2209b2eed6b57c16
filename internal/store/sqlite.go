package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/bmi-percentile/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB

	// mu serializes writes and ID generation.
	mu      sync.Mutex
	entropy io.Reader
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s, err := newStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func newStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{
		db:      db,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) newID(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS measurements (
		id          TEXT PRIMARY KEY,
		kind        TEXT,
		weight_kg   REAL NOT NULL,
		height_m    REAL NOT NULL,
		bmi         REAL NOT NULL,
		sex         TEXT,
		age_months  INTEGER,
		percentile  REAL,
		created_at  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_measurements_kind_created ON measurements(kind, created_at DESC);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	if err := s.migrateLegacy(); err != nil {
		return fmt.Errorf("legacy history: %w", err)
	}

	// Rows written before the kind column existed were partitioned by
	// whether sex was set.
	_, err := s.db.Exec(`UPDATE measurements
		SET kind = CASE WHEN sex IS NULL THEN 'adult' ELSE 'minor' END
		WHERE kind IS NULL`)
	return err
}

// migrateLegacy copies rows from the perfiles table written by older
// releases (height in cm, "DD-MM-YYYY HH:MM:SS" dates, localized sex) and
// renames it so the copy happens once. Copied rows keep a NULL kind and are
// classified by the backfill in migrate.
func (s *SQLiteStore) migrateLegacy() error {
	var name string
	err := s.db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'perfiles'`).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT OR IGNORE INTO measurements
		(id, kind, weight_kg, height_m, bmi, sex, age_months, percentile, created_at)
		SELECT 'legacy-' || printf('%08d', id), NULL, peso,
		       CASE WHEN altura > 10 THEN altura / 100.0 ELSE altura END,
		       imc,
		       CASE
		         WHEN sexo IS NULL THEN NULL
		         WHEN lower(sexo) IN ('masculino', 'male', 'm', 'niño', 'boy') THEN 'male'
		         WHEN lower(sexo) IN ('femenino', 'female', 'f', 'niña', 'girl') THEN 'female'
		         ELSE lower(sexo)
		       END,
		       edad_meses, percentil,
		       substr(fecha, 7, 4) || '-' || substr(fecha, 4, 2) || '-' || substr(fecha, 1, 2)
		         || 'T' || substr(fecha, 12, 8) || 'Z'
		FROM perfiles`)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`ALTER TABLE perfiles RENAME TO perfiles_migrated`); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) Save(ctx context.Context, r model.Record) (*model.Record, error) {
	if !model.ValidKinds[r.Kind] {
		return nil, fmt.Errorf("invalid kind %q", r.Kind)
	}
	if r.Kind == model.KindMinor && r.Sex == "" {
		return nil, fmt.Errorf("minor record requires sex")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	r.CreatedAt = r.CreatedAt.UTC().Truncate(time.Second)
	if r.ID == "" {
		r.ID = s.newID(r.CreatedAt)
	}
	if _, err := s.insert(ctx, s.db, r, false); err != nil {
		return nil, fmt.Errorf("insert measurement: %w", err)
	}
	return &r, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *SQLiteStore) insert(ctx context.Context, db execer, r model.Record, ignoreDup bool) (int64, error) {
	verb := "INSERT"
	if ignoreDup {
		verb = "INSERT OR IGNORE"
	}
	var sex *string
	if r.Kind == model.KindMinor {
		v := string(r.Sex)
		sex = &v
	}
	res, err := db.ExecContext(ctx,
		verb+` INTO measurements (id, kind, weight_kg, height_m, bmi, sex, age_months, percentile, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, string(r.Kind), r.WeightKg, r.HeightM, r.BMI, sex, r.AgeMonths, r.Percentile,
		r.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const selectColumns = `SELECT id, kind, weight_kg, height_m, bmi, sex, age_months, percentile, created_at FROM measurements`

func (s *SQLiteStore) List(ctx context.Context, p ListParams) ([]model.Record, error) {
	var where []string
	var args []any
	if p.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, string(p.Kind))
	}
	query := selectColumns
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if p.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, p.Limit)
	}
	return s.query(ctx, query, args...)
}

func (s *SQLiteStore) query(ctx context.Context, query string, args ...any) ([]model.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) Delete(ctx context.Context, kind model.Kind) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res sql.Result
	var err error
	if kind == "" {
		res, err = s.db.ExecContext(ctx, `DELETE FROM measurements`)
	} else {
		res, err = s.db.ExecContext(ctx, `DELETE FROM measurements WHERE kind = ?`, string(kind))
	}
	if err != nil {
		return 0, fmt.Errorf("delete measurements: %w", err)
	}
	return res.RowsAffected()
}

func (s *SQLiteStore) Series(ctx context.Context, kind model.Kind) ([]model.Point, error) {
	column := "bmi"
	if kind == model.KindMinor {
		column = "percentile"
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT created_at, `+column+` FROM measurements
		 WHERE kind = ? AND `+column+` IS NOT NULL
		 ORDER BY created_at ASC, id ASC`, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []model.Point
	for rows.Next() {
		var at string
		var v float64
		if err := rows.Scan(&at, &v); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, at)
		if err != nil {
			continue
		}
		points = append(points, model.Point{At: t, Value: v})
	}
	return points, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (model.Record, error) {
	var r model.Record
	var kind, createdAt string
	var sex sql.NullString
	var age sql.NullInt64
	var pct sql.NullFloat64

	err := row.Scan(&r.ID, &kind, &r.WeightKg, &r.HeightM, &r.BMI, &sex, &age, &pct, &createdAt)
	if err != nil {
		return r, err
	}
	r.Kind = model.Kind(kind)
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if sex.Valid {
		r.Sex = model.Sex(sex.String)
	}
	if age.Valid {
		v := int(age.Int64)
		r.AgeMonths = &v
	}
	if pct.Valid {
		v := pct.Float64
		r.Percentile = &v
	}
	return r, nil
}

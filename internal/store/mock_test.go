package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/bmi-percentile/internal/model"
)

func newMockStore(t *testing.T) (*SQLiteStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS measurements`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`FROM sqlite_master`).WillReturnRows(sqlmock.NewRows([]string{"name"}))
	mock.ExpectExec(`UPDATE measurements`).WillReturnResult(sqlmock.NewResult(0, 0))

	s, err := newStore(db)
	require.NoError(t, err)
	return s, mock
}

func TestSave_InsertFailure(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(`INSERT INTO measurements`).WillReturnError(errors.New("disk I/O error"))

	_, err := s.Save(context.Background(), model.Record{Kind: model.KindAdult, WeightKg: 70, HeightM: 1.7, BMI: 24.22})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert measurement")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_Failure(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(`DELETE FROM measurements WHERE kind`).
		WithArgs("minor").
		WillReturnError(errors.New("database is locked"))

	_, err := s.Delete(context.Background(), model.KindMinor)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImport_RollsBackOnFailure(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT OR IGNORE INTO measurements`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT OR IGNORE INTO measurements`).WillReturnError(errors.New("constraint failed"))
	mock.ExpectRollback()

	recs := []model.Record{
		{Kind: model.KindAdult, WeightKg: 70, HeightM: 1.7, BMI: 24.22},
		{Kind: model.KindAdult, WeightKg: 80, HeightM: 1.8, BMI: 24.69},
	}
	n, err := s.Import(context.Background(), recs)
	require.Error(t, err)
	assert.Equal(t, 0, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_Failure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS measurements`).WillReturnError(errors.New("read-only database"))
	_, err = newStore(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrate")
}

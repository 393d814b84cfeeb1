// Package sqlite persists forecast rows in a single SQLite table using the
// pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/couchcryptid/sunshine-sync/internal/domain"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

const columns = `date, weather_id, min, max, humidity, pressure, wind_speed, degrees`

// Store is the forecast cache. Writes go through Replace, which swaps the
// whole table inside one transaction.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path with WAL journaling, so
// readers keep seeing the last committed batch while a replace is running.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrStore, path, err)
	}
	s, err := New(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing database handle and ensures the schema exists.
func New(ctx context.Context, db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: db is nil", domain.ErrStore)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStore, err)
	}
	return &Store{db: db}, nil
}

// Replace deletes every stored row and inserts rows in their place as one
// transaction. On any failure the transaction is rolled back and the previous
// rows remain. An empty batch is a no-op so a bad fetch never wipes the cache.
func (s *Store) Replace(ctx context.Context, rows []domain.ForecastRow) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", domain.ErrStore, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM weather`); err != nil {
		return fmt.Errorf("%w: delete: %w", domain.ErrStore, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO weather(`+columns+`) VALUES(?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("%w: prepare insert: %w", domain.ErrStore, err)
	}
	defer stmt.Close()

	for i, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.Date, r.ConditionID, r.MinTemp, r.MaxTemp,
			r.Humidity, r.Pressure, r.WindSpeed, r.WindDegrees); err != nil {
			return fmt.Errorf("%w: insert row %d: %w", domain.ErrStore, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", domain.ErrStore, err)
	}
	return nil
}

// List returns every stored row ordered by date.
func (s *Store) List(ctx context.Context) ([]domain.ForecastRow, error) {
	return s.query(ctx, `SELECT `+columns+` FROM weather ORDER BY date`)
}

// Upcoming returns rows dated on or after from, ordered by date.
func (s *Store) Upcoming(ctx context.Context, from time.Time) ([]domain.ForecastRow, error) {
	return s.query(ctx, `SELECT `+columns+` FROM weather WHERE date >= ? ORDER BY date`,
		domain.DayMillis(from))
}

// GetByDate returns the row for one normalized day in epoch millis.
func (s *Store) GetByDate(ctx context.Context, date int64) (domain.ForecastRow, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+columns+` FROM weather WHERE date = ?`, date)
	r, err := scanRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ForecastRow{}, fmt.Errorf("forecast for %d: %w", date, domain.ErrNotFound)
	}
	if err != nil {
		return domain.ForecastRow{}, fmt.Errorf("%w: get by date: %w", domain.ErrStore, err)
	}
	return r, nil
}

// Count returns the number of stored rows.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM weather`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: count: %w", domain.ErrStore, err)
	}
	return n, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]domain.ForecastRow, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %w", domain.ErrStore, err)
	}
	defer rows.Close()

	out := make([]domain.ForecastRow, 0)
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan: %w", domain.ErrStore, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows: %w", domain.ErrStore, err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRow(sc scanner) (domain.ForecastRow, error) {
	var r domain.ForecastRow
	err := sc.Scan(&r.Date, &r.ConditionID, &r.MinTemp, &r.MaxTemp,
		&r.Humidity, &r.Pressure, &r.WindSpeed, &r.WindDegrees)
	return r, err
}

// Package sqlite persists generated METAR reports so past runs can be
// reviewed from the history views.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wxforge/metgen/pkg/logger"
	_ "modernc.org/sqlite"
)

// ReportRecord is a generated report as stored in the history table.
type ReportRecord struct {
	ID          int64
	Station     string
	Units       string
	Source      string
	Report      string
	GeneratedAt time.Time
}

// ReportStore is a SQLite-based store for generated reports.
type ReportStore struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewReportStore opens (or creates) the history database at dbPath.
func NewReportStore(dbPath string, log *logger.Logger) (*ReportStore, error) {
	storeLogger := log.Named("sqlite")

	storeLogger.Info("Initializing report history store",
		logger.String("path", dbPath))

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set journal mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &ReportStore{db: db, logger: storeLogger}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS reports (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			station TEXT NOT NULL,
			units TEXT NOT NULL,
			source TEXT NOT NULL,
			report TEXT NOT NULL,
			generated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create reports table: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_reports_generated_at ON reports(generated_at DESC)`)
	if err != nil {
		return fmt.Errorf("failed to create reports index: %w", err)
	}
	return nil
}

// Save inserts a generated report into the history.
func (s *ReportStore) Save(ctx context.Context, rec ReportRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO reports (station, units, source, report, generated_at)
		VALUES (?, ?, ?, ?, ?)`,
		rec.Station, rec.Units, rec.Source, rec.Report, rec.GeneratedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to insert report: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get insert id: %w", err)
	}

	s.logger.Debug("Saved report",
		logger.Int64("id", id),
		logger.String("station", rec.Station))
	return id, nil
}

// Recent returns the newest reports, most recent first.
func (s *ReportStore) Recent(ctx context.Context, limit int) ([]ReportRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, station, units, source, report, generated_at
		FROM reports
		ORDER BY generated_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var records []ReportRecord
	for rows.Next() {
		var rec ReportRecord
		if err := rows.Scan(&rec.ID, &rec.Station, &rec.Units, &rec.Source, &rec.Report, &rec.GeneratedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate report rows: %w", err)
	}
	return records, nil
}

// Close closes the database connection.
func (s *ReportStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

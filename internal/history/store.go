package history

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"resync/internal/errors"
)

// Store provides persistence for advisory runs in a repo-local SQLite
// database.
type Store struct {
	conn   *sql.DB
	logger *slog.Logger
	dbPath string
}

// OpenStore opens or creates the history database at the given path.
func OpenStore(dbPath string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, errors.New(errors.HistoryUnavailable, "Failed to create state directory", err,
			errors.GetSuggestedFixes(errors.HistoryUnavailable))
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.New(errors.HistoryUnavailable, "Failed to open history database", err,
			errors.GetSuggestedFixes(errors.HistoryUnavailable))
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, errors.New(errors.HistoryUnavailable, "Failed to set pragma", err, nil)
		}
	}

	store := &Store{
		conn:   conn,
		logger: logger,
		dbPath: dbPath,
	}

	if err := store.initializeSchema(); err != nil {
		_ = conn.Close()
		return nil, errors.New(errors.HistoryUnavailable, "Failed to initialize history schema", err, nil)
	}

	return store, nil
}

// initializeSchema creates the runs table.
func (s *Store) initializeSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			from_rev TEXT NOT NULL,
			to_rev TEXT NOT NULL,
			changed_files INTEGER NOT NULL,
			fingerprint TEXT NOT NULL,
			recommendation TEXT NOT NULL,
			tooling TEXT NOT NULL,
			outcome TEXT NOT NULL,
			exit_status INTEGER NOT NULL DEFAULT 0,
			auto_executed INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_fingerprint ON runs(fingerprint);

		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);
		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`

	_, err := s.conn.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// RecordRun inserts an advisory run.
func (s *Store) RecordRun(run *Run) error {
	rec, err := marshalRecommendation(run.Recommendation)
	if err != nil {
		return fmt.Errorf("failed to encode recommendation: %w", err)
	}

	query := `
		INSERT INTO runs (id, created_at, from_rev, to_rev, changed_files, fingerprint, recommendation, tooling, outcome, exit_status, auto_executed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.conn.Exec(query,
		run.ID,
		run.CreatedAt.Format(time.RFC3339),
		run.FromRev,
		run.ToRev,
		run.ChangedFiles,
		run.Fingerprint,
		rec,
		run.Tooling,
		run.Outcome,
		run.ExitStatus,
		boolToInt(run.AutoExecuted),
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	s.logger.Debug("Recorded advisory run", "runId", run.ID, "outcome", run.Outcome)
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, created_at, from_rev, to_rev, changed_files, fingerprint, recommendation, tooling, outcome, exit_status, auto_executed
		FROM runs ORDER BY created_at DESC, id LIMIT ?
	`

	rows, err := s.conn.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// AllRuns returns every recorded run, newest first, for export.
func (s *Store) AllRuns() ([]*Run, error) {
	return s.ListRuns(1 << 30)
}

// LastRunForFingerprint returns the most recent run with the given
// changeset fingerprint, or nil when the changeset has not been seen.
func (s *Store) LastRunForFingerprint(fingerprint string) (*Run, error) {
	query := `
		SELECT id, created_at, from_rev, to_rev, changed_files, fingerprint, recommendation, tooling, outcome, exit_status, auto_executed
		FROM runs WHERE fingerprint = ? ORDER BY created_at DESC, id LIMIT 1
	`

	run, err := scanRun(s.conn.QueryRow(query, fingerprint))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}
	return run, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row scanner) (*Run, error) {
	var run Run
	var createdAt, recommendation string
	var autoExecuted int

	err := row.Scan(
		&run.ID,
		&createdAt,
		&run.FromRev,
		&run.ToRev,
		&run.ChangedFiles,
		&run.Fingerprint,
		&recommendation,
		&run.Tooling,
		&run.Outcome,
		&run.ExitStatus,
		&autoExecuted,
	)
	if err != nil {
		return nil, err
	}

	run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse run timestamp: %w", err)
	}

	run.Recommendation, err = unmarshalRecommendation(recommendation)
	if err != nil {
		return nil, fmt.Errorf("failed to decode recommendation: %w", err)
	}

	run.AutoExecuted = autoExecuted != 0
	return &run, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

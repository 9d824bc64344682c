// Package history keeps a SQLite log of every poll the watcher performs.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aleister1102/urlwatch/internal/common"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Entry represents a record in the poll_history table.
type Entry struct {
	ID           int64
	Target       string
	CheckedAt    time.Time
	Outcome      string
	StatusCode   int
	ETag         string
	LastModified string
	Detail       string
	Notified     bool
}

// Store wraps the SQL database connection holding poll history.
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewStore opens (creating if needed) the database at dataSourceName and ensures the schema.
func NewStore(dataSourceName string, logger zerolog.Logger) (*Store, error) {
	logger = logger.With().Str("component", "HistoryStore").Logger()
	if dataSourceName == "" {
		return nil, common.NewValidationError("sqlite_path", dataSourceName, "path cannot be empty")
	}
	logger.Info().Str("db_path", dataSourceName).Msg("Initializing history database connection")

	dbDir := filepath.Dir(dataSourceName)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error().Err(err).Str("directory", dbDir).Msg("Failed to create history database directory")
		return nil, fmt.Errorf("failed to create history database directory %s: %w", dbDir, err)
	}

	dbInstance, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		logger.Error().Err(err).Str("db_path", dataSourceName).Msg("Failed to open history database")
		return nil, fmt.Errorf("sql.Open failed for %s: %w", dataSourceName, err)
	}
	// A single connection keeps writes serialized.
	dbInstance.SetMaxOpenConns(1)

	store := &Store{
		db:     dbInstance,
		logger: logger,
	}

	if err := store.InitSchema(context.Background()); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	logger.Info().Str("path", dataSourceName).Msg("History database initialized")
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// InitSchema creates the poll_history table if it doesn't already exist.
func (s *Store) InitSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS poll_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		target TEXT NOT NULL,
		checked_at INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		status_code INTEGER NOT NULL DEFAULT 0,
		etag TEXT NOT NULL DEFAULT '',
		last_modified TEXT NOT NULL DEFAULT '',
		detail TEXT NOT NULL DEFAULT '',
		notified INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_poll_history_target ON poll_history (target, checked_at);
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		s.logger.Error().Err(err).Msg("Failed to initialize schema")
		return err
	}
	s.logger.Debug().Msg("Schema initialized (poll_history table ensured)")
	return nil
}

// Record inserts an entry and returns its row ID.
func (s *Store) Record(ctx context.Context, entry Entry) (int64, error) {
	query := `INSERT INTO poll_history (target, checked_at, outcome, status_code, etag, last_modified, detail, notified) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := s.db.ExecContext(ctx, query,
		entry.Target,
		entry.CheckedAt.UnixMilli(),
		entry.Outcome,
		entry.StatusCode,
		entry.ETag,
		entry.LastModified,
		entry.Detail,
		entry.Notified,
	)
	if err != nil {
		s.logger.Error().Err(err).Str("target", entry.Target).Msg("Failed to record poll")
		return 0, fmt.Errorf("failed to insert poll record: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	s.logger.Debug().Int64("db_id", id).Str("outcome", entry.Outcome).Msg("Recorded poll in DB")
	return id, nil
}

// Recent returns up to limit entries for target, newest first.
func (s *Store) Recent(ctx context.Context, target string, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, common.NewValidationError("limit", limit, "must be positive")
	}
	query := `SELECT id, target, checked_at, outcome, status_code, etag, last_modified, detail, notified
		FROM poll_history WHERE target = ? ORDER BY checked_at DESC, id DESC LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, target, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query poll history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			checkedAt int64
		)
		if err := rows.Scan(&e.ID, &e.Target, &checkedAt, &e.Outcome, &e.StatusCode, &e.ETag, &e.LastModified, &e.Detail, &e.Notified); err != nil {
			return nil, fmt.Errorf("failed to scan poll history row: %w", err)
		}
		e.CheckedAt = time.UnixMilli(checkedAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate poll history: %w", err)
	}
	return entries, nil
}

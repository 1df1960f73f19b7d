package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // cgo driver "sqlite3"
	_ "modernc.org/sqlite"          // pure Go driver "sqlite"

	"turtlescript/console/pkg/journal"
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Driver is the database/sql driver name: "sqlite" or "sqlite3".
	// Default: "sqlite"
	Driver string

	// Path is the database file path.
	Path string

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration

	// WALMode enables Write-Ahead Logging.
	WALMode bool
}

// SQLiteStorage implements journal.Storage using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage opens (creating if needed) the database at cfg.Path and
// initializes the schema.
func NewSQLiteStorage(cfg SQLiteConfig, logger *slog.Logger) (*SQLiteStorage, error) {
	if cfg.Driver == "" {
		cfg.Driver = "sqlite"
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Path == "" {
		return nil, journal.NewStorageError(cfg.Driver, "open", errors.New("db path cannot be empty"))
	}

	db, err := sql.Open(cfg.Driver, cfg.Path)
	if err != nil {
		return nil, journal.NewStorageError(cfg.Driver, "open", err)
	}

	// SQLite only supports a single writer; one connection also keeps the
	// session pragmas below in effect for every statement.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &SQLiteStorage{
		db:     db,
		config: cfg,
		logger: logger.With("component", "journal.storage.sqlite"),
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	s.logger.Debug("SQLite journal initialized",
		"driver", cfg.Driver,
		"path", cfg.Path,
		"wal_mode", cfg.WALMode,
	)

	return s, nil
}

// initialize sets pragmas and creates the schema.
func (s *SQLiteStorage) initialize() error {
	backend := s.config.Driver

	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return journal.NewStorageError(backend, "enable_wal", err)
		}
	}

	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", s.config.BusyTimeout.Milliseconds())); err != nil {
		return journal.NewStorageError(backend, "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return journal.NewStorageError(backend, "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return journal.NewStorageError(backend, "insert_schema_version", err)
	}

	var version int
	if err := s.db.QueryRow(GetSchemaVersion).Scan(&version); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return journal.NewStorageError(backend, "get_schema_version", err)
	}
	if version != SchemaVersion {
		return journal.NewStorageError(backend, "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	return nil
}

// Store persists an entry.
func (s *SQLiteStorage) Store(ctx context.Context, entry *journal.Entry) error {
	query := `INSERT INTO journal (` + entryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		entry.ID, entry.SessionID,
		entry.Origin, nullString(entry.File), entry.Source, entry.SourceHash, entry.Truncated,
		entry.Status, nullString(entry.Error),
		entry.Nodes, entry.Functions, entry.Commands, entry.Diagnostics,
		nullString(entry.TraceID),
		entry.StartedAt.UnixNano(), int64(entry.Duration),
	)
	if err != nil {
		return journal.NewStorageError(s.config.Driver, "store", err)
	}
	return nil
}

// Query retrieves entries matching the query.
func (s *SQLiteStorage) Query(ctx context.Context, query *journal.Query) ([]*journal.Entry, error) {
	if query == nil {
		query = &journal.Query{}
	}

	where, args := buildWhereClause(query)

	sqlQuery := "SELECT " + entryColumns + " FROM journal" + where
	if query.Ascending {
		sqlQuery += " ORDER BY started_at ASC"
	} else {
		sqlQuery += " ORDER BY started_at DESC"
	}

	// SQLite requires a LIMIT before OFFSET; -1 means no limit.
	limit := -1
	if query.Limit > 0 {
		limit = query.Limit
	}
	sqlQuery += " LIMIT ? OFFSET ?"
	args = append(args, limit, query.Offset)

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, journal.NewStorageError(s.config.Driver, "query", err)
	}
	defer rows.Close()

	entries := []*journal.Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, journal.NewStorageError(s.config.Driver, "scan", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, journal.NewStorageError(s.config.Driver, "query", err)
	}

	return entries, nil
}

// Count returns the number of entries matching the query.
func (s *SQLiteStorage) Count(ctx context.Context, query *journal.Query) (int64, error) {
	if query == nil {
		query = &journal.Query{}
	}
	where, args := buildWhereClause(query)

	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM journal"+where, args...).Scan(&count); err != nil {
		return 0, journal.NewStorageError(s.config.Driver, "count", err)
	}
	return count, nil
}

// Delete removes entries matching the query.
func (s *SQLiteStorage) Delete(ctx context.Context, query *journal.Query) (int64, error) {
	if query == nil {
		query = &journal.Query{}
	}
	where, args := buildWhereClause(query)

	result, err := s.db.ExecContext(ctx, "DELETE FROM journal"+where, args...)
	if err != nil {
		return 0, journal.NewStorageError(s.config.Driver, "delete", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, journal.NewStorageError(s.config.Driver, "delete", err)
	}
	return count, nil
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return journal.NewStorageError(s.config.Driver, "close", err)
	}
	s.logger.Debug("SQLite journal closed")
	return nil
}

// buildWhereClause builds a WHERE clause (with leading " WHERE ") from the
// query filters, or an empty string when nothing filters.
func buildWhereClause(query *journal.Query) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if query.StartTime != nil {
		conditions = append(conditions, "started_at >= ?")
		args = append(args, query.StartTime.UnixNano())
	}
	if query.EndTime != nil {
		conditions = append(conditions, "started_at <= ?")
		args = append(args, query.EndTime.UnixNano())
	}
	if query.SessionID != "" {
		conditions = append(conditions, "session_id = ?")
		args = append(args, query.SessionID)
	}
	if query.Origin != "" {
		conditions = append(conditions, "origin = ?")
		args = append(args, query.Origin)
	}
	if query.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, query.Status)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// scanEntry scans a row selected with entryColumns.
func scanEntry(rows *sql.Rows) (*journal.Entry, error) {
	var entry journal.Entry
	var file, errMsg, traceID sql.NullString
	var startedAt, duration int64

	err := rows.Scan(
		&entry.ID, &entry.SessionID,
		&entry.Origin, &file, &entry.Source, &entry.SourceHash, &entry.Truncated,
		&entry.Status, &errMsg,
		&entry.Nodes, &entry.Functions, &entry.Commands, &entry.Diagnostics,
		&traceID,
		&startedAt, &duration,
	)
	if err != nil {
		return nil, err
	}

	entry.File = file.String
	entry.Error = errMsg.String
	entry.TraceID = traceID.String
	entry.StartedAt = time.Unix(0, startedAt)
	entry.Duration = time.Duration(duration)

	return &entry, nil
}

// nullString converts empty strings to NULL.
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

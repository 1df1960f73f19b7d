package storage

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema creates the journal tables. Times are stored as Unix nanoseconds so
// both SQLite drivers read them back identically.
const Schema = `
CREATE TABLE IF NOT EXISTS journal (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL,

    -- Input
    origin TEXT NOT NULL,
    file TEXT,
    source TEXT NOT NULL,
    source_hash TEXT NOT NULL,
    truncated BOOLEAN NOT NULL DEFAULT 0,

    -- Outcome
    status TEXT NOT NULL,
    error TEXT,
    nodes INTEGER NOT NULL DEFAULT 0,
    functions INTEGER NOT NULL DEFAULT 0,
    commands INTEGER NOT NULL DEFAULT 0,
    diagnostics INTEGER NOT NULL DEFAULT 0,
    trace_id TEXT,

    -- Timing
    started_at INTEGER NOT NULL,
    duration_ns INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_journal_started_at ON journal(started_at);
CREATE INDEX IF NOT EXISTS idx_journal_session_id ON journal(session_id);
CREATE INDEX IF NOT EXISTS idx_journal_status ON journal(status);
`

// InsertSchemaVersion records the schema version.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion retrieves the current schema version.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`

const entryColumns = `id, session_id, origin, file, source, source_hash, truncated,
	status, error, nodes, functions, commands, diagnostics, trace_id,
	started_at, duration_ns`

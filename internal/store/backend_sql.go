package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"hbnb/internal/logging"
)

// sqlDialect carries the statements that differ between drivers.
type sqlDialect struct {
	driver string
	schema string
	read   string
	upsert string
}

var (
	sqliteDialect = sqlDialect{
		driver: "sqlite",
		schema: `CREATE TABLE IF NOT EXISTS documents (
			name TEXT PRIMARY KEY,
			payload BLOB NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		read: `SELECT payload FROM documents WHERE name = ?`,
		upsert: `INSERT INTO documents (name, payload, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
	}
	postgresDialect = sqlDialect{
		driver: "pgx",
		schema: `CREATE TABLE IF NOT EXISTS documents (
			name TEXT PRIMARY KEY,
			payload BYTEA NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		read: `SELECT payload FROM documents WHERE name = $1`,
		upsert: `INSERT INTO documents (name, payload, updated_at) VALUES ($1, $2, $3)
			ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
	}
)

// SQLBackend stores the document as one row of the documents table.
type SQLBackend struct {
	db       *sql.DB
	dialect  sqlDialect
	name     string
	document string
	timeout  time.Duration
}

// OpenSQLite opens (creating if needed) the sqlite database at path.
// ":memory:" gives a private in-memory database.
func OpenSQLite(path, document string, timeout time.Duration) (*SQLBackend, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open(sqliteDialect.driver, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.StorageDebug("Failed to set sqlite busy_timeout: %v", err)
	}

	return newSQLBackend(db, sqliteDialect, "sqlite:"+path, document, timeout)
}

// OpenPostgres connects through the pgx stdlib driver.
func OpenPostgres(dsn, document string, timeout time.Duration) (*SQLBackend, error) {
	db, err := sql.Open(postgresDialect.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	return newSQLBackend(db, postgresDialect, "postgres", document, timeout)
}

func newSQLBackend(db *sql.DB, dialect sqlDialect, name, document string, timeout time.Duration) (*SQLBackend, error) {
	b := &SQLBackend{db: db, dialect: dialect, name: name, document: document, timeout: timeout}

	ctx, cancel := b.context()
	defer cancel()
	if _, err := db.ExecContext(ctx, dialect.schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	logging.StorageDebug("%s schema ready", name)
	return b, nil
}

func (b *SQLBackend) context() (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), b.timeout)
}

func (b *SQLBackend) Name() string { return b.name }

func (b *SQLBackend) Read() ([]byte, error) {
	ctx, cancel := b.context()
	defer cancel()

	var payload []byte
	err := b.db.QueryRowContext(ctx, b.dialect.read, b.document).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", b.document, err)
	}
	return payload, nil
}

func (b *SQLBackend) Write(data []byte) error {
	ctx, cancel := b.context()
	defer cancel()

	stamp := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := b.db.ExecContext(ctx, b.dialect.upsert, b.document, data, stamp); err != nil {
		return fmt.Errorf("failed to write document %s: %w", b.document, err)
	}
	return nil
}

func (b *SQLBackend) Close() error {
	return b.db.Close()
}

// ABOUTME: SQLite database connection and lifecycle management.
// ABOUTME: Uses modernc.org/sqlite (pure Go, no CGO required).
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database connection and implements Repository.
type DB struct {
	db        *sql.DB
	dbPath    string
	notifier  *notifier
	recreated bool
}

// Options controls how the store is opened.
type Options struct {
	// RecreateOnMismatch destructively recreates the store when the
	// on-disk schema version has no migration path to the current
	// version. Without it, opening such a store fails with
	// ErrNoMigrationPath. Recreation is reported via Recreated so the
	// caller can tell the user about the data loss.
	RecreateOnMismatch bool
}

// Open opens or creates a SQLite database at the given path with the
// default options (fail loudly on an unbridgeable schema version).
func Open(dbPath string) (*DB, error) {
	return OpenWithOptions(dbPath, Options{})
}

// OpenWithOptions opens or creates a SQLite database at the given path.
func OpenWithOptions(dbPath string, opts Options) (*DB, error) {
	d, err := open(dbPath)
	if err != nil {
		return nil, err
	}

	if err := d.migrate(); err != nil {
		_ = d.db.Close()
		if !errors.Is(err, ErrNoMigrationPath) || !opts.RecreateOnMismatch {
			return nil, err
		}

		// Destructive fallback: drop the incompatible store and start
		// over. Never silent; Recreated reports it to the caller.
		if err := removeDatabase(dbPath); err != nil {
			return nil, fmt.Errorf("recreate database: %w", err)
		}
		d, err = open(dbPath)
		if err != nil {
			return nil, err
		}
		if err := d.migrate(); err != nil {
			_ = d.db.Close()
			return nil, err
		}
		d.recreated = true
	}

	return d, nil
}

func open(dbPath string) (*DB, error) {
	// Ensure parent directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite supports a single writer; one connection avoids
	// SQLITE_BUSY between concurrent store operations.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	d := &DB{db: db, dbPath: dbPath, notifier: newNotifier()}

	if err := d.configurePragmas(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure pragmas: %w", err)
	}

	return d, nil
}

// OpenDefault opens the database at the default XDG data path.
func OpenDefault() (*DB, error) {
	return Open(DefaultDBPath())
}

// DataDir returns the default data directory following XDG spec.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "liftlog")
}

// DefaultDBPath returns the default database path following XDG spec.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), "liftlog.db")
}

// Recreated reports whether opening the store destroyed an incompatible
// prior database. The caller must surface this to the user.
func (d *DB) Recreated() bool {
	return d.recreated
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// configurePragmas sets up SQLite for safe concurrent reads and enforced
// foreign keys. Cascade and restrict rules in the schema depend on
// foreign_keys being ON for every connection.
func (d *DB) configurePragmas() error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := d.db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return nil
}

// removeDatabase deletes the database file and its WAL sidecars.
func removeDatabase(dbPath string) error {
	for _, p := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

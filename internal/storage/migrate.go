// ABOUTME: Sequential schema migrator driven by PRAGMA user_version.
// ABOUTME: Applies each missing step in its own transaction, never dropping rows.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrNoMigrationPath reports an on-disk schema version newer than this
// build understands. Opening such a store fails unless the caller opted
// into destructive recreation.
var ErrNoMigrationPath = errors.New("no migration path to current schema version")

// migrate brings the store from whatever version is on disk up to
// currentSchemaVersion, one step at a time. A fresh database starts at
// version 0 and receives every step in order.
func (d *DB) migrate() error {
	version, err := schemaVersion(d.db)
	if err != nil {
		return err
	}

	if version > currentSchemaVersion {
		return fmt.Errorf("database is at schema version %d, newest known is %d: %w",
			version, currentSchemaVersion, ErrNoMigrationPath)
	}

	for v := version; v < currentSchemaVersion; v++ {
		if err := d.applyStep(v + 1); err != nil {
			return fmt.Errorf("migrate to schema version %d: %w", v+1, err)
		}
	}

	return nil
}

// applyStep runs one migration and bumps user_version in the same
// transaction, so a failed step leaves the prior version intact.
func (d *DB) applyStep(target int) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(migrations[target-1]); err != nil {
		return err
	}

	// PRAGMA does not accept bound parameters.
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", target)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return tx.Commit()
}

// schemaVersion reads the on-disk schema version.
func schemaVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("get user_version: %w", err)
	}
	return version, nil
}

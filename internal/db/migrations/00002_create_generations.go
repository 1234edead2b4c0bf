package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateGenerations, downCreateGenerations)
}

// generationsDDL holds one row per provider call. API keys are never stored.
func generationsDDL() string {
	switch dialect {
	case "postgres":
		return `CREATE TABLE IF NOT EXISTS generations (
    id          TEXT PRIMARY KEY,
    provider    TEXT NOT NULL,
    model       TEXT NOT NULL DEFAULT '',
    topic       TEXT NOT NULL,
    keyword     TEXT NOT NULL DEFAULT '',
    prompt      TEXT NOT NULL,
    body        TEXT NOT NULL DEFAULT '',
    status      TEXT NOT NULL,
    error       TEXT NOT NULL DEFAULT '',
    duration_ms BIGINT NOT NULL DEFAULT 0,
    created_at  TIMESTAMPTZ NOT NULL
)`
	case "mysql":
		return `CREATE TABLE IF NOT EXISTS generations (
    id          CHAR(36) PRIMARY KEY,
    provider    VARCHAR(64) NOT NULL,
    model       VARCHAR(255) NOT NULL DEFAULT '',
    topic       TEXT NOT NULL,
    keyword     TEXT NOT NULL,
    prompt      MEDIUMTEXT NOT NULL,
    body        MEDIUMTEXT NOT NULL,
    status      VARCHAR(16) NOT NULL,
    error       TEXT NOT NULL,
    duration_ms BIGINT NOT NULL DEFAULT 0,
    created_at  DATETIME(6) NOT NULL
)`
	default: // sqlite3
		return `CREATE TABLE IF NOT EXISTS generations (
    id          TEXT PRIMARY KEY,
    provider    TEXT NOT NULL,
    model       TEXT NOT NULL DEFAULT '',
    topic       TEXT NOT NULL,
    keyword     TEXT NOT NULL DEFAULT '',
    prompt      TEXT NOT NULL,
    body        TEXT NOT NULL DEFAULT '',
    status      TEXT NOT NULL,
    error       TEXT NOT NULL DEFAULT '',
    duration_ms INTEGER NOT NULL DEFAULT 0,
    created_at  DATETIME NOT NULL
)`
	}
}

func upCreateGenerations(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, generationsDDL()); err != nil {
		return fmt.Errorf("create generations table: %w", err)
	}
	idx := `CREATE INDEX IF NOT EXISTS generations_created_at_idx ON generations (created_at)`
	if dialect == "mysql" {
		idx = `CREATE INDEX generations_created_at_idx ON generations (created_at)`
	}
	if _, err := tx.ExecContext(ctx, idx); err != nil {
		return fmt.Errorf("create generations created_at index: %w", err)
	}
	return nil
}

func downCreateGenerations(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS generations`)
	return err
}

package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateAPITokens, downCreateAPITokens)
}

func apiTokensDDL() string {
	switch dialect {
	case "postgres":
		return `CREATE TABLE IF NOT EXISTS api_tokens (
    id           TEXT PRIMARY KEY,
    name         TEXT NOT NULL,
    token_hash   TEXT NOT NULL UNIQUE,
    last_used_at TIMESTAMPTZ NULL,
    expires_at   TIMESTAMPTZ NULL,
    created_at   TIMESTAMPTZ NOT NULL,
    revoked_at   TIMESTAMPTZ NULL
)`
	case "mysql":
		return `CREATE TABLE IF NOT EXISTS api_tokens (
    id           CHAR(36) PRIMARY KEY,
    name         VARCHAR(255) NOT NULL,
    token_hash   CHAR(64) NOT NULL UNIQUE,
    last_used_at DATETIME(6) NULL,
    expires_at   DATETIME(6) NULL,
    created_at   DATETIME(6) NOT NULL,
    revoked_at   DATETIME(6) NULL
)`
	default: // sqlite3
		return `CREATE TABLE IF NOT EXISTS api_tokens (
    id           TEXT PRIMARY KEY,
    name         TEXT NOT NULL,
    token_hash   TEXT NOT NULL UNIQUE,
    last_used_at DATETIME NULL,
    expires_at   DATETIME NULL,
    created_at   DATETIME NOT NULL,
    revoked_at   DATETIME NULL
)`
	}
}

func upCreateAPITokens(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, apiTokensDDL()); err != nil {
		return fmt.Errorf("create api_tokens table: %w", err)
	}
	return nil
}

func downCreateAPITokens(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS api_tokens`)
	return err
}

package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/mitrakurir/internal/client/migrations"
	"github.com/dmitrijs2005/mitrakurir/internal/common"
	"github.com/dmitrijs2005/mitrakurir/internal/cryptox"
)

const saltKeyName = "credential_salt"

// RunMigrations applies the embedded goose migrations. It is idempotent.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// InitDatabase opens the SQLite database at dsn with a single connection and
// migrates it.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// LoadOrCreateSalt returns the per-install salt used to derive the credential
// sealing key, generating and storing it on first use.
func LoadOrCreateSalt(ctx context.Context, db *sql.DB) ([]byte, error) {
	var salt []byte
	err := db.QueryRowContext(ctx, `SELECT value FROM keyring WHERE name = ?`, saltKeyName).Scan(&salt)
	if err == nil {
		return salt, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to read salt: %w", err)
	}

	salt = common.GenerateRandByteArray(cryptox.SaltSize)
	if _, err := db.ExecContext(ctx, `INSERT OR IGNORE INTO keyring (name, value) VALUES (?, ?)`, saltKeyName, salt); err != nil {
		return nil, fmt.Errorf("failed to store salt: %w", err)
	}

	if err := db.QueryRowContext(ctx, `SELECT value FROM keyring WHERE name = ?`, saltKeyName).Scan(&salt); err != nil {
		return nil, fmt.Errorf("failed to read salt: %w", err)
	}
	return salt, nil
}

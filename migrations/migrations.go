package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

//go:embed *.sql
var files embed.FS

const versionTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version    VARCHAR(100) PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Versions returns the embedded migration versions in apply order.
func Versions() ([]string, error) {
	names, err := fs.Glob(files, "*.up.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.TrimSuffix(n, ".up.sql")
	}
	return out, nil
}

// Up applies every migration not yet recorded in schema_migrations. Each
// migration runs in its own transaction. It returns the versions applied.
func Up(ctx context.Context, db *sqlx.DB) ([]string, error) {
	if _, err := db.ExecContext(ctx, versionTable); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	var done []string
	if err := db.SelectContext(ctx, &done, "SELECT version FROM schema_migrations"); err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	applied := make(map[string]bool, len(done))
	for _, v := range done {
		applied[v] = true
	}

	versions, err := Versions()
	if err != nil {
		return nil, err
	}

	var ran []string
	for _, v := range versions {
		if applied[v] {
			continue
		}
		body, err := files.ReadFile(v + ".up.sql")
		if err != nil {
			return ran, err
		}
		if err := apply(ctx, db, string(body), func(tx *sqlx.Tx) error {
			_, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", v)
			return err
		}); err != nil {
			return ran, fmt.Errorf("migration %s: %w", v, err)
		}
		ran = append(ran, v)
	}
	return ran, nil
}

// Down reverts the most recently applied migration, if any.
func Down(ctx context.Context, db *sqlx.DB) (string, error) {
	var version string
	err := db.GetContext(ctx, &version, "SELECT version FROM schema_migrations ORDER BY version DESC LIMIT 1")
	if err != nil {
		return "", fmt.Errorf("read schema_migrations: %w", err)
	}

	body, err := files.ReadFile(version + ".down.sql")
	if err != nil {
		return "", err
	}
	if err := apply(ctx, db, string(body), func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, "DELETE FROM schema_migrations WHERE version = $1", version)
		return err
	}); err != nil {
		return "", fmt.Errorf("revert %s: %w", version, err)
	}
	return version, nil
}

func apply(ctx context.Context, db *sqlx.DB, body string, record func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, body); err != nil {
		return err
	}
	if err := record(tx); err != nil {
		return err
	}
	return tx.Commit()
}

package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/retail-inventory/pkg/logger"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migration archivo SQL embebido, identificado por su nombre (001_init.sql).
type Migration struct {
	Name string
	SQL  string
}

// Migrations devuelve las migraciones embebidas en orden de nombre.
func Migrations() ([]Migration, error) {
	entries, err := fs.Glob(migrationFiles, "migrations/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(entries)
	out := make([]Migration, 0, len(entries))
	for _, path := range entries {
		b, err := migrationFiles.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("leer %s: %w", path, err)
		}
		out = append(out, Migration{Name: strings.TrimPrefix(path, "migrations/"), SQL: string(b)})
	}
	return out, nil
}

// Migrate aplica las migraciones pendientes, cada una en su propia transacción,
// y las registra en schema_migrations.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
	if log == nil {
		log = logger.Nop()
	}
	if _, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name       TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		return dbError("create schema_migrations", err)
	}
	migrations, err := Migrations()
	if err != nil {
		return err
	}
	for _, m := range migrations {
		var applied bool
		if err := pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)`, m.Name,
		).Scan(&applied); err != nil {
			return dbError("check migration", err)
		}
		if applied {
			log.Debug().Str("migration", m.Name).Msg("migración ya aplicada")
			continue
		}
		if err := applyMigration(ctx, pool, m); err != nil {
			log.Error().Err(err).Str("migration", m.Name).Msg("migración fallida")
			return err
		}
		log.Info().Str("migration", m.Name).Msg("migración aplicada")
	}
	return nil
}

func applyMigration(ctx context.Context, pool *pgxpool.Pool, m Migration) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return dbError("begin migration", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, m.SQL); err != nil {
		return dbError("apply "+m.Name, err)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, m.Name); err != nil {
		return dbError("record "+m.Name, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return dbError("commit "+m.Name, err)
	}
	return nil
}

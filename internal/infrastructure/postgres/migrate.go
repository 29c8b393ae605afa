package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lztmeat/inventario-api/pkg/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type migration struct {
	version int
	name    string
	sql     string
}

// Migrate aplica en orden las migraciones embebidas pendientes (NNN_descripcion.sql).
// Cada migración corre en su propia transacción junto con su registro en schema_migrations.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
	if _, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INT PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		return fmt.Errorf("crear schema_migrations: %w", err)
	}

	migs, err := loadMigrations()
	if err != nil {
		return err
	}

	var current int
	if err := pool.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("leer versión del esquema: %w", err)
	}

	for _, m := range migs {
		if m.version <= current {
			continue
		}
		tx, err := pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("migración %03d: %w", m.version, err)
		}
		// Sin argumentos pgx usa el protocolo simple y acepta varias sentencias.
		if _, err := tx.Exec(ctx, m.sql); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("migración %03d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, m.version, m.name,
		); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("registrar migración %03d: %w", m.version, err)
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("migración %03d: %w", m.version, err)
		}
		if log != nil {
			log.Info().Int("version", m.version).Str("name", m.name).Msg("migración aplicada")
		}
	}
	return nil
}

func loadMigrations() ([]migration, error) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("leer migraciones: %w", err)
	}
	var out []migration
	for _, e := range entries {
		m, ok := parseMigrationName(e.Name())
		if e.IsDir() || !ok {
			continue
		}
		content, err := fs.ReadFile(migrationsFS, "migrations/"+e.Name())
		if err != nil {
			return nil, fmt.Errorf("leer %s: %w", e.Name(), err)
		}
		m.sql = string(content)
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].version < out[j].version })
	return out, nil
}

// parseMigrationName separa "001_init.sql" en versión 1 y nombre "init".
func parseMigrationName(file string) (migration, bool) {
	base, ok := strings.CutSuffix(file, ".sql")
	if !ok {
		return migration{}, false
	}
	num, name, ok := strings.Cut(base, "_")
	if !ok {
		return migration{}, false
	}
	v, err := strconv.Atoi(num)
	if err != nil || v <= 0 {
		return migration{}, false
	}
	return migration{version: v, name: name}, true
}

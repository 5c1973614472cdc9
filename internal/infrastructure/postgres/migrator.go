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

	"github.com/jhoicas/fieldservice-api/pkg/logger"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrator aplica los scripts embebidos en migrations/ en orden de versión.
// La versión aplicada se registra en schema_migrations.
type Migrator struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewMigrator construye el migrador.
func NewMigrator(pool *pgxpool.Pool, log *logger.Logger) *Migrator {
	return &Migrator{pool: pool, log: log}
}

// Up aplica las migraciones pendientes y devuelve los nombres de las aplicadas.
func (m *Migrator) Up(ctx context.Context) ([]string, error) {
	if _, err := m.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version     INTEGER PRIMARY KEY,
			name        TEXT NOT NULL,
			applied_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		return nil, wrapErr("create schema_migrations", err)
	}

	scripts, err := migrationScripts(migrationFiles)
	if err != nil {
		return nil, err
	}
	var current int
	if err := m.pool.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return nil, wrapErr("read schema version", err)
	}

	var applied []string
	for _, s := range scripts {
		if s.version <= current {
			continue
		}
		m.log.Info().Str("migration", s.name).Msg("aplicando migración")
		body, err := migrationFiles.ReadFile("migrations/" + s.name)
		if err != nil {
			return applied, fmt.Errorf("leer %s: %w", s.name, err)
		}
		if err := m.apply(ctx, s, string(body)); err != nil {
			return applied, err
		}
		applied = append(applied, s.name)
	}
	return applied, nil
}

func (m *Migrator) apply(ctx context.Context, s script, body string) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return wrapErr("begin migration", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if _, err := tx.Exec(ctx, body); err != nil {
		return wrapErr("migration "+s.name, err)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, s.version, s.name); err != nil {
		return wrapErr("record migration", err)
	}
	return wrapErr("commit migration", tx.Commit(ctx))
}

type script struct {
	version int
	name    string
}

// migrationScripts lista los .sql ordenados por versión ("0002_nombre.sql" → 2).
func migrationScripts(source fs.FS) ([]script, error) {
	entries, err := fs.ReadDir(source, "migrations")
	if err != nil {
		return nil, fmt.Errorf("leer migraciones: %w", err)
	}
	var list []script
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		v, err := scriptVersion(e.Name())
		if err != nil {
			return nil, err
		}
		list = append(list, script{version: v, name: e.Name()})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].version < list[j].version })
	return list, nil
}

func scriptVersion(filename string) (int, error) {
	v, err := strconv.Atoi(strings.SplitN(filename, "_", 2)[0])
	if err != nil {
		return 0, fmt.Errorf("versión inválida en %s: %w", filename, err)
	}
	return v, nil
}

package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

const (
	migrationsDir = "migrations"

	schemaTableExistsQuery = `SELECT COUNT(*) FROM user_tables WHERE table_name = 'SCHEMA_MIGRATIONS'`
	createSchemaTable      = `CREATE TABLE schema_migrations (version NUMBER(19) PRIMARY KEY, applied_at TIMESTAMP DEFAULT SYSTIMESTAMP NOT NULL)`
	appliedVersionsQuery   = `SELECT version FROM schema_migrations ORDER BY version`
	recordVersionStmt      = `INSERT INTO schema_migrations (version) VALUES (:1)`
	deleteVersionStmt      = `DELETE FROM schema_migrations WHERE version = :1`
)

// Migrator applies versioned "<version>_<name>.up.sql" / ".down.sql" files
// read through a golang-migrate source driver. Applied versions are tracked
// in schema_migrations. Oracle runs one statement per call, so files are
// split on ";".
type Migrator struct {
	db   *sql.DB
	fsys fs.FS
	dir  string
	log  *zap.Logger
}

// NewMigrator creates a Migrator reading migrations from dir inside fsys.
func NewMigrator(db *sql.DB, fsys fs.FS, dir string, log *zap.Logger) *Migrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Migrator{db: db, fsys: fsys, dir: dir, log: log}
}

// RunMigrations applies every embedded migration that is not applied yet.
func RunMigrations(ctx context.Context, db *sql.DB, log *zap.Logger) error {
	_, err := NewMigrator(db, migrationFS, migrationsDir, log).Up(ctx)
	return err
}

// RollbackLast reverts the most recently applied embedded migration.
func RollbackLast(ctx context.Context, db *sql.DB, log *zap.Logger) error {
	return NewMigrator(db, migrationFS, migrationsDir, log).Down(ctx)
}

// Up applies pending migrations in version order and returns how many ran.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	src, err := iofs.New(m.fsys, m.dir)
	if err != nil {
		return 0, fmt.Errorf("could not open migration source: %w", err)
	}
	defer src.Close()

	if err := m.ensureSchemaTable(ctx); err != nil {
		return 0, err
	}
	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return 0, err
	}
	done := make(map[uint]bool, len(applied))
	for _, v := range applied {
		done[v] = true
	}

	count := 0
	version, err := src.First()
	for err == nil {
		if !done[version] {
			if err := m.apply(ctx, src, version, true); err != nil {
				return count, err
			}
			count++
		}
		version, err = src.Next(version)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return count, fmt.Errorf("could not list migrations: %w", err)
	}

	m.log.Info("Migrations completed", zap.Int("applied", count))
	return count, nil
}

// Down reverts the most recently applied migration. It is a no-op when
// nothing is applied.
func (m *Migrator) Down(ctx context.Context) error {
	src, err := iofs.New(m.fsys, m.dir)
	if err != nil {
		return fmt.Errorf("could not open migration source: %w", err)
	}
	defer src.Close()

	if err := m.ensureSchemaTable(ctx); err != nil {
		return err
	}
	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		m.log.Info("No migrations to revert")
		return nil
	}
	return m.apply(ctx, src, applied[len(applied)-1], false)
}

func (m *Migrator) ensureSchemaTable(ctx context.Context) error {
	var n int
	if err := m.db.QueryRowContext(ctx, schemaTableExistsQuery).Scan(&n); err != nil {
		return fmt.Errorf("could not check schema_migrations: %w", err)
	}
	if n > 0 {
		return nil
	}
	if _, err := m.db.ExecContext(ctx, createSchemaTable); err != nil {
		return fmt.Errorf("could not create schema_migrations: %w", err)
	}
	return nil
}

func (m *Migrator) appliedVersions(ctx context.Context) ([]uint, error) {
	rows, err := m.db.QueryContext(ctx, appliedVersionsQuery)
	if err != nil {
		return nil, fmt.Errorf("could not read schema_migrations: %w", err)
	}
	defer rows.Close()

	var versions []uint
	for rows.Next() {
		var v uint
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("could not scan migration version: %w", err)
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Slice(versions, func(i, j int) bool { return versions[i] < versions[j] })
	return versions, nil
}

func (m *Migrator) apply(ctx context.Context, src source.Driver, version uint, up bool) error {
	var (
		r          io.ReadCloser
		identifier string
		err        error
	)
	if up {
		r, identifier, err = src.ReadUp(version)
	} else {
		r, identifier, err = src.ReadDown(version)
	}
	if err != nil {
		return fmt.Errorf("could not read migration %d: %w", version, err)
	}
	content, err := io.ReadAll(r)
	r.Close()
	if err != nil {
		return fmt.Errorf("could not read migration %d: %w", version, err)
	}

	for _, stmt := range SplitStatements(string(content)) {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("could not execute migration %d_%s: %w", version, identifier, err)
		}
	}

	if up {
		_, err = m.db.ExecContext(ctx, recordVersionStmt, int64(version))
	} else {
		_, err = m.db.ExecContext(ctx, deleteVersionStmt, int64(version))
	}
	if err != nil {
		return fmt.Errorf("could not record migration %d: %w", version, err)
	}

	m.log.Info("Executed migration",
		zap.Uint("version", version),
		zap.String("name", identifier),
		zap.Bool("up", up),
	)
	return nil
}

// SplitStatements splits a migration file into single statements, dropping
// "--" comment lines and empty statements.
func SplitStatements(content string) []string {
	var cleaned strings.Builder
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		cleaned.WriteString(line)
		cleaned.WriteByte('\n')
	}

	var stmts []string
	for _, part := range strings.Split(cleaned.String(), ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

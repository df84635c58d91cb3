package application

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
	"github.com/sirupsen/logrus"
)

var ErrNoDatabase = errors.New("migrations: no database configured")

type MigrationStatus struct {
	Module  string
	Version int64
	Path    string
	Applied bool
}

type schema struct {
	module string
	fsys   fs.FS
}

type migrationManager struct {
	pool    *pgxpool.Pool
	logger  *logrus.Logger
	schemas []schema
}

func NewMigrationManager(pool *pgxpool.Pool, logger *logrus.Logger) MigrationManager {
	return &migrationManager{pool: pool, logger: logger}
}

func (m *migrationManager) RegisterSchema(module string, fsys fs.FS) {
	m.schemas = append(m.schemas, schema{module: module, fsys: fsys})
}

func versionTable(module string) string {
	return fmt.Sprintf("goose_%s_version", module)
}

// providers opens one goose provider per module over a database/sql handle
// borrowed from the pool. The caller closes db.
func (m *migrationManager) providers() (*sql.DB, []*goose.Provider, error) {
	if m.pool == nil {
		return nil, nil, ErrNoDatabase
	}
	db := stdlib.OpenDBFromPool(m.pool)
	providers := make([]*goose.Provider, 0, len(m.schemas))
	for _, s := range m.schemas {
		store, err := database.NewStore(database.DialectPostgres, versionTable(s.module))
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		p, err := goose.NewProvider("", db, s.fsys, goose.WithStore(store))
		if err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migrations for %s: %w", s.module, err)
		}
		providers = append(providers, p)
	}
	return db, providers, nil
}

func (m *migrationManager) Run(ctx context.Context) error {
	db, providers, err := m.providers()
	if err != nil {
		return err
	}
	defer db.Close()

	for i, p := range providers {
		results, err := p.Up(ctx)
		if err != nil {
			return fmt.Errorf("migrate %s: %w", m.schemas[i].module, err)
		}
		for _, r := range results {
			m.logger.WithFields(logrus.Fields{
				"module":   m.schemas[i].module,
				"version":  r.Source.Version,
				"duration": r.Duration,
			}).Info("migration applied")
		}
	}
	return nil
}

// Rollback reverts the latest migration of the last registered module that has one applied.
func (m *migrationManager) Rollback(ctx context.Context) error {
	db, providers, err := m.providers()
	if err != nil {
		return err
	}
	defer db.Close()

	for i := len(providers) - 1; i >= 0; i-- {
		r, err := providers[i].Down(ctx)
		if errors.Is(err, goose.ErrNoNextVersion) {
			continue
		}
		if err != nil {
			return fmt.Errorf("rollback %s: %w", m.schemas[i].module, err)
		}
		m.logger.WithFields(logrus.Fields{
			"module":  m.schemas[i].module,
			"version": r.Source.Version,
		}).Info("migration rolled back")
		return nil
	}
	return nil
}

func (m *migrationManager) Status(ctx context.Context) ([]MigrationStatus, error) {
	db, providers, err := m.providers()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var out []MigrationStatus
	for i, p := range providers {
		statuses, err := p.Status(ctx)
		if err != nil {
			return nil, fmt.Errorf("status %s: %w", m.schemas[i].module, err)
		}
		for _, s := range statuses {
			out = append(out, MigrationStatus{
				Module:  m.schemas[i].module,
				Version: s.Source.Version,
				Path:    s.Source.Path,
				Applied: s.State == goose.StateApplied,
			})
		}
	}
	return out, nil
}

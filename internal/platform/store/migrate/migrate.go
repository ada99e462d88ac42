// Package migrate applies the embedded postgres schema with golang-migrate
package migrate

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"commentedit/internal/platform/logger"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
)

//go:embed sql/*.sql
var files embed.FS

// Migrator runs schema changes against one database
type Migrator struct {
	db  *sql.DB
	m   *migrate.Migrate
	log logger.Logger
}

// Open connects with lib/pq and prepares the embedded source
func Open(dsn string, log logger.Logger) (*Migrator, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("migrate: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: ping: %w", err)
	}

	src, err := Source()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: instance: %w", err)
	}
	return &Migrator{db: db, m: m, log: log.With().Str("component", "migrate").Logger()}, nil
}

// Source returns the embedded migration files as a golang-migrate source
func Source() (source.Driver, error) {
	d, err := iofs.New(files, "sql")
	if err != nil {
		return nil, fmt.Errorf("migrate: source: %w", err)
	}
	return d, nil
}

// Up applies every pending migration; no change is not an error
func (g *Migrator) Up() error {
	if err := g.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return g.report()
}

// Down rolls back n migrations
func (g *Migrator) Down(n int) error {
	if n <= 0 {
		n = 1
	}
	if err := g.m.Steps(-n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return g.report()
}

// To migrates to an exact version
func (g *Migrator) To(version uint) error {
	if err := g.m.Migrate(version); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate to %d: %w", version, err)
	}
	return g.report()
}

// Version returns the applied version; zero with no error means an empty schema
func (g *Migrator) Version() (uint, bool, error) {
	v, dirty, err := g.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

func (g *Migrator) report() error {
	v, dirty, err := g.Version()
	if err != nil {
		return err
	}
	g.log.Info().Uint("version", v).Bool("dirty", dirty).Msg("migrations applied")
	return nil
}

// Close releases the source and database handles
func (g *Migrator) Close() error {
	srcErr, dbErr := g.m.Close()
	return errors.Join(srcErr, dbErr, g.db.Close())
}

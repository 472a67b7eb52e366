package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

// ErrMigrate возвращается при ошибке применения миграций
var ErrMigrate = errors.New("migrations: failed to apply schema migrations")

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Up применяет все непримененные миграции схемы
func Up(db *sql.DB, log Logger) error {
	m, err := newMigrate(db)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w: up: %v", ErrMigrate, err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("%w: version: %v", ErrMigrate, err)
	}
	if dirty {
		log.Warn("Database schema is dirty at version %d", version)
	} else {
		log.Info("Database schema is up to date at version %d", version)
	}

	return nil
}

func newMigrate(db *sql.DB) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationsFS, "sql")
	if err != nil {
		return nil, fmt.Errorf("%w: load source: %v", ErrMigrate, err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("%w: create driver: %v", ErrMigrate, err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("%w: init: %v", ErrMigrate, err)
	}
	return m, nil
}

package repository

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations applies the embedded schema migrations. A dirty state left by a
// crashed run is forced back to the previous version and migrated again.
func RunMigrations(databaseURL string, logger *zap.Logger) error {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return fmt.Errorf("create migration instance: %w", err)
	}
	defer m.Close()

	err = m.Up()
	var dirty migrate.ErrDirty
	if errors.As(err, &dirty) {
		previous := dirty.Version - 1
		if previous < 0 {
			previous = 0
		}
		logger.Warn("database schema is dirty, forcing previous version",
			zap.Int("dirty_version", dirty.Version),
			zap.Int("forced_version", previous),
		)
		if ferr := m.Force(previous); ferr != nil {
			return fmt.Errorf("force clean migration version %d: %w", previous, ferr)
		}
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	if version, _, verr := m.Version(); verr == nil {
		logger.Info("database schema is up to date", zap.Uint("version", version))
	}
	return nil
}

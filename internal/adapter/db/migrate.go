package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"

	"taskplanner/internal/config"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrate applies the embedded migrations of the configured driver. It opens its own
// connection so closing the migrator leaves the application pool alone.
func Migrate(conf *config.Config) error {
	src, err := iofs.New(migrationsFS, "migrations/"+conf.DbDriver)
	if err != nil {
		return fmt.Errorf("load migrations for %q: %w", conf.DbDriver, err)
	}

	url, err := migrationURL(conf)
	if err != nil {
		return err
	}
	if conf.DbDriver == config.DriverSQLite {
		if err := ensureDir(conf.SqlitePath); err != nil {
			return err
		}
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			zap.L().Warn("failed to close migrator", zap.NamedError("source", srcErr), zap.NamedError("database", dbErr))
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err == nil {
		zap.L().Info("database schema ready", zap.String("driver", conf.DbDriver), zap.Uint("version", version), zap.Bool("dirty", dirty))
	}
	return nil
}

func migrationURL(conf *config.Config) (string, error) {
	switch conf.DbDriver {
	case config.DriverSQLite:
		return "sqlite3://" + conf.SqlitePath, nil
	case config.DriverMySQL:
		return "mysql://" + mysqlDSN(conf), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", conf.DbDriver)
	}
}

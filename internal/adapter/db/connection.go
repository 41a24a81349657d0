package db

import (
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"taskplanner/internal/config"
)

func ConnectDB(conf *config.Config) (*sqlx.DB, error) {
	switch conf.DbDriver {
	case config.DriverSQLite:
		return connectSQLite(conf.SqlitePath)
	case config.DriverMySQL:
		return sqlx.Connect("mysql", mysqlDSN(conf))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", conf.DbDriver)
	}
}

func connectSQLite(path string) (*sqlx.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("empty sqlite path")
	}
	if err := ensureDir(path); err != nil {
		return nil, err
	}

	db, err := sqlx.Connect("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=ON", path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	return db, nil
}

func mysqlDSN(conf *config.Config) string {
	params := conf.DbParams
	if params == "" {
		params = "parseTime=true&multiStatements=true"
	}

	return fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?%s",
		conf.DbUser,
		conf.DbPassword,
		conf.DbHost,
		conf.DbPort,
		conf.DbName,
		params,
	)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

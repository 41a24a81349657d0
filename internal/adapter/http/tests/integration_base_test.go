//go:build integration
// +build integration

package tests

import (
	"fmt"
	"os"
	"strings"

	dbadapter "taskplanner/internal/adapter/db"
	"taskplanner/internal/config"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"
)

type IntegrationSuiteBase struct {
	suite.Suite

	adminDB *sqlx.DB
	DB      *sqlx.DB
	Config  *config.Config
}

func (s *IntegrationSuiteBase) SetupSuite() {
	host := envOrDefault("MYSQL_HOST", "127.0.0.1")
	port := envOrDefault("MYSQL_PORT", "3306")
	rootUser := envOrDefault("MYSQL_ROOT_USER", "root")
	rootPassword := envOrDefault("MYSQL_ROOT_PASSWORD", "root")
	database := envOrDefault("MYSQL_TEST_DATABASE", envOrDefault("MYSQL_DATABASE", "planner")+"_test")
	params := envOrDefault("MYSQL_PARAMS", "parseTime=true&multiStatements=true")

	adminDB, err := sqlx.Connect("mysql", fmt.Sprintf("%s:%s@tcp(%s:%s)/?%s", rootUser, rootPassword, host, port, params))
	if err != nil {
		s.T().Skipf("skipping integration suite: could not connect to mysql: %v", err)
	}
	s.adminDB = adminDB

	_, err = s.adminDB.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", database))
	s.Require().NoError(err)

	s.Config = &config.Config{
		DbDriver:   config.DriverMySQL,
		DbHost:     host,
		DbPort:     port,
		DbUser:     rootUser,
		DbPassword: rootPassword,
		DbName:     database,
		DbParams:   params,
	}

	db, err := dbadapter.ConnectDB(s.Config)
	s.Require().NoError(err)
	s.DB = db
}

func (s *IntegrationSuiteBase) TearDownSuite() {
	if s.DB != nil {
		s.Require().NoError(s.DB.Close())
	}

	// Drop test database to keep local environment clean after integration runs.
	if s.adminDB != nil && s.Config != nil && strings.HasSuffix(s.Config.DbName, "_test") {
		_, err := s.adminDB.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS `%s`", s.Config.DbName))
		s.Require().NoError(err)
	}

	if s.adminDB != nil {
		s.Require().NoError(s.adminDB.Close())
	}
}

// ResetDatabase drops every table and replays the embedded migrations.
func (s *IntegrationSuiteBase) ResetDatabase() {
	_, err := s.DB.Exec(`
DROP TABLE IF EXISTS tasks;
DROP TABLE IF EXISTS users;
DROP TABLE IF EXISTS schema_migrations;
`)
	s.Require().NoError(err)
	s.Require().NoError(dbadapter.Migrate(s.Config))
}

func envOrDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	DriverSQLite = "sqlite3"
	DriverMySQL  = "mysql"
)

type Config struct {
	AppPort           string
	BasePath          string
	DbDriver          string
	SqlitePath        string
	DbHost            string
	DbPort            string
	DbUser            string
	DbPassword        string
	DbName            string
	DbParams          string
	TrustedProxies    []string
	TranslationFolder string
}

// ClientConfig configures the planner CLI.
type ClientConfig struct {
	APIURL           string
	StateDir         string
	ReminderInterval time.Duration
	HTTPTimeout      time.Duration
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppPort:           getEnv("APP_PORT", "5000"),
		BasePath:          normalizeBasePath(os.Getenv("API_BASE_PATH")),
		DbDriver:          getEnv("DB_DRIVER", DriverSQLite),
		SqlitePath:        getEnv("SQLITE_PATH", "data/tasks.db"),
		DbHost:            getEnv("MYSQL_HOST", "db"),
		DbPort:            getEnv("MYSQL_PORT", "3306"),
		DbUser:            getEnv("MYSQL_USER", "planner"),
		DbPassword:        getEnv("MYSQL_PASSWORD", "planner"),
		DbName:            getEnv("MYSQL_DATABASE", "planner"),
		DbParams:          getEnv("MYSQL_PARAMS", "parseTime=true&multiStatements=true"),
		TrustedProxies:    parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),
		TranslationFolder: getEnv("TRANSLATION_FOLDER", "pkg/translator/translation"),
	}
}

func LoadClientConfig() *ClientConfig {
	_ = godotenv.Load(".env")

	return &ClientConfig{
		APIURL:           strings.TrimRight(getEnv("PLANNER_API_URL", "http://127.0.0.1:5000"), "/"),
		StateDir:         getEnv("PLANNER_STATE_DIR", defaultStateDir()),
		ReminderInterval: getDuration("PLANNER_REMINDER_INTERVAL", time.Minute),
		HTTPTimeout:      getDuration("PLANNER_HTTP_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(raw) == "" {
		return fallback
	}
	value, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		zap.L().Warn("ignoring invalid duration", zap.String("key", key), zap.String("value", raw))
		return fallback
	}
	return value
}

// defaultStateDir follows XDG_STATE_HOME, then $HOME/.local/state.
func defaultStateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "taskplanner")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskplanner"
	}
	return filepath.Join(home, ".local", "state", "taskplanner")
}

func normalizeBasePath(value string) string {
	value = strings.Trim(strings.TrimSpace(value), "/")
	if value == "" {
		return ""
	}
	return "/" + value
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}

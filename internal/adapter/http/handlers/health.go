package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"taskplanner/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const (
	StatusOk        = "ok"
	StatusDown      = "down"
	StatusDirty     = "dirty"
	healthDBTimeout = 2 * time.Second
)

type HealthBasic struct {
	AppName           string `json:"app_name"`
	AppVersion        string `json:"app_version"`
	CurrentSystemTime string `json:"current_system_time"`
	Message           string `json:"message"`
}

type HealthServices struct {
	Database      string `json:"database"`
	Driver        string `json:"driver"`
	Schema        string `json:"schema"`
	SchemaVersion uint64 `json:"schema_version"`
}

type HealthAdvanced struct {
	AppName           string         `json:"app_name"`
	AppVersion        string         `json:"app_version"`
	CurrentSystemTime string         `json:"current_system_time"`
	Uptime            string         `json:"uptime"`
	Language          string         `json:"language"`
	Status            HealthServices `json:"status"`
}

type HealthHandler struct {
	db      *sqlx.DB
	started time.Time
}

func NewHealthHandler(db *sqlx.DB) *HealthHandler {
	return &HealthHandler{db: db, started: time.Now()}
}

// CheckHealth answers 503 while the database is unreachable.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	statusCode := http.StatusOK
	message := StatusOk
	if !h.ping(c.Request.Context()) {
		statusCode = http.StatusServiceUnavailable
		message = StatusDown
	}

	c.JSON(statusCode, HealthBasic{
		AppName:           getAppName(),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: time.Now().Format(time.DateTime),
		Message:           message,
	})
}

// CheckHealthReport always answers 200 and describes the database and its migration state.
func (h *HealthHandler) CheckHealthReport(c *gin.Context) {
	ctx := c.Request.Context()

	services := HealthServices{Database: StatusDown, Schema: StatusDown}
	if h.db != nil {
		services.Driver = h.db.DriverName()
	}
	if h.ping(ctx) {
		services.Database = StatusOk
		services.Schema, services.SchemaVersion = h.schema(ctx)
	}

	c.JSON(http.StatusOK, HealthAdvanced{
		AppName:           getAppName(),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: time.Now().Format(time.DateTime),
		Uptime:            time.Since(h.started).Truncate(time.Second).String(),
		Language:          middleware.GetLang(c),
		Status:            services,
	})
}

func (h *HealthHandler) ping(ctx context.Context) bool {
	if h.db == nil {
		return false
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, healthDBTimeout)
	defer cancel()
	return h.db.PingContext(timeoutCtx) == nil
}

// schema reads the golang-migrate bookkeeping row.
func (h *HealthHandler) schema(ctx context.Context) (string, uint64) {
	timeoutCtx, cancel := context.WithTimeout(ctx, healthDBTimeout)
	defer cancel()

	var row struct {
		Version uint64 `db:"version"`
		Dirty   bool   `db:"dirty"`
	}
	if err := h.db.GetContext(timeoutCtx, &row, "SELECT version, dirty FROM schema_migrations LIMIT 1"); err != nil {
		zap.L().Warn("failed to read schema version", zap.Error(err))
		return StatusDown, 0
	}
	if row.Dirty {
		return StatusDirty, row.Version
	}
	return StatusOk, row.Version
}

func getAppName() string {
	name := os.Getenv("APP_NAME")
	if name == "" {
		return "taskplanner"
	}
	return name
}

func getAppVersion() string {
	version := os.Getenv("APP_VERSION")
	if version == "" {
		return "dev"
	}
	return version
}

package main

import (
	"taskplanner/pkg/translator"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	dbadapter "taskplanner/internal/adapter/db"
	httpadapter "taskplanner/internal/adapter/http"
	"taskplanner/internal/adapter/http/handlers"
	httpmiddleware "taskplanner/internal/adapter/http/middleware"
	"taskplanner/internal/app/service"
	"taskplanner/internal/config"
	"taskplanner/internal/core/reminder"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	cfg := config.LoadConfig()

	err = translator.InitTranslator(translator.Config{
		TranslationFolder:  cfg.TranslationFolder,
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageDe, translator.LanguageFr},
	})
	if err != nil {
		logger.Warn("serving untranslated messages", zap.Error(err))
	}

	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.String("driver", cfg.DbDriver), zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close database connection", zap.Error(err))
		}
	}()

	if err := dbadapter.Migrate(cfg); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	clock := reminder.SystemClock{}
	taskService := service.NewTaskService(dbadapter.NewTaskRepository(db), clock)
	authService := service.NewAuthService(dbadapter.NewUserRepository(db), clock)

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("invalid trusted proxies", zap.Strings("proxies", cfg.TrustedProxies), zap.Error(err))
	}
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger))
	httpadapter.RegisterRoutes(r, cfg.BasePath, httpadapter.Handlers{
		Health: handlers.NewHealthHandler(db),
		Auth:   handlers.NewAuthHandler(authService),
		Task:   handlers.NewTaskHandler(taskService),
	}, authService)

	port := cfg.AppPort
	if port == "" {
		port = "5000"
	}
	addr := ":" + port
	logger.Info("starting server", zap.String("addr", addr), zap.String("base_path", cfg.BasePath))
	if err := r.Run(addr); err != nil {
		logger.Fatal("could not start server", zap.Error(err))
	}
}

package http

import (
	"taskplanner/internal/adapter/http/handlers"
	"taskplanner/internal/adapter/http/middleware"
	"taskplanner/internal/core/ports"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health *handlers.HealthHandler
	Auth   *handlers.AuthHandler
	Task   *handlers.TaskHandler
}

// RegisterRoutes mounts the API under basePath ("" mounts it at the root). Task routes
// require a known X-User-Email.
func RegisterRoutes(r *gin.Engine, basePath string, h Handlers, authService ports.AuthService) {
	api := r.Group(basePath)
	api.Use(middleware.RequestIDMiddleware(), middleware.LanguageMiddleware())
	{
		api.GET("/health", h.Health.CheckHealth)
		api.GET("/health/report", h.Health.CheckHealthReport)

		api.POST("/auth/register", h.Auth.Register)
		api.POST("/auth/login", h.Auth.Login)

		tasks := api.Group("/tasks", middleware.IdentityMiddleware(authService))
		tasks.GET("", h.Task.ListTasks)
		tasks.POST("", h.Task.CreateTask)
		tasks.PUT("/:id", h.Task.UpdateTask)
		tasks.DELETE("/:id", h.Task.DeleteTask)
	}
}

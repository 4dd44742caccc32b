package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/mindforge/thinkpath-backend/internal/handlers"
	"github.com/mindforge/thinkpath-backend/internal/middleware"
)

type RouterConfig struct {
	AuthMiddleware        *middleware.AuthMiddleware
	RecommendationHandler *handlers.RecommendationHandler
	PathHandler           *handlers.PathHandler
	UserHandler           *handlers.UserHandler
	PracticeHandler       *handlers.PracticeHandler
	AllowOrigins          []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware("thinkpath-backend"))

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	api.GET("/daily-task", cfg.RecommendationHandler.GetDailyTask)
	api.POST("/daily-task/complete", cfg.RecommendationHandler.CompleteTask)
	api.GET("/practice/optional", cfg.RecommendationHandler.GetOptionalPractices)
	api.POST("/practice/sessions", cfg.PracticeHandler.RecordSession)
	api.GET("/user/state", cfg.UserHandler.GetUserState)
	api.PUT("/user/preferences", cfg.UserHandler.UpdatePreferences)
	api.GET("/learning-path", cfg.PathHandler.GetActivePath)
	api.POST("/learning-path/regenerate", cfg.PathHandler.RegeneratePath)

	return router
}

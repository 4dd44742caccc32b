package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mindforge/thinkpath-backend/internal/clients/redis"
	"github.com/mindforge/thinkpath-backend/internal/db"
	"github.com/mindforge/thinkpath-backend/internal/handlers"
	"github.com/mindforge/thinkpath-backend/internal/logger"
	"github.com/mindforge/thinkpath-backend/internal/middleware"
	"github.com/mindforge/thinkpath-backend/internal/observability"
	"github.com/mindforge/thinkpath-backend/internal/repos"
	"github.com/mindforge/thinkpath-backend/internal/server"
	"github.com/mindforge/thinkpath-backend/internal/services"
	"github.com/mindforge/thinkpath-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Tracing
	shutdownOtel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "thinkpath-backend",
		Environment: utils.GetEnv("APP_ENV", "development", log),
		Version:     utils.GetEnv("APP_VERSION", "dev", log),
	})
	if shutdownOtel != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownOtel(ctx)
		}()
	}

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)

	// DB
	dbService, err := db.NewService(log)
	if err != nil {
		log.Error("DB init failed", "error", err)
		os.Exit(1)
	}
	if err = dbService.AutoMigrateAll(); err != nil {
		log.Warn("Auto migration failed", "error", err)
	}
	theDB := dbService.DB()

	// Redis content cache (optional)
	var contentCache redis.ContentCache
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		cache, err := redis.NewContentCache(log)
		if err != nil {
			log.Warn("Could not init content cache, continuing without it", "error", err)
		} else {
			contentCache = cache
			defer contentCache.Close()
		}
	}

	// Repos
	log.Info("Setting up repos from main...")
	thinkingProgressRepo := repos.NewThinkingProgressRepo(theDB, log)
	theoryProgressRepo := repos.NewTheoryProgressRepo(theDB, log)
	preferenceRepo := repos.NewPreferenceRepo(theDB, log)
	streakLogRepo := repos.NewStreakLogRepo(theDB, log)
	practiceSessionRepo := repos.NewPracticeSessionRepo(theDB, log)
	theoryContentRepo := repos.NewTheoryContentRepo(theDB, log)
	practiceContentRepo := repos.NewPracticeContentRepo(theDB, log)
	learningPathRepo := repos.NewLearningPathRepo(theDB, log)

	// Services
	log.Info("Setting up services from main...")
	userStateService := services.NewUserStateService(theDB, log, thinkingProgressRepo, theoryProgressRepo, preferenceRepo, streakLogRepo, practiceSessionRepo)
	pathGenService := services.NewPathGenerationService(theDB, log, userStateService, theoryContentRepo, practiceContentRepo, contentCache)
	recommendationService := services.NewRecommendationService(theDB, log, pathGenService, learningPathRepo, practiceSessionRepo, thinkingProgressRepo)
	practiceSessionService := services.NewPracticeSessionService(theDB, log, practiceSessionRepo, streakLogRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	recommendationHandler := handlers.NewRecommendationHandler(log, recommendationService)
	pathHandler := handlers.NewPathHandler(log, recommendationService)
	userHandler := handlers.NewUserHandler(log, userStateService)
	practiceHandler := handlers.NewPracticeHandler(log, practiceSessionService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, jwtSecretKey)

	// Router
	log.Info("Setting up router from main...")
	var origins []string
	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOW_ORIGINS")); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}
	router := server.NewRouter(server.RouterConfig{
		AuthMiddleware:        authMiddleware,
		RecommendationHandler: recommendationHandler,
		PathHandler:           pathHandler,
		UserHandler:           userHandler,
		PracticeHandler:       practiceHandler,
		AllowOrigins:          origins,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}

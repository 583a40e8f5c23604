package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stopover/config"
	"stopover/database"
	conversationRepo "stopover/database/repository/conversation"
	"stopover/handlers"
	"stopover/middleware"
	"stopover/routes"
	"stopover/services/conversation"
	"stopover/services/intelligence"
	"stopover/services/session"
	"stopover/services/tools"
	"stopover/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// The registry and the step table are built from the same tool names; a
	// mismatch between them is a programming error, so refuse to start.
	registry := tools.NewRegistry()
	if err := conversation.VerifyTransitions(registry.Names()); err != nil {
		logger.Sugar().Fatalf("main: step transition table is inconsistent: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Completion provider. Without an API key outside production the server
	// runs against the offline responder so the widget stays demoable.
	var completion intelligence.CompletionService
	if config.AppConfig.GeminiAPIKey == "" {
		if config.IsProduction() {
			logger.Sugar().Fatal("main: GEMINI_API_KEY is required in production")
		}
		logger.Sugar().Warn("main: no GEMINI_API_KEY set, using offline responder")
		completion = intelligence.NewOfflineResponder()
	} else {
		invoker, err := intelligence.NewGeminiInvoker(context.Background(), config.AppConfig.GeminiAPIKey)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize completion client: %v", err)
		}
		defer invoker.Close()
		completion = intelligence.NewDefaultCompletionService(invoker, config.ModelChain(), logger)
	}

	// Persistence.
	ttl := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
	sessionKV := session.NewRedisKV(utils.GetSessionCacheClient())
	conversationKV := session.NewRedisKV(utils.GetConversationCacheClient())
	convRepo := conversationRepo.NewMongoConversationRepo()

	sessions := session.NewDefaultCoordinator(sessionKV, ttl, logger)
	conversations := session.NewDefaultConversationStore(conversationKV, convRepo, ttl, logger)

	conversationService := &conversation.DefaultConversationService{
		Sessions:        sessions,
		Conversations:   conversations,
		Completion:      completion,
		Registry:        registry,
		Logger:          logger,
		Temperature:     float32(config.AppConfig.Temperature),
		MaxOutputTokens: int32(config.AppConfig.MaxOutputTokens),
	}

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Chat:         handlers.NewChatHandler(conversationService),
		DataServices: handlers.NewDataServicesHandler(sessions),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetSessionCacheClient(), utils.GetConversationCacheClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

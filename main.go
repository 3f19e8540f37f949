// File: grillbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"grillbook/config"
	bookingRepo "grillbook/database/repository/bookings"
	"grillbook/handlers"
	"grillbook/middleware"
	"grillbook/routes"
	"grillbook/services/chat"
	ai "grillbook/services/intelligence"
	"grillbook/services/knowledge"
	"grillbook/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// Create the upload and training directories up front.
	for _, dir := range []string{config.AppConfig.UploadDir, config.AppConfig.TrainingDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Sugar().Fatalf("main: failed to create directory %s: %v", dir, err)
		}
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Adapters.
	bookings, err := bookingRepo.NewSheetsBookingRepo(
		context.Background(),
		config.AppConfig.GoogleCredentialsFile,
		config.AppConfig.GoogleSheetID,
		config.AppConfig.GoogleSheetRange,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize booking store: %v", err)
	}
	completions := ai.NewGeminiClient(config.AppConfig.GeminiAPIKey)
	knowledgeStore := knowledge.NewStore(config.AppConfig.TrainingDir)

	// Services.
	registry := chat.NewRegistry(knowledgeStore)
	engine := &chat.Engine{
		Completions: completions,
		Bookings:    bookings,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Chat: handlers.NewChatHandler(
			registry,
			engine,
			config.AppConfig.StreamChunkSize,
			time.Duration(config.AppConfig.StreamDelayMs)*time.Millisecond,
		),
		Upload: handlers.NewUploadHandler(knowledgeStore, completions),
		Admin:  handlers.NewAdminHandler(bookings),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8765"
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

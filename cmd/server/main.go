package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/postpilot/studio/internal/action"
	"github.com/postpilot/studio/internal/backend"
	"github.com/postpilot/studio/internal/config"
	"github.com/postpilot/studio/internal/core"
	"github.com/postpilot/studio/internal/store"
	"github.com/postpilot/studio/internal/web"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Setup logging
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if config.AppConfig.LogLevel == "DEBUG" {
		log.Println("Service starting in DEBUG mode")
	}

	// Initialize local store
	localStore, err := store.NewSQLiteStore(config.AppConfig.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize local store: %v", err)
	}
	defer localStore.Close()

	// Initialize the backend gateway
	gateway := backend.NewClient(
		config.AppConfig.BackendBaseURL,
		config.AppConfig.BackendAPIKey,
		time.Duration(config.AppConfig.RequestTimeout)*time.Second,
	)

	// Initialize page orchestrators
	runner := action.NewRunner(action.DefaultStepDelay, action.DefaultRetention)
	studioService := core.NewStudioService(gateway)
	carouselService := core.NewCarouselService(gateway, runner)
	chatService := core.NewChatService(gateway)
	memoryService := core.NewMemoryService(gateway, localStore)
	competitorService := core.NewCompetitorService(gateway, localStore)
	settingsService := core.NewSettingsService(gateway, localStore)

	server, err := web.NewServer(studioService, carouselService, chatService, memoryService, competitorService, settingsService)
	if err != nil {
		log.Fatalf("Failed to initialize web server: %v", err)
	}
	router := web.NewRouter(server)

	// Start HTTP server
	serverAddr := fmt.Sprintf(":%s", config.AppConfig.HTTPPort)

	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 180 * time.Second, // sequential generation batches can take a while
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown handling
	go func() {
		log.Printf("Starting server on %s. Press Ctrl+C to quit.", serverAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", serverAddr, err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give active connections time to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting gracefully")
}

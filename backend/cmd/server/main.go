package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gradebook_manager/backend/internal/gradebook"
	"gradebook_manager/backend/internal/server"
	"gradebook_manager/backend/internal/shared"
)

func main() {
	log.Println("INFO: Starting Gradebook Server...")

	// 1. Load Configuration
	if err := shared.LoadEnv(".env"); err != nil {
		log.Println("INFO: Continuing with system environment variables")
	}

	cfg, err := shared.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}
	shared.PrintConfig(cfg)

	// 2. Open the Gradebook Store
	// Creates the data file with an empty structure on first run.
	store, err := gradebook.New(cfg.DataFile)
	if err != nil {
		log.Fatalf("FATAL: Failed to open gradebook at %s: %v", cfg.DataFile, err)
	}
	log.Printf("INFO: Gradebook loaded from %s (%d students, %d assignments, %d grades)",
		cfg.DataFile, len(store.Students()), len(store.Assignments()), len(store.Grades()))

	// 3. Setup Routes and Middleware
	router := server.SetupRoutes(store, cfg)

	// 4. Configure Server
	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// 5. Start Server in a Goroutine
	go func() {
		log.Printf("INFO: Gradebook server listening on port %s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("FATAL: HTTP server error: %v", err)
		}
	}()

	// 6. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("INFO: Shutting down Gradebook Server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("WARN: Shutdown error: %v", err)
	}

	log.Println("INFO: Gradebook server stopped.")
}

// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"

	"github.com/profile-forge/internal/ai"
	"github.com/profile-forge/internal/cache"
	"github.com/profile-forge/internal/config"
	"github.com/profile-forge/internal/database"
	"github.com/profile-forge/internal/logger"
	"github.com/profile-forge/internal/processor"
	"github.com/profile-forge/internal/server"
	"github.com/profile-forge/internal/server/middleware"
)

var (
	configPath = flag.String("config", "", "Path to config file (default: ~/.profile-forge/config.yaml)")
	httpPort   = flag.Int("http-port", 0, "HTTP server port (overrides config)")
	dbPath     = flag.String("db-path", "", "SQLite database path (overrides config)")
	logFile    = flag.String("log-file", "profile-server.log", "Log file path")
)

func main() {
	flag.Parse()

	// .env is optional, environment wins either way
	_ = godotenv.Load()

	if _, err := logger.Init(*logFile); err != nil {
		log.Printf("warning: file logging disabled: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *httpPort != 0 {
		cfg.Server.Port = *httpPort
	}
	if *dbPath != "" {
		cfg.Storage.DBPath = *dbPath
	}

	db, err := sql.Open("sqlite3", cfg.Storage.DBPath)
	if err != nil {
		log.Fatalf("failed to open sqlite database: %v", err)
	}
	defer db.Close()

	history, err := database.NewHistoryStore(db)
	if err != nil {
		log.Fatalf("failed to initialize history schema: %v", err)
	}

	ctx := context.Background()
	redisClient, err := config.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Printf("warning: failed to connect to Redis: %v, result caching disabled", err)
		redisClient = nil
	}
	resultCache := cache.NewResultCache(redisClient)
	if redisClient != nil {
		defer redisClient.Close()
		log.Printf("Result cache enabled: %s", cfg.Redis.Addr)
	}

	aiClient, err := ai.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, cfg.OpenAI.VisionModel)
	if err != nil {
		log.Fatalf("failed to initialize completion client: %v", err)
	}

	structurer := processor.NewStructurer(aiClient)
	structurer.SetMaxAttempts(cfg.Parsing.MaxAttempts)

	parseHandler := server.NewParseHandler(structurer, resultCache, history, cfg.Server.MaxUploadSize)
	historyHandler := server.NewHistoryHandler(history)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/parse", parseHandler.HandleParseFile)
	mux.HandleFunc("/api/v1/parse/text", parseHandler.HandleParseText)
	mux.HandleFunc("/api/v1/parse/pages", parseHandler.HandleParsePages)
	mux.HandleFunc("/api/v1/history", historyHandler.HandleList)
	mux.HandleFunc("/api/v1/health", server.HandleHealth)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: middleware.TrafficLogger(mux),
	}

	go func() {
		log.Printf("HTTP server listening on :%d", cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
	log.Println("Shutdown complete")
}

// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"

	"github.com/profile-forge/internal/ai"
	"github.com/profile-forge/internal/config"
	"github.com/profile-forge/internal/database"
	"github.com/profile-forge/internal/logger"
	"github.com/profile-forge/internal/processor"
	"github.com/profile-forge/internal/watcher"
)

var (
	configPath = flag.String("config", "", "Path to config file (default: ~/.profile-forge/config.yaml)")
	watchDirs  = flag.String("watch-dirs", "", "Comma-separated list of directories to watch (overrides config)")
	notify     = flag.Bool("notify", true, "Send desktop notifications on parse results")
	logFile    = flag.String("log-file", "profile-watchdog.log", "Log file path")
)

func main() {
	flag.Parse()

	_ = godotenv.Load()

	if _, err := logger.Init(*logFile); err != nil {
		log.Printf("warning: file logging disabled: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	paths := cfg.Watch.Paths
	if *watchDirs != "" {
		paths = nil
		for _, dir := range strings.Split(*watchDirs, ",") {
			dir = strings.TrimSpace(dir)
			if dir != "" {
				paths = append(paths, dir)
			}
		}
	}
	if len(paths) == 0 {
		log.Fatal("no watch directories configured")
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

	aiClient, err := ai.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, cfg.OpenAI.VisionModel)
	if err != nil {
		log.Fatalf("failed to initialize completion client: %v", err)
	}

	structurer := processor.NewStructurer(aiClient)
	structurer.SetMaxAttempts(cfg.Parsing.MaxAttempts)

	mgr := watcher.NewManager(paths, structurer, history, *notify)
	if err := mgr.Start(); err != nil {
		log.Fatalf("failed to start watcher: %v", err)
	}
	log.Printf("Watching %v", mgr.Status().WatchingPaths)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down...")
	mgr.Stop()
	log.Println("Shutdown complete")
}

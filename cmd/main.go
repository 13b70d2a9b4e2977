package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/skyflap/skyflap-backend/config"
	"github.com/skyflap/skyflap-backend/game"
	"github.com/skyflap/skyflap-backend/handlers"
	"github.com/skyflap/skyflap-backend/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment defaults")
	}
	cfg := config.LoadConfig()

	if err := logger.Init(cfg.LogFile); err != nil {
		log.Fatal("Error initializing logger:", err)
	}
	defer logger.Sync()

	registry := game.NewRegistry()
	hub := handlers.NewHub(logger.Log)
	directory := game.NewDirectory(registry, hub, game.ParseDifficulty(cfg.Difficulty), logger.Log)
	gateway := handlers.NewGateway(hub, registry, directory, logger.Log)

	r := handlers.NewRouter(gateway, cfg.StaticDir)
	srv := &http.Server{Addr: cfg.Addr, Handler: r}

	go func() {
		logger.Log.Infof("Server running on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Errorf("shutdown: %v", err)
	}
}

package main

import (
	"context"
	"os"

	"github.com/jdcb4/DrawNGuess/internal/config"
	"github.com/jdcb4/DrawNGuess/internal/db"
	"github.com/jdcb4/DrawNGuess/internal/logger"
	"github.com/jdcb4/DrawNGuess/internal/server"
)

func main() {
	log := logger.New("main")
	var envFiles []string
	if _, err := os.Stat(".env"); err == nil {
		envFiles = append(envFiles, ".env")
	} else {
		log.Warn("No .env file loaded, using the environment only")
	}
	cfg, err := config.Load(envFiles...)
	if err != nil {
		log.Error("Invalid configuration", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.LogLevel)

	repo, err := db.SetupDB(cfg.Database)
	if err != nil {
		log.Error("Failed to set up database "+cfg.Database, err)
		os.Exit(1)
	}
	gs := server.NewGameServer(cfg, repo)
	if err := gs.Run(context.Background()); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/meghashyamc/catch2d/config"
	"github.com/meghashyamc/catch2d/game"
	"github.com/meghashyamc/catch2d/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %s\n", err)
		os.Exit(1)
	}

	log := logger.NewWithLevel(cfg.GetLogLevel())
	g, err := game.NewGame(cfg, log)
	if err != nil {
		log.Error("failed to create game", "err", err)
		os.Exit(1)
	}
	if err := g.Run(); err != nil {
		log.Error("error running game", "err", err)
		os.Exit(1)
	}
}

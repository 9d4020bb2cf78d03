package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/meghashyamc/catch2d/audio"
	"github.com/meghashyamc/catch2d/config"
	"github.com/meghashyamc/catch2d/logger"
	"github.com/meghashyamc/catch2d/session"
	"github.com/meghashyamc/catch2d/terminal"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// stdout belongs to the screen, so logs go to a file or nowhere
	log := logger.Discard()
	if path := cfg.GetLogFile(); path != "" {
		fileLog, closer, err := logger.NewFile(path, cfg.GetLogLevel())
		if err != nil {
			return err
		}
		defer closer.Close()
		log = fileLog
	}

	clock := session.NewMonotonicClock()
	s, err := session.New(cfg.RotationParams(), cfg.CaptureParams(), session.NewRandom(cfg.GetSeed()), clock.Now(), log)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	if cfg.GetAudioEnabled() {
		player := audio.NewPlayer(log)
		if err := player.Initialize(); err != nil {
			log.Warn("audio disabled", "err", err)
		} else {
			defer player.Close()
			s.Observe(player)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := terminal.New(screen, s, clock, log).Run(ctx); err != nil {
		log.Error("terminal frontend failed", "err", err)
		return err
	}

	report := s.Report()
	log.Info("session ended", "catches", report.Catches, "failures", report.Failures, "attempts", report.Attempts)
	return nil
}

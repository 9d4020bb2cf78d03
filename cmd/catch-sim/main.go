// Command catch-sim plays the catch game headless with a scripted player and
// prints a YAML report of the run.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/meghashyamc/catch2d/config"
	"github.com/meghashyamc/catch2d/logger"
	"github.com/meghashyamc/catch2d/session"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("catch-sim", pflag.ContinueOnError)
	flags.Int("rounds", 10, "number of catches to make")
	flags.Int("reaction-ms", 120, "time from the start of a pause to the press")
	flags.Int("jitter-ms", 60, "random spread applied to the reaction time")
	flags.Uint64("seed", 0, "random seed, 0 for a time based seed")
	flags.Int("max-frames", 36000, "give up after this many 60 FPS frames")
	flags.String("log-level", "warn", "log level written to stderr")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	bindings := map[string]string{
		"sim.rounds":      "rounds",
		"sim.reaction_ms": "reaction-ms",
		"sim.jitter_ms":   "jitter-ms",
		"sim.max_frames":  "max-frames",
		"game.seed":       "seed",
	}
	for key, name := range bindings {
		if err := cfg.BindFlag(key, flags.Lookup(name)); err != nil {
			return err
		}
	}

	levelFlag, _ := flags.GetString("log-level")
	log := logger.NewWithLevel(levelFlag)

	rounds := cfg.GetSimRounds()
	if rounds <= 0 {
		return fmt.Errorf("rounds must be positive, got %d", rounds)
	}

	random := session.NewRandom(cfg.GetSeed())
	clock := session.NewFrameClock(session.DefaultFrameStep)
	s, err := session.New(cfg.RotationParams(), cfg.CaptureParams(), random, clock.Now(), log)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	bot := session.NewBot(cfg.GetSimReaction(), cfg.GetSimJitter(), random)
	report, simErr := session.Simulate(s, clock, bot, uint(rounds), cfg.GetSimMaxFrames())

	out, err := report.YAML()
	if err != nil {
		return err
	}
	if _, err := os.Stdout.Write(out); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return simErr
}

package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/meghashyamc/catch2d/capture"
	"github.com/meghashyamc/catch2d/rotation"
)

var ErrFrameLimit = errors.New("frame limit reached")

// Bot presses the capture input a fixed reaction time after each pause begins,
// spread by up to ±Jitter, and continues ContinueDelay after every catch.
type Bot struct {
	Reaction      time.Duration
	Jitter        time.Duration
	ContinueDelay time.Duration

	random     rotation.RandomSource
	pauseStart time.Duration
	pressAt    time.Duration
	armed      bool
	caughtAt   time.Duration
	waiting    bool
}

func NewBot(reaction, jitter time.Duration, random rotation.RandomSource) *Bot {
	return &Bot{
		Reaction:      reaction,
		Jitter:        jitter,
		ContinueDelay: 500 * time.Millisecond,
		random:        random,
		pauseStart:    -1,
	}
}

// Decide reports whether the bot presses during the frame described by snap.
func (b *Bot) Decide(snap Snapshot) bool {
	switch snap.Phase {
	case rotation.PhaseCaughtPause:
		if !b.waiting {
			b.waiting = true
			b.caughtAt = snap.Now
		}
		if snap.Now-b.caughtAt >= b.ContinueDelay {
			b.waiting = false
			return true
		}
		return false

	case rotation.PhasePause:
		start := snap.Now - snap.Elapsed
		if start != b.pauseStart {
			b.pauseStart = start
			b.pressAt = start + b.reaction()
			b.armed = true
		}
	}

	if b.armed && snap.Now >= b.pressAt {
		b.armed = false
		return true
	}
	return false
}

func (b *Bot) reaction() time.Duration {
	if b.Jitter <= 0 || b.random == nil {
		return b.Reaction
	}
	offset := time.Duration((b.random.Float64()*2 - 1) * float64(b.Jitter))
	return max(0, b.Reaction+offset)
}

// Simulate runs the session on a frame clock until the bot has made the given
// number of catches, or fails with ErrFrameLimit after maxFrames frames.
func Simulate(s *Session, clock *FrameClock, bot *Bot, catches uint, maxFrames int) (Report, error) {
	for frame := 0; frame < maxFrames; frame++ {
		clock.Advance()
		now := clock.Now()

		if err := s.Tick(now); err != nil {
			return s.Report(), err
		}

		if bot.Decide(s.Snapshot(now)) {
			outcome, err := s.Attempt(now)
			if err != nil {
				return s.Report(), err
			}
			if outcome.Kind == capture.KindSuccess && s.stats.catches >= catches {
				return s.Report(), nil
			}
		}
	}

	return s.Report(), fmt.Errorf("%w: %d frames without %d catches", ErrFrameLimit, maxFrames, catches)
}

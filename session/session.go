package session

import (
	"time"

	"github.com/meghashyamc/catch2d/capture"
	"github.com/meghashyamc/catch2d/logger"
	"github.com/meghashyamc/catch2d/rotation"
)

// OutcomeObserver is notified of every outcome except dropped attempts.
type OutcomeObserver interface {
	OnOutcome(outcome capture.Outcome)
}

type OutcomeFunc func(outcome capture.Outcome)

func (f OutcomeFunc) OnOutcome(outcome capture.Outcome) {
	f(outcome)
}

// Snapshot is everything a renderer needs for one frame.
type Snapshot struct {
	rotation.State

	Now                time.Duration
	FailureMessage     string
	ShowFailureMessage bool
	FailureCount       uint
	RoundElapsed       time.Duration
	CaptureCooldown    time.Duration
	LastOutcome        capture.Outcome
	HasOutcome         bool
}

// CatchStats returns the elapsed round time and failure count of the catch
// being shown, if the target is currently caught.
func (s Snapshot) CatchStats() (time.Duration, uint, bool) {
	if !s.Caught || !s.HasOutcome || s.LastOutcome.Kind != capture.KindSuccess {
		return 0, 0, false
	}
	return s.LastOutcome.ElapsedRound, s.LastOutcome.FailureCount, true
}

// Session drives one rotation clock and its capture arbiter from a single
// goroutine. Ticks and attempts must not be issued concurrently.
type Session struct {
	clock     *rotation.Clock
	arbiter   *capture.Arbiter
	logger    logger.Logger
	observers []OutcomeObserver
	stats     stats
}

func New(rotationParams rotation.Params, captureParams capture.Params, random rotation.RandomSource, start time.Duration, log logger.Logger) (*Session, error) {
	if log == nil {
		log = logger.Discard()
	}

	clock, err := rotation.NewClock(rotationParams, random, start, log)
	if err != nil {
		return nil, err
	}

	arbiter, err := capture.NewArbiter(clock, captureParams, start, log)
	if err != nil {
		return nil, err
	}

	s := &Session{
		clock:   clock,
		arbiter: arbiter,
		logger:  log,
		stats:   stats{start: start},
	}

	s.logger.Info("session started",
		"rollDuration", rotationParams.RollDuration,
		"pauseDuration", rotationParams.PauseDuration,
		"bigRotationCooldown", rotationParams.BigRotCooldown,
		"captureCooldown", captureParams.CaptureCooldown,
	)
	return s, nil
}

func (s *Session) Observe(observer OutcomeObserver) {
	s.observers = append(s.observers, observer)
}

func (s *Session) Tick(now time.Duration) error {
	if err := s.clock.Tick(now); err != nil {
		s.logger.Warn("tick rejected", "now", now, "err", err)
		return err
	}
	s.stats.ticks++
	s.stats.last = now
	return nil
}

func (s *Session) Attempt(now time.Duration) (capture.Outcome, error) {
	outcome, err := s.arbiter.HandleAttempt(now)
	if err != nil {
		return outcome, err
	}

	s.stats.record(outcome)
	if outcome.Kind == capture.KindDropped {
		return outcome, nil
	}

	s.logger.Debug("attempt resolved", "outcome", outcome.Kind.String(), "at", now, "failures", outcome.FailureCount)
	for _, observer := range s.observers {
		observer.OnOutcome(outcome)
	}
	return outcome, nil
}

func (s *Session) Snapshot(now time.Duration) Snapshot {
	message, visible := s.arbiter.FailureMessage(now)
	last, hasLast := s.arbiter.LastOutcome()

	return Snapshot{
		State:              s.clock.Snapshot(now),
		Now:                now,
		FailureMessage:     message,
		ShowFailureMessage: visible,
		FailureCount:       s.arbiter.FailureCount(),
		RoundElapsed:       s.arbiter.RoundElapsed(now),
		CaptureCooldown:    s.arbiter.CooldownRemaining(now),
		LastOutcome:        last,
		HasOutcome:         hasLast,
	}
}

func (s *Session) Report() Report {
	return s.stats.report(s.clock.BigRotations())
}

package capture

import (
	"fmt"
	"time"

	"github.com/meghashyamc/catch2d/logger"
	"github.com/meghashyamc/catch2d/rotation"
)

// PhaseClock is the part of the rotation clock the arbiter reads and drives.
type PhaseClock interface {
	Phase() rotation.Phase
	ElapsedInPhase(now time.Duration) time.Duration
	PauseWindow() time.Duration
	Freeze(now time.Duration) error
	ForceContinue(now time.Duration) error
	CheckTime(now time.Duration) error
}

// Arbiter turns raw capture attempts into outcomes and owns the round's
// failure accounting. It is not safe for concurrent use.
type Arbiter struct {
	clock  PhaseClock
	params Params
	logger logger.Logger

	lastSeen             time.Duration
	lastAttempt          time.Duration
	attempted            bool
	failureCount         uint
	roundStart           time.Duration
	failureMessage       string
	failureMessageExpiry time.Duration

	lastOutcome    Outcome
	hasLastOutcome bool
}

func NewArbiter(clock PhaseClock, params Params, start time.Duration, log logger.Logger) (*Arbiter, error) {
	if clock == nil {
		return nil, fmt.Errorf("%w: phase clock is required", ErrInvalidParams)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Discard()
	}

	return &Arbiter{
		clock:      clock,
		params:     params,
		logger:     log,
		roundStart: start,
		lastSeen:   start,
	}, nil
}

// HandleAttempt resolves one press of the capture input at now.
//
// While the clock is caught the press continues the game instead, and is not
// subject to the attempt cooldown. Otherwise a press within CaptureCooldown of
// the previous attempt is dropped with no state change. Errors only report
// contract violations, such as time running backwards, and leave the state
// untouched.
func (a *Arbiter) HandleAttempt(now time.Duration) (Outcome, error) {
	if err := a.checkTime(now); err != nil {
		a.logger.Warn("attempt rejected", "at", now, "err", err)
		return Outcome{}, err
	}

	if a.clock.Phase() == rotation.PhaseCaughtPause {
		return a.continueRound(now)
	}

	if a.attempted && now-a.lastAttempt < a.params.CaptureCooldown {
		a.logger.Debug("attempt dropped by cooldown", "at", now, "lastAttempt", a.lastAttempt)
		return Outcome{Kind: KindDropped, At: now}, nil
	}

	if a.inWindow(now) {
		if err := a.clock.Freeze(now); err != nil {
			a.logger.Error("failed to freeze rotation", "at", now, "err", err)
			return Outcome{}, fmt.Errorf("failed to freeze rotation: %w", err)
		}
		a.markAttempt(now)

		outcome := Outcome{
			Kind:         KindSuccess,
			At:           now,
			ElapsedRound: now - a.roundStart,
			FailureCount: a.failureCount,
		}
		a.logger.Debug("capture succeeded", "elapsedRound", outcome.ElapsedRound, "failures", outcome.FailureCount)
		return a.record(outcome), nil
	}

	a.markAttempt(now)
	a.failureCount++
	if a.failureMessage == "" {
		a.failureMessage = a.params.Taunt
	} else {
		a.failureMessage += a.params.TauntSuffix
	}
	a.failureMessageExpiry = now + a.params.FailureMessageDuration

	outcome := Outcome{
		Kind:         KindFailure,
		At:           now,
		FailureCount: a.failureCount,
		Message:      a.failureMessage,
	}
	a.logger.Debug("capture failed", "phase", a.clock.Phase().String(), "elapsedInPhase", a.clock.ElapsedInPhase(now), "failures", a.failureCount)
	return a.record(outcome), nil
}

func (a *Arbiter) FailureCount() uint {
	return a.failureCount
}

// FailureMessage returns the accumulated taunt while it is still on display.
func (a *Arbiter) FailureMessage(now time.Duration) (string, bool) {
	if a.failureMessage == "" || now > a.failureMessageExpiry {
		return "", false
	}
	return a.failureMessage, true
}

func (a *Arbiter) RoundElapsed(now time.Duration) time.Duration {
	return max(0, now-a.roundStart)
}

// LastOutcome is the most recent non-dropped outcome.
func (a *Arbiter) LastOutcome() (Outcome, bool) {
	return a.lastOutcome, a.hasLastOutcome
}

// CooldownRemaining is how long until the next capture attempt is accepted.
func (a *Arbiter) CooldownRemaining(now time.Duration) time.Duration {
	if !a.attempted {
		return 0
	}
	return max(0, a.params.CaptureCooldown-(now-a.lastAttempt))
}

func (a *Arbiter) continueRound(now time.Duration) (Outcome, error) {
	if err := a.clock.ForceContinue(now); err != nil {
		a.logger.Error("failed to continue rotation", "at", now, "err", err)
		return Outcome{}, fmt.Errorf("failed to continue rotation: %w", err)
	}

	a.lastSeen = now
	a.roundStart = now
	a.failureCount = 0
	a.failureMessage = ""
	a.failureMessageExpiry = 0

	a.logger.Debug("round continued", "at", now)
	return a.record(Outcome{Kind: KindContinueRound, At: now}), nil
}

func (a *Arbiter) inWindow(now time.Duration) bool {
	return a.clock.Phase() == rotation.PhasePause && a.clock.ElapsedInPhase(now) <= a.clock.PauseWindow()
}

// checkTime rejects times before the clock's last tick or before the last
// attempt that changed state.
func (a *Arbiter) checkTime(now time.Duration) error {
	if err := a.clock.CheckTime(now); err != nil {
		return err
	}
	if now < a.lastSeen {
		return fmt.Errorf("%w: attempt at %s is earlier than %s", rotation.ErrInvalidTimestamp, now, a.lastSeen)
	}
	return nil
}

func (a *Arbiter) markAttempt(now time.Duration) {
	a.lastSeen = now
	a.lastAttempt = now
	a.attempted = true
}

func (a *Arbiter) record(outcome Outcome) Outcome {
	a.lastOutcome = outcome
	a.hasLastOutcome = true
	return outcome
}

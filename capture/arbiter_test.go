package capture

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/meghashyamc/catch2d/rotation"
)

type fakeClock struct {
	phase      rotation.Phase
	phaseStart time.Duration
	window     time.Duration
	freezeErr  error
	freezes    int
	continues  int
	lastTick   time.Duration
}

func newFakeClock(phase rotation.Phase, phaseStart time.Duration) *fakeClock {
	return &fakeClock{phase: phase, phaseStart: phaseStart, window: 200 * time.Millisecond}
}

func (f *fakeClock) Phase() rotation.Phase { return f.phase }

func (f *fakeClock) ElapsedInPhase(now time.Duration) time.Duration { return now - f.phaseStart }

func (f *fakeClock) PauseWindow() time.Duration { return f.window }

func (f *fakeClock) CheckTime(now time.Duration) error {
	if now < 0 || now < f.lastTick {
		return rotation.ErrInvalidTimestamp
	}
	return nil
}

func (f *fakeClock) Freeze(now time.Duration) error {
	if f.freezeErr != nil {
		return f.freezeErr
	}
	if f.phase != rotation.PhasePause {
		return rotation.ErrInvalidTransition
	}
	f.phase = rotation.PhaseCaughtPause
	f.phaseStart = now
	f.freezes++
	return nil
}

func (f *fakeClock) ForceContinue(now time.Duration) error {
	if f.phase != rotation.PhaseCaughtPause {
		return rotation.ErrInvalidTransition
	}
	f.phase = rotation.PhaseRolling
	f.phaseStart = now
	f.continues++
	return nil
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func newTestArbiter(t *testing.T, clock PhaseClock) *Arbiter {
	t.Helper()
	a, err := NewArbiter(clock, DefaultParams(), 0, nil)
	if err != nil {
		t.Fatalf("NewArbiter failed: %v", err)
	}
	return a
}

func mustAttempt(t *testing.T, a *Arbiter, now time.Duration) Outcome {
	t.Helper()
	outcome, err := a.HandleAttempt(now)
	if err != nil {
		t.Fatalf("HandleAttempt(%s) failed: %v", now, err)
	}
	return outcome
}

func TestNewArbiterValidation(t *testing.T) {
	if _, err := NewArbiter(nil, DefaultParams(), 0, nil); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams without a clock, got %v", err)
	}

	params := DefaultParams()
	params.Taunt = ""
	if _, err := NewArbiter(newFakeClock(rotation.PhaseRolling, 0), params, 0, nil); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams for empty taunt, got %v", err)
	}

	params = DefaultParams()
	params.CaptureCooldown = -time.Second
	if _, err := NewArbiter(newFakeClock(rotation.PhaseRolling, 0), params, 0, nil); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams for negative cooldown, got %v", err)
	}
}

func TestAttemptWindow(t *testing.T) {
	tests := []struct {
		name  string
		phase rotation.Phase
		at    time.Duration
		want  Kind
	}{
		{"start of pause", rotation.PhasePause, ms(1000), KindSuccess},
		{"inside pause", rotation.PhasePause, ms(1150), KindSuccess},
		{"window boundary is inclusive", rotation.PhasePause, ms(1200), KindSuccess},
		{"just after window", rotation.PhasePause, ms(1201), KindFailure},
		{"rolling", rotation.PhaseRolling, ms(1100), KindFailure},
		{"big rotation", rotation.PhaseBigRotation, ms(1100), KindFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newFakeClock(tt.phase, ms(1000))
			a := newTestArbiter(t, clock)

			outcome := mustAttempt(t, a, tt.at)
			if outcome.Kind != tt.want {
				t.Errorf("expected %s, got %s", tt.want, outcome.Kind)
			}
			if tt.want == KindSuccess && clock.phase != rotation.PhaseCaughtPause {
				t.Errorf("expected success to freeze the clock, phase is %s", clock.phase)
			}
			if tt.want == KindFailure && clock.freezes != 0 {
				t.Errorf("expected failure not to freeze the clock")
			}
		})
	}
}

func TestSuccessReportsRoundStats(t *testing.T) {
	clock := newFakeClock(rotation.PhaseRolling, 0)
	a := newTestArbiter(t, clock)

	mustAttempt(t, a, ms(100))
	mustAttempt(t, a, ms(1700))

	clock.phase = rotation.PhasePause
	clock.phaseStart = ms(3300)
	outcome := mustAttempt(t, a, ms(3350))

	if outcome.Kind != KindSuccess {
		t.Fatalf("expected success, got %s", outcome.Kind)
	}
	if outcome.ElapsedRound != ms(3350) {
		t.Errorf("expected elapsed round 3.35s, got %s", outcome.ElapsedRound)
	}
	if outcome.FailureCount != 2 {
		t.Errorf("expected 2 failures, got %d", outcome.FailureCount)
	}
	if a.FailureCount() != 2 {
		t.Errorf("expected failure count kept until continuation, got %d", a.FailureCount())
	}

	last, ok := a.LastOutcome()
	if !ok || last != outcome {
		t.Errorf("expected last outcome %+v, got %+v (ok %v)", outcome, last, ok)
	}
}

func TestCooldownDropsSecondAttempt(t *testing.T) {
	clock := newFakeClock(rotation.PhaseRolling, 0)
	a := newTestArbiter(t, clock)

	first := mustAttempt(t, a, 0)
	if first.Kind != KindFailure {
		t.Fatalf("expected failure, got %s", first.Kind)
	}

	second := mustAttempt(t, a, ms(500))
	if second.Kind != KindDropped {
		t.Errorf("expected dropped, got %s", second.Kind)
	}
	if a.FailureCount() != 1 {
		t.Errorf("expected failure count 1, got %d", a.FailureCount())
	}
	if last, _ := a.LastOutcome(); last != first {
		t.Errorf("dropped attempt replaced the last outcome: %+v", last)
	}
	if got := a.CooldownRemaining(ms(500)); got != ms(1000) {
		t.Errorf("expected 1s of cooldown left, got %s", got)
	}

	third := mustAttempt(t, a, ms(1500))
	if third.Kind != KindFailure || third.FailureCount != 2 {
		t.Errorf("expected second failure once cooldown elapsed, got %+v", third)
	}
}

func TestCooldownDropDoesNotContestWindow(t *testing.T) {
	clock := newFakeClock(rotation.PhaseRolling, 0)
	a := newTestArbiter(t, clock)

	mustAttempt(t, a, 0)

	clock.phase = rotation.PhasePause
	clock.phaseStart = ms(400)
	outcome := mustAttempt(t, a, ms(450))

	if outcome.Kind != KindDropped {
		t.Errorf("expected dropped, got %s", outcome.Kind)
	}
	if clock.phase != rotation.PhasePause || clock.freezes != 0 {
		t.Errorf("dropped attempt changed the clock: phase %s freezes %d", clock.phase, clock.freezes)
	}
}

func TestContinuationIgnoresCooldown(t *testing.T) {
	clock := newFakeClock(rotation.PhasePause, 0)
	a := newTestArbiter(t, clock)

	if outcome := mustAttempt(t, a, 0); outcome.Kind != KindSuccess {
		t.Fatalf("expected success, got %s", outcome.Kind)
	}

	outcome := mustAttempt(t, a, ms(10))
	if outcome.Kind != KindContinueRound {
		t.Fatalf("expected continue round, got %s", outcome.Kind)
	}
	if clock.phase != rotation.PhaseRolling {
		t.Errorf("expected clock rolling after continuation, got %s", clock.phase)
	}
	if got := a.RoundElapsed(ms(110)); got != ms(100) {
		t.Errorf("expected round restarted at continuation, got %s elapsed", got)
	}

	// the success still counts as the last real attempt
	if outcome := mustAttempt(t, a, ms(20)); outcome.Kind != KindDropped {
		t.Errorf("expected attempt after continuation to respect cooldown, got %s", outcome.Kind)
	}
}

func TestFailureMessageGrowsAndResets(t *testing.T) {
	clock := newFakeClock(rotation.PhaseRolling, 0)
	params := DefaultParams()
	a, err := NewArbiter(clock, params, 0, nil)
	if err != nil {
		t.Fatalf("NewArbiter failed: %v", err)
	}

	var previous string
	for i := 0; i < 5; i++ {
		now := time.Duration(i) * params.CaptureCooldown
		outcome := mustAttempt(t, a, now)
		if outcome.Kind != KindFailure {
			t.Fatalf("attempt %d: expected failure, got %s", i, outcome.Kind)
		}
		want := params.Taunt + strings.Repeat(params.TauntSuffix, i)
		if outcome.Message != want {
			t.Errorf("attempt %d: expected message %q, got %q", i, want, outcome.Message)
		}
		if !strings.HasPrefix(outcome.Message, previous) || len(outcome.Message) <= len(previous) {
			t.Errorf("attempt %d: message did not grow from %q to %q", i, previous, outcome.Message)
		}
		previous = outcome.Message
	}

	start := 5 * params.CaptureCooldown
	clock.phase = rotation.PhasePause
	clock.phaseStart = start
	mustAttempt(t, a, start)
	if msg, ok := a.FailureMessage(start); !ok || msg != previous {
		t.Errorf("expected message kept through the catch, got %q (visible %v)", msg, ok)
	}

	mustAttempt(t, a, start+ms(1))
	if msg, ok := a.FailureMessage(start + ms(1)); ok || msg != "" {
		t.Errorf("expected message cleared on continuation, got %q", msg)
	}
	if a.FailureCount() != 0 {
		t.Errorf("expected failure count reset, got %d", a.FailureCount())
	}

	outcome := mustAttempt(t, a, start+2*params.CaptureCooldown)
	if outcome.Message != params.Taunt {
		t.Errorf("expected fresh taunt in the new round, got %q", outcome.Message)
	}
}

func TestFailureMessageExpires(t *testing.T) {
	a := newTestArbiter(t, newFakeClock(rotation.PhaseRolling, 0))

	if _, ok := a.FailureMessage(0); ok {
		t.Error("expected no message before any failure")
	}

	mustAttempt(t, a, ms(100))
	if _, ok := a.FailureMessage(ms(2100)); !ok {
		t.Error("expected message visible at its expiry instant")
	}
	if _, ok := a.FailureMessage(ms(2101)); ok {
		t.Error("expected message hidden after expiry")
	}
}

func TestClockErrorsPropagate(t *testing.T) {
	clock := newFakeClock(rotation.PhasePause, 0)
	clock.freezeErr = rotation.ErrInvalidTimestamp
	a := newTestArbiter(t, clock)

	if _, err := a.HandleAttempt(ms(50)); !errors.Is(err, rotation.ErrInvalidTimestamp) {
		t.Fatalf("expected ErrInvalidTimestamp, got %v", err)
	}
	if _, ok := a.LastOutcome(); ok {
		t.Error("failed attempt must not record an outcome")
	}

	clock.freezeErr = nil
	if outcome := mustAttempt(t, a, ms(60)); outcome.Kind != KindSuccess {
		t.Errorf("expected the failed attempt not to start the cooldown, got %s", outcome.Kind)
	}
}

func TestAttemptRejectsTimeGoingBackwards(t *testing.T) {
	tests := []struct {
		name     string
		lastTick time.Duration
		previous time.Duration
		at       time.Duration
	}{
		{"negative", 0, -1, ms(-5)},
		{"before last tick", ms(500), -1, ms(100)},
		{"before last attempt", 0, ms(2000), ms(1900)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newFakeClock(rotation.PhaseRolling, 0)
			a := newTestArbiter(t, clock)
			if tt.previous >= 0 {
				mustAttempt(t, a, tt.previous)
			}
			clock.lastTick = tt.lastTick
			failures := a.FailureCount()

			if _, err := a.HandleAttempt(tt.at); !errors.Is(err, rotation.ErrInvalidTimestamp) {
				t.Fatalf("expected ErrInvalidTimestamp, got %v", err)
			}
			if a.FailureCount() != failures {
				t.Errorf("expected failure count %d unchanged, got %d", failures, a.FailureCount())
			}
		})
	}
}

func TestAttemptBeforeLastTickWithRotationClock(t *testing.T) {
	clock, err := rotation.NewClock(rotation.DefaultParams(), neverRotate{}, 0, nil)
	if err != nil {
		t.Fatalf("NewClock failed: %v", err)
	}
	a := newTestArbiter(t, clock)

	if err := clock.Tick(ms(500)); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if _, err := a.HandleAttempt(ms(100)); !errors.Is(err, rotation.ErrInvalidTimestamp) {
		t.Fatalf("expected ErrInvalidTimestamp, got %v", err)
	}
	if a.FailureCount() != 0 {
		t.Errorf("expected no failure recorded, got %d", a.FailureCount())
	}
	if _, ok := a.LastOutcome(); ok {
		t.Error("rejected attempt must not record an outcome")
	}
}

func TestWithRotationClock(t *testing.T) {
	params := rotation.DefaultParams()
	params.RollDuration = time.Second
	params.PauseDuration = 200 * time.Millisecond

	tests := []struct {
		name string
		at   time.Duration
		want Kind
	}{
		{"inside window", ms(1150), KindSuccess},
		{"window closed", ms(1250), KindFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock, err := rotation.NewClock(params, neverRotate{}, 0, nil)
			if err != nil {
				t.Fatalf("NewClock failed: %v", err)
			}
			a := newTestArbiter(t, clock)

			if err := clock.Tick(ms(1000)); err != nil {
				t.Fatalf("Tick failed: %v", err)
			}
			if clock.Phase() != rotation.PhasePause {
				t.Fatalf("expected pause at 1.0s, got %s", clock.Phase())
			}

			outcome := mustAttempt(t, a, tt.at)
			if outcome.Kind != tt.want {
				t.Errorf("expected %s, got %s", tt.want, outcome.Kind)
			}
		})
	}
}

type neverRotate struct{}

func (neverRotate) Float64() float64 { return 0.99 }

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		KindDropped:       "dropped",
		KindSuccess:       "success",
		KindFailure:       "failure",
		KindContinueRound: "continue_round",
		Kind(9):           "kind(9)",
	}
	for kind, want := range tests {
		if kind.String() != want {
			t.Errorf("expected %q, got %q", want, kind.String())
		}
	}
}

package rotation

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/meghashyamc/catch2d/logger"
)

// RandomSource decides the big rotation branch. *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// State is a read-only view of the clock at a point in time.
type State struct {
	Phase               Phase
	Angle               float64
	Elapsed             time.Duration
	Remaining           time.Duration
	BigRotationCooldown time.Duration
	Caught              bool
}

// Clock is the rotation state machine. Time is always supplied by the caller as
// a monotonic offset from an arbitrary origin, so the clock never reads a real
// timer. A Clock is not safe for concurrent use.
type Clock struct {
	params Params
	random RandomSource
	logger logger.Logger

	phase           Phase
	phaseStart      time.Duration
	baseAngle       float64
	angle           float64
	lastBigRotation time.Duration
	caught          bool

	lastSeen     time.Duration
	bigRotations uint
}

// NewClock creates a clock in the Rolling phase at angle 0, starting at start.
// The first Rolling completion is already eligible for a big rotation.
func NewClock(params Params, random RandomSource, start time.Duration, log logger.Logger) (*Clock, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if start < 0 {
		return nil, fmt.Errorf("%w: start %s is negative", ErrInvalidTimestamp, start)
	}
	if random == nil {
		random = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if log == nil {
		log = logger.Discard()
	}

	c := &Clock{
		params:          params,
		random:          random,
		logger:          log,
		phase:           PhaseRolling,
		phaseStart:      start,
		lastBigRotation: start - params.BigRotCooldown,
		lastSeen:        start,
	}

	c.logger.Debug("rotation clock created", "start", start, "params", params)
	return c, nil
}

// Tick advances the state machine to now. At most one phase transition happens
// per tick and the new phase starts at now.
func (c *Clock) Tick(now time.Duration) error {
	if err := c.observe(now); err != nil {
		return err
	}

	elapsed := now - c.phaseStart

	if c.phase.Sweeping() {
		c.sweep(elapsed, now)
		return nil
	}

	switch c.phase {
	case PhasePause:
		c.angle = c.baseAngle
		if elapsed >= c.params.PauseDuration && !c.caught {
			c.enter(PhaseRolling, now)
		}

	case PhaseCaughtPause:
		c.angle = c.baseAngle
	}

	return nil
}

// Freeze moves Pause into CaughtPause. The caller must already have checked
// that now falls inside the pause window.
func (c *Clock) Freeze(now time.Duration) error {
	if err := c.CheckTime(now); err != nil {
		return err
	}
	if c.phase != PhasePause {
		return fmt.Errorf("%w: freeze requested in phase %s", ErrInvalidTransition, c.phase)
	}
	if elapsed := now - c.phaseStart; elapsed > c.params.PauseDuration {
		return fmt.Errorf("%w: freeze requested %s into a %s pause window", ErrInvalidTransition, elapsed, c.params.PauseDuration)
	}

	c.lastSeen = now
	c.caught = true
	c.angle = c.baseAngle
	c.enter(PhaseCaughtPause, now)
	return nil
}

// ForceContinue resumes rolling from the frozen angle after a catch.
func (c *Clock) ForceContinue(now time.Duration) error {
	if err := c.CheckTime(now); err != nil {
		return err
	}
	if c.phase != PhaseCaughtPause {
		return fmt.Errorf("%w: continue requested in phase %s", ErrInvalidTransition, c.phase)
	}

	c.lastSeen = now
	c.caught = false
	c.snap()
	c.enter(PhaseRolling, now)
	return nil
}

func (c *Clock) Phase() Phase {
	return c.phase
}

// Angle returns the angle computed by the latest tick, in degrees.
func (c *Clock) Angle() float64 {
	return c.angle
}

func (c *Clock) BigRotations() uint {
	return c.bigRotations
}

func (c *Clock) ElapsedInPhase(now time.Duration) time.Duration {
	return max(0, now-c.phaseStart)
}

// Remaining is the time left in the current phase. CaughtPause never times out
// and reports zero.
func (c *Clock) Remaining(now time.Duration) time.Duration {
	if c.phase == PhaseCaughtPause {
		return 0
	}
	return max(0, c.params.duration(c.phase)-c.ElapsedInPhase(now))
}

// BigRotationCooldown is the time until a big rotation becomes eligible again.
func (c *Clock) BigRotationCooldown(now time.Duration) time.Duration {
	return max(0, c.params.BigRotCooldown-(now-c.lastBigRotation))
}

func (c *Clock) Snapshot(now time.Duration) State {
	return State{
		Phase:               c.phase,
		Angle:               c.angle,
		Elapsed:             c.ElapsedInPhase(now),
		Remaining:           c.Remaining(now),
		BigRotationCooldown: c.BigRotationCooldown(now),
		Caught:              c.caught,
	}
}

// PauseWindow is how long after entering Pause a capture can still succeed.
func (c *Clock) PauseWindow() time.Duration {
	return c.params.PauseDuration
}

// sweep moves the angle along a Rolling or BigRotation and leaves the phase
// once it is complete.
func (c *Clock) sweep(elapsed, now time.Duration) {
	progress := clampValue(float64(elapsed)/float64(c.params.duration(c.phase)), 0, 1)
	c.angle = c.baseAngle + progress*c.params.sweep(c.phase)
	if progress < 1 {
		return
	}

	c.snap()
	if c.phase == PhaseBigRotation {
		c.enter(PhaseRolling, now)
		return
	}
	c.branch(now)
}

func (c *Clock) branch(now time.Duration) {
	eligible := now-c.lastBigRotation >= c.params.BigRotCooldown
	if eligible && c.random.Float64() < bigRotationChance {
		c.lastBigRotation = now
		c.bigRotations++
		c.enter(PhaseBigRotation, now)
		return
	}
	c.enter(PhasePause, now)
}

// snap folds the current angle into the base angle so the next phase
// continues from where this one stopped.
func (c *Clock) snap() {
	c.baseAngle = normalizeAngle(c.angle)
	c.angle = c.baseAngle
}

func (c *Clock) enter(phase Phase, now time.Duration) {
	c.logger.Debug("phase changed", "from", c.phase.String(), "to", phase.String(), "at", now, "baseAngle", c.baseAngle)
	c.phase = phase
	c.phaseStart = now
}

func (c *Clock) observe(now time.Duration) error {
	if err := c.CheckTime(now); err != nil {
		return err
	}
	c.lastSeen = now
	return nil
}

// CheckTime rejects a negative now or one earlier than the latest accepted
// tick or transition.
func (c *Clock) CheckTime(now time.Duration) error {
	if now < 0 {
		return fmt.Errorf("%w: %s is negative", ErrInvalidTimestamp, now)
	}
	if now < c.lastSeen {
		return fmt.Errorf("%w: %s is earlier than %s", ErrInvalidTimestamp, now, c.lastSeen)
	}
	return nil
}

package rotation

import (
	"fmt"
	"time"
)

// bigRotationChance is the probability of a big rotation once the cooldown allows one.
const bigRotationChance = 0.5

type Params struct {
	RollDuration   time.Duration
	PauseDuration  time.Duration
	BigRotDuration time.Duration
	BigRotCooldown time.Duration
	RollAngle      float64 // degrees swept by one roll
	BigRotAngle    float64 // degrees swept by one big rotation
}

func DefaultParams() Params {
	return Params{
		RollDuration:   1000 * time.Millisecond,
		PauseDuration:  200 * time.Millisecond,
		BigRotDuration: 1200 * time.Millisecond,
		BigRotCooldown: 6 * time.Second,
		RollAngle:      360,
		BigRotAngle:    720,
	}
}

func (p Params) Validate() error {
	if p.RollDuration <= 0 {
		return fmt.Errorf("%w: roll duration must be positive, got %s", ErrInvalidParams, p.RollDuration)
	}
	if p.PauseDuration <= 0 {
		return fmt.Errorf("%w: pause duration must be positive, got %s", ErrInvalidParams, p.PauseDuration)
	}
	if p.BigRotDuration <= 0 {
		return fmt.Errorf("%w: big rotation duration must be positive, got %s", ErrInvalidParams, p.BigRotDuration)
	}
	if p.BigRotCooldown < 0 {
		return fmt.Errorf("%w: big rotation cooldown must not be negative, got %s", ErrInvalidParams, p.BigRotCooldown)
	}
	return nil
}

// duration returns how long a timed phase lasts. CaughtPause has no timeout.
func (p Params) duration(phase Phase) time.Duration {
	switch phase {
	case PhaseRolling:
		return p.RollDuration
	case PhasePause:
		return p.PauseDuration
	case PhaseBigRotation:
		return p.BigRotDuration
	}
	return 0
}

func (p Params) sweep(phase Phase) float64 {
	switch phase {
	case PhaseRolling:
		return p.RollAngle
	case PhaseBigRotation:
		return p.BigRotAngle
	}
	return 0
}

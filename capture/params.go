package capture

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidParams = errors.New("invalid capture parameters")

const (
	DefaultTaunt       = "Can't even catch a backstep? Small fry"
	DefaultTauntSuffix = " small fry"
)

type Params struct {
	CaptureCooldown        time.Duration
	FailureMessageDuration time.Duration
	Taunt                  string
	TauntSuffix            string
}

func DefaultParams() Params {
	return Params{
		CaptureCooldown:        1500 * time.Millisecond,
		FailureMessageDuration: 2000 * time.Millisecond,
		Taunt:                  DefaultTaunt,
		TauntSuffix:            DefaultTauntSuffix,
	}
}

func (p Params) Validate() error {
	if p.CaptureCooldown < 0 {
		return fmt.Errorf("%w: capture cooldown must not be negative, got %s", ErrInvalidParams, p.CaptureCooldown)
	}
	if p.FailureMessageDuration < 0 {
		return fmt.Errorf("%w: failure message duration must not be negative, got %s", ErrInvalidParams, p.FailureMessageDuration)
	}
	if p.Taunt == "" {
		return fmt.Errorf("%w: taunt must not be empty", ErrInvalidParams)
	}
	return nil
}

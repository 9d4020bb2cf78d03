package rotation

type Phase int

const (
	PhaseRolling Phase = iota
	PhasePause
	PhaseBigRotation
	PhaseCaughtPause
)

func (p Phase) String() string {
	switch p {
	case PhaseRolling:
		return "rolling"
	case PhasePause:
		return "pause"
	case PhaseBigRotation:
		return "big_rotation"
	case PhaseCaughtPause:
		return "caught_pause"
	}
	return "unknown"
}

// Sweeping reports whether the phase advances the angle over time.
func (p Phase) Sweeping() bool {
	return p == PhaseRolling || p == PhaseBigRotation
}

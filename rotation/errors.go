package rotation

import "errors"

var (
	// ErrInvalidTransition is returned when a caller requests a phase change
	// the current phase does not allow.
	ErrInvalidTransition = errors.New("invalid phase transition")

	// ErrInvalidTimestamp is returned for negative timestamps or timestamps
	// earlier than one the clock has already observed.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	ErrInvalidParams = errors.New("invalid rotation parameters")
)

package capture

import (
	"fmt"
	"time"
)

type Kind int

const (
	// KindDropped marks an attempt swallowed by the attempt cooldown. It changes
	// no state and is never reported as the pending outcome.
	KindDropped Kind = iota
	KindSuccess
	KindFailure
	KindContinueRound
)

func (k Kind) String() string {
	switch k {
	case KindDropped:
		return "dropped"
	case KindSuccess:
		return "success"
	case KindFailure:
		return "failure"
	case KindContinueRound:
		return "continue_round"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Outcome is the result of one attempt. ElapsedRound and FailureCount are
// snapshots taken when the outcome was produced.
type Outcome struct {
	Kind         Kind
	At           time.Duration
	ElapsedRound time.Duration // set for KindSuccess
	FailureCount uint          // set for KindSuccess and KindFailure
	Message      string        // set for KindFailure
}

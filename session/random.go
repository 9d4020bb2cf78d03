package session

import (
	"math/rand/v2"
	"time"
)

// NewRandom returns a PCG source for the big rotation branch. A zero seed
// picks one from the wall clock.
func NewRandom(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed))
}

package session

import (
	"fmt"
	"time"

	"github.com/meghashyamc/catch2d/capture"
	"gopkg.in/yaml.v3"
)

// Report summarizes a session. Times are in seconds.
type Report struct {
	Ticks                uint    `yaml:"ticks"`
	ElapsedSeconds       float64 `yaml:"elapsed_seconds"`
	Attempts             uint    `yaml:"attempts"`
	Dropped              uint    `yaml:"dropped"`
	Catches              uint    `yaml:"catches"`
	Failures             uint    `yaml:"failures"`
	Continues            uint    `yaml:"continues"`
	BigRotations         uint    `yaml:"big_rotations"`
	BestCatchSeconds     float64 `yaml:"best_catch_seconds,omitempty"`
	MeanCatchSeconds     float64 `yaml:"mean_catch_seconds,omitempty"`
	MeanFailuresPerCatch float64 `yaml:"mean_failures_per_catch,omitempty"`
}

func (r Report) YAML() ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return data, nil
}

type stats struct {
	start time.Duration
	last  time.Duration
	ticks uint

	attempts  uint
	dropped   uint
	catches   uint
	failures  uint
	continues uint

	bestCatch       time.Duration
	totalCatch      time.Duration
	failuresInCatch uint
}

func (s *stats) record(outcome capture.Outcome) {
	if outcome.At > s.last {
		s.last = outcome.At
	}

	switch outcome.Kind {
	case capture.KindDropped:
		s.attempts++
		s.dropped++
	case capture.KindFailure:
		s.attempts++
		s.failures++
	case capture.KindSuccess:
		s.attempts++
		s.catches++
		s.totalCatch += outcome.ElapsedRound
		s.failuresInCatch += outcome.FailureCount
		if s.catches == 1 || outcome.ElapsedRound < s.bestCatch {
			s.bestCatch = outcome.ElapsedRound
		}
	case capture.KindContinueRound:
		s.continues++
	}
}

func (s *stats) report(bigRotations uint) Report {
	r := Report{
		Ticks:          s.ticks,
		ElapsedSeconds: (s.last - s.start).Seconds(),
		Attempts:       s.attempts,
		Dropped:        s.dropped,
		Catches:        s.catches,
		Failures:       s.failures,
		Continues:      s.continues,
		BigRotations:   bigRotations,
	}
	if s.catches > 0 {
		r.BestCatchSeconds = s.bestCatch.Seconds()
		r.MeanCatchSeconds = s.totalCatch.Seconds() / float64(s.catches)
		r.MeanFailuresPerCatch = float64(s.failuresInCatch) / float64(s.catches)
	}
	return r
}

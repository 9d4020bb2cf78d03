package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/meghashyamc/catch2d/capture"
)

const (
	sampleRate = beep.SampleRate(44100)
	noteLength = 80 * time.Millisecond
	cueVolume  = 0.4
)

type note struct {
	freq     float64
	duration time.Duration
}

var cueNotes = map[capture.Kind][]note{
	capture.KindSuccess:       {{660, noteLength}, {880, noteLength}, {1320, 2 * noteLength}},
	capture.KindFailure:       {{180, 2 * noteLength}, {120, 2 * noteLength}},
	capture.KindContinueRound: {{440, noteLength}},
}

// buildCue renders the notes for kind into one streamer. Dropped attempts have
// no cue.
func buildCue(kind capture.Kind) (beep.Streamer, error) {
	notes, ok := cueNotes[kind]
	if !ok {
		return nil, nil
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		tone, err := generators.SineTone(sampleRate, n.freq)
		if err != nil {
			return nil, fmt.Errorf("failed to create %.0fHz tone: %w", n.freq, err)
		}
		parts = append(parts, beep.Take(sampleRate.N(n.duration), tone))
	}

	return withVolume(beep.Seq(parts...), cueVolume), nil
}

func cueLength(kind capture.Kind) int {
	total := 0
	for _, n := range cueNotes[kind] {
		total += sampleRate.N(n.duration)
	}
	return total
}

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

package audio

import (
	"math"
	"testing"

	"github.com/meghashyamc/catch2d/capture"
)

func drain(t *testing.T, kind capture.Kind) (int, float64) {
	t.Helper()
	cue, err := buildCue(kind)
	if err != nil {
		t.Fatalf("buildCue(%s) failed: %v", kind, err)
	}

	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for {
		n, ok := cue.Stream(buf)
		for _, sample := range buf[:n] {
			peak = math.Max(peak, math.Abs(sample[0]))
		}
		total += n
		if !ok || n == 0 {
			break
		}
	}
	return total, peak
}

func TestCueLengths(t *testing.T) {
	for _, kind := range []capture.Kind{capture.KindSuccess, capture.KindFailure, capture.KindContinueRound} {
		t.Run(kind.String(), func(t *testing.T) {
			total, peak := drain(t, kind)
			if want := cueLength(kind); total != want {
				t.Errorf("expected %d samples, got %d", want, total)
			}
			if peak == 0 || peak > cueVolume+1e-6 {
				t.Errorf("expected peak in (0, %f], got %f", cueVolume, peak)
			}
		})
	}
}

func TestDroppedHasNoCue(t *testing.T) {
	cue, err := buildCue(capture.KindDropped)
	if err != nil || cue != nil {
		t.Errorf("expected no cue for dropped attempts, got %v (err %v)", cue, err)
	}
}

func TestPlayerSilentUntilInitialized(t *testing.T) {
	p := NewPlayer(nil)
	p.OnOutcome(capture.Outcome{Kind: capture.KindSuccess})
	p.Close()

	if p.mixer.Len() != 0 {
		t.Errorf("expected nothing queued before Initialize, got %d streamers", p.mixer.Len())
	}
}

package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/meghashyamc/catch2d/capture"
	"github.com/meghashyamc/catch2d/logger"
)

// Player plays a short cue for every capture outcome. Until Initialize
// succeeds it stays silent, so the game runs the same without a sound device.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	logger      logger.Logger
}

func NewPlayer(log logger.Logger) *Player {
	if log == nil {
		log = logger.Discard()
	}
	return &Player{
		mixer:  &beep.Mixer{},
		logger: log,
	}
}

// Initialize opens the speaker.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// OnOutcome queues the cue for outcome.
func (p *Player) OnOutcome(outcome capture.Outcome) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	cue, err := buildCue(outcome.Kind)
	if err != nil {
		p.logger.Warn("failed to build sound cue", "outcome", outcome.Kind.String(), "err", err)
		return
	}
	if cue == nil {
		return
	}

	speaker.Lock()
	p.mixer.Add(cue)
	speaker.Unlock()
}

func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/ayusman/pinchflap/internal/game"
)

// Player mixes game cues onto the default audio device. A Player whose
// device failed to open stays silent; the game runs without sound.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	log         zerolog.Logger
}

// NewPlayer creates a player. volume is a linear gain, typically 0 to 1.
func NewPlayer(volume float64, log zerolog.Logger) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
		log:    log.With().Str("component", "audio").Logger(),
	}
}

// Init opens the speaker and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("failed to open audio device: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	p.log.Debug().Float64("volume", p.volume).Msg("Audio ready")
	return nil
}

// Play queues the cues for one simulation step. It is a no-op until Init
// succeeds.
func (p *Player) Play(res game.StepResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	cues := p.cues(res)
	if len(cues) == 0 {
		return
	}
	speaker.Lock()
	p.mixer.Add(cues...)
	speaker.Unlock()
}

// cues picks the sounds for a step. A crash drowns out everything else.
func (p *Player) cues(res game.StepResult) []beep.Streamer {
	if res.Ended {
		return []beep.Streamer{hitSound(sampleRate, p.volume)}
	}
	var out []beep.Streamer
	if res.Started {
		out = append(out, startSound(sampleRate, p.volume))
	}
	if res.Flapped {
		out = append(out, flapSound(sampleRate, p.volume))
	}
	return out
}

// Close stops playback and releases the device.
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

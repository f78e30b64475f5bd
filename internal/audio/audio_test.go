package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/rs/zerolog"

	"github.com/ayusman/pinchflap/internal/game"
)

func drain(t *testing.T, s beep.Streamer) (total int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			for _, v := range buf[i] {
				if v > peak {
					peak = v
				}
				if -v > peak {
					peak = -v
				}
			}
		}
		total += n
		if !ok {
			return total, peak
		}
		if total > int(sampleRate)*5 {
			t.Fatal("streamer did not end")
		}
	}
}

func TestSweep(t *testing.T) {
	s := newSweep(sampleRate, 600, 1200, 70*time.Millisecond)

	total, peak := drain(t, s)
	if want := sampleRate.N(70 * time.Millisecond); total != want {
		t.Errorf("sweep length = %d, want %d", total, want)
	}
	if peak > 1 || peak == 0 {
		t.Errorf("sweep peak = %f, want (0, 1]", peak)
	}
	if s.Err() != nil {
		t.Errorf("Err() = %v", s.Err())
	}
}

func TestCueLengths(t *testing.T) {
	tests := []struct {
		name string
		s    beep.Streamer
		want time.Duration
	}{
		{"flap", flapSound(sampleRate, 1), 70 * time.Millisecond},
		{"start", startSound(sampleRate, 1), 60 * time.Millisecond},
		{"hit", hitSound(sampleRate, 1), 270 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, peak := drain(t, tt.s)
			want := sampleRate.N(tt.want)
			if total < want-2 || total > want+2 {
				t.Errorf("length = %d, want ~%d", total, want)
			}
			if peak == 0 {
				t.Error("cue is silent")
			}
		})
	}
}

func TestWithVolume_Silent(t *testing.T) {
	_, peak := drain(t, flapSound(sampleRate, 0))
	if peak != 0 {
		t.Errorf("peak = %f, want silence", peak)
	}
}

func TestWithVolume_Scales(t *testing.T) {
	_, full := drain(t, flapSound(sampleRate, 1))
	_, half := drain(t, flapSound(sampleRate, 0.5))
	if half >= full {
		t.Errorf("half volume peak %f >= full volume peak %f", half, full)
	}
}

func TestPlayer_Cues(t *testing.T) {
	p := NewPlayer(0.3, zerolog.Nop())

	tests := []struct {
		name string
		res  game.StepResult
		want int
	}{
		{"nothing", game.StepResult{}, 0},
		{"flap", game.StepResult{Flapped: true}, 1},
		{"start and flap", game.StepResult{Started: true, Flapped: true}, 2},
		{"crash", game.StepResult{Flapped: true, Ended: true, Cause: game.CausePipe}, 1},
		{"reset", game.StepResult{Reset: true}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(p.cues(tt.res)); got != tt.want {
				t.Errorf("cues() = %d streamers, want %d", got, tt.want)
			}
		})
	}
}

func TestPlayer_Uninitialized(t *testing.T) {
	p := NewPlayer(0.3, zerolog.Nop())

	p.Play(game.StepResult{Flapped: true})
	if p.mixer.Len() != 0 {
		t.Errorf("mixer has %d streamers before Init", p.mixer.Len())
	}

	// Close without Init must not touch the speaker.
	p.Close()
}

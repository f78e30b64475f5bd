// Package audio plays short synthesized cues for game events.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

const sampleRate = beep.SampleRate(44100)

// sweep is a sine tone gliding linearly from one frequency to another with
// a linear fade-out. It ends after n samples.
type sweep struct {
	from, to float64
	n        int
	pos      int
	phase    float64
	sr       beep.SampleRate
}

func newSweep(sr beep.SampleRate, from, to float64, d time.Duration) *sweep {
	return &sweep{from: from, to: to, n: sr.N(d), sr: sr}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= s.n {
		return 0, false
	}
	for i := range samples {
		if s.pos >= s.n {
			return i, true
		}
		progress := float64(s.pos) / float64(s.n)
		freq := s.from + (s.to-s.from)*progress
		s.phase += 2 * math.Pi * freq / float64(s.sr)
		v := math.Sin(s.phase) * (1 - progress)
		samples[i][0] = v
		samples[i][1] = v
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// withVolume scales a streamer linearly. Zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func tone(sr beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		return beep.Silence(sr.N(d))
	}
	return beep.Take(sr.N(d), sine)
}

// flapSound is a quick upward chirp.
func flapSound(sr beep.SampleRate, vol float64) beep.Streamer {
	return withVolume(newSweep(sr, 600, 1200, 70*time.Millisecond), vol)
}

// startSound is a single short blip.
func startSound(sr beep.SampleRate, vol float64) beep.Streamer {
	return withVolume(tone(sr, 880, 60*time.Millisecond), vol*0.6)
}

// hitSound is two falling low tones.
func hitSound(sr beep.SampleRate, vol float64) beep.Streamer {
	return withVolume(beep.Seq(
		tone(sr, 220, 90*time.Millisecond),
		tone(sr, 110, 180*time.Millisecond),
	), vol)
}

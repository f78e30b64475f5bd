package game

import (
	"errors"
	"testing"
)

func TestTuning_Validate(t *testing.T) {
	if err := DefaultTuning().Validate(); err != nil {
		t.Fatalf("default tuning invalid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Tuning)
	}{
		{"gap wider than playfield", func(t *Tuning) { t.Obstacles.Gap = 600 }},
		{"gap shorter than actor", func(t *Tuning) { t.Obstacles.Gap = 30 }},
		{"inverted gap range", func(t *Tuning) { t.Obstacles.MinGapCenter, t.Obstacles.MaxGapCenter = 400, 200 }},
		{"upper barrier leaves playfield", func(t *Tuning) { t.Obstacles.MinGapCenter = 50 }},
		{"lower barrier below ground", func(t *Tuning) { t.Obstacles.MaxGapCenter = 500 }},
		{"pipes too short", func(t *Tuning) { t.Obstacles.BaseHeight = 100 }},
		{"downward flap", func(t *Tuning) { t.Actor.FlapVelocity = 100 }},
		{"zero gravity", func(t *Tuning) { t.Actor.Gravity = 0 }},
		{"zero cadence", func(t *Tuning) { t.Obstacles.SpawnCadence = 0 }},
		{"zero speed", func(t *Tuning) { t.Obstacles.Speed = 0 }},
		{"ground below screen", func(t *Tuning) { t.World.GroundY = 700 }},
		{"actor starts underground", func(t *Tuning) { t.Actor.StartY = 560 }},
		{"spawn inside screen", func(t *Tuning) { t.Obstacles.SpawnX = 200 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tuning := DefaultTuning()
			tt.mutate(&tuning)

			err := tuning.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalidTuning) {
				t.Errorf("error %v does not wrap ErrInvalidTuning", err)
			}
		})
	}
}

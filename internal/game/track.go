package game

import "math/rand/v2"

// TrackStep reports what happened to the track during one step.
type TrackStep struct {
	Spawned bool
	Retired bool
}

// Track is the FIFO queue of obstacles. Obstacles share one speed and spawn
// from the same x, so insertion order is also left-to-right order and only
// the front obstacle can ever leave the screen or touch the actor first.
type Track struct {
	obstacles    []Obstacle
	spawnCounter int

	tuning Tuning
	rng    *rand.Rand
}

// NewTrack creates an empty track. The spawn counter starts primed so the
// first step spawns an obstacle.
func NewTrack(t Tuning, rng *rand.Rand) *Track {
	return &Track{
		spawnCounter: t.Obstacles.SpawnCadence,
		tuning:       t,
		rng:          rng,
	}
}

// Step moves every obstacle, counts one tick towards the next spawn, spawns
// when the counter exceeds the cadence, and retires the front obstacle once
// it has fully left the screen.
func (tr *Track) Step(dt float64) TrackStep {
	var res TrackStep

	for i := range tr.obstacles {
		tr.obstacles[i].Step(dt)
	}

	tr.spawnCounter++
	if tr.spawnCounter > tr.tuning.Obstacles.SpawnCadence {
		tr.obstacles = append(tr.obstacles, newObstacle(tr.tuning, tr.randomGapCenter()))
		tr.spawnCounter = 0
		res.Spawned = true
	}

	if len(tr.obstacles) > 0 && tr.obstacles[0].Right() < 0 {
		tr.obstacles = tr.obstacles[1:]
		res.Retired = true
	}

	return res
}

// randomGapCenter draws uniformly from [MinGapCenter, MaxGapCenter].
func (tr *Track) randomGapCenter() float64 {
	lo, hi := tr.tuning.Obstacles.MinGapCenter, tr.tuning.Obstacles.MaxGapCenter
	return lo + tr.rng.Float64()*(hi-lo)
}

// Front returns the oldest obstacle, the next one the actor must clear.
func (tr *Track) Front() (*Obstacle, bool) {
	if len(tr.obstacles) == 0 {
		return nil, false
	}
	return &tr.obstacles[0], true
}

// Len returns the number of obstacles on the track.
func (tr *Track) Len() int {
	return len(tr.obstacles)
}

// SpawnCounter returns the ticks counted since the last spawn.
func (tr *Track) SpawnCounter() int {
	return tr.spawnCounter
}

// Obstacles returns a copy of the queue, front first.
func (tr *Track) Obstacles() []Obstacle {
	out := make([]Obstacle, len(tr.obstacles))
	copy(out, tr.obstacles)
	return out
}

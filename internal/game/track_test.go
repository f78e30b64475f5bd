package game

import (
	"math"
	"math/rand/v2"
	"testing"
)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestTrack_SpawnCadence(t *testing.T) {
	tuning := DefaultTuning()
	tr := NewTrack(tuning, newTestRand())
	cadence := tuning.Obstacles.SpawnCadence

	if res := tr.Step(0); !res.Spawned {
		t.Fatal("expected the first step to spawn")
	}
	if tr.SpawnCounter() != 0 {
		t.Errorf("spawn counter after spawn = %d, want 0", tr.SpawnCounter())
	}

	for i := 1; i <= cadence; i++ {
		if res := tr.Step(0); res.Spawned {
			t.Fatalf("unexpected spawn %d steps after the first", i)
		}
		if tr.SpawnCounter() != i {
			t.Fatalf("spawn counter = %d, want %d", tr.SpawnCounter(), i)
		}
	}

	if res := tr.Step(0); !res.Spawned {
		t.Errorf("expected a spawn once the counter exceeds %d", cadence)
	}
	if tr.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tr.Len())
	}
}

func TestTrack_GapGeometry(t *testing.T) {
	tuning := DefaultTuning()
	tr := NewTrack(tuning, newTestRand())
	half := tuning.Obstacles.Gap / 2
	_, pipeH := tuning.PipeSize()

	for i := 0; i < 50; i++ {
		tr.spawnCounter = tuning.Obstacles.SpawnCadence
		tr.Step(0)
	}

	for i, o := range tr.Obstacles() {
		if o.GapCenter < tuning.Obstacles.MinGapCenter || o.GapCenter > tuning.Obstacles.MaxGapCenter {
			t.Errorf("obstacle %d gap center %v outside range", i, o.GapCenter)
		}
		up, low := o.Upper(), o.Lower()
		if math.Abs(up.Bottom()-(o.GapCenter-half)) > epsilon {
			t.Errorf("obstacle %d upper bottom = %v, want %v", i, up.Bottom(), o.GapCenter-half)
		}
		if math.Abs(low.Y-(o.GapCenter+half)) > epsilon {
			t.Errorf("obstacle %d lower top = %v, want %v", i, low.Y, o.GapCenter+half)
		}
		if up.Y > 0 {
			t.Errorf("obstacle %d upper barrier does not reach the top: y=%v", i, up.Y)
		}
		if low.Bottom() < tuning.World.GroundY {
			t.Errorf("obstacle %d lower barrier does not reach the ground: %v", i, low.Bottom())
		}
		if up.H != pipeH || low.H != pipeH {
			t.Errorf("obstacle %d barrier heights = %v/%v, want %v", i, up.H, low.H, pipeH)
		}
	}
}

func TestTrack_MovesAtConstantSpeed(t *testing.T) {
	tuning := DefaultTuning()
	tr := NewTrack(tuning, newTestRand())
	tr.Step(0)

	front, _ := tr.Front()
	x0, gap := front.X, front.GapCenter

	tr.Step(0.2)

	front, _ = tr.Front()
	want := x0 - tuning.Obstacles.Speed*0.2
	if math.Abs(front.X-want) > epsilon {
		t.Errorf("X = %v, want %v", front.X, want)
	}
	if front.GapCenter != gap {
		t.Errorf("gap center changed from %v to %v", gap, front.GapCenter)
	}
}

func TestTrack_FIFORetirement(t *testing.T) {
	tuning := DefaultTuning()
	tr := NewTrack(tuning, newTestRand())
	const dt = 1.0 / 60

	retired := 0
	for tick := 0; tick < 3000; tick++ {
		before := tr.Len()
		res := tr.Step(dt)
		after := tr.Len()

		if delta := after - before; delta < -1 || delta > 1 {
			t.Fatalf("tick %d: length changed by %d", tick, delta)
		}
		if res.Retired {
			retired++
		}

		obs := tr.Obstacles()
		for i := 1; i < len(obs); i++ {
			if obs[i-1].X >= obs[i].X {
				t.Fatalf("tick %d: obstacles out of order: %v then %v", tick, obs[i-1].X, obs[i].X)
			}
		}
		if front, ok := tr.Front(); ok && front.Right() < 0 {
			t.Fatalf("tick %d: off-screen obstacle left at the front after retirement", tick)
		}
	}

	if retired == 0 {
		t.Error("expected obstacles to be retired")
	}
	if tr.Len() > 3 {
		t.Errorf("Len() = %d, expected the track to stay short", tr.Len())
	}
}

package game

import "github.com/ayusman/pinchflap/internal/geom"

// ActorView is the render-facing view of the actor.
type ActorView struct {
	Bounds    geom.Rect `json:"bounds"`
	Rotation  float64   `json:"rotation"`
	Frame     int       `json:"frame"`
	VelocityY float64   `json:"velocityY"`
	Active    bool      `json:"active"`
}

// ObstacleView is the render-facing view of one obstacle.
type ObstacleView struct {
	Upper geom.Rect `json:"upper"`
	Lower geom.Rect `json:"lower"`
}

// Snapshot is a read-only copy of the simulation for renderers. It shares no
// memory with the simulation.
type Snapshot struct {
	RunID        string         `json:"runId"`
	Tick         uint64         `json:"tick"`
	State        RunState       `json:"state"`
	Cause        EndCause       `json:"cause,omitempty"`
	Actor        ActorView      `json:"actor"`
	Obstacles    []ObstacleView `json:"obstacles"`
	WorldWidth   float64        `json:"worldWidth"`
	WorldHeight  float64        `json:"worldHeight"`
	GroundY      float64        `json:"groundY"`
	GroundOffset float64        `json:"groundOffset"`
	Pinching     bool           `json:"pinching"`
	LastPinch    *geom.Point    `json:"lastPinch,omitempty"`
}

// Snapshot copies the current state for rendering.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		RunID: s.runID.String(),
		Tick:  s.tick,
		State: s.state,
		Cause: s.cause,
		Actor: ActorView{
			Bounds:    s.actor.Bounds(),
			Rotation:  s.actor.Rotation,
			Frame:     s.actor.Frame(),
			VelocityY: s.actor.VelocityY,
			Active:    s.actor.Active,
		},
		Obstacles:    make([]ObstacleView, 0, s.track.Len()),
		WorldWidth:   s.tuning.World.Width,
		WorldHeight:  s.tuning.World.Height,
		GroundY:      s.tuning.World.GroundY,
		GroundOffset: s.groundOffset,
		Pinching:     s.pinch.High(),
	}

	for _, o := range s.track.obstacles {
		snap.Obstacles = append(snap.Obstacles, ObstacleView{Upper: o.Upper(), Lower: o.Lower()})
	}
	if mid, ok := s.classifier.LastPinchMidpoint(); ok {
		snap.LastPinch = &mid
	}

	return snap
}

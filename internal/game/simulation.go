package game

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ayusman/pinchflap/internal/gesture"
)

// Input is everything an input adapter delivered for one tick.
type Input struct {
	// Events are applied in order.
	Events []Event
	// Reading is the newest camera reading, or nil when no new frame arrived
	// since the previous tick.
	Reading *gesture.Reading
}

// StepResult summarizes one tick for sound and logging collaborators.
type StepResult struct {
	Started bool
	Flapped bool
	Spawned bool
	Retired bool
	Ended   bool
	Reset   bool
	Cause   EndCause
}

// Config holds the parameters of a Simulation.
type Config struct {
	Tuning         Tuning
	PinchThreshold float64
	// Rand drives gap placement. A time-seeded source is used when nil.
	Rand   *rand.Rand
	Logger zerolog.Logger
}

// Simulation owns one game: the actor, the obstacle track, the pinch
// classifier and the run state machine. It is not safe for concurrent use;
// the game loop goroutine owns it and hands out Snapshots.
type Simulation struct {
	tuning     Tuning
	rng        *rand.Rand
	classifier *gesture.PinchClassifier
	pinch      gesture.EdgeTrigger
	log        zerolog.Logger

	state        RunState
	actor        *Actor
	track        *Track
	runID        uuid.UUID
	tick         uint64
	groundOffset float64
	cause        EndCause
	quit         bool
}

// NewSimulation validates the tuning and creates a simulation in the idle
// state.
func NewSimulation(cfg Config) (*Simulation, error) {
	if err := cfg.Tuning.Validate(); err != nil {
		return nil, err
	}

	rng := cfg.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>32))
	}

	s := &Simulation{
		tuning:     cfg.Tuning,
		rng:        rng,
		classifier: gesture.NewPinchClassifier(cfg.PinchThreshold),
		log:        cfg.Logger.With().Str("component", "simulation").Logger(),
	}
	s.reset()
	return s, nil
}

// reset discards the actor and track and starts a fresh idle run. The pinch
// classifier and debouncer survive resets.
func (s *Simulation) reset() {
	s.actor = NewActor(s.tuning)
	s.track = NewTrack(s.tuning, s.rng)
	s.runID = uuid.New()
	s.state = StateIdle
	s.cause = CauseNone
	s.groundOffset = 0
}

// Step advances the simulation by dt seconds. The order within a tick is
// fixed: input merge, actor physics, obstacle spawn and despawn, collision
// check, state transition.
func (s *Simulation) Step(dt float64, in Input) StepResult {
	var res StepResult
	s.tick++

	for _, ev := range in.Events {
		s.apply(ev, &res)
	}
	if in.Reading != nil {
		pinching := s.classifier.Classify(in.Reading.Hands, in.Reading.Width, in.Reading.Height)
		if s.pinch.Update(pinching) && s.state == StateRunning {
			s.actor.Flap()
			res.Flapped = true
			s.log.Debug().Str("run", s.runID.String()).Msg("pinch flap")
		}
	}

	s.actor.Step(dt)

	if s.state == StateRunning {
		ts := s.track.Step(dt)
		res.Spawned, res.Retired = ts.Spawned, ts.Retired
		if ts.Spawned {
			s.log.Debug().Str("run", s.runID.String()).Int("obstacles", s.track.Len()).Msg("obstacle spawned")
		}
		if dt > 0 {
			s.groundOffset = math.Mod(s.groundOffset+s.tuning.Obstacles.Speed*dt, s.tuning.World.Width)
		}
	}

	if s.state == StateRunning {
		if cause := checkCollision(s.actor, s.track, s.tuning.World.GroundY); cause != CauseNone {
			s.end(cause)
			res.Ended = true
			res.Cause = cause
		}
	}

	return res
}

func (s *Simulation) apply(ev Event, res *StepResult) {
	switch ev {
	case EventConfirm:
		if s.state != StateIdle {
			return
		}
		s.state = StateRunning
		s.actor.Active = true
		res.Started = true
		s.log.Info().Str("run", s.runID.String()).Msg("run started")

	case EventFlap:
		if s.state != StateRunning {
			return
		}
		s.actor.Flap()
		res.Flapped = true

	case EventReset:
		prev := s.runID
		s.reset()
		res.Reset = true
		s.log.Info().Str("previous", prev.String()).Str("run", s.runID.String()).Msg("run reset")

	case EventQuit:
		s.quit = true

	default:
		s.log.Warn().Stringer("event", ev).Msg("ignoring unknown event")
	}
}

func (s *Simulation) end(cause EndCause) {
	s.state = StateEnded
	s.cause = cause
	s.actor.Active = false
	s.log.Info().
		Str("run", s.runID.String()).
		Str("cause", string(cause)).
		Uint64("tick", s.tick).
		Msg("run ended")
}

// State returns the current run state.
func (s *Simulation) State() RunState {
	return s.state
}

// Cause returns why the current run ended, or CauseNone.
func (s *Simulation) Cause() EndCause {
	return s.cause
}

// Actor returns the actor of the current run.
func (s *Simulation) Actor() *Actor {
	return s.actor
}

// Track returns the obstacle track of the current run.
func (s *Simulation) Track() *Track {
	return s.track
}

// Classifier returns the pinch classifier.
func (s *Simulation) Classifier() *gesture.PinchClassifier {
	return s.classifier
}

// RunID identifies the current run.
func (s *Simulation) RunID() uuid.UUID {
	return s.runID
}

// Tuning returns the tuning the simulation was built with.
func (s *Simulation) Tuning() Tuning {
	return s.tuning
}

// QuitRequested reports whether a quit event has been received.
func (s *Simulation) QuitRequested() bool {
	return s.quit
}

// String implements fmt.Stringer for log output.
func (s *Simulation) String() string {
	return fmt.Sprintf("run %s %s tick=%d obstacles=%d", s.runID, s.state, s.tick, s.track.Len())
}

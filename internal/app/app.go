// Package app wires the simulation to its input adapters, the camera
// pipeline and the render collaborators.
package app

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"gocv.io/x/gocv"

	"github.com/ayusman/pinchflap/internal/capture"
	"github.com/ayusman/pinchflap/internal/detector"
	"github.com/ayusman/pinchflap/internal/game"
	"github.com/ayusman/pinchflap/internal/gesture"
)

// EventBuffer is the capacity of the input event queue.
const EventBuffer = 64

// ErrCameraUnavailable is returned by Start when the camera cannot be
// opened. The game stays playable from the keyboard.
var ErrCameraUnavailable = errors.New("camera unavailable")

// Renderer draws one snapshot per tick.
type Renderer interface {
	Render(game.Snapshot) error
}

// Cues reacts to tick outcomes, for example with sound.
type Cues interface {
	Play(game.StepResult)
}

// Config holds configuration options for the application.
type Config struct {
	Simulation game.Config
	TickRate   int

	// Camera and Detector are optional; without them only keys flap.
	Camera          capture.Camera
	Detector        detector.Detector
	GestureEnabled  bool
	MotionThreshold float64
	MotionHold      int
	// KeepFrames retains the newest camera frame for Frame.
	KeepFrames bool
	// Preview opens a camera window marking the last pinch.
	Preview bool

	Renderer Renderer
	Cues     Cues
	Logger   zerolog.Logger
}

// App is the main application that drives the simulation from keyboard,
// tray and camera input.
type App struct {
	config   Config
	sim      *game.Simulation
	camera   capture.Camera
	gate     *capture.MotionGate
	detector detector.Detector
	mailbox  *gesture.Mailbox
	events   chan game.Event
	snapshot atomic.Pointer[game.Snapshot]
	log      zerolog.Logger

	enabled bool
	mu      sync.RWMutex
	stopCh  chan struct{}
	done    chan struct{}

	frameMu  sync.Mutex
	frame    gocv.Mat
	hasFrame bool
}

// New creates a new App and its simulation.
func New(config Config) (*App, error) {
	if config.TickRate <= 0 {
		config.TickRate = 60
	}

	sim, err := game.NewSimulation(config.Simulation)
	if err != nil {
		return nil, fmt.Errorf("create simulation: %w", err)
	}

	a := &App{
		config:   config,
		sim:      sim,
		camera:   config.Camera,
		detector: config.Detector,
		mailbox:  gesture.NewMailbox(),
		events:   make(chan game.Event, EventBuffer),
		log:      config.Logger.With().Str("component", "app").Logger(),
		enabled:  config.GestureEnabled,
	}
	a.publish()

	return a, nil
}

// Send queues an input event for the next tick. It never blocks; false
// means the queue was full and the event was dropped.
func (a *App) Send(ev game.Event) bool {
	select {
	case a.events <- ev:
		return true
	default:
		a.log.Warn().Stringer("event", ev).Msg("event queue full, dropping event")
		return false
	}
}

// SetEnabled enables or disables gesture input. A change publishes an
// empty reading so a pinch held across the toggle reads as released.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.enabled == enabled {
		return
	}
	a.enabled = enabled
	a.mailbox.Put(gesture.Reading{CapturedAt: time.Now()})
	a.log.Info().Bool("enabled", enabled).Msg("gesture input toggled")
}

// IsEnabled returns whether gesture input is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// Snapshot returns the snapshot published by the most recent tick.
func (a *App) Snapshot() game.Snapshot {
	return *a.snapshot.Load()
}

// Frame returns a copy of the newest camera frame when KeepFrames is set.
// The caller closes it.
func (a *App) Frame() (*gocv.Mat, bool) {
	a.frameMu.Lock()
	defer a.frameMu.Unlock()

	if !a.hasFrame {
		return nil, false
	}
	m := a.frame.Clone()
	return &m, true
}

func (a *App) keepFrame(frame *gocv.Mat) {
	a.frameMu.Lock()
	defer a.frameMu.Unlock()

	if !a.hasFrame {
		a.frame = gocv.NewMat()
	}
	frame.CopyTo(&a.frame)
	a.hasFrame = true
}

// Mailbox returns the handoff between the camera pipeline and the loop.
func (a *App) Mailbox() *gesture.Mailbox {
	return a.mailbox
}

// Simulation returns the simulation. Only the loop goroutine may step it.
func (a *App) Simulation() *game.Simulation {
	return a.sim
}

// Start opens the camera and begins the detection pipeline. Without a
// camera it does nothing.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}
	if a.camera == nil || a.detector == nil {
		a.log.Info().Msg("no camera configured, keyboard only")
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return fmt.Errorf("%w: %v", ErrCameraUnavailable, err)
	}

	a.gate = capture.NewMotionGate(a.config.MotionThreshold, a.config.MotionHold)
	a.stopCh = make(chan struct{})
	a.done = make(chan struct{})
	go a.runPipeline(a.stopCh, a.done)

	a.log.Info().Int("fps", a.camera.FPS()).Msg("detection pipeline started")
	return nil
}

// Stop halts the detection pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	stopCh, done := a.stopCh, a.done
	a.stopCh, a.done = nil, nil
	a.mu.Unlock()

	if stopCh == nil {
		return
	}

	close(stopCh)
	<-done

	if err := a.camera.Close(); err != nil {
		a.log.Error().Err(err).Msg("closing camera")
	}
	a.gate.Close()
	if err := a.detector.Close(); err != nil {
		a.log.Error().Err(err).Msg("closing detector")
	}

	a.frameMu.Lock()
	if a.hasFrame {
		a.frame.Close()
		a.hasFrame = false
	}
	a.frameMu.Unlock()

	a.log.Info().Uint64("dropped", a.mailbox.Dropped()).Msg("detection pipeline stopped")
}

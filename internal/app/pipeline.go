package app

import (
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"gocv.io/x/gocv"

	"github.com/ayusman/pinchflap/internal/game"
	"github.com/ayusman/pinchflap/internal/gesture"
)

// runPipeline reads camera frames at the camera's rate and publishes hand
// readings to the mailbox. It never touches the simulation.
//
// Per frame:
// 1. Retain a copy for the MJPEG stream when requested
// 2. Skip detection while gesture input is disabled
// 3. Skip detection while the motion gate is closed
// 4. Detect hands and overwrite the mailbox slot
// 5. Annotate and show the preview window; q quits
func (a *App) runPipeline(stopCh <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	var preview *Preview
	if a.config.Preview {
		// HighGUI calls must stay on one OS thread.
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		preview = NewPreview("pinchflap camera")
		defer preview.Close()
	}

	// Detection failures repeat every frame; keep the log readable.
	sampled := a.log.Sample(&zerolog.BurstSampler{
		Burst:       3,
		Period:      10 * time.Second,
		NextSampler: &zerolog.BasicSampler{N: 100},
	})

	fps := a.camera.FPS()
	if fps <= 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
		}

		frame, err := a.camera.ReadFrame()
		if err != nil {
			sampled.Warn().Err(err).Msg("reading frame")
			continue
		}

		if err := a.processFrame(frame); err != nil {
			sampled.Warn().Err(err).Msg("detecting hands")
		}

		if preview != nil {
			if key := preview.Show(frame, a.Snapshot()); key == 'q' {
				a.Send(game.EventQuit)
			}
		}

		frame.Close()
	}
}

// processFrame runs one frame through the gate and detector.
func (a *App) processFrame(frame *gocv.Mat) error {
	if a.config.KeepFrames {
		a.keepFrame(frame)
	}

	if !a.IsEnabled() {
		return nil
	}
	if !a.gate.Allow(frame) {
		return nil
	}

	hands, err := a.detector.Detect(frame)
	if err != nil {
		return err
	}

	// Held under the lock so a reading cannot land after SetEnabled(false).
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.enabled {
		return nil
	}
	a.mailbox.Put(gesture.Reading{
		Hands:      hands,
		Width:      frame.Cols(),
		Height:     frame.Rows(),
		CapturedAt: time.Now(),
	})
	return nil
}

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ayusman/pinchflap/internal/game"
)

// Tick runs one loop iteration: drain queued events, take the newest
// camera reading, step the simulation by dt seconds, then publish, play
// cues and render.
func (a *App) Tick(dt float64) (game.StepResult, error) {
	in := game.Input{Events: a.drain()}
	if r, ok := a.mailbox.Take(); ok {
		in.Reading = &r
	}

	res := a.sim.Step(dt, in)
	snap := a.publish()

	if a.config.Cues != nil {
		a.config.Cues.Play(res)
	}
	if a.config.Renderer != nil {
		if err := a.config.Renderer.Render(snap); err != nil {
			return res, fmt.Errorf("render: %w", err)
		}
	}

	return res, nil
}

// Run ticks at the configured rate until ctx is cancelled or a quit event
// is processed. dt is the measured time since the previous tick.
func (a *App) Run(ctx context.Context) error {
	if a.config.Renderer != nil {
		if err := a.config.Renderer.Render(a.Snapshot()); err != nil {
			return fmt.Errorf("render: %w", err)
		}
	}

	ticker := time.NewTicker(time.Second / time.Duration(a.config.TickRate))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			if _, err := a.Tick(dt); err != nil {
				return err
			}
			if a.sim.QuitRequested() {
				a.log.Info().Msg("quit requested")
				return nil
			}
		}
	}
}

func (a *App) drain() []game.Event {
	var events []game.Event
	for {
		select {
		case ev := <-a.events:
			events = append(events, ev)
		default:
			return events
		}
	}
}

func (a *App) publish() game.Snapshot {
	snap := a.sim.Snapshot()
	a.snapshot.Store(&snap)
	return snap
}

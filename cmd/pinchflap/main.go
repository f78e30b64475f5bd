package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/ayusman/pinchflap/internal/app"
	"github.com/ayusman/pinchflap/internal/audio"
	"github.com/ayusman/pinchflap/internal/capture"
	"github.com/ayusman/pinchflap/internal/config"
	"github.com/ayusman/pinchflap/internal/detector"
	"github.com/ayusman/pinchflap/internal/game"
	"github.com/ayusman/pinchflap/internal/logging"
	"github.com/ayusman/pinchflap/internal/server"
	"github.com/ayusman/pinchflap/internal/store"
	"github.com/ayusman/pinchflap/internal/terminal"
	"github.com/ayusman/pinchflap/internal/tray"
)

var (
	configPath = flag.String("config", "", "path to pinchflap.yaml (default: ./pinchflap.yaml or the data directory)")
	keysOnly   = flag.Bool("keys-only", false, "disable the camera and play with the keyboard only")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "pinchflap: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	st, err := store.New(cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer st.Close()

	// Stored settings win over the file and the environment.
	overrides, err := st.Settings().Map()
	if err != nil {
		return fmt.Errorf("failed to read stored settings: %w", err)
	}
	cfg, skipped, err := config.LoadWithValidOverrides(*configPath, overrides)
	if err != nil {
		return err
	}

	log, logFile, err := logging.Open(cfg.Log, cfg.DataDir)
	if err != nil {
		return err
	}
	defer logFile.Close()
	for key, err := range skipped {
		log.Warn().Err(err).Str("key", key).Str("value", overrides[key]).Msg("Ignoring invalid stored setting")
	}
	log.Info().Int("overrides", len(overrides)-len(skipped)).Str("db", st.Path()).Msg("Configuration loaded")

	screen, err := terminal.New(log)
	if err != nil {
		return err
	}
	defer screen.Close()

	appConfig := app.Config{
		Simulation: game.Config{
			Tuning:         cfg.Game,
			PinchThreshold: cfg.Gesture.PinchThreshold,
			Logger:         log,
		},
		TickRate:        cfg.Loop.TickRate,
		GestureEnabled:  cfg.Gesture.Enabled,
		MotionThreshold: cfg.Gesture.MotionThreshold,
		MotionHold:      cfg.Gesture.MotionHold,
		KeepFrames:      cfg.Server.Enabled,
		Preview:         cfg.Gesture.Preview,
		Renderer:        screen,
		Logger:          log,
	}

	if cfg.Audio.Enabled {
		player := audio.NewPlayer(cfg.Audio.Volume, log)
		if err := player.Init(); err != nil {
			log.Warn().Err(err).Msg("Continuing without audio")
		} else {
			defer player.Close()
			appConfig.Cues = player
		}
	}

	if !*keysOnly {
		appConfig.Camera, appConfig.Detector = openCamera(cfg, log)
	}

	application, err := app.New(appConfig)
	if err != nil {
		return err
	}
	if err := application.Start(); err != nil {
		if !errors.Is(err, app.ErrCameraUnavailable) {
			return err
		}
		log.Warn().Err(err).Msg("Keyboard only")
		appConfig.Detector.Close()
	}
	defer application.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go screen.Listen(ctx, application.Send)

	if cfg.Server.Enabled {
		srv := server.New(server.Config{
			Store:    st,
			KnownKey: config.Settable,
			ValidateSettings: func(overrides map[string]string) error {
				return config.ValidateOverrides(*configPath, overrides)
			},
			Snapshots:     application,
			Frames:        application,
			BroadcastRate: cfg.Server.BroadcastRate,
			StreamFPS:     cfg.Server.StreamFPS,
			Logger:        log,
		})
		go func() {
			if err := srv.Run(ctx, cfg.Server.Addr); err != nil {
				log.Error().Err(err).Msg("Spectator server stopped")
			}
		}()
	}

	if !cfg.Tray.Enabled {
		return application.Run(ctx)
	}
	return runWithTray(ctx, stop, application, log)
}

// openCamera prepares the camera and the hand detector. A missing landmark
// service is not fatal: the game falls back to the keyboard.
func openCamera(cfg config.Config, log zerolog.Logger) (capture.Camera, detector.Detector) {
	if !cfg.Gesture.Enabled {
		return nil, nil
	}
	det, err := detector.NewMediaPipeDetector(cfg.Detector, log)
	if err != nil {
		log.Warn().Err(err).Msg("Hand detector unavailable, keyboard only")
		return nil, nil
	}
	return capture.NewCamera(cfg.Camera), det
}

// runWithTray runs the tray on the calling goroutine, which owns the main
// thread, and the game loop beside it. Whichever ends first stops the other.
func runWithTray(ctx context.Context, stop context.CancelFunc, application *app.App, log zerolog.Logger) error {
	tr := tray.New(application.IsEnabled())
	tr.OnToggle(func(enabled bool) {
		application.SetEnabled(enabled)
		log.Info().Bool("enabled", enabled).Msg("Gesture input toggled")
	})
	tr.OnReset(func() { application.Send(game.EventReset) })
	tr.OnQuit(func() { application.Send(game.EventQuit) })

	errCh := make(chan error, 1)
	go func() {
		errCh <- application.Run(ctx)
		tr.Quit()
	}()

	go func() {
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				snap := application.Snapshot()
				tr.SetStatus(snap.State.String())
			}
		}
	}()

	tr.Run()
	stop()
	return <-errCh
}

// Package server provides the spectator HTTP server: health, snapshots,
// persisted settings, the camera MJPEG stream and a snapshot websocket.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"gocv.io/x/gocv"

	"github.com/ayusman/pinchflap/internal/game"
	"github.com/ayusman/pinchflap/internal/server/api"
	"github.com/ayusman/pinchflap/internal/store"
)

//go:embed web
var webFS embed.FS

// SnapshotSource exposes the most recent game snapshot.
type SnapshotSource interface {
	Snapshot() game.Snapshot
}

// FrameSource exposes the most recent camera frame. The returned Mat is a
// copy the caller must close.
type FrameSource interface {
	Frame() (*gocv.Mat, bool)
}

// Config holds the server configuration.
type Config struct {
	Store            *store.Store
	KnownKey         func(key string) bool
	ValidateSettings func(overrides map[string]string) error
	Snapshots        SnapshotSource
	Frames           FrameSource
	StaticDir        string
	BroadcastRate    int // websocket snapshots per second
	StreamFPS        int
	Logger           zerolog.Logger
}

// Server represents the spectator HTTP server.
type Server struct {
	config Config
	mux    *http.ServeMux
	hub    *SnapshotHub
	log    zerolog.Logger
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		log:    config.Logger.With().Str("component", "server").Logger(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Snapshots != nil {
		s.mux.HandleFunc("/api/snapshot", s.handleSnapshot)

		s.hub = NewSnapshotHub(s.config.Snapshots, s.config.BroadcastRate, s.log)
		s.mux.Handle("/api/ws", s.hub)
	}

	if s.config.Store != nil {
		settings := api.NewSettingsHandler(s.config.Store, s.config.KnownKey, s.config.ValidateSettings)
		s.mux.Handle("/api/settings", settings)
		s.mux.Handle("/api/settings/", settings)
	}

	if s.config.Frames != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Frames, s.config.StreamFPS))
	}

	if s.config.StaticDir != "" {
		s.mux.Handle("/", http.FileServer(http.Dir(s.config.StaticDir)))
	} else if s.config.Snapshots != nil {
		sub, err := fs.Sub(webFS, "web")
		if err == nil {
			s.mux.Handle("/", http.FileServer(http.FS(sub)))
		}
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// handleSnapshot handles GET requests to /api/snapshot.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.config.Snapshots.Snapshot()); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// Close stops the websocket broadcaster.
func (s *Server) Close() {
	if s.hub != nil {
		s.hub.Close()
	}
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("spectator server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.Close()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	s.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Package config loads pinchflap settings from defaults, an optional YAML
// file, PINCHFLAP_* environment variables and stored overrides.
package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/ayusman/pinchflap/internal/capture"
	"github.com/ayusman/pinchflap/internal/detector"
	"github.com/ayusman/pinchflap/internal/game"
	"github.com/ayusman/pinchflap/internal/gesture"
	"github.com/ayusman/pinchflap/internal/logging"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "PINCHFLAP"

// LoopConfig controls the simulation clock.
type LoopConfig struct {
	TickRate int `mapstructure:"tickRate"` // ticks per second
}

// GestureConfig controls camera-driven flaps.
type GestureConfig struct {
	Enabled         bool    `mapstructure:"enabled"`
	PinchThreshold  float64 `mapstructure:"pinchThreshold"`
	MotionThreshold float64 `mapstructure:"motionThreshold"`
	MotionHold      int     `mapstructure:"motionHold"`
	Preview         bool    `mapstructure:"preview"`
}

// ServerConfig controls the spectator HTTP server.
type ServerConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Addr          string `mapstructure:"addr"`
	BroadcastRate int    `mapstructure:"broadcastRate"` // websocket snapshots per second
	StreamFPS     int    `mapstructure:"streamFPS"`
}

// AudioConfig controls flap and crash cues.
type AudioConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Volume  float64 `mapstructure:"volume"` // linear gain 0..1
}

// TrayConfig controls the system tray menu.
type TrayConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Config is the fully resolved application configuration.
type Config struct {
	DataDir  string          `mapstructure:"dataDir"`
	Loop     LoopConfig      `mapstructure:"loop"`
	Game     game.Tuning     `mapstructure:"game"`
	Gesture  GestureConfig   `mapstructure:"gesture"`
	Camera   capture.Config  `mapstructure:"camera"`
	Detector detector.Config `mapstructure:"detector"`
	Server   ServerConfig    `mapstructure:"server"`
	Audio    AudioConfig     `mapstructure:"audio"`
	Tray     TrayConfig      `mapstructure:"tray"`
	Log      logging.Config  `mapstructure:"log"`
}

// DatabasePath returns the settings database location.
func (c Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "pinchflap.db")
}

// Validate rejects configurations the game cannot run with.
func (c Config) Validate() error {
	if err := c.Game.Validate(); err != nil {
		return err
	}
	if c.Gesture.PinchThreshold <= 0 {
		return fmt.Errorf("%w: pinch threshold %.1f must be positive", game.ErrInvalidTuning, c.Gesture.PinchThreshold)
	}
	if c.Loop.TickRate <= 0 {
		return fmt.Errorf("%w: tick rate %d must be positive", game.ErrInvalidTuning, c.Loop.TickRate)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("dataDir", defaultDataDir())
	v.SetDefault("loop.tickRate", 60)

	t := game.DefaultTuning()
	v.SetDefault("game.world.width", t.World.Width)
	v.SetDefault("game.world.height", t.World.Height)
	v.SetDefault("game.world.groundY", t.World.GroundY)
	v.SetDefault("game.world.scale", t.World.Scale)
	v.SetDefault("game.actor.startX", t.Actor.StartX)
	v.SetDefault("game.actor.startY", t.Actor.StartY)
	v.SetDefault("game.actor.baseWidth", t.Actor.BaseWidth)
	v.SetDefault("game.actor.baseHeight", t.Actor.BaseHeight)
	v.SetDefault("game.actor.gravity", t.Actor.Gravity)
	v.SetDefault("game.actor.flapVelocity", t.Actor.FlapVelocity)
	v.SetDefault("game.actor.rotationGain", t.Actor.RotationGain)
	v.SetDefault("game.actor.maxRotationUp", t.Actor.MaxRotationUp)
	v.SetDefault("game.actor.maxRotationDown", t.Actor.MaxRotationDn)
	v.SetDefault("game.actor.frameSeconds", t.Actor.FrameSeconds)
	v.SetDefault("game.actor.frames", t.Actor.Frames)
	v.SetDefault("game.obstacles.speed", t.Obstacles.Speed)
	v.SetDefault("game.obstacles.baseWidth", t.Obstacles.BaseWidth)
	v.SetDefault("game.obstacles.baseHeight", t.Obstacles.BaseHeight)
	v.SetDefault("game.obstacles.gap", t.Obstacles.Gap)
	v.SetDefault("game.obstacles.spawnX", t.Obstacles.SpawnX)
	v.SetDefault("game.obstacles.spawnCadence", t.Obstacles.SpawnCadence)
	v.SetDefault("game.obstacles.minGapCenter", t.Obstacles.MinGapCenter)
	v.SetDefault("game.obstacles.maxGapCenter", t.Obstacles.MaxGapCenter)

	v.SetDefault("gesture.enabled", true)
	v.SetDefault("gesture.pinchThreshold", gesture.DefaultPinchThreshold)
	v.SetDefault("gesture.motionThreshold", 0.0)
	v.SetDefault("gesture.motionHold", 15)
	v.SetDefault("gesture.preview", false)

	cam := capture.DefaultConfig()
	v.SetDefault("camera.device", cam.Device)
	v.SetDefault("camera.width", cam.Width)
	v.SetDefault("camera.height", cam.Height)
	v.SetDefault("camera.fps", cam.FPS)
	v.SetDefault("camera.mirror", cam.Mirror)

	det := detector.DefaultConfig()
	v.SetDefault("detector.maxHands", det.MaxHands)
	v.SetDefault("detector.minConfidence", det.MinConfidence)
	v.SetDefault("detector.minTrackingConfidence", det.MinTrackingConf)
	v.SetDefault("detector.scriptPath", "")
	v.SetDefault("detector.python", "")

	v.SetDefault("server.enabled", false)
	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("server.broadcastRate", 15)
	v.SetDefault("server.streamFPS", 10)

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.volume", 0.3)

	v.SetDefault("tray.enabled", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pinchflap"
	}
	return filepath.Join(home, ".pinchflap")
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load resolves configuration from defaults, the YAML file at path and the
// environment. An empty path searches for pinchflap.yaml in the working
// directory and the default data directory; not finding one is not an error.
func Load(path string) (Config, error) {
	return LoadWithOverrides(path, nil)
}

// LoadWithOverrides is Load with stored setting overrides applied on top of
// every other source.
func LoadWithOverrides(path string, overrides map[string]string) (Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("pinchflap")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(defaultDataDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	for key, value := range overrides {
		if !Settable(key) {
			continue
		}
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// dataDirKey locates the settings database, so it cannot come from it.
const dataDirKey = "datadir"

var keySet = sync.OnceValue(func() map[string]struct{} {
	set := make(map[string]struct{})
	for _, key := range newViper().AllKeys() {
		set[key] = struct{}{}
	}
	return set
})

// Keys lists every configuration key, lowercased as viper stores them.
func Keys() []string {
	keys := slices.Collect(maps.Keys(keySet()))
	slices.Sort(keys)
	return keys
}

// KnownKey reports whether key names a configuration setting.
func KnownKey(key string) bool {
	_, ok := keySet()[strings.ToLower(key)]
	return ok
}

// Settable reports whether key may be stored as an override.
func Settable(key string) bool {
	return KnownKey(key) && !strings.EqualFold(key, dataDirKey)
}

// ValidateOverrides reports whether overrides, applied on top of the file at
// path and the environment, still produce a usable configuration.
func ValidateOverrides(path string, overrides map[string]string) error {
	_, err := LoadWithOverrides(path, overrides)
	return err
}

// LoadWithValidOverrides is LoadWithOverrides that drops stored overrides
// which fail to decode or validate instead of failing. Keys are tried in
// sorted order; each is kept only if the configuration built from it and
// every key kept before it is valid. Dropped keys are returned with their
// errors.
func LoadWithValidOverrides(path string, overrides map[string]string) (Config, map[string]error, error) {
	cfg, err := LoadWithOverrides(path, overrides)
	if err == nil {
		return cfg, nil, nil
	}

	// Without overrides the error is not theirs to fix.
	if _, err := Load(path); err != nil {
		return Config{}, nil, err
	}

	kept := make(map[string]string, len(overrides))
	skipped := make(map[string]error)
	for _, key := range slices.Sorted(maps.Keys(overrides)) {
		kept[key] = overrides[key]
		if err := ValidateOverrides(path, kept); err != nil {
			delete(kept, key)
			skipped[key] = err
		}
	}

	cfg, err = LoadWithOverrides(path, kept)
	if err != nil {
		return Config{}, skipped, err
	}
	return cfg, skipped, nil
}

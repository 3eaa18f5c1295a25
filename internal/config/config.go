// Package config provides layered runtime configuration. Embedded
// defaults are overlaid by a user file, a per-game file, an explicit file
// and environment overrides.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config is the full runtime configuration.
type Config struct {
	Window  WindowConfig  `yaml:"window" toml:"window" json:"window" envPrefix:"WINDOW_"`
	Physics PhysicsConfig `yaml:"physics" toml:"physics" json:"physics" envPrefix:"PHYSICS_"`
	Network NetworkConfig `yaml:"network" toml:"network" json:"network" envPrefix:"NETWORK_"`
	Input   InputConfig   `yaml:"input" toml:"input" json:"input" envPrefix:"INPUT_"`
	Audio   AudioConfig   `yaml:"audio" toml:"audio" json:"audio" envPrefix:"AUDIO_"`
	Log     LogConfig     `yaml:"log" toml:"log" json:"log" envPrefix:"LOG_"`
	Storage StorageConfig `yaml:"storage" toml:"storage" json:"storage" envPrefix:"STORAGE_"`
	Serve   ServeConfig   `yaml:"serve" toml:"serve" json:"serve" envPrefix:"SERVE_"`
}

// WindowConfig defines the logical window.
type WindowConfig struct {
	Title  string `yaml:"title" toml:"title" json:"title" env:"TITLE"`
	Width  int    `yaml:"width" toml:"width" json:"width" env:"WIDTH"`     // logical pixels
	Height int    `yaml:"height" toml:"height" json:"height" env:"HEIGHT"` // logical pixels
	FPS    int    `yaml:"fps" toml:"fps" json:"fps" env:"FPS"`
	VSync  bool   `yaml:"vsync" toml:"vsync" json:"vsync" env:"VSYNC"`
}

// PhysicsConfig defines the physics space.
type PhysicsConfig struct {
	GravityX   float64 `yaml:"gravity_x" toml:"gravity_x" json:"gravity_x" env:"GRAVITY_X"`
	GravityY   float64 `yaml:"gravity_y" toml:"gravity_y" json:"gravity_y" env:"GRAVITY_Y"`
	Iterations int     `yaml:"iterations" toml:"iterations" json:"iterations" env:"ITERATIONS"`
}

// NetworkConfig defines transport limits.
type NetworkConfig struct {
	MaxPeers         int `yaml:"max_peers" toml:"max_peers" json:"max_peers" env:"MAX_PEERS"`
	ClientPeers      int `yaml:"client_peers" toml:"client_peers" json:"client_peers" env:"CLIENT_PEERS"`
	ConnectTimeoutMS int `yaml:"connect_timeout_ms" toml:"connect_timeout_ms" json:"connect_timeout_ms" env:"CONNECT_TIMEOUT_MS"`
	QueueSize        int `yaml:"queue_size" toml:"queue_size" json:"queue_size" env:"QUEUE_SIZE"`
}

// ConnectTimeout returns the dial timeout.
func (n NetworkConfig) ConnectTimeout() time.Duration {
	return time.Duration(n.ConnectTimeoutMS) * time.Millisecond
}

// InputConfig defines keyboard handling.
type InputConfig struct {
	// KeyHoldMS is how long a key counts as down after its last press;
	// terminals report presses but not releases.
	KeyHoldMS int `yaml:"key_hold_ms" toml:"key_hold_ms" json:"key_hold_ms" env:"KEY_HOLD_MS"`
}

// KeyHold returns the key hold window.
func (i InputConfig) KeyHold() time.Duration {
	return time.Duration(i.KeyHoldMS) * time.Millisecond
}

// AudioConfig defines the audio device.
type AudioConfig struct {
	MasterVolume float64 `yaml:"master_volume" toml:"master_volume" json:"master_volume" env:"MASTER_VOLUME"`
}

// LogConfig defines log output.
type LogConfig struct {
	Level string `yaml:"level" toml:"level" json:"level" env:"LEVEL"`
	File  string `yaml:"file" toml:"file" json:"file" env:"FILE"`
}

// StorageConfig defines the save database.
type StorageConfig struct {
	DB string `yaml:"db" toml:"db" json:"db" env:"DB"`
}

// ServeConfig defines the SSH server.
type ServeConfig struct {
	SSHAddr        string `yaml:"ssh_addr" toml:"ssh_addr" json:"ssh_addr" env:"SSH_ADDR"`
	MetricsAddr    string `yaml:"metrics_addr" toml:"metrics_addr" json:"metrics_addr" env:"METRICS_ADDR"`
	HostKey        string `yaml:"host_key" toml:"host_key" json:"host_key" env:"HOST_KEY"`
	IdleTimeoutMin int    `yaml:"idle_timeout_min" toml:"idle_timeout_min" json:"idle_timeout_min" env:"IDLE_TIMEOUT_MIN"`
}

// IdleTimeout returns the SSH idle timeout.
func (s ServeConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutMin) * time.Minute
}

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("config: invalid value")

// Validate checks values the runtime cannot work around.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}
	check(c.Window.Width > 0, "window.width %d", c.Window.Width)
	check(c.Window.Height > 0, "window.height %d", c.Window.Height)
	check(c.Window.FPS > 0 && c.Window.FPS <= 240, "window.fps %d", c.Window.FPS)
	check(c.Physics.Iterations > 0, "physics.iterations %d", c.Physics.Iterations)
	check(c.Network.MaxPeers > 0, "network.max_peers %d", c.Network.MaxPeers)
	check(c.Network.ClientPeers > 0, "network.client_peers %d", c.Network.ClientPeers)
	check(c.Network.ConnectTimeoutMS > 0, "network.connect_timeout_ms %d", c.Network.ConnectTimeoutMS)
	check(c.Network.QueueSize > 0, "network.queue_size %d", c.Network.QueueSize)
	check(c.Input.KeyHoldMS > 0, "input.key_hold_ms %d", c.Input.KeyHoldMS)
	check(c.Audio.MasterVolume >= 0 && c.Audio.MasterVolume <= 1, "audio.master_volume %g", c.Audio.MasterVolume)
	return errors.Join(errs...)
}

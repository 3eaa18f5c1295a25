package config

import (
	_ "embed"
)

//go:embed defaults/turtle.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration.
func DefaultYAML() []byte {
	return defaultYAML
}

// Default returns the built-in configuration, matching defaults/turtle.yaml.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "TURTLE",
			Width:  800,
			Height: 600,
			FPS:    60,
		},
		Physics: PhysicsConfig{
			GravityX:   0,
			GravityY:   500,
			Iterations: 10,
		},
		Network: NetworkConfig{
			MaxPeers:         32,
			ClientPeers:      1,
			ConnectTimeoutMS: 5000,
			QueueSize:        256,
		},
		Input: InputConfig{
			KeyHoldMS: 300,
		},
		Audio: AudioConfig{
			MasterVolume: 1.0,
		},
		Log: LogConfig{
			Level: "info",
		},
		Storage: StorageConfig{
			DB: "~/.turtle/turtle.db",
		},
		Serve: ServeConfig{
			SSHAddr:        ":2222",
			HostKey:        "~/.turtle/host_ed25519",
			IdleTimeoutMin: 30,
		},
	}
}

// Package audio tracks sound sources against a clock. Terminals cannot
// play sound, so a source only keeps playback state (position, volume,
// pitch) that scripts can query.
package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/turtle/internal/core"
)

// State is the playback state of a sound.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// ErrClosed is returned when loading through a closed device.
var ErrClosed = errors.New("audio: device closed")

// Device owns the master volume and the clock sources advance by.
type Device struct {
	master float64
	now    func() time.Time
	logger *log.Logger
	closed bool
}

// NewDevice returns a device at full master volume.
func NewDevice(logger *log.Logger) *Device {
	return &Device{master: 1, now: time.Now, logger: logger}
}

// SetMasterVolume sets the master volume, clamped to [0, 1].
func (d *Device) SetMasterVolume(v float64) {
	d.master = clamp01(v)
}

// MasterVolume returns the master volume.
func (d *Device) MasterVolume() float64 {
	return d.master
}

// Load reads a sound file. WAV files get a known duration; other formats
// are accepted and play until stopped.
func (d *Device) Load(path string) (*Sound, error) {
	if d.closed {
		return nil, ErrClosed
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("audio: load %s: %w", filepath.Base(path), err)
	}
	s := &Sound{device: d, volume: 1, pitch: 1}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		s.length, err = wavDuration(data)
		if err != nil {
			return nil, fmt.Errorf("audio: load %s: %w", filepath.Base(path), err)
		}
	case ".ogg", ".mp3", ".flac", ".xm", ".mod", ".qoa":
	default:
		return nil, fmt.Errorf("audio: load %s: %w", filepath.Base(path), ErrFormat)
	}
	if d.logger != nil {
		d.logger.Debug("sound loaded", "path", filepath.Base(path), "length", s.length)
	}
	return s, nil
}

// Close marks the device closed. Loaded sounds stop advancing.
func (d *Device) Close() error {
	d.closed = true
	return nil
}

// Sound is one loaded source.
type Sound struct {
	device *Device
	length time.Duration // zero when unknown

	state   State
	started time.Time
	// played is media time accumulated before the last resume.
	played time.Duration
	volume float64
	pitch  float64
}

// Play starts the sound from the beginning.
func (s *Sound) Play() {
	s.played = 0
	s.started = s.device.now()
	s.state = Playing
}

// Stop stops and rewinds the sound.
func (s *Sound) Stop() {
	s.played = 0
	s.state = Stopped
}

// Pause holds the current position.
func (s *Sound) Pause() {
	if s.state != Playing {
		return
	}
	s.played = s.Position()
	s.state = Paused
}

// Resume continues a paused sound.
func (s *Sound) Resume() {
	if s.state != Paused {
		return
	}
	s.started = s.device.now()
	s.state = Playing
}

// Position returns how much of the sound has played.
func (s *Sound) Position() time.Duration {
	if s.state != Playing {
		return s.played
	}
	pos := s.played + time.Duration(float64(s.device.now().Sub(s.started))*s.pitch)
	if s.length > 0 && pos > s.length {
		return s.length
	}
	return pos
}

// IsPlaying reports whether the sound is playing and has not reached its end.
func (s *Sound) IsPlaying() bool {
	if s.state != Playing || s.device.closed {
		return false
	}
	return s.length == 0 || s.Position() < s.length
}

// SetVolume sets the source volume, clamped to [0, 1].
func (s *Sound) SetVolume(v float64) {
	s.volume = clamp01(v)
}

// Volume returns the effective volume including the master volume.
func (s *Sound) Volume() float64 {
	return s.volume * s.device.master
}

// SetPitch changes the playback rate. Non-positive values are ignored.
func (s *Sound) SetPitch(p float64) {
	if p <= 0 {
		return
	}
	if s.state == Playing {
		s.played = s.Position()
		s.started = s.device.now()
	}
	s.pitch = p
}

// Length returns the sound's duration, zero when unknown.
func (s *Sound) Length() time.Duration {
	return s.length
}

// Release stops the sound.
func (s *Sound) Release() error {
	s.Stop()
	return nil
}

func clamp01(v float64) float64 {
	return core.ClampF(v, 0, 1)
}

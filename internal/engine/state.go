// Package engine holds the runtime state shared by the script API and the
// frame loop. A State is created once per game session and passed
// explicitly; nothing in it is global.
package engine

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/turtle/internal/audio"
	"github.com/vovakirdan/turtle/internal/collision"
	"github.com/vovakirdan/turtle/internal/config"
	"github.com/vovakirdan/turtle/internal/core"
	"github.com/vovakirdan/turtle/internal/graphics"
	"github.com/vovakirdan/turtle/internal/netbridge"
	"github.com/vovakirdan/turtle/internal/physics"
	"github.com/vovakirdan/turtle/internal/registry"
	"github.com/vovakirdan/turtle/internal/transport"
)

// SaveStore persists per-game key/value saves.
type SaveStore interface {
	Set(gameID, key, value string) error
	Get(gameID, key string) (string, bool, error)
	Delete(gameID, key string) error
	Keys(gameID string) ([]string, error)
}

// Options configures a new State.
type Options struct {
	Dir    string // game directory, "" for none
	GameID string
	Config config.Config

	// Cols and Rows are the terminal size in cells.
	Cols, Rows int

	Store     SaveStore // nil keeps saves in memory
	Clipboard io.Writer // receives OSC 52 sequences, may be nil
	Opener    Opener    // nil uses the system browser
	Logger    *log.Logger
	Seed      int64 // 0 seeds from the clock
}

// State is the runtime state of one game session.
type State struct {
	Dir    string
	GameID string
	Config config.Config

	Registry   *registry.Registry
	Space      *physics.Space
	Collisions *collision.Bridge
	Network    *netbridge.Bridge
	Canvas     *graphics.Canvas
	Audio      *audio.Device
	Input      *core.Input
	Timer      *Timer
	Window     *Window
	Clipboard  *Clipboard
	Store      SaveStore
	Rand       *rand.Rand
	Opener     Opener
	Logger     *log.Logger

	closing  atomic.Bool
	released bool
}

// New builds the state for a session: registry, physics space with the
// configured gravity, collision and network bridges, canvas and devices.
func New(opts Options) *State {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	reg := registry.New()
	space := physics.NewSpace(physics.V(cfg.Physics.GravityX, cfg.Physics.GravityY))
	space.SetIterations(cfg.Physics.Iterations)

	netLogger := logger.WithPrefix("net")
	serverOpts := transport.Options{
		MaxPeers:       cfg.Network.MaxPeers,
		QueueSize:      cfg.Network.QueueSize,
		ConnectTimeout: cfg.Network.ConnectTimeout(),
		Logger:         netLogger,
	}
	clientOpts := serverOpts
	clientOpts.MaxPeers = cfg.Network.ClientPeers

	device := audio.NewDevice(logger.WithPrefix("audio"))
	device.SetMasterVolume(cfg.Audio.MasterVolume)

	store := opts.Store
	if store == nil {
		store = NewMemoryStore()
	}
	opener := opts.Opener
	if opener == nil {
		opener = SystemOpener{}
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &State{
		Dir:        opts.Dir,
		GameID:     opts.GameID,
		Config:     cfg,
		Registry:   reg,
		Space:      space,
		Collisions: collision.New(reg, space),
		Network:    netbridge.New(reg, serverOpts, clientOpts),
		Canvas:     graphics.NewCanvas(cfg.Window.Width, cfg.Window.Height, opts.Cols, opts.Rows),
		Audio:      device,
		Input:      core.NewInput(cfg.Input.KeyHold()),
		Timer:      NewTimer(),
		Window:     NewWindow(cfg.Window, opts.Cols, opts.Rows),
		Clipboard:  NewClipboard(opts.Clipboard),
		Store:      store,
		Rand:       rand.New(rand.NewSource(seed)),
		Opener:     opener,
		Logger:     logger,
	}
}

// RequestClose asks the frame loop to shut down. It is safe to call from
// any goroutine, including signal handlers.
func (s *State) RequestClose() {
	s.closing.Store(true)
}

// CloseRequested reports whether shutdown was requested.
func (s *State) CloseRequested() bool {
	return s.closing.Load()
}

// Resize updates the cell grid after a terminal resize.
func (s *State) Resize(cols, rows int) {
	s.Canvas.Resize(cols, rows)
	s.Window.resize(cols, rows)
}

// Release tears down the native side of the session: the audio device,
// every resource left in the registry, then the physics space. It may be
// called more than once.
func (s *State) Release() error {
	if s.released {
		return nil
	}
	s.released = true

	var errs []error
	if err := s.Audio.Close(); err != nil {
		errs = append(errs, fmt.Errorf("audio: %w", err))
	}
	if err := s.Registry.Close(); err != nil {
		errs = append(errs, err)
	}
	s.Collisions.Clear()
	if err := s.Space.Close(); err != nil {
		errs = append(errs, fmt.Errorf("physics: %w", err))
	}
	return errors.Join(errs...)
}

package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/turtle/internal/config"
	"github.com/vovakirdan/turtle/internal/engine"
	"github.com/vovakirdan/turtle/internal/frame"
	"github.com/vovakirdan/turtle/internal/metrics"
	"github.com/vovakirdan/turtle/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":2222").
	Address string

	// HostKeyPath is the path to the host key file. It is created when
	// missing.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// GameDir is the game every session plays, "" for the placeholder.
	GameDir string
	GameID  string
	Config  config.Config

	// Store keeps saves and faults; nil keeps saves per session in memory.
	Store  *storage.Store
	Logger *log.Logger
}

// SSHServer serves one game to every SSH session, each with its own
// runtime state.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	logger *log.Logger
}

type sessionKey struct{}

// session is what the cleanup middleware needs once the program exits.
type session struct {
	orch *frame.Orchestrator
	obs  *metrics.Observer
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "turtle-ssh",
		})
	}
	srv := &SSHServer{
		config: cfg,
		logger: logger,
	}

	hostKeyPath := config.ExpandHome(cfg.HostKeyPath)
	if hostKeyPath == "" {
		return nil, errors.New("ssh: no host key path")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.sessionMiddleware,
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	srv.server = server
	return srv, nil
}

// teaHandler builds a fresh session for each SSH connection. URLs are never
// opened on the server and the clipboard goes to the client's terminal.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}
	logger := s.logger.With("user", sshSession.User())

	var (
		saves    engine.SaveStore
		recorder frame.FaultRecorder
	)
	if s.config.Store != nil {
		saves, recorder = s.config.Store, s.config.Store
	}

	st := engine.New(engine.Options{
		Dir:       s.config.GameDir,
		GameID:    s.config.GameID,
		Config:    s.config.Config,
		Cols:      pty.Window.Width,
		Rows:      pty.Window.Height,
		Store:     saves,
		Clipboard: sshSession,
		Opener:    engine.DisabledOpener{},
		Logger:    logger,
	})
	obs := metrics.NewObserver(frame.EngineName(s.config.GameDir))
	orch, err := frame.New(st, frame.Options{Recorder: recorder, Observer: obs})
	if err != nil {
		logger.Error("cannot start session", "error", err)
		_ = st.Release()
		return nil, nil
	}
	obs.SessionStarted()
	sshSession.Context().SetValue(sessionKey{}, &session{orch: orch, obs: obs})

	model := NewModel(orch, st, NewPainter(bubbletea.MakeRenderer(sshSession)))
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	}
}

// sessionMiddleware shuts a session down after its program exits, whether
// the game closed or the client went away.
func (s *SSHServer) sessionMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		next(sshSession)
		sess, ok := sshSession.Context().Value(sessionKey{}).(*session)
		if !ok {
			return
		}
		if err := sess.orch.Shutdown(); err != nil {
			s.logger.Warn("session shutdown", "user", sshSession.User(), "error", err)
		}
		sess.obs.SessionEnded()
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe runs the SSH server until ctx is cancelled.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "game", s.config.GameDir)

	errc := make(chan error, 1)
	go func() {
		errc <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

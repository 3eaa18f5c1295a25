package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/turtle/internal/engine"
	"github.com/vovakirdan/turtle/internal/frame"
	"github.com/vovakirdan/turtle/internal/metrics"
	"github.com/vovakirdan/turtle/internal/platform/tui"
)

var runCmd = &cobra.Command{
	Use:   "run [dir]",
	Short: "Run a game",
	Long: `Run the game in dir. The entry script is main.js, main.ts or main.lua,
tried in that order. Without a directory a placeholder screen is shown.

Controls:
  Ctrl+C     - Quit
  Esc/Q      - Close the error screen
  Click/C    - Copy the error message

Examples:
  turtle run ./examples/bounce
  turtle run ./examples/bounce --seed 42
  turtle run ./examples/bounce --config ./my-conf.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGame,
}

func runGame(cmd *cobra.Command, args []string) error {
	// Logs go to the configured file only; stderr belongs to the TUI.
	env, err := setup(dirArg(args), nil, "turtle")
	if err != nil {
		return err
	}
	defer env.close()

	// Get terminal size for the first frame
	cols, rows := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cols, rows = w, h
	}

	opts := engine.Options{
		Dir:       env.dir,
		GameID:    env.gameID,
		Config:    env.cfg,
		Cols:      cols,
		Rows:      rows,
		Clipboard: os.Stdout,
		Logger:    env.logger,
		Seed:      flagSeed,
	}
	var recorder frame.FaultRecorder
	if env.store != nil {
		opts.Store = env.store
		recorder = env.store
	}
	st := engine.New(opts)

	// Signals only flag the session; the frame loop shuts down on its own.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		st.RequestClose()
	}()

	obs := metrics.NewObserver(frame.EngineName(env.dir))
	orch, err := frame.New(st, frame.Options{Recorder: recorder, Observer: obs})
	if err != nil {
		_ = st.Release()
		return err
	}
	obs.SessionStarted()
	defer obs.SessionEnded()

	env.logger.Info("session started", "dir", env.dir, "cols", cols, "rows", rows)
	return tui.Run(orch, st)
}

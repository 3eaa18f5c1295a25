package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/turtle/internal/config"
	"github.com/vovakirdan/turtle/internal/metrics"
	"github.com/vovakirdan/turtle/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagMetricsAddr string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve [dir]",
	Short: "Serve a game over SSH",
	Long: `Start an SSH server where every connection plays the game in dir
with its own session. Saves and faults go to the shared database.

When --metrics is set, Prometheus metrics are served on /metrics with a
/healthz probe next to them.

Examples:
  turtle serve ./examples/bounce                  # Listen on the configured address
  turtle serve ./examples/bounce --ssh :2222      # Listen on port 2222
  turtle serve ./examples/bounce --metrics :9090  # Also expose metrics

Users can connect with:
  ssh localhost -p 2222`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default from config)")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Metrics HTTP address (default from config, empty = off)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	env, err := setup(dirArg(args), os.Stderr, "turtle-ssh")
	if err != nil {
		return err
	}
	defer env.close()

	serve := env.cfg.Serve
	if flagSSHAddr != "" {
		serve.SSHAddr = flagSSHAddr
	}
	if flagHostKey != "" {
		serve.HostKey = flagHostKey
	}
	if flagMetricsAddr != "" {
		serve.MetricsAddr = flagMetricsAddr
	}
	if flagIdleTimeout > 0 {
		serve.IdleTimeoutMin = flagIdleTimeout
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     serve.SSHAddr,
		HostKeyPath: config.ExpandHome(serve.HostKey),
		IdleTimeout: serve.IdleTimeout(),
		GameDir:     env.dir,
		GameID:      env.gameID,
		Config:      env.cfg,
		Store:       env.store,
		Logger:      env.logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.ListenAndServe(ctx)
	})

	if serve.MetricsAddr != "" {
		httpServer := &http.Server{
			Addr:              serve.MetricsAddr,
			Handler:           metrics.NewRouter(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		g.Go(func() error {
			env.logger.Info("serving metrics", "address", serve.MetricsAddr)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}

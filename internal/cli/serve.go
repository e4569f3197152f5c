package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mathproblem/internal/api"
	"github.com/matzehuels/mathproblem/internal/config"
	"github.com/matzehuels/mathproblem/pkg/cache"
	"github.com/matzehuels/mathproblem/pkg/observability"
	"github.com/matzehuels/mathproblem/pkg/pipeline"
	"github.com/matzehuels/mathproblem/pkg/store"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the problem-set and diagram API. Storage, cache, logging and timeouts
come from the config file; --addr overrides [server] addr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg config.Config) error {
	logger, closeLog, err := c.serverLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	observability.NewLogHooks(logger).Install()
	defer observability.Reset()

	ch, err := newCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(ch, cache.NewScopedKeyer(nil, apiKeyPrefix), logger)
	defer runner.Close()

	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: api.New(api.Config{
			Runner:       runner,
			Store:        st,
			Logger:       logger,
			MaxBodyBytes: cfg.Server.MaxBodyBytes,
			Timeout:      time.Duration(cfg.Server.WriteTimeout),
		}),
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeout),
		ReadHeaderTimeout: time.Duration(cfg.Server.ReadTimeout),
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeout),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	logger.Info("listening", "addr", cfg.Server.Addr, "store", cfg.Store.Backend, "cache", cfg.Cache.Backend)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout))
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// serverLogger returns the logger for serve. The level is the more verbose of
// [log] level and --verbose; a configured file receives a copy of every line.
func (c *CLI) serverLogger(cfg config.LogConfig) (*log.Logger, func(), error) {
	level, err := cfg.ParseLevel()
	if err != nil {
		return nil, nil, err
	}
	if cl := c.Logger.GetLevel(); cl < level {
		level = cl
	}
	if cfg.File == "" {
		return newLogger(os.Stderr, level), func() {}, nil
	}

	fw := newFileWriter(cfg)
	logger := newLogger(io.MultiWriter(os.Stderr, fw), level)
	return logger, func() { _ = fw.Close() }, nil
}

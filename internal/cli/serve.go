package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/binderykit/bindery/internal/config"
	"github.com/binderykit/bindery/internal/web"
	"github.com/binderykit/bindery/pkg/store"
)

// sweepInterval is how often expired artifacts are removed.
const sweepInterval = time.Hour

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	configPath  string
	listen      string
	artifactDir string
}

// newServeCmd creates the serve command running the web upload service.
func newServeCmd() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web upload service",
		Long: `Serve starts an HTTP service with an upload form. Submitted PDFs are
imposed and the generated booklet files are offered for download until the
retention window expires.

Configuration is read from bindery.toml (see --config); flags override
file values.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runServe(c.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "config file (default bindery.toml if present)")
	cmd.Flags().StringVar(&opts.listen, "listen", "", "HTTP listen address (overrides config)")
	cmd.Flags().StringVar(&opts.artifactDir, "artifact-dir", "", "artifact directory (overrides config)")

	return cmd
}

// runServe wires the store, index, and web server together and runs until
// the context is cancelled.
func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.listen != "" {
		cfg.Listen = opts.listen
	}
	if opts.artifactDir != "" {
		cfg.ArtifactDir = opts.artifactDir
	}

	st, err := store.NewFileStore(cfg.ArtifactDir, cfg.RetentionWindow())
	if err != nil {
		return err
	}
	defer st.Close()

	var idx store.Index = store.NewNullIndex()
	if cfg.RedisAddr != "" {
		idx = store.NewRedisIndex(cfg.RedisAddr, cfg.RetentionWindow())
		logger.Info("recent-artifact index enabled", "redis", cfg.RedisAddr)
	}
	defer idx.Close()

	server, err := web.New(cfg, st, idx, logger)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.Listen,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go sweepLoop(ctx, st, logger)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("serving", "addr", cfg.Listen, "artifacts", cfg.ArtifactDir, "retention", cfg.RetentionWindow())
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

// sweepLoop periodically removes artifacts past the retention window.
func sweepLoop(ctx context.Context, st store.Store, logger *log.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := st.Sweep(ctx)
			if err != nil {
				logger.Warn("artifact sweep failed", "err", err)
				continue
			}
			if removed > 0 {
				logger.Info("swept expired artifacts", "removed", removed)
			}
		}
	}
}

package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/rigcheck/internal/catalog"
	"github.com/roach88/rigcheck/internal/compat"
	"github.com/roach88/rigcheck/internal/config"
	"github.com/roach88/rigcheck/internal/metrics"
	"github.com/roach88/rigcheck/internal/server"
	"github.com/roach88/rigcheck/internal/session"
	"github.com/roach88/rigcheck/internal/store"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	EnvFile string
	Addr    string // overrides RIGCHECK_ADDR
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the rigcheck HTTP API.

Configuration comes from the environment, after loading .env (or the
file given with --env-file) when present:

  RIGCHECK_ADDR           listen address (default :8080)
  RIGCHECK_CATALOG        catalog file (default: built-in catalog)
  RIGCHECK_DB             SQLite file for the saved builds gallery
                          (gallery routes are disabled when unset)
  RIGCHECK_SEED           seed an empty gallery with community builds
                          (default true)
  RIGCHECK_SESSION_LIMIT  live sessions kept before eviction (default 1024)
  RIGCHECK_LANG           default message language, en or ru (default en)
  RIGCHECK_LOG_LEVEL      debug, info, warn or error (default info)

SIGHUP reloads RIGCHECK_CATALOG without dropping sessions; a catalog
that fails to load or validate leaves the current one in place. The
server stops gracefully on SIGINT or SIGTERM.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.EnvFile, "env-file", "", "load environment from this file instead of .env")
	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (overrides RIGCHECK_ADDR)")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cfg, err := config.Load(opts.EnvFile)
	if err != nil {
		_ = formatter.Error(ErrCodeInvalidInput, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	if opts.Addr != "" {
		cfg.Addr = opts.Addr
	}

	level, _ := cfg.Level()
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	svc, err := newService(cfg, formatter, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go svc.reloadOn(ctx, hup)

	if err := svc.Server.ListenAndServe(ctx, cfg.Addr); err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "server failed", err)
	}
	logger.Info("server stopped")
	return nil
}

// service is a fully wired API server and the resources it owns.
type service struct {
	Server *server.Server

	store       *store.Store
	catalog     *catalog.Holder
	catalogPath string
	logger      *slog.Logger
}

// reloadCatalog reads the configured catalog again and swaps it in.
// On error the current catalog keeps serving.
func (s *service) reloadCatalog() error {
	next := catalog.Default()
	if s.catalogPath != "" {
		cat, err := catalog.LoadFile(s.catalogPath)
		if err != nil {
			s.logger.Error("catalog reload failed", "source", s.catalogPath, "error", err)
			return err
		}
		next = cat
	}
	prev := s.catalog.Swap(next)
	s.logger.Info("catalog reloaded", "source", s.catalogPath, "parts", next.Len(), "previous_parts", prev.Len())
	return nil
}

// reloadOn reloads the catalog for every value received on sig until ctx
// is done.
func (s *service) reloadOn(ctx context.Context, sig <-chan os.Signal) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sig:
			_ = s.reloadCatalog()
		}
	}
}

// Close releases the gallery database, if any.
func (s *service) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}

// newService wires the catalog, engine, session manager, gallery store and
// metrics described by cfg into a server.
func newService(cfg *config.Config, formatter *OutputFormatter, logger *slog.Logger) (*service, error) {
	cat, err := loadCatalog(formatter, cfg.Catalog)
	if err != nil {
		return nil, err
	}
	logger.Debug("catalog loaded", "source", cfg.Catalog, "categories", len(cat.Categories()))

	sessions, err := session.NewManager(cfg.SessionLimit, session.WithLogger(logger))
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to create session manager", err)
	}

	svc := &service{
		catalog:     catalog.NewHolder(cat),
		catalogPath: cfg.Catalog,
		logger:      logger,
	}
	if cfg.DB != "" {
		st, err := store.Open(cfg.DB)
		if err != nil {
			_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
			return nil, WrapExitError(ExitCommandError, "failed to open gallery database", err)
		}
		svc.store = st
		logger.Debug("gallery enabled", "db", cfg.DB)

		if cfg.Seed {
			n, err := st.SeedIfEmpty(context.Background(), cat, store.CommunityBuilds)
			if err != nil {
				logger.Warn("gallery not seeded", "error", err)
			} else if n > 0 {
				logger.Info("gallery seeded", "builds", n)
			}
		}
	}

	srv, err := server.New(server.Options{
		Catalog:  svc.catalog,
		Engine:   compat.New(compat.WithLanguage(compat.ParseLanguage(cfg.Lang))),
		Sessions: sessions,
		Builds:   svc.store,
		Metrics:  metrics.New(sessions.Len),
		Logger:   logger,
	})
	if err != nil {
		svc.Close()
		return nil, WrapExitError(ExitCommandError, "failed to create server", err)
	}
	svc.Server = srv
	return svc, nil
}

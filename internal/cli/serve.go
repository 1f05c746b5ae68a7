package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/erfan1375er/highcharts/internal/config"
	"github.com/erfan1375er/highcharts/internal/server"
	"github.com/erfan1375er/highcharts/pkg/cache"
	"github.com/erfan1375er/highcharts/pkg/pipeline"
	"github.com/erfan1375er/highcharts/pkg/session"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr, redisURL, mongoURL string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve charts over HTTP",
		Long: `Serve starts the HTTP API. Configuration comes from TREEGRAPH_* environment
variables (TREEGRAPH_ADDR, TREEGRAPH_REDIS_URL, TREEGRAPH_MONGO_URL, ...);
flags override them.

Rendered artifacts are cached in Redis when a URL is configured and in the
local cache directory otherwise. Interactive chart sessions are kept in
MongoDB when TREEGRAPH_MONGO_URL is set and in process memory otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if redisURL != "" {
				cfg.RedisURL = redisURL
			}
			if mongoURL != "" {
				cfg.MongoURL = mongoURL
			}
			return c.runServe(cmd.Context(), cfg, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides TREEGRAPH_ADDR)")
	cmd.Flags().StringVar(&redisURL, "redis-url", "", "redis URL for the shared cache (overrides TREEGRAPH_REDIS_URL)")
	cmd.Flags().StringVar(&mongoURL, "mongo-url", "", "mongodb URL for chart sessions (overrides TREEGRAPH_MONGO_URL)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg *config.Config, noCache bool) error {
	logger := loggerFromContext(ctx)
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil && !c.verboseSet() {
		logger.SetLevel(level)
	}

	cc, err := serverCache(ctx, cfg, noCache)
	if err != nil {
		return err
	}
	runner := serverRunner(cc, cfg, logger)
	defer runner.Close()

	store, err := serverSessions(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if ms, ok := store.(*session.MongoStore); ok {
		defer ms.Close(context.Background())
	}

	printSuccess("Serving on %s", cfg.Addr)
	printKeyValue("cache", cacheName(cfg, noCache))
	printKeyValue("plot", fmt.Sprintf("%gx%g", cfg.Width, cfg.Height))
	printKeyValue("sessions", fmt.Sprintf("%s (%s)", sessionsName(cfg), cfg.SessionTTL))

	return server.New(cfg, runner, store, logger).ListenAndServe(ctx)
}

func serverSessions(ctx context.Context, cfg *config.Config, logger *log.Logger) (session.Store, error) {
	if cfg.MongoURL == "" {
		return session.NewMemoryStore(), nil
	}
	ms, err := session.NewMongoStore(ctx, cfg.MongoURL, cfg.MongoDB, logger)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	return ms, nil
}

func sessionsName(cfg *config.Config) string {
	if cfg.MongoURL != "" {
		return "mongo"
	}
	return "memory"
}

// verboseSet reports whether --verbose already lowered the level to debug,
// which takes precedence over TREEGRAPH_LOG_LEVEL.
func (c *CLI) verboseSet() bool {
	return c.Logger.GetLevel() == log.DebugLevel
}

// serverKeyScope separates API artifacts from CLI renders when both use the
// local cache directory.
const serverKeyScope = "api:"

func serverRunner(cc cache.Cache, cfg *config.Config, logger *log.Logger) *pipeline.Runner {
	runner := pipeline.NewRunner(cc, cache.NewScopedKeyer(nil, serverKeyScope), logger)
	runner.ArtifactTTL = cfg.CacheTTL
	return runner
}

func serverCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	switch {
	case noCache:
		return cache.NewNullCache(), nil
	case cfg.RedisURL != "":
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL, cfg.CachePrefix)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return rc, nil
	default:
		return newCache(false)
	}
}

func cacheName(cfg *config.Config, noCache bool) string {
	switch {
	case noCache:
		return "disabled"
	case cfg.RedisURL != "":
		return "redis"
	default:
		return "file"
	}
}

package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/hollowdust/pavilion/internal/config"
	"github.com/hollowdust/pavilion/internal/domain"
	"github.com/hollowdust/pavilion/internal/httpserver"
	"github.com/hollowdust/pavilion/internal/httpserver/deps"
	"github.com/hollowdust/pavilion/internal/index"
	"github.com/hollowdust/pavilion/internal/logger"
	"github.com/hollowdust/pavilion/internal/markdown"
	"github.com/hollowdust/pavilion/internal/redis"
	"github.com/hollowdust/pavilion/internal/scheduler"
	"github.com/hollowdust/pavilion/internal/sources/content"
	redisstore "github.com/hollowdust/pavilion/internal/store/redis"
	"github.com/hollowdust/pavilion/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	memIndex    *index.MemoryIndex
	syncer      *scheduler.RedisSyncer
	reloaders   []*scheduler.ContentReloader
	janitor     *scheduler.CacheJanitor
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Load the site manifest - fail fast, without it nothing can be served
	manifest, err := content.LoadManifest(cfg.ContentDir, cfg.SiteFile)
	if err != nil {
		loggerClient.Errorf("Failed to load site manifest: %v", err)
		os.Exit(1)
	}
	loggerClient.Infof("Site manifest loaded: %q with %d collections", manifest.Title, len(manifest.Kinds()))

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		DB:             cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	// Initialize memory index
	memIndex := index.NewMemoryIndex()

	// Initialize Redis store
	store := redisstore.NewStore(redisClient)

	// Warm start: restore outlines and view counters cached in Redis
	syncer := scheduler.NewRedisSyncer(store, memIndex, loggerClient)
	if err := syncer.Sync(context.Background(), manifest.Kinds()); err != nil {
		loggerClient.Warn("failed to sync from redis on startup, will load from content files",
			logger.Error(err))
	}

	// One reloader per declared collection, each with its own manual trigger
	reloadTriggers := make(map[domain.Kind]chan struct{}, len(manifest.Kinds()))
	reloaders := make([]*scheduler.ContentReloader, 0, len(manifest.Kinds()))
	for _, kind := range manifest.Kinds() {
		trigger := make(chan struct{}, 1)
		reloadTriggers[kind] = trigger
		reloaders = append(reloaders, scheduler.NewContentReloader(
			manifest,
			kind,
			store,
			memIndex,
			loggerClient,
			cfg.ReloadInterval,
			trigger,
		))
	}

	// Initialize cache janitor for orphaned article renders
	janitor := scheduler.NewCacheJanitor(
		store,
		memIndex,
		loggerClient,
		cfg.JanitorInterval,
	)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:           loggerClient,
		StartTime:        time.Now(),
		Version:          version.Version,
		Commit:           version.Commit,
		BuildDate:        version.BuildDate,
		GoVersion:        version.GoVersion,
		TimeNow:          time.Now,
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedHosts:     cfg.AllowedHosts,
		AllowedCIDRS:     cfg.AllowedCIDRS,
		TrustProxy:       cfg.TrustProxy,
		RedisClient:      redisClient,
		MemoryIndex:      memIndex,
		Manifest:         manifest,
		Renderer:         markdown.NewRenderer(),
		AssetsDir:        cfg.AssetsDir,
		SearchMaxResults: cfg.SearchMaxResults,
		ReloadTriggers:   reloadTriggers,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		memIndex:    memIndex,
		syncer:      syncer,
		reloaders:   reloaders,
		janitor:     janitor,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Pavilion v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Pavilion %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start collection reloaders (initial load + periodic refresh).
	// One broken collection degrades itself only, the rest keep serving.
	for _, reloader := range a.reloaders {
		if err := reloader.Start(ctx); err != nil {
			a.logger.Error("collection failed to load, serving degraded",
				logger.Error(err))
		}
	}
	a.logger.Info("content reloaders started",
		logger.Int("collections", len(a.reloaders)),
		logger.Duration("interval", a.cfg.ReloadInterval))

	// Start cache janitor
	if err := a.janitor.Start(ctx); err != nil {
		return fmt.Errorf("failed to start cache janitor: %w", err)
	}
	a.logger.Info("cache janitor started",
		logger.Duration("interval", a.cfg.JanitorInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	// Stop reloaders and janitor
	for _, reloader := range a.reloaders {
		reloader.Stop()
	}
	a.janitor.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	// Refresh the Redis mirror before letting go of the connection, so
	// the next boot warms up with the view counts learned this run.
	if err := a.syncer.Mirror(shutdownCtx); err != nil {
		a.logger.Warnf("failed to mirror outlines to redis: %v", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ Pavilion stopped cleanly")
	return nil
}

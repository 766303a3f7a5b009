package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"satorii/domain/model"
	"satorii/domain/repository"
	"satorii/infrastructure/cache"
	"satorii/infrastructure/clients/piped"
	"satorii/infrastructure/clients/suggest"
	youtubeclient "satorii/infrastructure/clients/youtube"
	"satorii/infrastructure/configuration"
	"satorii/infrastructure/logger"
	"satorii/infrastructure/persistence"
	httpHandler "satorii/interfaces/http"
	"satorii/server"
	"satorii/usecase"

	"golang.org/x/sync/errgroup"
)

const purgeInterval = 30 * time.Minute

// expiredPurger is implemented by SQL stores, which cannot expire rows on their own.
type expiredPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	// Load env from files (non-destructive; OS env still has precedence)
	if loaded := configuration.LoadEnvFromFile("config.env", ".env"); len(loaded) > 0 {
		logger.GetLogger().WithField("files", loaded).Info("Loaded env files")
		configuration.Reload()
	}
	cfg := configuration.C

	g, ctx := errgroup.WithContext(ctx)

	store, closeStore, err := InitiateCache(ctx, cfg)
	if err != nil {
		logger.GetLogger().WithField("error", err).WithField("driver", cfg.Cache.Driver).
			Warn("Cache store not available - falling back to in-memory cache")
		store, closeStore = cache.NewMemoryCache(), func() {}
	}
	defer closeStore()

	responseCache := usecase.NewResponseCache(store, usecase.CacheTTLs{
		model.CacheCategorySearch:      cfg.Cache.SearchTTL,
		model.CacheCategoryDetails:     cfg.Cache.DetailsTTL,
		model.CacheCategoryTrending:    cfg.Cache.TrendingTTL,
		model.CacheCategoryChannelIcon: cfg.Cache.ChannelIconTTL,
	})

	youtubeClient, err := youtubeclient.NewYouTubeClient(ctx, &youtubeclient.Config{
		APIKeys:    cfg.YouTube.APIKeys,
		BaseURL:    cfg.YouTube.BaseURL,
		MaxResults: cfg.YouTube.MaxResults,
		Timeout:    cfg.YouTube.Timeout,
	})
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to initialize YouTube client")
		os.Exit(1)
	}
	if len(cfg.YouTube.APIKeys) == 0 {
		logger.GetLogger().Warn("No YouTube API keys configured - every YouTube request will report quota exhaustion")
	}

	youtubeUC := usecase.NewYouTubeUseCase(youtubeClient, responseCache, usecase.Options{
		RegionCode:        cfg.YouTube.RegionCode,
		MaxResults:        cfg.YouTube.MaxResults,
		ShortsMaxSeconds:  cfg.Filter.ShortsMaxSeconds,
		RelatedMinResults: cfg.Filter.RelatedMinResults,
	}).
		WithStreamResolver(piped.NewClient(cfg.Piped.Instances, cfg.Piped.Timeout)).
		WithSuggester(suggest.NewClient(cfg.Suggest.URL, cfg.Suggest.Timeout))

	logger.GetLogger().WithFields(map[string]interface{}{
		"apiKeys":        len(cfg.YouTube.APIKeys),
		"cacheDriver":    cfg.Cache.Driver,
		"pipedInstances": len(cfg.Piped.Instances),
		"regionCode":     cfg.YouTube.RegionCode,
	}).Info("YouTube gateway initialized")

	router := server.InitiateRouter(
		httpHandler.NewHealthHandler(store, len(cfg.YouTube.APIKeys)),
		httpHandler.NewYouTubeHandler(youtubeUC),
		cfg.App.AllowedOrigins,
	)

	if purger, ok := store.(expiredPurger); ok {
		g.Go(func() error {
			runJanitor(ctx, purger, purgeInterval)
			return nil
		})
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.GetLogger().WithField("port", cfg.App.Port).Info("Starting application")
	g.Go(func() error {
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.GetLogger().WithField("error", err).Error("Graceful shutdown failed")
	}

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		closeStore()
		os.Exit(2)
	}
}

// InitiateCache opens the response cache store selected by cache.driver.
// The returned func releases the underlying connection.
func InitiateCache(ctx context.Context, cfg configuration.Config) (repository.IResponseCache, func(), error) {
	switch cfg.Cache.Driver {
	case "memory", "":
		return cache.NewMemoryCache(), func() {}, nil

	case "redis":
		db, _ := strconv.Atoi(cfg.RedisClient.DatabaseName)
		client, err := cache.NewRedisClient(ctx,
			fmt.Sprintf("%s:%s", cfg.RedisClient.Host, cfg.RedisClient.Port),
			cfg.RedisClient.Username,
			cfg.RedisClient.Password,
			db,
		)
		if err != nil {
			return nil, nil, err
		}
		logger.GetLogger().Info("Redis client initialized successfully.")
		return cache.NewRedisCache(client), func() { _ = client.Close() }, nil

	case "postgres":
		db, err := persistence.NewPostgreSQLDB(cfg.Database.Psql)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot connect to PostgreSQL: %w", err)
		}
		if err := persistence.EnsureResponseCacheSchema(db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed ensuring response cache schema: %w", err)
		}
		return persistence.NewResponseCacheRepository(db), func() { _ = db.Close() }, nil

	case "mssql":
		db, err := persistence.NewMSSQLDB(cfg.Database.Mssql)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot connect to MSSQL: %w", err)
		}
		if err := persistence.EnsureResponseCacheSchemaMSSQL(db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed ensuring response cache schema: %w", err)
		}
		return persistence.NewResponseCacheRepositoryMSSQL(db), func() { _ = db.Close() }, nil

	case "mongo":
		client, database, err := persistence.NewMongoDB(ctx, cfg.Database.Mongo)
		if err != nil {
			return nil, nil, err
		}
		repo, err := persistence.NewResponseCacheRepositoryMongo(ctx, database)
		if err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, err
		}
		logger.GetLogger().Info("MongoDB connected successfully")
		return repo, func() { _ = client.Disconnect(context.Background()) }, nil
	}
	return nil, nil, fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
}

// runJanitor deletes expired rows until ctx is done.
func runJanitor(ctx context.Context, purger expiredPurger, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purgeCtx, cancelPurge := context.WithTimeout(ctx, 30*time.Second)
			n, err := purger.PurgeExpired(purgeCtx)
			cancelPurge()
			if err != nil {
				logger.GetLogger().WithField("error", err).Warn("Purging expired cache entries failed")
				continue
			}
			if n > 0 {
				logger.GetLogger().WithField("deleted", n).Info("Purged expired cache entries")
			}
		}
	}
}

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/tastavino/recipe-search/internal/cache"
	"github.com/tastavino/recipe-search/internal/indexing"
	"github.com/tastavino/recipe-search/internal/router"
	"github.com/tastavino/recipe-search/internal/search"
	"github.com/tastavino/recipe-search/internal/server"
	"github.com/tastavino/recipe-search/internal/storage/meili"
	"github.com/tastavino/recipe-search/internal/storage/pg"
)

func main() {
	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server config", "error", err)
		os.Exit(1)
	}

	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: cfg.PgConnStr})
	if err != nil {
		slog.Error("Failed to connect to Postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to parse Redis URL", "error", err)
		os.Exit(1)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	locales := cfg.Settings.Locales

	ranking := pg.NewRankingQuery(pool.GetConn(), cfg.Settings.RankingWeights())
	facade := search.NewFacade(ranking)

	postStore := pg.NewPostStore(pool.GetConn())
	categoryStore := pg.NewCategoryStore(pool.GetConn())

	cacheStore := cache.NewRedisStore(redisClient)
	caches := cache.NewRegistry(
		cache.NewPostCache(cacheStore, postStore, locales),
		cache.NewCategoryCache(cacheStore, categoryStore, locales),
		postStore.PostsByCategory,
		postStore.PostsByTag,
	)
	go caches.Run(ctx)

	docStore := meili.NewClient(cfg.MeiliHost, cfg.MeiliAPIKey)
	indexer := indexing.NewEntityIndexer(docStore, indexing.NewResolver(cfg.Settings.IndexPrefix), locales)

	e := echo.New()
	s := server.NewServer(e, sCfg).
		SetupHealthChecks(pg.NewHealthChecker(pool), cache.NewHealthChecker(redisClient))

	e.GET("/", func(c echo.Context) error {
		return c.String(200, "Recipe Search API is running")
	})

	router.NewSearchRouter(e, facade, locales).Bind()
	router.NewContentRouter(e, caches, locales).Bind()
	router.NewEventsRouter(e, indexer, caches, postStore, categoryStore).Bind()

	if err := s.Start(); err != nil {
		e.Logger.Error("Failed to start server: ", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/tastavino/recipe-search/internal/config"
	"github.com/tastavino/recipe-search/internal/indexing"
	"github.com/tastavino/recipe-search/internal/storage/meili"
	"github.com/tastavino/recipe-search/internal/storage/pg"
	"github.com/tastavino/recipe-search/pkg/config/env"
)

// reindex rebuilds every locale's post index from the canonical Postgres
// data. Safe to run against live indexes: document writes are idempotent by
// primary key.
func main() {
	if err := run(); err != nil {
		slog.Error("Reindex failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	err := env.LoadDotEnv(os.Getenv("ENV"), "cmd/recipe_search/.env")
	if err != nil {
		slog.Info("Failed to load .env, continuing with existing environment variables", "error", err)
	}

	connStr := os.Getenv("PG_CONNECTION_STRING")
	if connStr == "" {
		return fmt.Errorf("PG_CONNECTION_STRING is required")
	}
	meiliHost := os.Getenv("MEILI_HOST")
	if meiliHost == "" {
		return fmt.Errorf("MEILI_HOST is required")
	}

	settingsPath := os.Getenv("SEARCH_SETTINGS_PATH")
	if settingsPath == "" {
		settingsPath = "config/search.yaml"
	}
	settings, err := config.LoadFile(settingsPath)
	if err != nil {
		return err
	}

	ctx := context.Background()

	pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: connStr})
	if err != nil {
		return err
	}
	defer pool.Close()

	posts, err := pg.NewPostStore(pool.GetConn()).AllPosts(ctx)
	if err != nil {
		return err
	}

	docStore := meili.NewClient(meiliHost, os.Getenv("MEILI_API_KEY"))
	indexer := indexing.NewEntityIndexer(
		docStore,
		indexing.NewResolver(settings.IndexPrefix),
		settings.Locales,
	)

	failed := 0
	for i := range posts {
		if err := indexer.Index(ctx, &posts[i], indexing.PostEntityType); err != nil {
			slog.Error("Failed to index post", "id", posts[i].ID, "error", err)
			failed++
		}
	}

	slog.Info("Reindex completed",
		"posts", len(posts), "failed", failed, "locales", settings.Locales)
	if failed > 0 {
		return fmt.Errorf("%d of %d posts failed to index", failed, len(posts))
	}
	return nil
}

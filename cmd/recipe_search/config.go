package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/tastavino/recipe-search/internal/config"
	"github.com/tastavino/recipe-search/pkg/config/env"
)

const defaultSettingsPath = "config/search.yaml"

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type RecipeSearchConfig struct {
	PgConnStr   string
	MeiliHost   string
	MeiliAPIKey string
	RedisURL    string
	Settings    *config.Settings
}

func (ac *AppConfig) Load() (*RecipeSearchConfig, error) {
	err := env.LoadDotEnv(ac.ENV, "cmd/recipe_search/.env")
	if err != nil {
		slog.Info("Failed to load .env, continuing with existing environment variables", "error", err)
	}

	connStr := os.Getenv("PG_CONNECTION_STRING")
	if connStr == "" {
		return nil, fmt.Errorf("PG_CONNECTION_STRING is required")
	}

	meiliHost := os.Getenv("MEILI_HOST")
	if meiliHost == "" {
		return nil, fmt.Errorf("MEILI_HOST is required")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	settingsPath := os.Getenv("SEARCH_SETTINGS_PATH")
	if settingsPath == "" {
		settingsPath = defaultSettingsPath
	}

	settings, err := config.LoadFile(settingsPath)
	if err != nil {
		slog.Error("Failed to load search settings", "path", settingsPath, "error", err)
		return nil, err
	}

	return &RecipeSearchConfig{
		PgConnStr:   connStr,
		MeiliHost:   meiliHost,
		MeiliAPIKey: os.Getenv("MEILI_API_KEY"),
		RedisURL:    redisURL,
		Settings:    settings,
	}, nil
}

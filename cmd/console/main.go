package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/umbraworks/darkfall/internal/config"
	"github.com/umbraworks/darkfall/internal/services"
	"github.com/umbraworks/darkfall/pkg/catalog"
	"github.com/umbraworks/darkfall/pkg/provider"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	// The TUI owns the terminal, so logs are discarded here.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cat, err := catalog.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load catalog: %v\n", err)
		os.Exit(1)
	}

	var cache services.Cache
	if cfg.RedisURL != "" {
		redisCache, err := services.NewRedisService(cfg.RedisURL, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to connect to Redis: %v\n", err)
			os.Exit(1)
		}
		cache = redisCache
	} else {
		cache = services.NewMemoryCache()
	}
	defer func() { _ = cache.Close() }()

	store := provider.NewStore()
	store.SetAPIKey(provider.TypeOpenAI, cfg.OpenAIAPIKey)
	store.SetSelectedModel(provider.TypeOpenAI, cfg.OpenAIModel)

	openAI := services.NewOpenAIProvider(
		services.NewOpenAIClient(cfg.OpenAIBaseURL, logger),
		services.NewModelCatalogClient(cfg.OpenAIBaseURL, cache, logger),
	)
	registry := provider.NewRegistry(openAI, services.NewLocalProvider())
	service := services.NewGenerationService(store, registry, logger)

	p := tea.NewProgram(NewConsoleUI(cat, store, openAI, service),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/umbraworks/darkfall/internal/config"
	"github.com/umbraworks/darkfall/internal/logger"
	"github.com/umbraworks/darkfall/internal/services"
	"github.com/umbraworks/darkfall/pkg/catalog"
	"github.com/umbraworks/darkfall/pkg/provider"
)

var (
	cfg *config.Config
	log *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "darkfall",
	Short: "闇堕ちキャラクター生成ツール",
	Long: `darkfall generates dark-fallen character narratives from a world
genre, character attributes and a darkness selection. Generation uses the
configured OpenAI credentials when available and falls back to local
synthesis otherwise.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Missing .env is fine; the environment may be set directly.
		_ = godotenv.Load()
		cfg = config.Load()
		log = logger.Setup(cfg)
	},
}

// newApp assembles the service graph the subcommands share.
type app struct {
	catalog  *catalog.Catalog
	store    *provider.Store
	registry *provider.Registry
	service  *services.GenerationService
	openAI   *services.OpenAIProvider
	cache    services.Cache
}

func newApp() (*app, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, err
	}

	var cache services.Cache
	if cfg.RedisURL != "" {
		redisCache, err := services.NewRedisService(cfg.RedisURL, log)
		if err != nil {
			return nil, err
		}
		cache = redisCache
	} else {
		cache = services.NewMemoryCache()
	}

	store := provider.NewStore()
	store.SetAPIKey(provider.TypeOpenAI, cfg.OpenAIAPIKey)
	store.SetSelectedModel(provider.TypeOpenAI, cfg.OpenAIModel)

	openAI := services.NewOpenAIProvider(
		services.NewOpenAIClient(cfg.OpenAIBaseURL, log),
		services.NewModelCatalogClient(cfg.OpenAIBaseURL, cache, log),
	)
	registry := provider.NewRegistry(openAI, services.NewLocalProvider())

	return &app{
		catalog:  cat,
		store:    store,
		registry: registry,
		service:  services.NewGenerationService(store, registry, log),
		openAI:   openAI,
		cache:    cache,
	}, nil
}

func (a *app) close() {
	_ = a.cache.Close()
}

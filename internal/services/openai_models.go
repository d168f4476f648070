package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	modelCacheKey = "darkfall:models:openai"
	modelCacheTTL = 10 * time.Minute
)

var (
	gptPrefix     = regexp.MustCompile(`(?i)^gpt-`)
	oSeriesPrefix = regexp.MustCompile(`(?i)^o\d+-`)
	dateSuffix    = regexp.MustCompile(`-\d{4}-\d{2}-\d{2}$`)
)

// excludedCapabilityTokens marks model variants that can never serve chat
// narrative generation, even when their prefix matches.
var excludedCapabilityTokens = []string{
	"embedding", "image", "audio", "realtime", "preview", "tts", "transcribe",
}

// ModelCatalogClient retrieves the list of generation-capable model ids from
// the OpenAI models endpoint via the official SDK. Results are cached when a
// Cache is configured; filtering itself is a pure function.
type ModelCatalogClient struct {
	baseURL string
	cache   Cache
	logger  *slog.Logger
}

// Ensure ModelCatalogClient implements ModelLister.
var _ ModelLister = (*ModelCatalogClient)(nil)

// NewModelCatalogClient creates a catalog client. cache may be nil to disable
// caching; baseURL overrides the endpoint when non-empty.
func NewModelCatalogClient(baseURL string, cache Cache, logger *slog.Logger) *ModelCatalogClient {
	return &ModelCatalogClient{baseURL: baseURL, cache: cache, logger: logger}
}

// ListModels fetches and filters the models usable for generation.
func (c *ModelCatalogClient) ListModels(ctx context.Context, apiKey string) ([]string, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, newIntegrationError("OpenAI APIキーが設定されていません。", nil)
	}

	if cached, ok := c.cachedModels(ctx); ok {
		c.logger.Debug("Model catalog served from cache", "count", len(cached))
		return cached, nil
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if c.baseURL != "" {
		opts = append(opts, option.WithBaseURL(c.baseURL))
	}
	client := openai.NewClient(opts...)

	c.logger.Info("Fetching OpenAI model catalog")
	page, err := client.Models.List(ctx)
	if err != nil {
		c.logger.Warn("OpenAI model catalog request failed", "error", err)
		return nil, newIntegrationError("OpenAIモデル一覧の取得に失敗しました。", err)
	}

	ids := make([]string, 0, len(page.Data))
	for _, model := range page.Data {
		ids = append(ids, model.ID)
	}

	models := FilterAllowedModels(ids)
	c.logger.Info("Retrieved OpenAI model catalog", "total", len(ids), "allowed", len(models))

	c.storeModels(ctx, models)
	return models, nil
}

// FilterAllowedModels keeps only identifiers that follow the gpt-/o-series
// naming scheme, dropping date-stamped snapshots and capability variants
// (embeddings, image, audio, realtime, preview, TTS, speech-to-text) that
// cannot generate narrative text. The result is sorted and deduplicated of
// blanks; the function is pure and directly testable.
func FilterAllowedModels(modelIDs []string) []string {
	allowed := make([]string, 0, len(modelIDs))
	for _, id := range modelIDs {
		trimmed := strings.TrimSpace(id)
		if trimmed == "" {
			continue
		}
		if !gptPrefix.MatchString(trimmed) && !oSeriesPrefix.MatchString(trimmed) {
			continue
		}
		if dateSuffix.MatchString(trimmed) {
			continue
		}
		if hasExcludedCapability(trimmed) {
			continue
		}
		allowed = append(allowed, trimmed)
	}
	sort.Strings(allowed)
	return allowed
}

func hasExcludedCapability(modelID string) bool {
	lower := strings.ToLower(modelID)
	for _, token := range excludedCapabilityTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

func (c *ModelCatalogClient) cachedModels(ctx context.Context) ([]string, bool) {
	if c.cache == nil {
		return nil, false
	}
	raw, err := c.cache.Get(ctx, modelCacheKey)
	if err != nil || raw == "" {
		return nil, false
	}
	var models []string
	if err := json.Unmarshal([]byte(raw), &models); err != nil {
		c.logger.Debug("Dropping unreadable model cache entry", "error", err)
		return nil, false
	}
	return models, true
}

func (c *ModelCatalogClient) storeModels(ctx context.Context, models []string) {
	if c.cache == nil {
		return
	}
	encoded, err := json.Marshal(models)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, modelCacheKey, string(encoded), modelCacheTTL); err != nil {
		c.logger.Debug("Failed to cache model catalog", "error", err)
	}
}

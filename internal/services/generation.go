package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/umbraworks/darkfall/pkg/domain"
	"github.com/umbraworks/darkfall/pkg/provider"
)

const (
	// Darkness intensity is expressed as a percentage in steps of ten.
	minDarknessPercent = 10
	maxDarknessPercent = 300
)

// GenerationResult is the orchestration service's uniform output: a generated
// character plus whether a remote provider produced it, an optional advisory
// warning and, for remote generations, the prompt that was sent.
type GenerationResult struct {
	Character    domain.GeneratedCharacter
	UsedProvider bool
	Warning      string
	Prompt       string
}

// GenerationService is the top-level entry point for character generation.
// It validates input, resolves the active provider, attempts remote
// generation when the provider is ready, and falls back to local synthesis
// otherwise. A syntactically valid request always yields a narrative; only
// validation errors propagate to the caller.
type GenerationService struct {
	store    *provider.Store
	registry *provider.Registry
	logger   *slog.Logger
}

// NewGenerationService wires the orchestration service.
func NewGenerationService(store *provider.Store, registry *provider.Registry, logger *slog.Logger) *GenerationService {
	return &GenerationService{
		store:    store,
		registry: registry,
		logger:   logger,
	}
}

// Generate runs a generation request against the store's active provider.
func (s *GenerationService) Generate(ctx context.Context, input domain.CharacterInput, selection domain.DarknessSelection) (*GenerationResult, error) {
	return s.generate(ctx, s.store.ActiveType(), input, selection)
}

// GenerateWith runs a generation request against an explicitly chosen
// provider, bypassing the store's active type. An empty type falls back to
// the active one.
func (s *GenerationService) GenerateWith(ctx context.Context, providerType provider.Type, input domain.CharacterInput, selection domain.DarknessSelection) (*GenerationResult, error) {
	if providerType == "" {
		providerType = s.store.ActiveType()
	}
	return s.generate(ctx, providerType, input, selection)
}

func (s *GenerationService) generate(ctx context.Context, providerType provider.Type, input domain.CharacterInput, selection domain.DarknessSelection) (*GenerationResult, error) {
	if err := validate(input, selection); err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	logger := s.logger.With("request_id", requestID, "provider", string(providerType))

	snapshot := s.store.Snapshot(providerType)

	var (
		narrative    string
		prompt       string
		warning      string
		usedProvider bool
	)

	p, found := s.registry.Find(providerType)
	if found {
		status := p.AssessConfiguration(snapshot)
		if status.Ready {
			logger.Info("Attempting provider generation")
			result, err := s.attempt(ctx, p, snapshot, input, selection)
			if err != nil {
				warning = provider.FailureWarning(p, err)
				logger.Warn("Provider generation failed, falling back to local synthesis", "error", err)
			} else {
				narrative = result.Narrative
				prompt = result.Prompt
				usedProvider = true
			}
		} else {
			warning = status.Warning
			logger.Info("Provider not ready, using local synthesis", "warning_present", warning != "")
		}
	} else {
		logger.Info("No provider registered, using local synthesis")
	}

	if !usedProvider {
		narrative = Synthesize(input, selection)
	}

	character := domain.GeneratedCharacter{
		Input:       input,
		Selection:   selection,
		Narrative:   narrative,
		GeneratedAt: time.Now(),
	}

	logger.Info("Generation complete", "used_provider", usedProvider, "warning_present", warning != "")

	return &GenerationResult{
		Character:    character,
		UsedProvider: usedProvider,
		Warning:      warning,
		Prompt:       prompt,
	}, nil
}

// attempt isolates the provider call so an unexpected panic in a provider
// implementation degrades into a fallback-with-warning instead of aborting
// the whole request.
func (s *GenerationService) attempt(ctx context.Context, p provider.Provider, pc provider.Context, input domain.CharacterInput, selection domain.DarknessSelection) (result *provider.GenerationResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("provider panicked: %v", r)
		}
	}()

	result, err = p.Generate(ctx, pc, input, selection)
	if err != nil {
		return nil, err
	}
	if result == nil || result.Narrative == "" {
		return nil, newIntegrationError("プロバイダが空の結果を返しました。", nil)
	}
	return result, nil
}

// validate enforces the user-input preconditions. Failures are terminal for
// the request: no network call, no fallback.
func validate(input domain.CharacterInput, selection domain.DarknessSelection) error {
	if input.WorldGenre == nil {
		return newValidationError("世界観ジャンルを選択してください。")
	}
	if input.Mode == domain.ModeSemiAuto && len(input.CharacterTraits) == 0 {
		return newValidationError("セミオートモードではキャラクター属性を1つ以上選択してください。")
	}
	if !selection.HasAnySelection() {
		return newValidationError("闇堕ちカテゴリから少なくとも1つは選択してください。")
	}
	percent := selection.Preset.Value()
	if percent < minDarknessPercent || percent > maxDarknessPercent || percent%10 != 0 {
		return newValidationError("闇堕ち度は10〜300の範囲で10刻みの値を指定してください。")
	}
	return nil
}

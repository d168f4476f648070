package services

import (
	"context"

	"github.com/umbraworks/darkfall/pkg/domain"
)

// GenerationClient is the low-level narrative generation call against a
// remote text-generation endpoint. Implementations return the generated
// narrative plus the prompt that produced it.
type GenerationClient interface {
	GenerateNarrative(ctx context.Context, apiKey, modelID string, input domain.CharacterInput, selection domain.DarknessSelection) (narrative string, prompt string, err error)
}

// ModelLister fetches the model identifiers available to an API key.
type ModelLister interface {
	ListModels(ctx context.Context, apiKey string) ([]string, error)
}

package services

import (
	"context"

	"github.com/umbraworks/darkfall/pkg/domain"
	"github.com/umbraworks/darkfall/pkg/provider"
)

// OpenAIProvider adapts the OpenAI clients to the provider interface.
type OpenAIProvider struct {
	generationClient GenerationClient
	modelLister      ModelLister
}

// Ensure OpenAIProvider implements provider.Provider.
var _ provider.Provider = (*OpenAIProvider)(nil)

// NewOpenAIProvider creates the remote provider from its two clients.
func NewOpenAIProvider(generationClient GenerationClient, modelLister ModelLister) *OpenAIProvider {
	return &OpenAIProvider{
		generationClient: generationClient,
		modelLister:      modelLister,
	}
}

func (p *OpenAIProvider) Type() provider.Type {
	return provider.TypeOpenAI
}

func (p *OpenAIProvider) DisplayName() string {
	return provider.TypeOpenAI.DisplayName()
}

// AssessConfiguration inspects the configuration snapshot without touching
// the network: no credential means not ready; a credential without a chosen
// model is not ready with a user-visible warning.
func (p *OpenAIProvider) AssessConfiguration(pc provider.Context) provider.ConfigurationStatus {
	if !pc.HasAPIKey() {
		return provider.NotReady()
	}
	if !pc.HasSelectedModel() {
		return provider.NotReadyWithWarning("OpenAIモデルが選択されていないため、サンプル結果を表示しています。")
	}
	return provider.Ready()
}

// Generate calls the remote generation client with the snapshot's credential
// and model.
func (p *OpenAIProvider) Generate(ctx context.Context, pc provider.Context, input domain.CharacterInput, selection domain.DarknessSelection) (*provider.GenerationResult, error) {
	if !pc.HasAPIKey() {
		return nil, newIntegrationError("OpenAI APIキーが設定されていません。", nil)
	}
	if !pc.HasSelectedModel() {
		return nil, newIntegrationError("OpenAIリクエストに使用するモデルが選択されていません。", nil)
	}

	narrative, prompt, err := p.generationClient.GenerateNarrative(ctx, pc.APIKey, pc.SelectedModel, input, selection)
	if err != nil {
		return nil, err
	}
	return &provider.GenerationResult{Narrative: narrative, Prompt: prompt}, nil
}

// ListAvailableModels fetches the filtered model catalog for the given key.
func (p *OpenAIProvider) ListAvailableModels(ctx context.Context, apiKey string) ([]string, error) {
	return p.modelLister.ListModels(ctx, apiKey)
}

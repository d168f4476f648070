package services

import (
	"context"
	"sync"

	"github.com/umbraworks/darkfall/pkg/domain"
	"github.com/umbraworks/darkfall/pkg/provider"
)

// MockProvider is a mock implementation of provider.Provider for testing
type MockProvider struct {
	ProviderType provider.Type
	Name         string

	AssessConfigurationFunc func(pc provider.Context) provider.ConfigurationStatus
	GenerateFunc            func(ctx context.Context, pc provider.Context, input domain.CharacterInput, selection domain.DarknessSelection) (*provider.GenerationResult, error)

	// Track calls for testing
	GenerateCalls []provider.Context

	mu sync.Mutex // protects GenerateCalls
}

// Ensure MockProvider implements provider.Provider.
var _ provider.Provider = (*MockProvider)(nil)

// NewMockProvider creates a mock for the given provider type.
func NewMockProvider(t provider.Type) *MockProvider {
	return &MockProvider{
		ProviderType:  t,
		Name:          t.DisplayName(),
		GenerateCalls: make([]provider.Context, 0),
	}
}

func (m *MockProvider) Type() provider.Type {
	return m.ProviderType
}

func (m *MockProvider) DisplayName() string {
	return m.Name
}

func (m *MockProvider) AssessConfiguration(pc provider.Context) provider.ConfigurationStatus {
	if m.AssessConfigurationFunc != nil {
		return m.AssessConfigurationFunc(pc)
	}
	return provider.Ready()
}

func (m *MockProvider) Generate(ctx context.Context, pc provider.Context, input domain.CharacterInput, selection domain.DarknessSelection) (*provider.GenerationResult, error) {
	m.mu.Lock()
	m.GenerateCalls = append(m.GenerateCalls, pc)
	m.mu.Unlock()

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, pc, input, selection)
	}
	return &provider.GenerationResult{Narrative: "mock narrative"}, nil
}

// GenerateCallCount returns how many times Generate was invoked.
func (m *MockProvider) GenerateCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.GenerateCalls)
}

// MockGenerationClient is a mock implementation of GenerationClient for testing
type MockGenerationClient struct {
	GenerateNarrativeFunc func(ctx context.Context, apiKey, modelID string, input domain.CharacterInput, selection domain.DarknessSelection) (string, string, error)

	Calls []string // model ids, in call order
	mu    sync.Mutex
}

// Ensure MockGenerationClient implements GenerationClient.
var _ GenerationClient = (*MockGenerationClient)(nil)

func (m *MockGenerationClient) GenerateNarrative(ctx context.Context, apiKey, modelID string, input domain.CharacterInput, selection domain.DarknessSelection) (string, string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, modelID)
	m.mu.Unlock()

	if m.GenerateNarrativeFunc != nil {
		return m.GenerateNarrativeFunc(ctx, apiKey, modelID, input, selection)
	}
	return "mock narrative", "mock prompt", nil
}

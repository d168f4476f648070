package provider

import (
	"context"
	"strings"

	"github.com/umbraworks/darkfall/pkg/domain"
)

// Type identifies a generation backend.
type Type string

const (
	// TypeOpenAI is the remote LLM-backed provider.
	TypeOpenAI Type = "openai"
	// TypeLocal is the deterministic offline fallback.
	TypeLocal Type = "local"
)

// DisplayName returns the label shown to the user for the provider.
func (t Type) DisplayName() string {
	switch t {
	case TypeOpenAI:
		return "OpenAI"
	case TypeLocal:
		return "ローカル"
	default:
		return string(t)
	}
}

// ParseType resolves a provider type from its code, case-insensitively.
func ParseType(code string) (Type, bool) {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case string(TypeOpenAI):
		return TypeOpenAI, true
	case string(TypeLocal):
		return TypeLocal, true
	default:
		return "", false
	}
}

// Context is an immutable snapshot of one provider's configuration.
// Empty strings mean "not set".
type Context struct {
	Type            Type
	APIKey          string
	SelectedModel   string
	AvailableModels []string
}

// HasAPIKey reports whether a credential is configured.
func (c Context) HasAPIKey() bool {
	return c.APIKey != ""
}

// HasSelectedModel reports whether a model has been chosen.
func (c Context) HasSelectedModel() bool {
	return c.SelectedModel != ""
}

// ConfigurationStatus is the answer to "can this provider run right now?".
// It is a value, not an error: a not-ready provider routes the request to the
// local fallback instead of failing it.
type ConfigurationStatus struct {
	Ready   bool
	Warning string
}

// Ready marks the provider as usable.
func Ready() ConfigurationStatus {
	return ConfigurationStatus{Ready: true}
}

// NotReady marks the provider as unusable without further explanation.
func NotReady() ConfigurationStatus {
	return ConfigurationStatus{}
}

// NotReadyWithWarning marks the provider as unusable and carries a
// user-visible warning forward to the fallback result.
func NotReadyWithWarning(warning string) ConfigurationStatus {
	return ConfigurationStatus{Warning: warning}
}

// GenerationResult is what a provider returns on success. Narrative is never
// empty; Prompt is set only when a rendered prompt was sent upstream.
type GenerationResult struct {
	Narrative string
	Prompt    string
}

// Provider is the capability interface implemented per generation backend.
type Provider interface {
	// Type returns the provider identity.
	Type() Type

	// DisplayName returns the user-facing provider name.
	DisplayName() string

	// AssessConfiguration inspects the snapshot without any network call.
	AssessConfiguration(pc Context) ConfigurationStatus

	// Generate performs the actual generation. It may block on network I/O
	// and returns a classified error on failure; it never returns a nil
	// result on success.
	Generate(ctx context.Context, pc Context, input domain.CharacterInput, selection domain.DarknessSelection) (*GenerationResult, error)
}

// FailureWarning formats the warning attached to a fallback result after a
// provider failed mid-generation.
func FailureWarning(p Provider, err error) string {
	base := p.DisplayName() + "連携に失敗したため、サンプル結果を表示しています。"
	if err == nil {
		return base
	}
	detail := strings.TrimSpace(err.Error())
	if detail == "" {
		return base
	}
	return base + "詳細: " + detail
}

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/umbraworks/darkfall/pkg/domain"
	"github.com/umbraworks/darkfall/pkg/provider"
)

// LocalProvider synthesizes a narrative offline from the same input the
// remote provider receives. It is the unconditional fallback and the default
// when no remote provider is configured: always ready, never fails for
// already-validated input.
type LocalProvider struct{}

// Ensure LocalProvider implements provider.Provider.
var _ provider.Provider = (*LocalProvider)(nil)

// NewLocalProvider creates the offline fallback provider.
func NewLocalProvider() *LocalProvider {
	return &LocalProvider{}
}

func (p *LocalProvider) Type() provider.Type {
	return provider.TypeLocal
}

func (p *LocalProvider) DisplayName() string {
	return provider.TypeLocal.DisplayName()
}

// AssessConfiguration always reports ready: local synthesis has no
// configuration to speak of.
func (p *LocalProvider) AssessConfiguration(provider.Context) provider.ConfigurationStatus {
	return provider.Ready()
}

// Generate deterministically assembles the sample narrative. The prompt field
// stays empty: nothing was sent anywhere.
func (p *LocalProvider) Generate(_ context.Context, _ provider.Context, input domain.CharacterInput, selection domain.DarknessSelection) (*provider.GenerationResult, error) {
	return &provider.GenerationResult{Narrative: Synthesize(input, selection)}, nil
}

// Synthesize builds the local narrative text: a header, the selected
// attributes and free-text memos in fixed section order, the darkness
// percentage, and a closing story paragraph.
func Synthesize(input domain.CharacterInput, selection domain.DarknessSelection) string {
	var sb strings.Builder

	worldGenre := ""
	if input.WorldGenre != nil {
		worldGenre = input.WorldGenre.Name
	}

	sb.WriteString("【闇堕ちキャラクター概要】\n")
	sb.WriteString("世界観ジャンル: " + worldGenre + "\n")
	sb.WriteString("モード: " + input.Mode.DisplayName() + "\n")
	sb.WriteString(fmt.Sprintf("主人公度: %d/5", input.ProtagonistScore))
	if alignment, ok := domain.AlignmentFromScore(input.ProtagonistScore); ok {
		sb.WriteString("（" + alignment.PromptDescription + "）")
	}
	sb.WriteString("\n\n")

	if input.Mode == domain.ModeSemiAuto && len(input.CharacterTraits) > 0 {
		sb.WriteString("■キャラクター属性\n")
		for _, option := range input.CharacterTraits {
			sb.WriteString("・" + option.Name)
			if option.Description != "" {
				sb.WriteString(" - " + option.Description)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if trimmed := strings.TrimSpace(input.TraitFreeText); trimmed != "" {
		sb.WriteString("■キャラクター属性メモ\n")
		sb.WriteString(trimmed + "\n\n")
	}

	sb.WriteString("■闇堕ちカテゴリ\n")
	for _, category := range domain.DarknessCategories() {
		options := selection.Selections[category]
		if len(options) == 0 {
			continue
		}
		sb.WriteString("【" + category.DisplayName() + "】\n")
		for _, option := range options {
			sb.WriteString("・" + option.Name)
			if option.Description != "" {
				sb.WriteString(" - " + option.Description)
			}
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")

	sb.WriteString("闇堕ち度: " + selection.Preset.FormatValueWithLabel() + "\n\n")

	if trimmed := strings.TrimSpace(input.DarknessFreeText); trimmed != "" {
		sb.WriteString("■闇堕ちメモ\n")
		sb.WriteString(trimmed + "\n\n")
	}

	sb.WriteString("■生成ストーリー\n")
	sb.WriteString(storyParagraph(worldGenre, input, selection))
	sb.WriteString("\n")

	return sb.String()
}

// storyParagraph interpolates the closing narrative: world genre, protagonist
// alignment, the selected darkness highlights per category (or a fixed
// placeholder when nothing is selected), and the darkness percentage.
func storyParagraph(worldGenre string, input domain.CharacterInput, selection domain.DarknessSelection) string {
	var highlights []string
	for _, category := range domain.DarknessCategories() {
		options := selection.Selections[category]
		if len(options) == 0 {
			continue
		}
		names := make([]string, 0, len(options))
		for _, option := range options {
			names = append(names, option.Name)
		}
		highlights = append(highlights, category.DisplayName()+"は"+strings.Join(names, "、"))
	}

	highlightText := strings.Join(highlights, "。")
	if highlightText == "" {
		highlightText = "闇の属性はまだ不明瞭です"
	}

	alignmentText := "中立の立場"
	if alignment, ok := domain.AlignmentFromScore(input.ProtagonistScore); ok {
		alignmentText = alignment.PromptDescription
	}

	return fmt.Sprintf(
		"元のキャラクターは%sの世界で活躍し、%sにありました。しかし心の揺らぎが闇への扉を開きます。\n%s。\n闇堕ち度%sに達した現在、かつての姿を忘れ、独自の正義で世界を塗り替えようとしています。\n",
		worldGenre,
		alignmentText,
		highlightText,
		selection.Preset.FormatValueWithLabel(),
	)
}

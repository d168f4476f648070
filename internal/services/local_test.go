package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umbraworks/darkfall/pkg/domain"
	"github.com/umbraworks/darkfall/pkg/provider"
)

func TestLocalProviderAlwaysReady(t *testing.T) {
	p := NewLocalProvider()

	assert.Equal(t, provider.TypeLocal, p.Type())
	assert.Equal(t, "ローカル", p.DisplayName())

	status := p.AssessConfiguration(provider.Context{})
	assert.True(t, status.Ready)
	assert.Empty(t, status.Warning)
}

func TestLocalProviderGenerate(t *testing.T) {
	p := NewLocalProvider()

	result, err := p.Generate(context.Background(), provider.Context{}, testInput(), testSelection())
	require.NoError(t, err)
	assert.Empty(t, result.Prompt, "local synthesis sends no prompt anywhere")
	assert.NotEmpty(t, result.Narrative)
}

func TestSynthesize_FullInput(t *testing.T) {
	input := domain.CharacterInput{
		Mode:       domain.ModeSemiAuto,
		WorldGenre: &domain.WorldGenre{ID: 1, Name: "中世ダークファンタジー"},
		CharacterTraits: []domain.AttributeOption{
			{ID: 1, Category: domain.CategoryCharacterTrait, Name: "勇敢な守護者", Description: "仲間を守るために戦う"},
		},
		TraitFreeText:    "幼少期に家族を失った",
		ProtagonistScore: 3,
		DarknessFreeText: "禁書に触れてしまった",
	}
	selection := domain.DarknessSelection{
		Selections: map[domain.AttributeCategory][]domain.AttributeOption{
			domain.CategoryMotive:     {{ID: 10, Category: domain.CategoryMotive, Name: "復讐心"}},
			domain.CategoryAppearance: {{ID: 40, Category: domain.CategoryAppearance, Name: "白髪化"}},
		},
		Preset: domain.PresetHeavy,
	}

	narrative := Synthesize(input, selection)

	assert.Contains(t, narrative, "【闇堕ちキャラクター概要】")
	assert.Contains(t, narrative, "世界観ジャンル: 中世ダークファンタジー")
	assert.Contains(t, narrative, "モード: セミオート")
	assert.Contains(t, narrative, "主人公度: 3/5")
	assert.Contains(t, narrative, "■キャラクター属性\n・勇敢な守護者 - 仲間を守るために戦う")
	assert.Contains(t, narrative, "■キャラクター属性メモ\n幼少期に家族を失った")
	assert.Contains(t, narrative, "【動機・欲求】\n・復讐心")
	assert.Contains(t, narrative, "【外見・象徴表現】\n・白髪化")
	assert.Contains(t, narrative, "闇堕ち度: 150%（重め）")
	assert.Contains(t, narrative, "■闇堕ちメモ\n禁書に触れてしまった")
	assert.Contains(t, narrative, "■生成ストーリー")
	assert.Contains(t, narrative, "動機・欲求は復讐心")
	assert.Contains(t, narrative, "闇堕ち度150%（重め）に達した現在")
}

func TestSynthesize_AutoModeOmitsTraitSection(t *testing.T) {
	input := testInput()
	input.CharacterTraits = []domain.AttributeOption{{ID: 1, Name: "勇敢な守護者"}}

	narrative := Synthesize(input, testSelection())
	assert.NotContains(t, narrative, "■キャラクター属性\n", "auto mode must not list traits")
}

func TestSynthesize_NoSelectionUsesPlaceholder(t *testing.T) {
	selection := domain.DarknessSelection{
		Selections: map[domain.AttributeCategory][]domain.AttributeOption{},
		Preset:     domain.PresetStandard,
	}

	narrative := Synthesize(testInput(), selection)
	assert.Contains(t, narrative, "闇の属性はまだ不明瞭です")
}

func TestSynthesize_Deterministic(t *testing.T) {
	selection := domain.DarknessSelection{
		Selections: map[domain.AttributeCategory][]domain.AttributeOption{
			domain.CategoryAppearance:            {{ID: 40, Name: "白髪化"}},
			domain.CategoryMotive:                {{ID: 10, Name: "復讐心"}},
			domain.CategoryMindset:               {{ID: 30, Name: "冷酷さ"}},
			domain.CategoryTransformationProcess: {{ID: 20, Name: "絶望"}},
		},
		Preset: domain.PresetExtreme,
	}

	first := Synthesize(testInput(), selection)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Synthesize(testInput(), selection), "category order must not depend on map iteration")
	}
}

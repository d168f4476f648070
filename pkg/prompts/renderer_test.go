package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/umbraworks/darkfall/pkg/domain"
)

func sampleInput() domain.CharacterInput {
	return domain.CharacterInput{
		Mode:       domain.ModeSemiAuto,
		WorldGenre: &domain.WorldGenre{ID: 1, Name: "中世ダークファンタジー"},
		CharacterTraits: []domain.AttributeOption{
			{ID: 1, Category: domain.CategoryCharacterTrait, Name: "勇敢な守護者", Description: "盾となって仲間を守る"},
		},
		TraitFreeText:    "仲間思いで自己犠牲をいとわない",
		ProtagonistScore: 2,
		DarknessFreeText: "親友を救いたい",
	}
}

func sampleSelection() domain.DarknessSelection {
	return domain.DarknessSelection{
		Selections: map[domain.AttributeCategory][]domain.AttributeOption{
			domain.CategoryMotive: {
				{ID: 10, Category: domain.CategoryMotive, Name: "復讐心", Description: "復讐"},
			},
			domain.CategoryAppearance: {
				{ID: 20, Category: domain.CategoryAppearance, Name: "白髪化", Description: "白髪化"},
			},
		},
		Preset: domain.PresetHeavy,
	}
}

func TestRenderDeterministic(t *testing.T) {
	first := Render(sampleInput(), sampleSelection())
	second := Render(sampleInput(), sampleSelection())
	assert.Equal(t, first, second)
}

func TestRenderSections(t *testing.T) {
	prompt := Render(sampleInput(), sampleSelection())

	assert.Contains(t, prompt, "[世界観ジャンル]\n中世ダークファンタジー")
	assert.Contains(t, prompt, "[モード]\nセミオート")
	assert.Contains(t, prompt, "[キャラクター属性]\n・勇敢な守護者: 盾となって仲間を守る")
	assert.Contains(t, prompt, "[キャラクター属性メモ]\n仲間思いで自己犠牲をいとわない")
	assert.Contains(t, prompt, "[主人公度]\n2/5")
	assert.Contains(t, prompt, "主人公陣営を陰で支える頼れる仲間という立場。")
	assert.Contains(t, prompt, "動機・欲求: 復讐心")
	assert.Contains(t, prompt, "外見・象徴表現: 白髪化")
	assert.Contains(t, prompt, "[闇堕ち度]\n150%（重め）")
	assert.Contains(t, prompt, "[闇堕ちメモ]\n親友を救いたい")
	assert.Contains(t, prompt, "4. 出力は日本語で行う。")
}

func TestRenderAutoModeOmitsTraits(t *testing.T) {
	input := sampleInput()
	input.Mode = domain.ModeAuto
	prompt := Render(input, sampleSelection())

	assert.NotContains(t, prompt, "[キャラクター属性]")
	assert.Contains(t, prompt, "[モード]\nオート")
}

func TestRenderSkipsBlankTraitNames(t *testing.T) {
	input := sampleInput()
	input.CharacterTraits = []domain.AttributeOption{
		{Name: "   "},
		{Name: "冷徹な剣士"},
	}
	prompt := Render(input, sampleSelection())

	assert.Contains(t, prompt, "・冷徹な剣士")
	assert.Equal(t, 1, strings.Count(prompt, "・"))
}

func TestRenderTraitDescriptionOmittedWhenBlank(t *testing.T) {
	input := sampleInput()
	input.CharacterTraits = []domain.AttributeOption{{Name: "孤高の魔術師", Description: "  "}}
	prompt := Render(input, sampleSelection())

	assert.Contains(t, prompt, "・孤高の魔術師\n")
	assert.NotContains(t, prompt, "・孤高の魔術師:")
}

func TestRenderOmitsBlankFreeText(t *testing.T) {
	input := sampleInput()
	input.TraitFreeText = "  \n "
	input.DarknessFreeText = ""
	prompt := Render(input, sampleSelection())

	assert.NotContains(t, prompt, "[キャラクター属性メモ]")
	assert.NotContains(t, prompt, "[闇堕ちメモ]")
}

func TestRenderOmitsEmptyCategories(t *testing.T) {
	selection := sampleSelection()
	selection.Selections[domain.CategoryMindset] = []domain.AttributeOption{}
	prompt := Render(sampleInput(), selection)

	assert.NotContains(t, prompt, "性向の変質")
}

func TestRenderAllCategoriesEmpty(t *testing.T) {
	selection := domain.DarknessSelection{
		Selections: map[domain.AttributeCategory][]domain.AttributeOption{},
		Preset:     domain.PresetStandard,
	}
	prompt := Render(sampleInput(), selection)

	assert.Contains(t, prompt, "[闇堕ちカテゴリと選択肢]\n\n[闇堕ち度]")
}

func TestRenderUnmappedScoreRendersEmptyLine(t *testing.T) {
	input := sampleInput()
	input.ProtagonistScore = 9
	prompt := Render(input, sampleSelection())

	assert.Contains(t, prompt, "[主人公度]\n9/5")
	assert.NotContains(t, prompt, "立場")
}

func TestCollapseBlankLines(t *testing.T) {
	assert.Equal(t, "a\n\nb", collapseBlankLines("a\n\n\n\nb"))
	assert.Equal(t, "a\n\nb", collapseBlankLines("a\n\n\nb"))
	// A single blank line is preserved.
	assert.Equal(t, "a\n\nb", collapseBlankLines("a\n\nb"))
	assert.Equal(t, "a\nb", collapseBlankLines("a\nb"))
}

func TestRenderHasNoDoubleBlankRuns(t *testing.T) {
	input := sampleInput()
	input.TraitFreeText = ""
	input.DarknessFreeText = ""
	input.ProtagonistScore = 7 // unmapped, leaves an empty placeholder line
	prompt := Render(input, sampleSelection())

	assert.NotContains(t, prompt, "\n\n\n")
}

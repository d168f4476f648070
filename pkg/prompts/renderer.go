package prompts

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/umbraworks/darkfall/pkg/domain"
)

// promptTemplate is the fixed instruction template sent to the remote
// provider. Named placeholders are substituted by Render; optional sections
// carry their own trailing blank line and collapse to nothing when absent.
const promptTemplate = `あなたは闇堕ちキャラクターの設定と短いストーリーを作成する日本語のライターです。
以下の入力情報に基づき、世界観の説明、キャラクターの転落のきっかけ、闇堕ち後の姿を含む物語を400〜600文字程度で作成してください。
最後に箇条書きは使わず、段落構成でまとめてください。

[世界観ジャンル]
{{worldGenre}}

[モード]
{{mode}}

{{characterAttributesSection}}{{traitFreeTextSection}}[主人公度]
{{protagonistScore}}/5
{{protagonistAlignment}}

[闇堕ちカテゴリと選択肢]
{{darknessSelections}}
[闇堕ち度]
{{darknessLevel}}

{{darknessFreeTextSection}}条件:
1. キャラクターが闇堕ちに至った心理的な揺らぎや事件を描写する。
2. 闇堕ち後のビジュアルや能力、価値観の変化を盛り込む。
3. 最後は読者が次の展開を想像できる余韻を残す。
4. 出力は日本語で行う。
`

var blankLineRuns = regexp.MustCompile(`\n{3,}`)

// Render builds the generation prompt for the given input and darkness
// selection. It is a pure function: identical inputs yield byte-identical
// output, and no I/O happens at render time.
func Render(input domain.CharacterInput, selection domain.DarknessSelection) string {
	worldGenre := ""
	if input.WorldGenre != nil {
		worldGenre = input.WorldGenre.Name
	}

	placeholders := map[string]string{
		"worldGenre":                 worldGenre,
		"mode":                       input.Mode.DisplayName(),
		"characterAttributesSection": characterAttributesSection(input),
		"traitFreeTextSection":       freeTextSection("キャラクター属性メモ", input.TraitFreeText),
		"protagonistScore":           fmt.Sprintf("%d", input.ProtagonistScore),
		"protagonistAlignment":       domain.AlignmentPromptLine(input.ProtagonistScore),
		"darknessSelections":         darknessSelections(selection),
		"darknessLevel":              selection.Preset.FormatValueWithLabel(),
		"darknessFreeTextSection":    freeTextSection("闇堕ちメモ", input.DarknessFreeText),
	}

	result := promptTemplate
	for key, value := range placeholders {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return collapseBlankLines(result)
}

// characterAttributesSection is emitted only in semi-auto mode with at least
// one trait. Traits with blank names are skipped; the description clause is
// omitted when blank.
func characterAttributesSection(input domain.CharacterInput) string {
	if input.Mode != domain.ModeSemiAuto || len(input.CharacterTraits) == 0 {
		return ""
	}
	var sb strings.Builder
	wrote := false
	for _, option := range input.CharacterTraits {
		name := strings.TrimSpace(option.Name)
		if name == "" {
			continue
		}
		if !wrote {
			sb.WriteString("[キャラクター属性]\n")
			wrote = true
		}
		sb.WriteString("・")
		sb.WriteString(name)
		if desc := strings.TrimSpace(option.Description); desc != "" {
			sb.WriteString(": ")
			sb.WriteString(desc)
		}
		sb.WriteString("\n")
	}
	if !wrote {
		return ""
	}
	sb.WriteString("\n")
	return sb.String()
}

func freeTextSection(heading, freeText string) string {
	trimmed := strings.TrimSpace(freeText)
	if trimmed == "" {
		return ""
	}
	return "[" + heading + "]\n" + trimmed + "\n\n"
}

// darknessSelections renders one line per non-empty category in the fixed
// category order; empty categories produce no line at all. When every
// category is empty the section degenerates to a single blank line.
func darknessSelections(selection domain.DarknessSelection) string {
	var sb strings.Builder
	for _, category := range domain.DarknessCategories() {
		options := selection.Selections[category]
		if len(options) == 0 {
			continue
		}
		names := make([]string, 0, len(options))
		for _, option := range options {
			names = append(names, option.Name)
		}
		sb.WriteString(category.DisplayName())
		sb.WriteString(": ")
		sb.WriteString(strings.Join(names, "、"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// collapseBlankLines folds every run of two or more consecutive blank lines
// into exactly one blank line, leaving single blank lines and non-blank
// content untouched.
func collapseBlankLines(s string) string {
	return blankLineRuns.ReplaceAllString(s, "\n\n")
}

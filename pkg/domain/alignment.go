package domain

import "strings"

// ProtagonistAlignment describes the character's starting relationship to the
// heroic side of the story, derived from the 1-5 protagonist score.
type ProtagonistAlignment struct {
	Score             int
	PreviewText       string
	PromptDescription string
}

var protagonistAlignments = []ProtagonistAlignment{
	{1, "例: 正義側の中心人物として物語が始まる。", "正義側の中心人物として物語を牽引する英雄的な立場"},
	{2, "例: 主人公陣営の頼れる仲間として登場する。", "主人公陣営を陰で支える頼れる仲間という立場"},
	{3, "例: 利害で動く第三勢力、どちらにも肩入れしない。", "利害で動きどちらにも肩入れしない独立勢力の立場"},
	{4, "例: 敵側に傾いた反英雄として物語に関与する。", "敵側に傾き始めた反英雄として揺らぐ立場"},
	{5, "例: 開幕から敵組織の中核メンバーとして暗躍する。", "物語開始時点で敵組織の中核として暗躍する立場"},
}

// AlignmentFromScore returns the alignment mapped to the given score.
// Scores outside 1-5 have no mapping.
func AlignmentFromScore(score int) (ProtagonistAlignment, bool) {
	for _, a := range protagonistAlignments {
		if a.Score == score {
			return a, true
		}
	}
	return ProtagonistAlignment{}, false
}

// FormatPromptLine returns the prompt description terminated with 。unless it
// already ends in sentence punctuation.
func (a ProtagonistAlignment) FormatPromptLine() string {
	desc := strings.TrimSpace(a.PromptDescription)
	if desc == "" {
		return desc
	}
	runes := []rune(desc)
	switch runes[len(runes)-1] {
	case '。', '！', '？', '.', '!', '?':
		return desc
	}
	return desc + "。"
}

// AlignmentPromptLine is a nil-safe helper for template rendering: unmapped
// scores render as an empty placeholder rather than failing.
func AlignmentPromptLine(score int) string {
	a, ok := AlignmentFromScore(score)
	if !ok {
		return ""
	}
	return a.FormatPromptLine()
}

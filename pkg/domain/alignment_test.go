package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlignmentFromScore(t *testing.T) {
	for score := 1; score <= 5; score++ {
		a, ok := AlignmentFromScore(score)
		assert.True(t, ok, "score %d should be mapped", score)
		assert.Equal(t, score, a.Score)
		assert.NotEmpty(t, a.PreviewText)
		assert.NotEmpty(t, a.PromptDescription)
	}

	_, ok := AlignmentFromScore(0)
	assert.False(t, ok)
	_, ok = AlignmentFromScore(6)
	assert.False(t, ok)
}

func TestFormatPromptLine(t *testing.T) {
	a, _ := AlignmentFromScore(2)
	line := a.FormatPromptLine()
	assert.Equal(t, "主人公陣営を陰で支える頼れる仲間という立場。", line)

	// Already punctuated descriptions are left alone.
	punctuated := ProtagonistAlignment{Score: 1, PromptDescription: "英雄の立場。"}
	assert.Equal(t, "英雄の立場。", punctuated.FormatPromptLine())

	empty := ProtagonistAlignment{}
	assert.Equal(t, "", empty.FormatPromptLine())
}

func TestAlignmentPromptLine(t *testing.T) {
	assert.NotEmpty(t, AlignmentPromptLine(3))
	assert.Equal(t, "", AlignmentPromptLine(99))
}

func TestParseAttributeCategory(t *testing.T) {
	c, ok := ParseAttributeCategory("MOTIVE")
	assert.True(t, ok)
	assert.Equal(t, CategoryMotive, c)

	_, ok = ParseAttributeCategory("unknown")
	assert.False(t, ok)
}

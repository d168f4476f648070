package domain

import (
	"strings"
	"time"
)

// InputMode selects how much of the character is authored by the user.
type InputMode string

const (
	// ModeAuto lets the generator pick character traits on its own.
	ModeAuto InputMode = "auto"
	// ModeSemiAuto requires the user to pick character traits explicitly.
	ModeSemiAuto InputMode = "semi_auto"
)

// DisplayName returns the Japanese label used in prompts and narratives.
func (m InputMode) DisplayName() string {
	if m == ModeAuto {
		return "オート"
	}
	return "セミオート"
}

// WorldGenre is the fictional setting category selected for the character.
type WorldGenre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AttributeCategory groups attribute options into selectable sections.
type AttributeCategory string

const (
	CategoryCharacterTrait        AttributeCategory = "character_trait"
	CategoryMotive                AttributeCategory = "motive"
	CategoryTransformationProcess AttributeCategory = "transformation_process"
	CategoryMindset               AttributeCategory = "mindset"
	CategoryAppearance            AttributeCategory = "appearance"
)

// DarknessCategories lists the categories that belong to the darkness
// selection, in display order. CategoryCharacterTrait is excluded because
// traits are part of CharacterInput, not of the darkness selection.
func DarknessCategories() []AttributeCategory {
	return []AttributeCategory{
		CategoryMotive,
		CategoryTransformationProcess,
		CategoryMindset,
		CategoryAppearance,
	}
}

// DisplayName returns the Japanese display name for the category.
func (c AttributeCategory) DisplayName() string {
	switch c {
	case CategoryCharacterTrait:
		return "キャラクター属性"
	case CategoryMotive:
		return "動機・欲求"
	case CategoryTransformationProcess:
		return "変質プロセス"
	case CategoryMindset:
		return "性向の変質"
	case CategoryAppearance:
		return "外見・象徴表現"
	default:
		return string(c)
	}
}

// ParseAttributeCategory resolves a category from its code, case-insensitively.
func ParseAttributeCategory(code string) (AttributeCategory, bool) {
	for _, c := range []AttributeCategory{
		CategoryCharacterTrait,
		CategoryMotive,
		CategoryTransformationProcess,
		CategoryMindset,
		CategoryAppearance,
	} {
		if strings.EqualFold(string(c), code) {
			return c, true
		}
	}
	return "", false
}

// AttributeOption is one selectable entry from the static attribute catalog.
type AttributeOption struct {
	ID          int64             `json:"id"`
	Category    AttributeCategory `json:"category"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
}

// CharacterInput is the user-supplied half of a generation request.
// CharacterTraits is only meaningful in ModeSemiAuto.
type CharacterInput struct {
	Mode             InputMode         `json:"mode"`
	WorldGenre       *WorldGenre       `json:"world_genre"`
	CharacterTraits  []AttributeOption `json:"character_traits,omitempty"`
	TraitFreeText    string            `json:"trait_free_text,omitempty"`
	ProtagonistScore int               `json:"protagonist_score"`
	DarknessFreeText string            `json:"darkness_free_text,omitempty"`
}

// DarknessSelection holds the per-category darkness options and the chosen
// intensity preset.
type DarknessSelection struct {
	Selections map[AttributeCategory][]AttributeOption `json:"selections"`
	Preset     DarknessPreset                          `json:"preset"`
}

// HasAnySelection reports whether at least one category has an option picked.
func (s DarknessSelection) HasAnySelection() bool {
	for _, options := range s.Selections {
		if len(options) > 0 {
			return true
		}
	}
	return false
}

// GeneratedCharacter is the finished artifact handed to the presentation layer.
type GeneratedCharacter struct {
	Input       CharacterInput    `json:"input"`
	Selection   DarknessSelection `json:"selection"`
	Narrative   string            `json:"narrative"`
	GeneratedAt time.Time         `json:"generated_at"`
}

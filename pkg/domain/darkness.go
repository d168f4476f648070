package domain

import "fmt"

// DarknessPreset is a discrete darkness intensity expressed as a percentage.
// Only the listed preset values are valid; arbitrary numeric input is snapped
// to the nearest preset via ClosestPreset.
type DarknessPreset int

const (
	PresetMild     DarknessPreset = 50
	PresetStandard DarknessPreset = 100
	PresetHeavy    DarknessPreset = 150
	PresetRadical  DarknessPreset = 200
	PresetExtreme  DarknessPreset = 250
)

// DarknessPresets returns all presets in ascending order.
func DarknessPresets() []DarknessPreset {
	return []DarknessPreset{PresetMild, PresetStandard, PresetHeavy, PresetRadical, PresetExtreme}
}

// DefaultPreset is used when the caller does not choose an intensity.
func DefaultPreset() DarknessPreset {
	return PresetStandard
}

// Value returns the percentage value of the preset.
func (p DarknessPreset) Value() int {
	return int(p)
}

// Label returns the short Japanese label for the preset.
func (p DarknessPreset) Label() string {
	switch p {
	case PresetMild:
		return "軽度"
	case PresetStandard:
		return "通常"
	case PresetHeavy:
		return "重め"
	case PresetRadical:
		return "過激"
	case PresetExtreme:
		return "極端"
	default:
		return ""
	}
}

// Description returns the longer descriptive text shown next to the slider.
func (p DarknessPreset) Description() string {
	switch p {
	case PresetMild:
		return "闇の力に傾倒し、それをかなり受け入れているが、かつての情や未練がわずかに残る。状況と相手次第では説得に耳を傾けることもあるが、闇への決意は容易には揺らがない。"
	case PresetStandard:
		return "闇に完全支配され、価値観も忠誠も暗黒側に固定。自分の行動理念を達成するためには手段を選ばない。正義側から見れば完全敵対化であり、理詰めの説得も情の訴えも通用しない。"
	case PresetHeavy:
		return "単なる闇堕ちを越え、深く闇そのものへと同化した段階。闇堕ち前の自我の多くは剥落し、力の行使それ自体が行動目的へとなり替わってきている。"
	case PresetRadical:
		return "世界を闇に塗りつぶすために動く存在となった段階。禁忌や人道は抑止力を失い、反対勢力は体系的に排除され、都市・国家規模で世界が闇に堕ち始める。"
	case PresetExtreme:
		return "絶対的な闇の権化。存在そのものが破局の引き金となり、正義は壊滅、世界は取り返しのつかない崩壊へ傾く——物語は完全なバッドエンドに収束する。"
	default:
		return ""
	}
}

// IsValid reports whether the preset is one of the defined values.
func (p DarknessPreset) IsValid() bool {
	switch p {
	case PresetMild, PresetStandard, PresetHeavy, PresetRadical, PresetExtreme:
		return true
	}
	return false
}

// FormatValueWithLabel renders the preset for display, e.g. "150%（重め）".
// Non-preset percentages render without a label.
func (p DarknessPreset) FormatValueWithLabel() string {
	label := p.Label()
	if label == "" {
		return fmt.Sprintf("%d%%", p.Value())
	}
	return fmt.Sprintf("%d%%（%s）", p.Value(), label)
}

// PresetFromValue resolves a preset from its exact percentage value.
func PresetFromValue(value int) (DarknessPreset, bool) {
	p := DarknessPreset(value)
	return p, p.IsValid()
}

// ClosestPreset snaps an arbitrary numeric intensity to the nearest preset.
func ClosestPreset(value float64) DarknessPreset {
	best := DefaultPreset()
	bestDist := -1.0
	for _, p := range DarknessPresets() {
		dist := value - float64(p.Value())
		if dist < 0 {
			dist = -dist
		}
		if bestDist < 0 || dist < bestDist {
			best = p
			bestDist = dist
		}
	}
	return best
}

// MinPresetValue returns the smallest preset percentage.
func MinPresetValue() int {
	return PresetMild.Value()
}

// MaxPresetValue returns the largest preset percentage.
func MaxPresetValue() int {
	return PresetExtreme.Value()
}

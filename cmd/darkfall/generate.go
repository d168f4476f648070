package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/umbraworks/darkfall/internal/services"
	"github.com/umbraworks/darkfall/pkg/catalog"
	"github.com/umbraworks/darkfall/pkg/domain"
	"github.com/umbraworks/darkfall/pkg/provider"
	"github.com/umbraworks/darkfall/pkg/textfilter"
)

var generateFlags struct {
	genre        string
	mode         string
	traits       []string
	traitMemo    string
	protagonist  int
	motives      []string
	processes    []string
	mindsets     []string
	appearances  []string
	darknessMemo string
	darkness     int
	providerType string
	asJSON       bool
	showPrompt   bool
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "キャラクターを生成する",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		input, selection, err := buildRequest(a.catalog)
		if err != nil {
			return err
		}

		providerType := a.store.ActiveType()
		if generateFlags.providerType != "" {
			parsed, ok := provider.ParseType(generateFlags.providerType)
			if !ok {
				return fmt.Errorf("unknown provider %q", generateFlags.providerType)
			}
			providerType = parsed
		}

		result, err := a.service.GenerateWith(cmd.Context(), providerType, input, selection)
		if err != nil {
			var validationErr *services.ValidationError
			if errors.As(err, &validationErr) {
				return errors.New(validationErr.Message)
			}
			return err
		}

		if generateFlags.asJSON {
			return json.NewEncoder(os.Stdout).Encode(result)
		}

		if result.Warning != "" {
			fmt.Fprintln(os.Stderr, result.Warning)
			fmt.Fprintln(os.Stderr)
		}
		fmt.Println(result.Character.Narrative)
		if generateFlags.showPrompt && result.Prompt != "" {
			fmt.Println("----")
			fmt.Println(result.Prompt)
		}
		return nil
	},
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&generateFlags.genre, "genre", "", "世界観ジャンル名 (required)")
	f.StringVar(&generateFlags.mode, "mode", "auto", "入力モード: auto または semi_auto")
	f.StringArrayVar(&generateFlags.traits, "trait", nil, "キャラクター属性名 (semi_auto で必須、繰り返し可)")
	f.StringVar(&generateFlags.traitMemo, "trait-memo", "", "キャラクター属性の自由記述")
	f.IntVar(&generateFlags.protagonist, "protagonist", 3, "主人公度 (1〜5)")
	f.StringArrayVar(&generateFlags.motives, "motive", nil, "動機・欲求の選択肢名 (繰り返し可)")
	f.StringArrayVar(&generateFlags.processes, "process", nil, "変質プロセスの選択肢名 (繰り返し可)")
	f.StringArrayVar(&generateFlags.mindsets, "mindset", nil, "性向の変質の選択肢名 (繰り返し可)")
	f.StringArrayVar(&generateFlags.appearances, "appearance", nil, "外見・象徴表現の選択肢名 (繰り返し可)")
	f.StringVar(&generateFlags.darknessMemo, "darkness-memo", "", "闇堕ちの自由記述")
	f.IntVar(&generateFlags.darkness, "darkness", domain.DefaultPreset().Value(), "闇堕ち度 (パーセント)")
	f.StringVar(&generateFlags.providerType, "provider", "", "プロバイダ: openai または local (既定: 設定に従う)")
	f.BoolVar(&generateFlags.asJSON, "json", false, "結果をJSONで出力する")
	f.BoolVar(&generateFlags.showPrompt, "show-prompt", false, "送信したプロンプトも出力する")
	_ = generateCmd.MarkFlagRequired("genre")

	rootCmd.AddCommand(generateCmd)
}

func buildRequest(cat *catalog.Catalog) (domain.CharacterInput, domain.DarknessSelection, error) {
	var input domain.CharacterInput
	var selection domain.DarknessSelection

	genre, ok := cat.FindGenre(generateFlags.genre)
	if !ok {
		return input, selection, fmt.Errorf("unknown world genre %q", generateFlags.genre)
	}

	mode := domain.ModeAuto
	if generateFlags.mode == string(domain.ModeSemiAuto) {
		mode = domain.ModeSemiAuto
	} else if generateFlags.mode != string(domain.ModeAuto) {
		return input, selection, fmt.Errorf("unknown mode %q", generateFlags.mode)
	}

	traits, err := resolveOptions(cat, domain.CategoryCharacterTrait, generateFlags.traits)
	if err != nil {
		return input, selection, err
	}

	input = domain.CharacterInput{
		Mode:             mode,
		WorldGenre:       &genre,
		CharacterTraits:  traits,
		TraitFreeText:    textfilter.NormalizeFreeText(generateFlags.traitMemo),
		ProtagonistScore: generateFlags.protagonist,
		DarknessFreeText: textfilter.NormalizeFreeText(generateFlags.darknessMemo),
	}

	selections := make(map[domain.AttributeCategory][]domain.AttributeOption)
	for category, names := range map[domain.AttributeCategory][]string{
		domain.CategoryMotive:                generateFlags.motives,
		domain.CategoryTransformationProcess: generateFlags.processes,
		domain.CategoryMindset:               generateFlags.mindsets,
		domain.CategoryAppearance:            generateFlags.appearances,
	} {
		options, err := resolveOptions(cat, category, names)
		if err != nil {
			return input, selection, err
		}
		if len(options) > 0 {
			selections[category] = options
		}
	}

	preset, ok := domain.PresetFromValue(generateFlags.darkness)
	if !ok {
		// Not one of the presets; keep the raw percentage and let the
		// service validate the range and step.
		preset = domain.DarknessPreset(generateFlags.darkness)
	}

	selection = domain.DarknessSelection{
		Selections: selections,
		Preset:     preset,
	}
	return input, selection, nil
}

func resolveOptions(cat *catalog.Catalog, category domain.AttributeCategory, names []string) ([]domain.AttributeOption, error) {
	options := make([]domain.AttributeOption, 0, len(names))
	for _, name := range names {
		option, ok := cat.FindOption(category, name)
		if !ok {
			return nil, fmt.Errorf("unknown %s option %q", category.DisplayName(), name)
		}
		options = append(options, option)
	}
	return options, nil
}

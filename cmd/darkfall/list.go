package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/umbraworks/darkfall/pkg/catalog"
	"github.com/umbraworks/darkfall/pkg/domain"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "闇堕ち度プリセットを一覧する",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, preset := range domain.DarknessPresets() {
			fmt.Printf("%s\t%s\n", preset.FormatValueWithLabel(), preset.Description())
		}
		return nil
	},
}

var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "世界観ジャンルを一覧する",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Load()
		if err != nil {
			return err
		}
		for _, genre := range cat.WorldGenres() {
			fmt.Println(genre.Name)
		}
		return nil
	},
}

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "属性・闇堕ちの選択肢を一覧する",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Load()
		if err != nil {
			return err
		}

		printGroup(domain.CategoryCharacterTrait, cat.CharacterTraits())
		grouped := cat.DarknessOptions()
		for _, category := range domain.DarknessCategories() {
			printGroup(category, grouped[category])
		}
		return nil
	},
}

func printGroup(category domain.AttributeCategory, options []domain.AttributeOption) {
	fmt.Printf("【%s】\n", category.DisplayName())
	for _, option := range options {
		if option.Description != "" {
			fmt.Printf("  %s - %s\n", option.Name, option.Description)
		} else {
			fmt.Printf("  %s\n", option.Name)
		}
	}
	fmt.Println()
}

func init() {
	rootCmd.AddCommand(presetsCmd, genresCmd, optionsCmd)
}

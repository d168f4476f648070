package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/umbraworks/darkfall/pkg/provider"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "利用可能なOpenAIモデルを一覧する",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		apiKey := a.store.APIKey(provider.TypeOpenAI)
		if apiKey == "" {
			return errors.New("OPENAI_API_KEY が設定されていません")
		}

		models, err := a.openAI.ListAvailableModels(cmd.Context(), apiKey)
		if err != nil {
			return err
		}
		for _, model := range models {
			fmt.Println(model)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

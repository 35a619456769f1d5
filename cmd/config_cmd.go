package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tidygit/tidygit/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show which configuration keys are set and where they come from",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	fmt.Printf("config file:    %s\n", config.DisplayPath)
	fmt.Printf("openai_api_key: %s\n", describe(cfg.OpenAIAPIKey))
	fmt.Printf("github_token:   %s\n", describe(cfg.GitHubToken))
	return nil
}

// describe reports the origin of a value without printing the secret.
func describe(v config.Value) string {
	if !v.IsSet() {
		return "not set"
	}
	return fmt.Sprintf("set (%s)", v.Source)
}

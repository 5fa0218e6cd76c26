package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"commentgen/internal/config"
)

var (
	setProvider    string
	setAPIKey      string
	setEndpoint    string
	setModel       string
	setMinChars    int
	setMaxChars    int
	setTemperature float64
	setEncoding    string
)

// settingsCmd manages provider credentials and prompt tuning
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage provider credentials and prompt tuning",
	Long: `Show, change, or clear the configuration in .commentgen/config.json.

Available subcommands:
  show  - Print the active configuration
  set   - Change one or more settings
  clear - Remove the config file entirely`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active configuration",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change one or more settings",
	Long: `Change settings and save them. Switching provider applies that
provider's default endpoint and model; pass --endpoint or --model afterwards
to override them.`,
	RunE: runSettingsSet,
}

var settingsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the config file",
	RunE:  runSettingsClear,
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	masked := "(not set)"
	if key := settings.ActiveAPIKey(); key != "" {
		if len(key) > 8 {
			key = key[:4] + "..." + key[len(key)-4:]
		}
		masked = key
	}
	pc := settings.GetPromptConfig()

	fmt.Printf("provider:    %s\n", settings.ActiveProvider())
	fmt.Printf("endpoint:    %s\n", settings.ActiveEndpoint())
	fmt.Printf("model:       %s\n", settings.ActiveModel())
	fmt.Printf("api key:     %s\n", masked)
	fmt.Printf("length band: %d-%d chars\n", pc.MinChars, pc.MaxChars)
	fmt.Printf("temperature: %.2f\n", pc.Temperature)
	if settings.ImportEncoding != "" {
		fmt.Printf("encoding:    %s\n", settings.ImportEncoding)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if setProvider != "" {
		p := config.Provider(strings.ToLower(setProvider))
		switch p {
		case config.ProviderOpenAI, config.ProviderClaude, config.ProviderGemini, config.ProviderCustom:
			settings.ApplyPreset(p)
		default:
			return fmt.Errorf("unknown provider: %s (openai, claude, gemini, custom)", setProvider)
		}
	}
	if setAPIKey != "" {
		settings.APIKey = setAPIKey
	}
	if setEndpoint != "" {
		settings.Endpoint = setEndpoint
	}
	if setModel != "" {
		settings.Model = setModel
	}
	if setEncoding != "" {
		settings.ImportEncoding = setEncoding
	}
	if setMinChars > 0 || setMaxChars > 0 || setTemperature > 0 {
		if settings.Prompt == nil {
			settings.Prompt = &config.PromptConfig{}
		}
		if setMinChars > 0 {
			settings.Prompt.MinChars = setMinChars
		}
		if setMaxChars > 0 {
			settings.Prompt.MaxChars = setMaxChars
		}
		if setTemperature > 0 {
			settings.Prompt.Temperature = setTemperature
		}
	}

	if err := settings.Save(cfgPath); err != nil {
		return err
	}
	fmt.Println("Settings saved.")
	return nil
}

func runSettingsClear(cmd *cobra.Command, args []string) error {
	if err := config.Clear(cfgPath); err != nil {
		return err
	}
	fmt.Println("Settings cleared.")
	return nil
}

func init() {
	settingsSetCmd.Flags().StringVar(&setProvider, "provider", "", "LLM provider (openai, claude, gemini, custom)")
	settingsSetCmd.Flags().StringVar(&setAPIKey, "api-key", "", "API key for the active provider")
	settingsSetCmd.Flags().StringVar(&setEndpoint, "endpoint", "", "override the provider endpoint URL")
	settingsSetCmd.Flags().StringVar(&setModel, "model", "", "override the provider model")
	settingsSetCmd.Flags().IntVar(&setMinChars, "min-chars", 0, "minimum comment length in characters")
	settingsSetCmd.Flags().IntVar(&setMaxChars, "max-chars", 0, "maximum comment length in characters")
	settingsSetCmd.Flags().Float64Var(&setTemperature, "temperature", 0, "sampling temperature")
	settingsSetCmd.Flags().StringVar(&setEncoding, "encoding", "", "CSV import encoding (utf-8, euc-kr)")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsClearCmd)
}

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/visiontour/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the resolved settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			path = config.DefaultPath()
		}

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("check config file: %w", err)
		}

		if err := config.Save(path, cfg); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved settings with API keys masked",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		source := cfg.File
		if source == "" {
			source = "(defaults and environment)"
		}
		fmt.Fprintf(out, "source:     %s\n", source)
		fmt.Fprintf(out, "provider:   %s\n", cfg.Provider)
		fmt.Fprintf(out, "language:   %s\n", cfg.Language)
		fmt.Fprintf(out, "timeout:    %s\n", cfg.Timeout)
		fmt.Fprintf(out, "db:         %s\n", cfg.DB)
		fmt.Fprintf(out, "log:        %s (%s, %s)\n", cfg.Log.File, cfg.Log.Mode, cfg.Log.Level)
		fmt.Fprintf(out, "images.dir: %s\n", cfg.Images.Dir)
		fmt.Fprintf(out, "gemini:     key=%s chat=%s image=%s search=%s\n",
			mask(cfg.Gemini.APIKey), cfg.Gemini.ChatModel, cfg.Gemini.ImageModel, cfg.Gemini.SearchModel)
		fmt.Fprintf(out, "anthropic:  key=%s model=%s\n", mask(cfg.Anthropic.APIKey), cfg.Anthropic.Model)
		fmt.Fprintf(out, "openai:     key=%s model=%s\n", mask(cfg.OpenAI.APIKey), cfg.OpenAI.Model)
		fmt.Fprintf(out, "openrouter: key=%s model=%s\n", mask(cfg.OpenRouter.APIKey), cfg.OpenRouter.Model)
	},
}

// mask hides all but the last four characters of a secret.
func mask(secret string) string {
	switch {
	case secret == "":
		return "(unset)"
	case len(secret) <= 4:
		return "****"
	default:
		return "****" + secret[len(secret)-4:]
	}
}

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

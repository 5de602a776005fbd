// Package cmd is the visiontour command line.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/visiontour/internal/aiclient"
	"github.com/abhisek/visiontour/internal/config"
	"github.com/abhisek/visiontour/internal/llm"
	"github.com/abhisek/visiontour/internal/logger"
	"github.com/abhisek/visiontour/internal/store"
)

// cfg is the configuration resolved before every command runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "visiontour",
	Short: "Interactive tour through the history of computer vision",
	Long: `visiontour is a terminal slideshow about the history of AI for computer vision,
from the first convolutional networks to image generation, with hands-on widgets
and an AI tutor.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(config.Options{File: file, Flags: cmd.Flags()})
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to config file (default "+config.DefaultPath()+")")
	flags.String("db", "", "Path to SQLite database file (overrides VISIONTOUR_DB)")
	flags.String("provider", "", "AI provider: gemini, anthropic, openai, openrouter or mock")
	flags.String("language", "", "Answer language code, e.g. es or en")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(deckCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(imagineCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(aiCmd)
	rootCmd.AddCommand(toursCmd)
	rootCmd.AddCommand(configCmd)
}

// openStore opens the event store at the configured path, or the default
// XDG location when none is set.
func openStore() (*store.Store, error) {
	path := cfg.DB
	if path == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
		path = p
	} else if err := store.EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	s, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func newLogger() (*logger.Logger, error) {
	return logger.New(logger.Options{
		Mode:  cfg.Log.Mode,
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
	})
}

// newClient builds the AI client for the configured provider. events may be
// nil, in which case AI calls are not recorded.
func newClient(ctx context.Context, events llm.EventRecorder, log *logger.Logger) (*aiclient.Client, error) {
	backend, err := llm.NewBackend(ctx, cfg.LLM(), events, log)
	if err != nil {
		return nil, err
	}
	return aiclient.New(backend, aiclient.Options{
		Language: cfg.Language,
		Timeout:  cfg.Timeout,
		Logger:   log,
	})
}

// withStoreClient opens the store and an AI client recording into it, runs
// fn and closes everything.
func withStoreClient(ctx context.Context, fn func(*aiclient.Client) error) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	client, err := newClient(ctx, st.EventRepo(), log)
	if err != nil {
		return fmt.Errorf("AI provider: %w", err)
	}
	return fn(client)
}

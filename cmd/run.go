package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/visiontour/internal/app"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the presentation (default command)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, runCmd} {
		c.Flags().Bool("direct", false, "Open the slideshow directly, skipping the menu")
		c.Flags().Bool("no-splash", false, "Skip the welcome animation")
	}
	rootCmd.AddCommand(runCmd)
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	direct, _ := cmd.Flags().GetBool("direct")
	noSplash, _ := cmd.Flags().GetBool("no-splash")

	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	opts := app.Options{
		Events:     eventRepo,
		ImagesDir:  cfg.Images.Dir,
		Log:        log,
		Direct:     direct,
		SkipSplash: noSplash,
	}

	client, err := newClient(ctx, eventRepo, log)
	if err != nil {
		log.Warn("AI provider unavailable", "provider", cfg.Provider, "error", err)
		fmt.Fprintln(os.Stderr, "AI provider not configured:", err)
		fmt.Fprintln(os.Stderr, "The tutor, image lab and search will show errors.")
	} else {
		opts.AI = client
	}

	log.Info("starting tour", "provider", cfg.Provider, "config", cfg.File)
	return app.Run(opts)
}

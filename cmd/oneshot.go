package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/visiontour/internal/aiclient"
	"github.com/abhisek/visiontour/internal/config"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the AI tutor a single question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.Join(args, " ")
		return withStoreClient(cmd.Context(), func(c *aiclient.Client) error {
			reply, err := c.SendMessage(cmd.Context(), nil, question)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		})
	},
}

var imagineCmd = &cobra.Command{
	Use:   "imagine <prompt>",
	Short: "Generate an image from a prompt and save it",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt := strings.Join(args, " ")
		dir, _ := cmd.Flags().GetString("output")
		if dir == "" {
			dir = cfg.Images.Dir
		}
		return withStoreClient(cmd.Context(), func(c *aiclient.Client) error {
			img, err := c.GenerateImage(cmd.Context(), prompt)
			if err != nil {
				var genErr *aiclient.GenerationError
				if errors.As(err, &genErr) {
					return errors.New(genErr.Message)
				}
				return err
			}
			path, err := img.Save(dir)
			if err != nil {
				return fmt.Errorf("save image: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		})
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Answer a question grounded on web search",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		return withStoreClient(cmd.Context(), func(c *aiclient.Client) error {
			res := c.SearchGroundedAnswer(cmd.Context(), query)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, res.Text)
			if len(res.Sources) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "Sources:")
				for _, s := range res.Sources {
					fmt.Fprintf(out, "  - %s\n    %s\n", s.Title, s.URI)
				}
			}
			if res.Degraded {
				return errors.New("search failed; see the log for details")
			}
			return nil
		})
	},
}

func init() {
	imagineCmd.Flags().StringP("output", "o", "", "Directory for the image (default "+config.DefaultImagesDir()+")")
}

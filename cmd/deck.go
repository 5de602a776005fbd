package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/visiontour/internal/deck"
	"github.com/abhisek/visiontour/internal/screens/index"
)

var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Inspect the slides of the presentation",
}

var deckListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all slides",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		d := deck.Default()

		fmt.Fprintf(out, "%-3s  %-26s  %-24s  %s\n", "#", "Kind", "Widget", "Title")
		fmt.Fprintln(out, strings.Repeat("─", 90))
		for i, s := range d.Slides() {
			fmt.Fprintf(out, "%-3d  %-26s  %-24s  %s\n", i+1, s.Kind, index.KindLabel(s.Kind), s.Title)
		}
	},
}

var deckShowCmd = &cobra.Command{
	Use:   "show <n>",
	Short: "Show one slide by its 1-based position",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d := deck.Default()
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid slide number %q: %w", args[0], err)
		}
		if n < 1 || n > d.Len() {
			return fmt.Errorf("slide %d out of range 1..%d", n, d.Len())
		}

		s := d.At(n - 1)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Slide:     %d/%d (id %d)\n", n, d.Len(), s.ID)
		fmt.Fprintf(out, "Kind:      %s (%s)\n", s.Kind, index.KindLabel(s.Kind))
		fmt.Fprintf(out, "Title:     %s\n", s.Title)
		if s.Subtitle != "" {
			fmt.Fprintf(out, "Subtitle:  %s\n", s.Subtitle)
		}
		if r := s.Researcher; r != nil {
			fmt.Fprintf(out, "Researcher: %s, %s\n", r.Name, r.Role)
		}
		if a := s.AuthorInfo; a != nil {
			fmt.Fprintf(out, "Author:    %s, %s\n", a.Name, a.Role)
		}
		if s.Content != "" {
			fmt.Fprintln(out)
			fmt.Fprintln(out, s.Content)
		}
		return nil
	},
}

var deckExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the deck as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(deck.Default().Slides()); err != nil {
			return fmt.Errorf("encode deck: %w", err)
		}
		return nil
	},
}

func init() {
	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckShowCmd)
	deckCmd.AddCommand(deckExportCmd)
}

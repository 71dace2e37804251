// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/quiz-engine/internal/slides"
	"github.com/pdiddy/quiz-engine/pkg/types"
)

var slidesCmd = &cobra.Command{
	Use:   "slides",
	Short: "Extract and cache text from the lecture slide deck",
	Long: `Slides extracts plain text from a PDF slide deck, strips page footers
and encoding artifacts, and caches the result next to the deck. The cache
is reused while the PDF is unchanged; explain reads it as prompt context.

Supports pdftotext (on PATH) and markitdown (container-based) backends.`,
	RunE: runSlides,
}

func runSlides(cmd *cobra.Command, args []string) error {
	backend, _ := cmd.Flags().GetString("backend")
	deckPath, _ := cmd.Flags().GetString("deck")
	textPath, _ := cmd.Flags().GetString("text")
	force, _ := cmd.Flags().GetBool("force")

	cfg := types.SlidesConfig{
		Backend:  types.SlidesBackend(backend),
		DeckPath: deckPath,
		TextPath: textPath,
	}

	if force {
		if err := os.Remove(cfg.TextPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing cached deck text: %w", err)
		}
	}

	ex, err := slides.NewExtractor(cfg)
	if err != nil {
		return err
	}

	text, err := slides.ExtractDeck(ex, cfg, os.Stderr)
	if err != nil {
		return err
	}

	fmt.Printf("Deck text cached at %s (%d characters)\n", cfg.TextPath, len(text))
	return nil
}

func init() {
	slidesCmd.Flags().String("backend", "pdftotext", "extraction backend: pdftotext or markitdown")
	slidesCmd.Flags().String("deck", "decks/slides.pdf", "slide-deck PDF")
	slidesCmd.Flags().String("text", "decks/slides.txt", "cached deck text file")
	slidesCmd.Flags().Bool("force", false, "re-extract even when the cache is current")

	rootCmd.AddCommand(slidesCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package slides extracts plain text from the study slide-deck PDF through
// pluggable backends and caches the cleaned result. The cached text becomes
// the knowledge context embedded in explanation prompts.
package slides

import (
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/quiz-engine/pkg/types"
)

// Extractor pulls raw text out of a PDF. Backends: pdftotext subprocess,
// markitdown container image.
type Extractor interface {
	// ExtractText reads the PDF at pdfPath and returns its text content.
	ExtractText(pdfPath string) (string, error)
}

// ExtractDeck extracts and cleans the deck text, writes it to cfg.TextPath,
// and returns it. When the cache is newer than the PDF the extraction is
// skipped and the cache is returned as-is.
func ExtractDeck(ex Extractor, cfg types.SlidesConfig, w io.Writer) (string, error) {
	deckInfo, err := os.Stat(cfg.DeckPath)
	if err != nil {
		return "", fmt.Errorf("slide deck %s: %w", cfg.DeckPath, err)
	}

	if cacheInfo, err := os.Stat(cfg.TextPath); err == nil && cacheInfo.ModTime().After(deckInfo.ModTime()) {
		fmt.Fprintf(w, "skipped %s (cache up to date)\n", cfg.DeckPath)
		data, err := os.ReadFile(cfg.TextPath)
		if err != nil {
			return "", fmt.Errorf("reading cached deck text: %w", err)
		}
		return string(data), nil
	}

	fmt.Fprintf(w, "extracting %s\n", cfg.DeckPath)

	raw, err := ex.ExtractText(cfg.DeckPath)
	if err != nil {
		return "", fmt.Errorf("extracting deck text: %w", err)
	}

	text := CleanText(raw)
	if text == "" {
		return "", fmt.Errorf("deck %s produced no text", cfg.DeckPath)
	}

	if err := os.WriteFile(cfg.TextPath, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("caching deck text: %w", err)
	}

	fmt.Fprintf(w, "extracted %d characters\n", len(text))
	return text, nil
}

// LoadDeckText returns cached deck text, or "" when no cache exists. The
// explain stage treats a missing deck as "no context" rather than an error.
func LoadDeckText(textPath string) (string, error) {
	data, err := os.ReadFile(textPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading deck text %s: %w", textPath, err)
	}
	return string(data), nil
}

// NewExtractor builds the backend selected in cfg.
func NewExtractor(cfg types.SlidesConfig) (Extractor, error) {
	switch cfg.Backend {
	case types.BackendPdftotext, "":
		return NewPdftotextExtractor()
	case types.BackendMarkitdown:
		return NewMarkitdownExtractor()
	default:
		return nil, fmt.Errorf("unknown slides backend %q: use pdftotext or markitdown", cfg.Backend)
	}
}

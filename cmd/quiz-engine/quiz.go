// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/quiz-engine/internal/bank"
	"github.com/pdiddy/quiz-engine/internal/explain"
	"github.com/pdiddy/quiz-engine/internal/secrets"
	"github.com/pdiddy/quiz-engine/internal/slides"
	"github.com/pdiddy/quiz-engine/internal/ui"
	"github.com/pdiddy/quiz-engine/pkg/types"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Open the interactive study menu",
	Long: `Quiz opens a full-screen menu over the question bank: look up
explanations by question number, search by topic, run practice sessions,
export the bank, and view statistics.

The bank must be populated first (extract, then bank store).`,
	RunE: runQuiz,
}

func runQuiz(cmd *cobra.Command, args []string) error {
	bankDir, _ := cmd.Flags().GetString("bank-dir")
	deckText, _ := cmd.Flags().GetString("deck-text")
	model, _ := cmd.Flags().GetString("model")

	store, err := bank.NewStore(types.BankConfig{BankDir: bankDir})
	if err != nil {
		return err
	}
	defer store.Close()

	key, err := secrets.ResolveAPIKey(secretsDir, os.Stderr)
	if err != nil {
		return err
	}

	deck, err := slides.LoadDeckText(deckText)
	if err != nil {
		return err
	}

	cfg := types.ExplainConfig{
		AIConfig: types.AIConfig{Model: model, APIKey: key, CallDelay: time.Second},
	}
	backend := &explain.OpenAIBackend{
		Config: cfg.AIConfig,
		Client: &http.Client{Timeout: 60 * time.Second},
	}

	app := &ui.App{
		Store:     store,
		Explainer: explain.New(backend, cfg, deck),
		Session:   types.SessionConfig{},
	}
	return ui.Run(app)
}

func init() {
	quizCmd.Flags().String("bank-dir", "bank", "base directory of the question bank")
	quizCmd.Flags().String("deck-text", "decks/slides.txt", "cached deck text used as prompt context")
	quizCmd.Flags().String("model", "gpt-4o", "chat model identifier")

	rootCmd.AddCommand(quizCmd)
}

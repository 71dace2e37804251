// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/quiz-engine/internal/bank"
	"github.com/pdiddy/quiz-engine/internal/explain"
	"github.com/pdiddy/quiz-engine/internal/secrets"
	"github.com/pdiddy/quiz-engine/internal/session"
	"github.com/pdiddy/quiz-engine/internal/slides"
	"github.com/pdiddy/quiz-engine/pkg/types"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Assemble a practice set with generated explanations",
	Long: `Session selects questions from the bank (optionally filtered by topic),
generates an explanation for each, and prints the set. Use --output to
save the session as YAML for offline study.

Count defaults to 5 and is capped at 20 to keep API usage bounded.`,
	RunE: runSession,
}

func runSession(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	topic, _ := cmd.Flags().GetString("topic")
	output, _ := cmd.Flags().GetString("output")
	deckText, _ := cmd.Flags().GetString("deck-text")
	bankDir, _ := cmd.Flags().GetString("bank-dir")
	model, _ := cmd.Flags().GetString("model")
	callDelay, _ := cmd.Flags().GetDuration("call-delay")

	store, err := bank.NewStore(types.BankConfig{BankDir: bankDir})
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	records, err := session.Build(ctx, store, types.SessionConfig{Count: count, Topic: topic})
	if err != nil {
		return err
	}

	key, err := secrets.ResolveAPIKey(secretsDir, os.Stderr)
	if err != nil {
		return err
	}

	deck, err := slides.LoadDeckText(deckText)
	if err != nil {
		return err
	}

	cfg := types.ExplainConfig{
		AIConfig: types.AIConfig{Model: model, APIKey: key, CallDelay: callDelay},
	}
	backend := &explain.OpenAIBackend{
		Config: cfg.AIConfig,
		Client: &http.Client{Timeout: 60 * time.Second},
	}
	e := explain.New(backend, cfg, deck)

	entries, err := session.Run(ctx, e, records, os.Stderr)
	if err != nil {
		return err
	}

	printSession(entries)

	if output != "" {
		if err := session.ExportYAML(output, entries); err != nil {
			return err
		}
		fmt.Printf("Session saved to %s\n", output)
	}
	return nil
}

func printSession(entries []session.Entry) {
	for _, entry := range entries {
		q := entry.Question
		fmt.Printf("Question %d [%s]\n\n%s\n\n", q.Index, q.Topic, q.Text)
		for i, choice := range q.Choices {
			letter := types.ChoiceLetter(i)
			mark := " "
			if q.IsCorrect(letter) {
				mark = "*"
			}
			fmt.Printf(" %s %s) %s\n", mark, letter, choice)
		}
		if entry.Explanation != "" {
			fmt.Printf("\n%s\n", entry.Explanation)
		}
		fmt.Println()
	}
	fmt.Printf("%d questions in session\n", len(entries))
}

func init() {
	sessionCmd.Flags().Int("count", 5, "number of questions in the session (max 20)")
	sessionCmd.Flags().String("topic", "", "restrict the session to one AWS service")
	sessionCmd.Flags().String("output", "", "save the session as YAML")
	sessionCmd.Flags().String("deck-text", "decks/slides.txt", "cached deck text used as prompt context")
	sessionCmd.Flags().String("bank-dir", "bank", "base directory of the question bank")
	sessionCmd.Flags().String("model", "gpt-4o", "chat model identifier")
	sessionCmd.Flags().Duration("call-delay", time.Second, "pause between successive API calls")

	rootCmd.AddCommand(sessionCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/quiz-engine/internal/bank"
	"github.com/pdiddy/quiz-engine/internal/explain"
	"github.com/pdiddy/quiz-engine/internal/questions"
	"github.com/pdiddy/quiz-engine/internal/secrets"
	"github.com/pdiddy/quiz-engine/internal/slides"
	"github.com/pdiddy/quiz-engine/pkg/types"
)

var explainCmd = &cobra.Command{
	Use:   "explain [index]",
	Short: "Generate an AI explanation for quiz questions",
	Long: `Explain sends a question, its answer choices, and the cached slide-deck
text to the AI model and prints the returned explanation. With --all it
processes every question in the CSV, pausing between calls, and writes the
results to a JSON file keyed by question number.

The API key is read from the OPENAI_API_KEY environment variable, the
.secrets/ directory, or an interactive prompt, in that order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExplain,
}

func runExplain(cmd *cobra.Command, args []string) error {
	cfg := explainConfigFromFlags(cmd)

	key, err := secrets.ResolveAPIKey(secretsDir, os.Stderr)
	if err != nil {
		return err
	}
	cfg.APIKey = key

	deck, err := slides.LoadDeckText(cfg.DeckTextPath)
	if err != nil {
		return err
	}
	if deck == "" {
		fmt.Fprintln(os.Stderr, "No cached deck text; explanations will not cite the slides.")
	}

	backend := &explain.OpenAIBackend{
		Config: cfg.AIConfig,
		Client: &http.Client{Timeout: 60 * time.Second},
	}
	e := explain.New(backend, cfg, deck)
	ctx := context.Background()

	if testOnly, _ := cmd.Flags().GetBool("test"); testOnly {
		if err := e.TestConnection(ctx); err != nil {
			return err
		}
		fmt.Println("API connection OK.")
		return nil
	}

	records, err := questions.ReadCSV(cfg.CSVPath)
	if err != nil {
		return err
	}

	if all, _ := cmd.Flags().GetBool("all"); all {
		return runExplainAll(ctx, e, records, cfg.OutputPath)
	}

	if len(args) == 0 {
		return fmt.Errorf("question index required (or use --all)")
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid question index %q", args[0])
	}

	q, err := explain.FindByIndex(records, index)
	if err != nil {
		return err
	}

	text, err := e.Explain(ctx, q)
	if err != nil {
		return err
	}
	fmt.Println(text)

	if save, _ := cmd.Flags().GetBool("save"); save {
		return saveExplanation(ctx, cmd, index, text)
	}
	return nil
}

func runExplainAll(ctx context.Context, e *explain.Explainer, records []types.Question, outputPath string) error {
	out, summary, err := e.ExplainAll(ctx, records, os.Stdout)
	if err != nil {
		return err
	}

	if err := explain.WriteExplanations(outputPath, out); err != nil {
		return err
	}
	fmt.Printf("Explained %d/%d questions; results in %s\n",
		summary.Explained, summary.Total(), outputPath)

	if summary.HasFailures() {
		return fmt.Errorf("%d question(s) failed", summary.Failed)
	}
	return nil
}

// saveExplanation persists a single generated explanation into the bank so
// search and sessions pick it up without a re-ingest.
func saveExplanation(ctx context.Context, cmd *cobra.Command, index int, text string) error {
	bankDir, _ := cmd.Flags().GetString("bank-dir")
	store, err := bank.NewStore(types.BankConfig{BankDir: bankDir})
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SetExplanation(ctx, index, text); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Saved explanation for question %d\n", index)
	return nil
}

func explainConfigFromFlags(cmd *cobra.Command) types.ExplainConfig {
	model, _ := cmd.Flags().GetString("model")
	callDelay, _ := cmd.Flags().GetDuration("call-delay")
	csvPath, _ := cmd.Flags().GetString("csv")
	deckText, _ := cmd.Flags().GetString("deck-text")
	outputPath, _ := cmd.Flags().GetString("output")

	return types.ExplainConfig{
		AIConfig: types.AIConfig{
			Model:     model,
			CallDelay: callDelay,
		},
		CSVPath:      csvPath,
		DeckTextPath: deckText,
		OutputPath:   outputPath,
	}
}

func init() {
	explainCmd.Flags().String("model", "gpt-4o", "chat model identifier")
	explainCmd.Flags().Duration("call-delay", time.Second, "pause between successive API calls")
	explainCmd.Flags().String("csv", "questions/questions.csv", "question CSV from extract")
	explainCmd.Flags().String("deck-text", "decks/slides.txt", "cached deck text used as prompt context")
	explainCmd.Flags().String("output", "questions/explanations.json", "output file for --all")
	explainCmd.Flags().String("bank-dir", "bank", "base directory of the question bank (for --save)")
	explainCmd.Flags().Bool("all", false, "explain every question in the CSV")
	explainCmd.Flags().Bool("save", false, "store the explanation in the question bank")
	explainCmd.Flags().Bool("test", false, "verify API connectivity and exit")

	rootCmd.AddCommand(explainCmd)
}

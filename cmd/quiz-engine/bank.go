// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/quiz-engine/internal/bank"
	"github.com/pdiddy/quiz-engine/internal/explain"
	"github.com/pdiddy/quiz-engine/pkg/types"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Manage the question bank (store, search, stats, export)",
	Long: `Bank manages a local SQLite question bank built from extracted question
CSVs. Use subcommands to ingest records, search them, view coverage
statistics, or export.`,
}

// --- store subcommand ---

var bankStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Ingest a question CSV into the bank",
	Long: `Store reads the extracted question CSV, ingests it into a SQLite
database with FTS5 indexing, and optionally merges a JSON explanations
file. An unchanged CSV is skipped on subsequent runs.`,
	RunE: runBankStore,
}

func runBankStore(cmd *cobra.Command, args []string) error {
	csvPath, _ := cmd.Flags().GetString("csv")
	explanationsPath, _ := cmd.Flags().GetString("explanations")

	store, err := openBank(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	if _, err := store.Ingest(ctx, csvPath, os.Stdout); err != nil {
		return err
	}

	if explanationsPath == "" {
		return nil
	}
	return mergeExplanations(ctx, store, explanationsPath)
}

// mergeExplanations applies a JSON explanations file (from explain --all)
// to the ingested records.
func mergeExplanations(ctx context.Context, store *bank.Store, path string) error {
	explanations, err := explain.ReadExplanations(path)
	if err != nil {
		return err
	}

	merged := 0
	for index, text := range explanations {
		if err := store.SetExplanation(ctx, index, text); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			continue
		}
		merged++
	}
	fmt.Printf("Merged %d explanation(s) from %s\n", merged, path)
	return nil
}

// --- search subcommand ---

var bankSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the bank with full-text search and a topic filter",
	Long: `Search queries the bank using FTS5 full-text search over question and
answer text, a case-insensitive topic filter, or both. Topic matches look
at both the question text and the derived service tag.`,
	RunE: runBankSearch,
}

func runBankSearch(cmd *cobra.Command, args []string) error {
	store, err := openBank(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := searchOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query or --topic")
	}

	results, err := store.Search(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(results, jsonOutput)
}

func formatSearchOutput(results []types.Question, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-5s  %-60s  %-20s  %s\n",
		"No.", "Question", "Topic", "Answer")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for _, q := range results {
		text := q.Text
		if len(text) > 60 {
			text = text[:57] + "..."
		}
		topic := q.Topic
		if len(topic) > 20 {
			topic = topic[:17] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-5d  %-60s  %-20s  %s\n",
			q.Index, text, topic, strings.Join(q.Answers, ", "))
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- show subcommand ---

var bankShowCmd = &cobra.Command{
	Use:   "show [index]",
	Short: "Display one question with choices and explanation",
	Args:  cobra.ExactArgs(1),
	RunE:  runBankShow,
}

func runBankShow(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid question index %q", args[0])
	}

	store, err := openBank(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	q, err := store.Get(context.Background(), index)
	if err != nil {
		return err
	}

	fmt.Printf("Question %d [%s]\n\n%s\n\n", q.Index, q.Topic, q.Text)
	for i, choice := range q.Choices {
		letter := types.ChoiceLetter(i)
		mark := " "
		if q.IsCorrect(letter) {
			mark = "*"
		}
		fmt.Printf(" %s %s) %s\n", mark, letter, choice)
	}
	if q.Explanation != "" {
		fmt.Printf("\n%s\n", q.Explanation)
	}
	return nil
}

// --- stats subcommand ---

var bankStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show bank coverage statistics",
	Long: `Stats reports the total question count, the single- versus
multi-answer split, and a per-topic breakdown.`,
	RunE: runBankStats,
}

func runBankStats(cmd *cobra.Command, args []string) error {
	store, err := openBank(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stats(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Questions:     %d\n", stats.Total)
	fmt.Printf("Single-answer: %d\n", stats.SingleAnswer)
	fmt.Printf("Multi-answer:  %d\n\n", stats.MultiAnswer)

	for _, tc := range stats.ByTopic {
		fmt.Printf("%-24s %d\n", tc.Topic, tc.Count)
	}
	return nil
}

// --- export subcommand ---

var bankExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the bank to CSV or JSON",
	Long: `Export writes the full bank (or a filtered subset) to a file. The CSV
format round-trips through extract's output, so an exported bank can be
re-ingested without loss.`,
	RunE: runBankExport,
}

func runBankExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	store, err := openBank(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := searchOptsFromFlags(cmd, args)
	ctx := context.Background()

	switch format {
	case "csv", "":
		if output == "" {
			output = "bank/export.csv"
		}
		if err := store.ExportCSV(ctx, output, opts); err != nil {
			return err
		}
	case "json":
		if output == "" {
			output = "bank/export.json"
		}
		if err := store.ExportJSON(ctx, output, opts); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q: use csv or json", format)
	}

	fmt.Printf("Exported to %s\n", output)
	return nil
}

// --- shared helpers ---

func openBank(cmd *cobra.Command) (*bank.Store, error) {
	bankDir, _ := cmd.Flags().GetString("bank-dir")
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return bank.NewStore(types.BankConfig{
		BankDir:    bankDir,
		MaxResults: maxResults,
	})
}

func searchOptsFromFlags(cmd *cobra.Command, args []string) bank.SearchOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	topic, _ := cmd.Flags().GetString("topic")
	limit, _ := cmd.Flags().GetInt("limit")

	return bank.SearchOptions{
		Query:      queryText,
		Topic:      topic,
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	bankCmd.PersistentFlags().String("bank-dir", "bank", "base directory for the bank (contains index/)")
	bankCmd.PersistentFlags().Int("max-results", 20, "maximum number of search results")

	// Store flags.
	bankStoreCmd.Flags().String("csv", "questions/questions.csv", "question CSV to ingest")
	bankStoreCmd.Flags().String("explanations", "", "JSON explanations file to merge after ingest")

	// Search flags.
	bankSearchCmd.Flags().String("query", "", "full-text search query")
	bankSearchCmd.Flags().String("topic", "", "case-insensitive topic filter")
	bankSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	bankSearchCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	bankExportCmd.Flags().String("format", "csv", "export format: csv or json")
	bankExportCmd.Flags().String("output", "", "output file (default: bank/export.<format>)")
	bankExportCmd.Flags().String("query", "", "full-text search filter for partial export")
	bankExportCmd.Flags().String("topic", "", "topic filter for partial export")
	bankExportCmd.Flags().Int("limit", 0, "maximum records to export (0 = all)")

	// Wire subcommands.
	bankCmd.AddCommand(bankStoreCmd)
	bankCmd.AddCommand(bankSearchCmd)
	bankCmd.AddCommand(bankShowCmd)
	bankCmd.AddCommand(bankStatsCmd)
	bankCmd.AddCommand(bankExportCmd)

	rootCmd.AddCommand(bankCmd)
}

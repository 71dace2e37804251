// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/quiz-engine/internal/questions"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Parse a question file into the study CSV",
	Long: `Extract reads an exam-prep question file (markdown checkbox format or
plain numbered format), derives an AWS service tag for each question, and
writes the records to a CSV file that the bank and explain stages consume.

Malformed questions are skipped with a warning; the remaining records are
renumbered so indexes stay contiguous from 1.`,
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	sourcePath, _ := cmd.Flags().GetString("source")
	csvPath, _ := cmd.Flags().GetString("csv")

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("reading question file: %w", err)
	}

	records := questions.Parse(string(data), os.Stderr)
	if len(records) == 0 {
		return fmt.Errorf("no questions found in %s", sourcePath)
	}

	if err := questions.WriteCSV(csvPath, records); err != nil {
		return err
	}

	fmt.Printf("Extracted %d questions to %s\n", len(records), csvPath)
	return nil
}

func init() {
	extractCmd.Flags().String("source", "questions/README.md", "question file to parse")
	extractCmd.Flags().String("csv", "questions/questions.csv", "output CSV file")

	rootCmd.AddCommand(extractCmd)
}

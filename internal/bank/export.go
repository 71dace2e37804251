// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bank

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pdiddy/quiz-engine/internal/questions"
	"github.com/pdiddy/quiz-engine/pkg/types"
)

const exportLimit = 100000

// ExportJSON writes the bank (or a filtered subset) to path as indented JSON.
func (s *Store) ExportJSON(ctx context.Context, path string, opts SearchOptions) error {
	records, err := s.exportRecords(ctx, opts)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportCSV writes the bank (or a filtered subset) to path in the CSV
// interchange format, so an export can be re-ingested losslessly.
func (s *Store) ExportCSV(ctx context.Context, path string, opts SearchOptions) error {
	records, err := s.exportRecords(ctx, opts)
	if err != nil {
		return err
	}
	return questions.WriteCSV(path, records)
}

func (s *Store) exportRecords(ctx context.Context, opts SearchOptions) ([]types.Question, error) {
	if opts.IsEmpty() {
		return s.All(ctx)
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = exportLimit
	}
	records, err := s.Search(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	return records, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session assembles study sessions: an ordered subset of question
// records selected by count and optional topic, each paired with a
// generated explanation.
package session

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/quiz-engine/internal/bank"
	"github.com/pdiddy/quiz-engine/internal/explain"
	"github.com/pdiddy/quiz-engine/pkg/types"
)

const (
	defaultCount = 5
	maxCount     = 20
)

// Source yields candidate records for a session. *bank.Store satisfies it.
type Source interface {
	All(ctx context.Context) ([]types.Question, error)
	Search(ctx context.Context, opts bank.SearchOptions) ([]types.Question, error)
}

// Build selects the first cfg.Count records matching the optional topic,
// in index order. Count is clamped to [1, 20]; zero means the default (5).
func Build(ctx context.Context, src Source, cfg types.SessionConfig) ([]types.Question, error) {
	count := cfg.Count
	if count <= 0 {
		count = defaultCount
	}
	if count > maxCount {
		count = maxCount
	}

	var (
		candidates []types.Question
		err        error
	)
	if cfg.Topic != "" {
		candidates, err = src.Search(ctx, bank.SearchOptions{Topic: cfg.Topic, MaxResults: count})
	} else {
		candidates, err = src.All(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("selecting session questions: %w", err)
	}
	if len(candidates) == 0 {
		if cfg.Topic != "" {
			return nil, fmt.Errorf("no questions found for topic %q", cfg.Topic)
		}
		return nil, fmt.Errorf("question bank is empty")
	}

	if len(candidates) > count {
		candidates = candidates[:count]
	}
	return candidates, nil
}

// Entry is one session question with its generated explanation.
type Entry struct {
	Question    types.Question `json:"question" yaml:"question"`
	Explanation string         `json:"explanation" yaml:"explanation"`
}

// Run generates explanations for the session questions in order, one call
// at a time. A failed question keeps its record with an empty explanation
// and a warning on w.
func Run(ctx context.Context, e *explain.Explainer, records []types.Question, w io.Writer) ([]Entry, error) {
	out, _, err := e.ExplainAll(ctx, records, w)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, len(records))
	for i, q := range records {
		entries[i] = Entry{Question: q, Explanation: out[q.Index]}
	}
	return entries, nil
}

// ExportYAML saves session entries for offline study.
func ExportYAML(path string, entries []Entry) error {
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

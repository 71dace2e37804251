// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package explain asks an LLM to produce per-question explanations. Calls
// are strictly sequential: one request at a time, with a fixed delay
// between successive calls to stay under the provider's rate limit.
package explain

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/pdiddy/quiz-engine/pkg/types"
)

// AIBackend abstracts the completion API so tests can supply a mock.
type AIBackend interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Explainer generates explanations for question records.
type Explainer struct {
	backend AIBackend
	cfg     types.ExplainConfig
	deck    string // cleaned slide-deck text, "" when no deck is available
}

// New builds an Explainer. deck may be empty; prompts then carry no
// reference material.
func New(backend AIBackend, cfg types.ExplainConfig, deck string) *Explainer {
	return &Explainer{backend: backend, cfg: cfg, deck: deck}
}

// Explain generates an explanation for a single record.
func (e *Explainer) Explain(ctx context.Context, q types.Question) (string, error) {
	prompt, err := renderPrompt(q, e.deck)
	if err != nil {
		return "", fmt.Errorf("rendering prompt for question %d: %w", q.Index, err)
	}

	text, err := e.backend.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return "", fmt.Errorf("explaining question %d: %w", q.Index, err)
	}
	return text, nil
}

// FindByIndex returns the record with the given 1-based index, or a clear
// "not found" error when the index is out of range.
func FindByIndex(records []types.Question, index int) (types.Question, error) {
	for _, q := range records {
		if q.Index == index {
			return q, nil
		}
	}
	return types.Question{}, fmt.Errorf("question %d not found (have %d questions)", index, len(records))
}

// BatchSummary holds counts from a batch explanation run.
type BatchSummary struct {
	Explained int
	Failed    int
}

// Total returns the number of questions processed.
func (s BatchSummary) Total() int {
	return s.Explained + s.Failed
}

// HasFailures reports whether any questions failed.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// callDelay returns the configured pause between calls, defaulting to 1s.
// Tests shorten it through the config.
func (e *Explainer) callDelay() time.Duration {
	if e.cfg.CallDelay > 0 {
		return e.cfg.CallDelay
	}
	return time.Second
}

// ExplainAll generates explanations for every record in order, pausing
// between calls. A failed question is reported on w and skipped; the run
// continues. The result maps question index to explanation text.
func (e *Explainer) ExplainAll(ctx context.Context, records []types.Question, w io.Writer) (map[int]string, BatchSummary, error) {
	out := make(map[int]string, len(records))
	var summary BatchSummary

	for i, q := range records {
		if i > 0 {
			select {
			case <-ctx.Done():
				return out, summary, ctx.Err()
			case <-time.After(e.callDelay()):
			}
		}

		fmt.Fprintf(w, "explaining %d/%d: %s\n", i+1, len(records), truncate(q.Text, 50))

		text, err := e.Explain(ctx, q)
		if err != nil {
			fmt.Fprintf(w, "failed  %d: %v\n", q.Index, err)
			summary.Failed++
			continue
		}

		out[q.Index] = text
		summary.Explained++
	}

	fmt.Fprintf(w, "\nexplained: %d, failed: %d\n", summary.Explained, summary.Failed)
	return out, summary, nil
}

// TestConnection sends one tiny completion to verify the key and model
// before starting a batch run.
func (e *Explainer) TestConnection(ctx context.Context) error {
	_, err := e.backend.Complete(ctx, "", "Hello, this is a test message. Please respond with 'Test successful'.")
	if err != nil {
		return fmt.Errorf("API connection test failed: %w", err)
	}
	return nil
}

// WriteExplanations saves the index→explanation map as indented JSON. Keys
// are the decimal question indices.
func WriteExplanations(path string, explanations map[int]string) error {
	keyed := make(map[string]string, len(explanations))
	for idx, text := range explanations {
		keyed[strconv.Itoa(idx)] = text
	}

	data, err := json.MarshalIndent(keyed, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling explanations: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadExplanations loads a file written by WriteExplanations.
func ReadExplanations(path string) (map[int]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var keyed map[string]string
	if err := json.Unmarshal(data, &keyed); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	out := make(map[int]string, len(keyed))
	for k, v := range keyed {
		idx, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("%s: bad question index %q", path, k)
		}
		out[idx] = v
	}
	return out, nil
}

// truncate shortens s for progress messages.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

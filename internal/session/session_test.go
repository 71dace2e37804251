package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/quiz-engine/internal/bank"
	"github.com/pdiddy/quiz-engine/internal/explain"
	"github.com/pdiddy/quiz-engine/pkg/types"
)

// --- test helpers ---

// fakeSource serves a fixed record list, filtering by topic tag on Search.
type fakeSource struct {
	records []types.Question
}

func (f *fakeSource) All(ctx context.Context) ([]types.Question, error) {
	return f.records, nil
}

func (f *fakeSource) Search(ctx context.Context, opts bank.SearchOptions) ([]types.Question, error) {
	var out []types.Question
	for _, q := range f.records {
		if strings.EqualFold(q.Topic, opts.Topic) {
			out = append(out, q)
		}
		if opts.MaxResults > 0 && len(out) == opts.MaxResults {
			break
		}
	}
	return out, nil
}

func makeRecords(n int) []types.Question {
	records := make([]types.Question, n)
	for i := range records {
		topic := "S3"
		if i%2 == 1 {
			topic = "Lambda"
		}
		records[i] = types.Question{
			Index:   i + 1,
			Text:    fmt.Sprintf("Question %d?", i+1),
			Choices: []string{"Yes", "No"},
			Answers: []string{"A"},
			Topic:   topic,
		}
	}
	return records
}

type fixedBackend struct{ text string }

func (f fixedBackend) Complete(ctx context.Context, system, user string) (string, error) {
	return f.text, nil
}

// --- build tests ---

func TestBuild(t *testing.T) {
	tests := []struct {
		name      string
		available int
		cfg       types.SessionConfig
		want      int
	}{
		{"default count", 30, types.SessionConfig{}, 5},
		{"explicit count", 30, types.SessionConfig{Count: 8}, 8},
		{"clamped to max", 30, types.SessionConfig{Count: 50}, 20},
		{"fewer than requested", 3, types.SessionConfig{Count: 10}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{records: makeRecords(tt.available)}
			records, err := Build(context.Background(), src, tt.cfg)
			if err != nil {
				t.Fatal(err)
			}
			if len(records) != tt.want {
				t.Errorf("got %d records, want %d", len(records), tt.want)
			}
		})
	}
}

func TestBuildTopicFilter(t *testing.T) {
	src := &fakeSource{records: makeRecords(10)}

	records, err := Build(context.Background(), src, types.SessionConfig{Count: 10, Topic: "Lambda"})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 5 {
		t.Fatalf("got %d records, want 5", len(records))
	}
	for _, q := range records {
		if q.Topic != "Lambda" {
			t.Errorf("question %d has topic %q, want Lambda", q.Index, q.Topic)
		}
	}
}

func TestBuildEmptyBank(t *testing.T) {
	src := &fakeSource{}

	_, err := Build(context.Background(), src, types.SessionConfig{})
	if err == nil {
		t.Fatal("expected error for empty bank")
	}
	if !strings.Contains(err.Error(), "empty") {
		t.Errorf("error = %q", err)
	}
}

func TestBuildNoTopicMatch(t *testing.T) {
	src := &fakeSource{records: makeRecords(4)}

	_, err := Build(context.Background(), src, types.SessionConfig{Topic: "Redshift"})
	if err == nil {
		t.Fatal("expected error for unmatched topic")
	}
	if !strings.Contains(err.Error(), "Redshift") {
		t.Errorf("error = %q, want the topic named", err)
	}
}

// --- run tests ---

func TestRun(t *testing.T) {
	records := makeRecords(3)
	cfg := types.ExplainConfig{AIConfig: types.AIConfig{CallDelay: time.Millisecond}}
	e := explain.New(fixedBackend{text: "because"}, cfg, "")

	var buf strings.Builder
	entries, err := Run(context.Background(), e, records, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	for i, entry := range entries {
		if entry.Question.Index != records[i].Index {
			t.Errorf("entries[%d] holds question %d, want %d", i, entry.Question.Index, records[i].Index)
		}
		if entry.Explanation != "because" {
			t.Errorf("entries[%d].Explanation = %q", i, entry.Explanation)
		}
	}
}

// --- export tests ---

func TestExportYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	entries := []Entry{
		{Question: makeRecords(1)[0], Explanation: "the reason"},
	}

	if err := ExportYAML(path, entries); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var got []Entry
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("exported YAML does not parse: %v", err)
	}
	if len(got) != 1 || got[0].Explanation != "the reason" {
		t.Errorf("got %+v", got)
	}
	if got[0].Question.Text != "Question 1?" {
		t.Errorf("Question.Text = %q", got[0].Question.Text)
	}
}

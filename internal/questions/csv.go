// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package questions

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/pdiddy/quiz-engine/pkg/types"
)

// csvHeader is the CSV interchange column set. Choice and answer lists are
// stored as JSON arrays inside their cells so the round-trip is exact.
var csvHeader = []string{"INDEX", "QUESTION", "ANSWER_CHOICES", "ANSWERS", "TOPIC", "EXPLANATIONS"}

// WriteCSV saves records to path in the interchange format.
func WriteCSV(path string, records []types.Question) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, q := range records {
		choices, err := json.Marshal(q.Choices)
		if err != nil {
			return fmt.Errorf("encoding choices for question %d: %w", q.Index, err)
		}
		answers, err := json.Marshal(q.Answers)
		if err != nil {
			return fmt.Errorf("encoding answers for question %d: %w", q.Index, err)
		}
		row := []string{
			strconv.Itoa(q.Index),
			q.Text,
			string(choices),
			string(answers),
			q.Topic,
			q.Explanation,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing question %d: %w", q.Index, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}

// ReadCSV loads records from a CSV written by WriteCSV.
func ReadCSV(path string) ([]types.Question, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}
	if len(rows[0]) != len(csvHeader) || rows[0][0] != csvHeader[0] {
		return nil, fmt.Errorf("%s: unexpected header %v", path, rows[0])
	}

	var records []types.Question
	for i, row := range rows[1:] {
		index, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad index %q: %w", i+2, row[0], err)
		}

		q := types.Question{
			Index:       index,
			Text:        row[1],
			Topic:       row[4],
			Explanation: row[5],
		}
		if err := json.Unmarshal([]byte(row[2]), &q.Choices); err != nil {
			return nil, fmt.Errorf("row %d: decoding choices: %w", i+2, err)
		}
		if err := json.Unmarshal([]byte(row[3]), &q.Answers); err != nil {
			return nil, fmt.Errorf("row %d: decoding answers: %w", i+2, err)
		}

		records = append(records, q)
	}

	return records, nil
}

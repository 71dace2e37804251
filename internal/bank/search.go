// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bank

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/quiz-engine/pkg/types"
)

// SearchOptions holds bank query parameters.
type SearchOptions struct {
	// Query is an FTS5 full-text search string over question and choice text.
	Query string

	// Topic is a case-insensitive keyword; matches records whose question
	// text or derived topic tag contains it.
	Topic string

	// MaxResults limits the result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the options carry no search terms or filters.
func (o SearchOptions) IsEmpty() bool {
	return o.Query == "" && o.Topic == ""
}

// Search queries the bank. Full-text matches are ranked by relevance;
// filter-only queries come back in index order.
func (s *Store) Search(ctx context.Context, opts SearchOptions) ([]types.Question, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT q.idx, q.text, q.choices, q.answers, q.topic, q.explanation
			FROM questions_fts
			JOIN questions q ON q.idx = questions_fts.rowid
			WHERE questions_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT q.idx, q.text, q.choices, q.answers, q.topic, q.explanation
			FROM questions q
			WHERE 1=1`)
	}

	if opts.Topic != "" {
		qb.WriteString(` AND (instr(lower(q.text), lower(?)) > 0 OR instr(lower(q.topic), lower(?)) > 0)`)
		args = append(args, opts.Topic, opts.Topic)
	}

	if useFTS {
		qb.WriteString(` ORDER BY questions_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY q.idx`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying question bank: %w", err)
	}
	defer rows.Close()

	return scanQuestions(rows)
}

// Get returns the record with the given index, or a "not found" error.
func (s *Store) Get(ctx context.Context, index int) (types.Question, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT idx, text, choices, answers, topic, explanation
		 FROM questions WHERE idx = ?`, index)

	q, err := scanQuestion(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.Question{}, fmt.Errorf("question %d not found", index)
		}
		return types.Question{}, fmt.Errorf("looking up question %d: %w", index, err)
	}
	return q, nil
}

// All returns every record in index order.
func (s *Store) All(ctx context.Context) ([]types.Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT idx, text, choices, answers, topic, explanation
		 FROM questions ORDER BY idx`)
	if err != nil {
		return nil, fmt.Errorf("listing questions: %w", err)
	}
	defer rows.Close()

	return scanQuestions(rows)
}

// Stats summarizes the bank contents.
type Stats struct {
	Total        int
	SingleAnswer int
	MultiAnswer  int
	ByTopic      []TopicCount
}

// TopicCount is one row of the per-topic breakdown, largest first.
type TopicCount struct {
	Topic string
	Count int
}

// Stats counts records, single-vs-multiple-answer items, and questions per
// derived topic.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats

	err := s.db.QueryRowContext(ctx,
		`SELECT count(*),
			coalesce(sum(CASE WHEN json_array_length(answers) = 1 THEN 1 ELSE 0 END), 0)
		 FROM questions`,
	).Scan(&st.Total, &st.SingleAnswer)
	if err != nil {
		return Stats{}, fmt.Errorf("counting questions: %w", err)
	}
	st.MultiAnswer = st.Total - st.SingleAnswer

	rows, err := s.db.QueryContext(ctx,
		`SELECT topic, count(*) FROM questions
		 WHERE topic != '' GROUP BY topic ORDER BY count(*) DESC, topic`)
	if err != nil {
		return Stats{}, fmt.Errorf("counting topics: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tc TopicCount
		if err := rows.Scan(&tc.Topic, &tc.Count); err != nil {
			return Stats{}, fmt.Errorf("scanning topic row: %w", err)
		}
		st.ByTopic = append(st.ByTopic, tc)
	}

	return st, rows.Err()
}

func scanQuestions(rows *sql.Rows) ([]types.Question, error) {
	var out []types.Question
	for rows.Next() {
		q, err := scanQuestion(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func scanQuestion(scan func(...any) error) (types.Question, error) {
	var (
		q           types.Question
		choicesJSON string
		answersJSON string
		topic       sql.NullString
		explanation sql.NullString
	)

	if err := scan(&q.Index, &q.Text, &choicesJSON, &answersJSON, &topic, &explanation); err != nil {
		return types.Question{}, err
	}

	if err := json.Unmarshal([]byte(choicesJSON), &q.Choices); err != nil {
		return types.Question{}, fmt.Errorf("decoding choices: %w", err)
	}
	if err := json.Unmarshal([]byte(answersJSON), &q.Answers); err != nil {
		return types.Question{}, fmt.Errorf("decoding answers: %w", err)
	}
	if topic.Valid {
		q.Topic = topic.String
	}
	if explanation.Valid {
		q.Explanation = explanation.String
	}

	return q, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bank persists question records in a SQLite database with an FTS5
// index, and answers search, lookup, statistics, and export queries. The
// database is rebuilt from the CSV interchange file; the CSV stays the
// source of truth.
package bank

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/quiz-engine/internal/questions"
	"github.com/pdiddy/quiz-engine/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "questions.db"
)

// Store manages the question bank SQLite database.
type Store struct {
	db         *sql.DB
	bankDir    string
	maxResults int
}

// NewStore opens or creates the bank database at bankDir/index/questions.db,
// creating the schema when missing.
func NewStore(cfg types.BankConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.BankDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		bankDir:    cfg.BankDir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS questions (
			idx INTEGER PRIMARY KEY,
			text TEXT NOT NULL,
			choices TEXT NOT NULL,
			answers TEXT NOT NULL,
			topic TEXT,
			explanation TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_questions_topic ON questions(topic)`,
		`CREATE TABLE IF NOT EXISTS ingest_status (
			source TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table over question and choice text, with sync triggers.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='questions_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE questions_fts USING fts5(text, choices, content=questions, content_rowid=idx)`,
			`CREATE TRIGGER questions_ai AFTER INSERT ON questions BEGIN
				INSERT INTO questions_fts(rowid, text, choices) VALUES (new.idx, new.text, new.choices);
			END`,
			`CREATE TRIGGER questions_ad AFTER DELETE ON questions BEGIN
				INSERT INTO questions_fts(questions_fts, rowid, text, choices) VALUES('delete', old.idx, old.text, old.choices);
			END`,
			`CREATE TRIGGER questions_au AFTER UPDATE ON questions BEGIN
				INSERT INTO questions_fts(questions_fts, rowid, text, choices) VALUES('delete', old.idx, old.text, old.choices);
				INSERT INTO questions_fts(rowid, text, choices) VALUES (new.idx, new.text, new.choices);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary reports the outcome of one ingest run.
type IngestSummary struct {
	Ingested int
	Updated  bool
	Skipped  bool
}

// Ingest loads the question CSV into the bank. An unchanged CSV (same
// modification time as last ingest) is skipped; a changed one replaces all
// rows in a single transaction.
func (s *Store) Ingest(ctx context.Context, csvPath string, w io.Writer) (IngestSummary, error) {
	info, err := os.Stat(csvPath)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("stat %s: %w", csvPath, err)
	}
	modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

	var storedModTime string
	err = s.db.QueryRowContext(ctx,
		`SELECT file_mod_time FROM ingest_status WHERE source = ?`, csvPath,
	).Scan(&storedModTime)

	if err == nil && storedModTime == modTime {
		fmt.Fprintf(w, "skipped %s (unchanged)\n", csvPath)
		return IngestSummary{Skipped: true}, nil
	}
	isUpdate := err == nil

	records, err := questions.ReadCSV(csvPath)
	if err != nil {
		return IngestSummary{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM questions`); err != nil {
		return IngestSummary{}, fmt.Errorf("clearing old questions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO questions (idx, text, choices, answers, topic, explanation)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, q := range records {
		choicesJSON, _ := json.Marshal(q.Choices)
		answersJSON, _ := json.Marshal(q.Answers)
		if _, err := stmt.ExecContext(ctx,
			q.Index, q.Text, string(choicesJSON), string(answersJSON), q.Topic, q.Explanation,
		); err != nil {
			return IngestSummary{}, fmt.Errorf("inserting question %d: %w", q.Index, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO ingest_status (source, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(source) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		csvPath, modTime,
	); err != nil {
		return IngestSummary{}, fmt.Errorf("updating ingest status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return IngestSummary{}, fmt.Errorf("committing: %w", err)
	}

	fmt.Fprintf(w, "ingested %d questions from %s\n", len(records), csvPath)
	return IngestSummary{Ingested: len(records), Updated: isUpdate}, nil
}

// SetExplanation stores generated explanation text for a question.
func (s *Store) SetExplanation(ctx context.Context, index int, text string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE questions SET explanation = ? WHERE idx = ?`, text, index)
	if err != nil {
		return fmt.Errorf("storing explanation for question %d: %w", index, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("question %d not found", index)
	}
	return nil
}

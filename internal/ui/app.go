// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ui implements the interactive study menu with Bubble Tea.
package ui

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pdiddy/quiz-engine/internal/bank"
	"github.com/pdiddy/quiz-engine/internal/explain"
	"github.com/pdiddy/quiz-engine/internal/session"
	"github.com/pdiddy/quiz-engine/pkg/types"
)

// App bundles the services the interactive menu drives.
type App struct {
	Store     *bank.Store
	Explainer *explain.Explainer
	Session   types.SessionConfig
}

// resultMsg carries the outcome of a background action back into the model.
type resultMsg struct {
	text string
	err  error
}

// explainCmd fetches a question by number and asks the LLM for an
// explanation.
func (a *App) explainCmd(index int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		q, err := a.Store.Get(ctx, index)
		if err != nil {
			return resultMsg{err: err}
		}
		text, err := a.Explainer.Explain(ctx, q)
		if err != nil {
			return resultMsg{err: err}
		}
		return resultMsg{text: renderExplanation(q, text)}
	}
}

// searchCmd lists questions matching a topic keyword.
func (a *App) searchCmd(topic string) tea.Cmd {
	return func() tea.Msg {
		results, err := a.Store.Search(context.Background(), bank.SearchOptions{Topic: topic})
		if err != nil {
			return resultMsg{err: err}
		}
		if len(results) == 0 {
			return resultMsg{text: fmt.Sprintf("No questions found for topic %q.", topic)}
		}
		return resultMsg{text: renderSearchResults(topic, results)}
	}
}

// sessionCmd assembles a study session and explains each question in turn.
func (a *App) sessionCmd(count int, topic string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		cfg := a.Session
		if count > 0 {
			cfg.Count = count
		}
		if topic != "" {
			cfg.Topic = topic
		}
		records, err := session.Build(ctx, a.Store, cfg)
		if err != nil {
			return resultMsg{err: err}
		}
		entries, err := session.Run(ctx, a.Explainer, records, io.Discard)
		if err != nil {
			return resultMsg{err: err}
		}
		return resultMsg{text: renderSession(entries)}
	}
}

// exportCmd writes the bank to a JSON or CSV file chosen by extension.
func (a *App) exportCmd(path string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		switch strings.ToLower(filepath.Ext(path)) {
		case ".csv":
			err = a.Store.ExportCSV(ctx, path, bank.SearchOptions{})
		case ".json", "":
			if filepath.Ext(path) == "" {
				path += ".json"
			}
			err = a.Store.ExportJSON(ctx, path, bank.SearchOptions{})
		default:
			err = fmt.Errorf("unsupported export format %q: use .json or .csv", filepath.Ext(path))
		}
		if err != nil {
			return resultMsg{err: err}
		}
		return resultMsg{text: fmt.Sprintf("Exported question bank to %s", path)}
	}
}

// statsCmd summarizes the bank.
func (a *App) statsCmd() tea.Cmd {
	return func() tea.Msg {
		st, err := a.Store.Stats(context.Background())
		if err != nil {
			return resultMsg{err: err}
		}
		return resultMsg{text: renderStats(st)}
	}
}

// Run starts the interactive program on the caller's terminal.
func Run(app *App) error {
	_, err := tea.NewProgram(NewModel(app), tea.WithAltScreen()).Run()
	return err
}

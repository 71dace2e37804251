// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func errBadNumber(value string) error {
	return fmt.Errorf("%q is not a question number", value)
}

// screen identifies what the model is currently showing.
type screen int

const (
	screenMenu screen = iota
	screenPrompt
	screenBusy
	screenResult
	screenHelp
)

// promptKind identifies which input the prompt screen is collecting.
type promptKind int

const (
	promptExplainIndex promptKind = iota
	promptTopic
	promptSessionCount
	promptSessionTopic
	promptExportPath
)

// Model is the interactive menu state machine.
type Model struct {
	app    *App
	screen screen
	prompt promptKind
	input  textinput.Model

	result       string
	err          error
	busyLabel    string
	sessionCount int
	width        int
}

// NewModel builds the menu model around the app services.
func NewModel(app *App) Model {
	in := textinput.New()
	in.CharLimit = 120
	return Model{app: app, screen: screenMenu, input: in}
}

// Init is a no-op; the menu waits for input.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update drives the menu state machine.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		return m, nil

	case resultMsg:
		m.screen = screenResult
		m.result = typed.text
		m.err = typed.err
		return m, nil

	case tea.KeyMsg:
		if typed.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.screen {
		case screenMenu:
			return m.updateMenu(typed)
		case screenPrompt:
			return m.updatePrompt(typed)
		case screenResult, screenHelp:
			m.screen = screenMenu
			return m, nil
		case screenBusy:
			return m, nil
		}
	}

	return m, nil
}

func (m Model) updateMenu(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "1":
		return m.openPrompt(promptExplainIndex, "Question number"), nil
	case "2":
		return m.openPrompt(promptTopic, "Topic (e.g. S3, Lambda, DynamoDB)"), nil
	case "3":
		return m.openPrompt(promptSessionCount, "Number of questions (1-20)"), nil
	case "4":
		return m.openPrompt(promptExportPath, "Export file (.json or .csv)"), nil
	case "5":
		m.screen = screenBusy
		m.busyLabel = "Computing statistics..."
		return m, m.app.statsCmd()
	case "6":
		m.screen = screenHelp
		return m, nil
	case "0", "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) openPrompt(kind promptKind, placeholder string) Model {
	m.screen = screenPrompt
	m.prompt = kind
	m.input.Placeholder = placeholder
	m.input.SetValue("")
	m.input.Focus()
	return m
}

func (m Model) updatePrompt(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEscape:
		m.screen = screenMenu
		return m, nil
	case tea.KeyEnter:
		return m.submitPrompt()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

func (m Model) submitPrompt() (tea.Model, tea.Cmd) {
	value := m.input.Value()

	switch m.prompt {
	case promptExplainIndex:
		index, err := strconv.Atoi(value)
		if err != nil {
			m.screen = screenResult
			m.err = errBadNumber(value)
			return m, nil
		}
		m.screen = screenBusy
		m.busyLabel = "Asking for an explanation..."
		return m, m.app.explainCmd(index)

	case promptTopic:
		if value == "" {
			m.screen = screenMenu
			return m, nil
		}
		m.screen = screenBusy
		m.busyLabel = "Searching..."
		return m, m.app.searchCmd(value)

	case promptSessionCount:
		count, err := strconv.Atoi(value)
		if err != nil {
			count = 0 // session.Build applies the default
		}
		m.sessionCount = count
		return m.openPrompt(promptSessionTopic, "Topic (optional, Enter to skip)"), nil

	case promptSessionTopic:
		m.screen = screenBusy
		m.busyLabel = "Building study session (one API call per question)..."
		return m, m.app.sessionCmd(m.sessionCount, value)

	case promptExportPath:
		if value == "" {
			value = "questions_export.json"
		}
		m.screen = screenBusy
		m.busyLabel = "Exporting..."
		return m, m.app.exportCmd(value)
	}

	m.screen = screenMenu
	return m, nil
}

// View renders the current screen.
func (m Model) View() string {
	switch m.screen {
	case screenMenu:
		return renderMenu()
	case screenPrompt:
		return renderPrompt(m.input.View())
	case screenBusy:
		return renderBusy(m.busyLabel)
	case screenResult:
		if m.err != nil {
			return renderError(m.err)
		}
		return renderResult(m.result)
	case screenHelp:
		return renderHelp()
	}
	return ""
}

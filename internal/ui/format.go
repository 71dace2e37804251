// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/quiz-engine/internal/bank"
	"github.com/pdiddy/quiz-engine/internal/session"
	"github.com/pdiddy/quiz-engine/pkg/types"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
	correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	wrongStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
)

func renderMenu() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("AWS Certified Developer Quiz") + "\n\n")
	b.WriteString("  1. Get explanation for a question\n")
	b.WriteString("  2. Find questions by topic\n")
	b.WriteString("  3. Create a study session\n")
	b.WriteString("  4. Export the question bank\n")
	b.WriteString("  5. Show statistics\n")
	b.WriteString("  6. Help\n")
	b.WriteString("  0. Quit\n\n")
	b.WriteString(faintStyle.Render("Press a number key (q quits)."))
	return b.String()
}

func renderPrompt(inputView string) string {
	return inputView + "\n\n" + faintStyle.Render("Enter submits, Esc returns to the menu.")
}

func renderBusy(label string) string {
	return label
}

func renderResult(text string) string {
	return text + "\n\n" + faintStyle.Render("Press any key for the menu.")
}

func renderError(err error) string {
	return errorStyle.Render("Error: "+err.Error()) + "\n\n" + faintStyle.Render("Press any key for the menu.")
}

func renderHelp() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Help") + "\n\n")
	b.WriteString("This tool explains AWS Certified Developer Associate quiz questions.\n\n")
	b.WriteString("  - Explanations come from an LLM and are paced one API call at a time.\n")
	b.WriteString("  - Topics are AWS service names: S3, Lambda, DynamoDB, IAM, ...\n")
	b.WriteString("  - Study sessions explain up to 20 questions, optionally filtered by topic.\n")
	b.WriteString("  - Exports write the full bank as JSON or round-trippable CSV.\n\n")
	b.WriteString(faintStyle.Render("Press any key for the menu."))
	return b.String()
}

// renderExplanation lays out a question with its choices marked correct or
// incorrect, followed by the generated explanation.
func renderExplanation(q types.Question, explanation string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n%s\n\n", headerStyle.Render(fmt.Sprintf("Question %d", q.Index)), q.Text)

	for i, c := range q.Choices {
		letter := types.ChoiceLetter(i)
		line := fmt.Sprintf("%s) %s", letter, c)
		if q.IsCorrect(letter) {
			b.WriteString(correctStyle.Render("  ✓ "+line) + "\n")
		} else {
			b.WriteString(wrongStyle.Render("  ✗ "+line) + "\n")
		}
	}

	fmt.Fprintf(&b, "\n%s %s\n", headerStyle.Render("Correct:"), strings.Join(q.Answers, ", "))
	fmt.Fprintf(&b, "\n%s\n%s\n", headerStyle.Render("Explanation"), explanation)
	return b.String()
}

func renderSearchResults(topic string, results []types.Question) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", headerStyle.Render(fmt.Sprintf("%d questions about %q", len(results), topic)))
	for _, q := range results {
		text := q.Text
		if len(text) > 80 {
			text = text[:77] + "..."
		}
		fmt.Fprintf(&b, "  %3d. %s\n", q.Index, text)
	}
	b.WriteString("\n" + faintStyle.Render("Use option 1 with a question number for its explanation."))
	return b.String()
}

func renderSession(entries []session.Entry) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n" + strings.Repeat("─", 50) + "\n\n")
		}
		fmt.Fprintf(&b, "%s\n\n", headerStyle.Render(fmt.Sprintf("Session question %d/%d", i+1, len(entries))))
		b.WriteString(renderExplanation(e.Question, e.Explanation))
	}
	return b.String()
}

func renderStats(st bank.Stats) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Question bank statistics") + "\n\n")
	fmt.Fprintf(&b, "  Total questions:  %d\n", st.Total)
	fmt.Fprintf(&b, "  Single answer:    %d\n", st.SingleAnswer)
	fmt.Fprintf(&b, "  Multiple answer:  %d\n", st.MultiAnswer)

	if len(st.ByTopic) > 0 {
		b.WriteString("\n  Questions by topic:\n")
		for _, tc := range st.ByTopic {
			fmt.Fprintf(&b, "    %-20s %d\n", tc.Topic, tc.Count)
		}
	}
	return b.String()
}

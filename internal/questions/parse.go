// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package questions parses semi-structured quiz sources into Question
// records and round-trips them through the CSV interchange format.
package questions

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/quiz-engine/pkg/types"
)

// Parse extracts Question records from a quiz document. It detects the
// source format: markdown checkbox blocks (### headings with - [ ] / - [x]
// choices) or numbered blocks ("21. ... A) ... B) ... Answer: A").
// Unparsable blocks are skipped with a warning on w; they never abort the run.
func Parse(content string, w io.Writer) []types.Question {
	if strings.Contains(content, "\n### ") || strings.HasPrefix(content, "### ") {
		return ParseMarkdown(content, w)
	}
	return ParseNumbered(content, w)
}

const (
	checkboxUnchecked = "- [ ]"
	checkboxChecked   = "- [x]"
)

// ParseMarkdown extracts records from a README-style document where each
// question is a "### " heading followed by checkbox choices. A "[x]" box
// marks a correct choice. Headings named "Placeholder" and navigation links
// are skipped. Indices are assigned contiguously from 1 in source order.
func ParseMarkdown(content string, w io.Writer) []types.Question {
	var questions []types.Question

	sections := splitSections(content)
	for _, sec := range sections {
		lines := strings.Split(strings.TrimSpace(sec), "\n")
		text := strings.TrimSpace(lines[0])

		if text == "" || strings.EqualFold(text, "placeholder") {
			continue
		}

		var choices, answers []string
		for _, line := range lines[1:] {
			line = strings.TrimSpace(line)
			if line == "" || strings.Contains(line, "[⬆ Back to Top]") {
				continue
			}

			checked := strings.HasPrefix(line, checkboxChecked)
			if !checked && !strings.HasPrefix(line, checkboxUnchecked) {
				continue
			}

			choice := strings.TrimSpace(line[len(checkboxUnchecked):])
			if checked {
				answers = append(answers, types.ChoiceLetter(len(choices)))
			}
			choices = append(choices, choice)
		}

		if len(choices) == 0 || len(answers) == 0 {
			fmt.Fprintf(w, "warning: skipping block %q: no choices or no marked answer\n", truncate(text, 60))
			continue
		}

		questions = append(questions, types.Question{
			Index:   len(questions) + 1,
			Text:    text,
			Choices: choices,
			Answers: answers,
			Topic:   DeriveTopic(text, choices),
		})
	}

	return questions
}

// splitSections divides the document at "### " headings and drops the
// preamble before the first heading.
func splitSections(content string) []string {
	parts := strings.Split("\n"+content, "\n### ")
	if len(parts) <= 1 {
		return nil
	}
	return parts[1:]
}

var (
	numberedStartRe = regexp.MustCompile(`(?m)^\s*(\d+)\.\s+`)
	optionMarkerRe  = regexp.MustCompile(`\b([A-H])\)\s*`)
	answerLineRe    = regexp.MustCompile(`(?i)answer[s]?\s*:\s*([A-H](?:\s*,\s*[A-H])*)`)
)

// ParseNumbered extracts records from flat numbered blocks of the form
// "21. Which service stores objects? A) S3 B) EC2 Answer: A". The index is
// taken from the source number; options are lettered inline; the Answer
// line lists the correct letters, comma-separated for multi-answer items.
func ParseNumbered(content string, w io.Writer) []types.Question {
	var questions []types.Question

	starts := numberedStartRe.FindAllStringSubmatchIndex(content, -1)
	for i, loc := range starts {
		end := len(content)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		block := content[loc[0]:end]
		index, _ := strconv.Atoi(content[loc[2]:loc[3]])
		body := strings.TrimSpace(content[loc[1]:end])

		q, err := parseNumberedBlock(index, body)
		if err != nil {
			fmt.Fprintf(w, "warning: skipping block %q: %v\n", truncate(strings.TrimSpace(block), 60), err)
			continue
		}
		questions = append(questions, q)
	}

	return questions
}

// parseNumberedBlock splits one numbered block into stem, lettered options,
// and correct letters.
func parseNumberedBlock(index int, body string) (types.Question, error) {
	answerLoc := answerLineRe.FindStringSubmatchIndex(body)
	if answerLoc == nil {
		return types.Question{}, fmt.Errorf("no answer line")
	}

	answerPart := body[answerLoc[2]:answerLoc[3]]
	var answers []string
	for _, letter := range strings.Split(answerPart, ",") {
		answers = append(answers, strings.ToUpper(strings.TrimSpace(letter)))
	}

	optionsRegion := body[:answerLoc[0]]
	markers := optionMarkerRe.FindAllStringSubmatchIndex(optionsRegion, -1)
	if len(markers) == 0 {
		return types.Question{}, fmt.Errorf("no lettered options")
	}

	text := strings.TrimSpace(optionsRegion[:markers[0][0]])
	if text == "" {
		return types.Question{}, fmt.Errorf("empty question text")
	}

	var choices []string
	for j, m := range markers {
		letter := optionsRegion[m[2]:m[3]]
		if letter != types.ChoiceLetter(j) {
			return types.Question{}, fmt.Errorf("option letters out of order at %q", letter)
		}
		optEnd := len(optionsRegion)
		if j+1 < len(markers) {
			optEnd = markers[j+1][0]
		}
		choices = append(choices, strings.TrimSpace(optionsRegion[m[1]:optEnd]))
	}

	for _, a := range answers {
		if !containsLetter(choices, a) {
			return types.Question{}, fmt.Errorf("answer %q labels no option", a)
		}
	}

	return types.Question{
		Index:   index,
		Text:    text,
		Choices: choices,
		Answers: answers,
		Topic:   DeriveTopic(text, choices),
	}, nil
}

// containsLetter reports whether the letter labels one of the choices.
func containsLetter(choices []string, letter string) bool {
	for i := range choices {
		if types.ChoiceLetter(i) == letter {
			return true
		}
	}
	return false
}

// truncate shortens s for warning messages.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared record and configuration types used by
// every stage of the quiz-engine pipeline.
package types

import "fmt"

// Question is one parsed quiz item. Records are populated once by the
// extraction stage and never mutated afterwards; Index is unique and
// contiguous within a parse run.
type Question struct {
	// Index is the 1-based ordinal of the question in its source document.
	Index int `json:"index" yaml:"index"`

	// Text is the question stem.
	Text string `json:"text" yaml:"text"`

	// Choices are the answer options in source order.
	Choices []string `json:"choices" yaml:"choices"`

	// Answers are the correct-answer letters ("A", "B", ...). Always a
	// subset of the letters covering Choices.
	Answers []string `json:"answers" yaml:"answers"`

	// Topic is the derived AWS service tag, empty when no keyword matched.
	Topic string `json:"topic,omitempty" yaml:"topic,omitempty"`

	// Explanation is the generated explanation text. Empty until the
	// explain stage fills it in.
	Explanation string `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// ChoiceLetter returns the letter labelling the i-th choice: 0 → "A", 1 → "B".
func ChoiceLetter(i int) string {
	return string(rune('A' + i))
}

// Letters returns the letters labelling all of q's choices, in order.
func (q Question) Letters() []string {
	letters := make([]string, len(q.Choices))
	for i := range q.Choices {
		letters[i] = ChoiceLetter(i)
	}
	return letters
}

// IsCorrect reports whether the given letter is one of q's correct answers.
func (q Question) IsCorrect(letter string) bool {
	for _, a := range q.Answers {
		if a == letter {
			return true
		}
	}
	return false
}

// MultiAnswer reports whether the question has more than one correct answer.
func (q Question) MultiAnswer() bool {
	return len(q.Answers) > 1
}

// Choice returns the choice text for a letter, or an error when the letter
// does not label any choice.
func (q Question) Choice(letter string) (string, error) {
	for i, c := range q.Choices {
		if ChoiceLetter(i) == letter {
			return c, nil
		}
	}
	return "", fmt.Errorf("question %d has no choice %q", q.Index, letter)
}

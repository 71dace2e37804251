package types

import (
	"reflect"
	"testing"
)

func TestChoiceLetter(t *testing.T) {
	tests := []struct {
		i    int
		want string
	}{
		{0, "A"},
		{1, "B"},
		{3, "D"},
		{7, "H"},
	}
	for _, tt := range tests {
		if got := ChoiceLetter(tt.i); got != tt.want {
			t.Errorf("ChoiceLetter(%d) = %q, want %q", tt.i, got, tt.want)
		}
	}
}

func TestQuestionHelpers(t *testing.T) {
	q := Question{
		Index:   4,
		Text:    "Which services deliver messages?",
		Choices: []string{"SQS", "SNS", "EBS"},
		Answers: []string{"A", "B"},
	}

	if got := q.Letters(); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Errorf("Letters() = %v", got)
	}

	if !q.IsCorrect("A") || !q.IsCorrect("B") {
		t.Error("IsCorrect misses a correct letter")
	}
	if q.IsCorrect("C") {
		t.Error("IsCorrect(C) = true for a wrong letter")
	}

	if !q.MultiAnswer() {
		t.Error("MultiAnswer() = false, want true")
	}

	choice, err := q.Choice("B")
	if err != nil {
		t.Fatal(err)
	}
	if choice != "SNS" {
		t.Errorf("Choice(B) = %q, want SNS", choice)
	}

	if _, err := q.Choice("Z"); err == nil {
		t.Error("expected error for unknown letter")
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package explain

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/pdiddy/quiz-engine/pkg/types"
)

// systemPrompt frames the model as an exam instructor. The answer key is
// given in the user prompt; the model only explains, it never grades.
const systemPrompt = `You are an expert AWS Certified Developer Associate instructor.
You have comprehensive knowledge of AWS services and best practices.
Your task is to explain why certain answers are correct and why others are
incorrect, based on AWS documentation and best practices.`

// deckContextLimit caps how much slide text is embedded per prompt, keeping
// the request under the model's context window.
const deckContextLimit = 6000

// explanationPromptTmpl renders the per-question prompt. Choices are listed
// with their letters and the correct letters are named so the model explains
// both sides.
var explanationPromptTmpl = template.Must(template.New("explanation").Funcs(template.FuncMap{
	"letter": types.ChoiceLetter,
	"join":   strings.Join,
}).Parse(`Based on your knowledge of AWS Certified Developer Associate concepts, please explain the following question:

QUESTION: {{.Text}}

ANSWER CHOICES:
{{range $i, $c := .Choices}}{{letter $i}}) {{$c}}
{{end}}
CORRECT ANSWERS: {{join .Answers ", "}}
{{if .Deck}}
REFERENCE MATERIAL (from the course slides):
{{.Deck}}
{{end}}
Please provide a detailed explanation that includes:
1. Why the correct answers are right, with specific AWS concepts and best practices
2. Why the incorrect answers are wrong, with the misconception behind each
3. Key AWS concepts and services mentioned in the question
4. Real-world scenarios where this knowledge would be applied

Make your explanation comprehensive but easy to understand for someone
studying for the AWS Developer Associate exam.`))

// renderPrompt fills the explanation template for one question.
func renderPrompt(q types.Question, deck string) (string, error) {
	if len(deck) > deckContextLimit {
		deck = deck[:deckContextLimit]
	}

	data := struct {
		Text    string
		Choices []string
		Answers []string
		Deck    string
	}{q.Text, q.Choices, q.Answers, deck}

	var buf bytes.Buffer
	if err := explanationPromptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

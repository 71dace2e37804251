// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package slides

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	pageFooterRe = regexp.MustCompile(`\b\d+\s*of\s*\d+\b`)
	artifactRe   = regexp.MustCompile(`[^\w\s.,;:!?\-()\[\]{}]`)
)

// CleanText normalizes extracted PDF text: page footers ("3 of 120") and
// non-text artifacts are dropped, then runs of whitespace collapse to a
// single space.
func CleanText(text string) string {
	text = pageFooterRe.ReplaceAllString(text, "")
	text = artifactRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

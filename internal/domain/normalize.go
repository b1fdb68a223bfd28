package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText prepares a word or phrase for a morphology request:
//   - composes Unicode to NFC, so "ā" typed as "a"+U+0304 matches the precomposed letter
//   - trims leading/trailing whitespace
//   - collapses inner whitespace runs (tabs, newlines, NBSP) into one space
//
// Letter case is preserved: the analyser distinguishes proper nouns.
func NormalizeText(text string) string {
	text = strings.TrimSpace(norm.NFC.String(text))
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if prevSpace {
				continue
			}
			prevSpace = true
			b.WriteByte(' ')
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

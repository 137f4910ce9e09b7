package helper

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Fold: trim + NFC + case folding. "Hội Thảo" dan "hội thảo" (komposisi apa pun) jadi sama.
func Fold(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return cases.Fold().String(norm.NFC.String(s))
}

// ContainsFolded: substring case-insensitive; needle kosong selalu cocok.
func ContainsFolded(haystack, needle string) bool {
	n := Fold(needle)
	if n == "" {
		return true
	}
	return strings.Contains(Fold(haystack), n)
}

package readable

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// sanitizer folds typographic quotes into their ASCII forms so "don’t" in a
// page matches "don't" in a lexicon.
var sanitizer = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
	"&rsquo;", "'")

// normalizer prepares keywords and target text for comparison.
type normalizer struct {
	ignoreCase bool
}

// normalize sanitizes s and, when case is ignored, case-folds it. A
// cases.Caser is stateful, so a new one is made per call.
func (n normalizer) normalize(s string) string {
	s = sanitizer.Replace(s)
	if n.ignoreCase {
		s = cases.Fold().String(s)
	}
	return s
}

// isWordRune reports whether r continues a word.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// atWordBoundary reports whether text[start:end] is not glued to a word
// character on either side.
func atWordBoundary(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

// countOccurrences counts non-overlapping occurrences of keyword in text,
// scanning left to right. With wholeWord, only occurrences at word
// boundaries count; a rejected position is skipped by one rune.
func countOccurrences(text, keyword string, wholeWord bool) int {
	if keyword == "" {
		return 0
	}
	if !wholeWord {
		return strings.Count(text, keyword)
	}

	count := 0
	offset := 0
	for offset <= len(text)-len(keyword) {
		i := strings.Index(text[offset:], keyword)
		if i < 0 {
			break
		}
		start := offset + i
		end := start + len(keyword)
		if atWordBoundary(text, start, end) {
			count++
			offset = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
	return count
}

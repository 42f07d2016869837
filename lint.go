package readable

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/bbalet/stopwords"
)

// LintReport lists lexicon entries that are likely to distort scores. The
// lexicon itself is never changed.
type LintReport struct {
	Lexicon    string
	Keywords   int
	Blank      []int            // Line numbers (1-based) of blank keywords
	Duplicates map[string][]int // Keyword -> line numbers, for keywords seen more than once
	StopWords  []string         // Keywords that are stop words in the report language
	Padded     []int            // Line numbers of keywords with leading or trailing spaces
}

// Clean reports whether the lint found nothing.
func (r LintReport) Clean() bool {
	return len(r.Blank) == 0 && len(r.Duplicates) == 0 && len(r.StopWords) == 0 && len(r.Padded) == 0
}

// String summarizes the report.
func (r LintReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d keywords", r.Lexicon, r.Keywords)
	if r.Clean() {
		b.WriteString(", no issues")
		return b.String()
	}
	if len(r.Blank) > 0 {
		fmt.Fprintf(&b, "\n  blank lines: %v", r.Blank)
	}
	if len(r.Padded) > 0 {
		fmt.Fprintf(&b, "\n  surrounding whitespace: %v", r.Padded)
	}
	for _, kw := range sortedKeys(r.Duplicates) {
		fmt.Fprintf(&b, "\n  duplicate %q on lines %v", kw, r.Duplicates[kw])
	}
	if len(r.StopWords) > 0 {
		fmt.Fprintf(&b, "\n  stop words: %s", strings.Join(r.StopWords, ", "))
	}
	return b.String()
}

// Lint inspects lex for blank lines, duplicates, padded entries and stop
// words of lang. Stop words match almost any text and inflate counts.
func Lint(lex Lexicon, lang Language) LintReport {
	report := LintReport{
		Lexicon:    lex.Name,
		Keywords:   lex.Len(),
		Duplicates: make(map[string][]int),
	}

	seen := make(map[string][]int)
	stop := make(map[string]bool)
	for i, kw := range lex.Keywords {
		line := i + 1
		trimmed := strings.TrimSpace(kw)
		if trimmed == "" {
			report.Blank = append(report.Blank, line)
			continue
		}
		if trimmed != kw {
			report.Padded = append(report.Padded, line)
		}

		key := strings.ToLower(trimmed)
		seen[key] = append(seen[key], line)

		if !stop[key] && isStopWord(key, lang) {
			stop[key] = true
			report.StopWords = append(report.StopWords, trimmed)
		}
	}

	for kw, lines := range seen {
		if len(lines) > 1 {
			report.Duplicates[kw] = lines
		}
	}

	return report
}

// isStopWord reports whether the stopwords library removes word entirely.
// The library has no lookup function, so single words are run through its
// cleaner.
func isStopWord(word string, lang Language) bool {
	if strings.ContainsAny(word, " \t") {
		return false
	}
	if !strings.ContainsFunc(word, unicode.IsLetter) {
		return false
	}
	cleaned := stopwords.CleanString(word, string(lang), false)
	return strings.TrimSpace(cleaned) == ""
}

func sortedKeys(m map[string][]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return m[keys[i]][0] < m[keys[j]][0]
	})
	return keys
}

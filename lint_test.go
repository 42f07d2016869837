package readable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLint(t *testing.T) {
	lex := Lexicon{
		Name: "positive.txt",
		Keywords: []string{
			"excellent",
			"",
			"the",
			"insightful",
			"Excellent",
			" padded",
			"and",
			"42",
		},
	}

	report := Lint(lex, English)

	assert.Equal(t, "positive.txt", report.Lexicon)
	assert.Equal(t, 8, report.Keywords)
	assert.Equal(t, []int{2}, report.Blank)
	assert.Equal(t, []int{6}, report.Padded)
	assert.Equal(t, map[string][]int{"excellent": {1, 5}}, report.Duplicates)
	assert.ElementsMatch(t, []string{"the", "and"}, report.StopWords)
	assert.False(t, report.Clean())

	summary := report.String()
	assert.Contains(t, summary, "blank lines: [2]")
	assert.Contains(t, summary, `duplicate "excellent" on lines [1 5]`)
	assert.Contains(t, summary, "stop words:")
}

func TestLintClean(t *testing.T) {
	report := Lint(Lexicon{Name: "negative.txt", Keywords: []string{"tedious", "clickbait", "very dull"}}, English)
	assert.True(t, report.Clean())
	assert.Equal(t, "negative.txt: 3 keywords, no issues", report.String())
}

func TestLintStopWordsPerLanguage(t *testing.T) {
	tests := []struct {
		name     string
		language Language
		stop     string
	}{
		{"English stop word", English, "the"},
		{"Spanish stop word", Spanish, "el"},
		{"French stop word", French, "le"},
		{"German stop word", German, "der"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Lint(Lexicon{Keywords: []string{tt.stop}}, tt.language)
			assert.Equal(t, []string{tt.stop}, report.StopWords)
		})
	}
}

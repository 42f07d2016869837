package readable

import (
	"context"
	"fmt"
	"io"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// CounterConfig configures keyword counting.
type CounterConfig struct {
	IgnoreCase bool // Case-fold keywords and text before counting
	WholeWord  bool // Only count occurrences not glued to letters or digits
}

// DefaultCounterConfig returns case-insensitive substring counting.
func DefaultCounterConfig() CounterConfig {
	return CounterConfig{
		IgnoreCase: true,
		WholeWord:  false,
	}
}

// Counter counts lexicon keywords in a target text.
type Counter struct {
	config CounterConfig
	norm   normalizer
}

// NewCounter creates a Counter.
func NewCounter(config CounterConfig) *Counter {
	return &Counter{
		config: config,
		norm:   normalizer{ignoreCase: config.IgnoreCase},
	}
}

// Config returns the counter's configuration.
func (c *Counter) Config() CounterConfig {
	return c.config
}

// CountReader reads the whole target text from r and counts lex in it.
func (c *Counter) CountReader(ctx context.Context, lex Lexicon, r io.Reader) (FrequencyResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &CountError{Lexicon: lex.Name, Err: fmt.Errorf("read target: %w", err)}
	}
	return c.Count(ctx, lex, string(data))
}

// Count returns one KeywordCount per keyword of lex, in lexicon order,
// including keywords that do not occur.
//
// An Aho-Corasick pass over the text first finds which keywords occur at
// all; only those are counted occurrence by occurrence.
func (c *Counter) Count(ctx context.Context, lex Lexicon, text string) (FrequencyResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, &CountError{Lexicon: lex.Name, Err: err}
	}

	result := make(FrequencyResult, len(lex.Keywords))
	if len(lex.Keywords) == 0 {
		return result, nil
	}

	target := c.norm.normalize(text)

	normalized := make([]string, len(lex.Keywords))
	dictionary := make([]string, 0, len(lex.Keywords))
	for i, kw := range lex.Keywords {
		normalized[i] = c.norm.normalize(kw)
		if normalized[i] != "" {
			dictionary = append(dictionary, normalized[i])
		}
	}

	present := make(map[string]bool)
	if len(dictionary) > 0 {
		matcher := ahocorasick.NewStringMatcher(dictionary)
		for _, hit := range matcher.MatchThreadSafe([]byte(target)) {
			if hit < len(dictionary) {
				present[dictionary[hit]] = true
			}
		}
	}

	counted := make(map[string]int, len(present))
	for i, kw := range lex.Keywords {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, &CountError{Lexicon: lex.Name, Err: err}
			}
		}

		result[i].Keyword = kw

		norm := normalized[i]
		if !present[norm] {
			continue
		}
		n, ok := counted[norm]
		if !ok {
			n = countOccurrences(target, norm, c.config.WholeWord)
			counted[norm] = n
		}
		result[i].Count = float64(n)
	}

	return result, nil
}

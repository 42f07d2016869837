package readable

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// InputArtifact is the name the target text is saved under.
const InputArtifact = "input.txt"

// ResultArtifactName returns the diagnostic artifact name for a lexicon
// source ("positive.txt" -> "positiveResult.json").
func ResultArtifactName(source string) string {
	return baseName(source) + "Result.json"
}

// EncodeFrequencyResult renders r as {"input": {keyword: count}}.
func EncodeFrequencyResult(r FrequencyResult) ([]byte, error) {
	return json.Marshal(struct {
		Input map[string]float64 `json:"input"`
	}{Input: r.Map()})
}

// DecodeFrequencyResult parses a diagnostic artifact. Values that are not
// numbers (null, strings that do not parse, objects, ...) become zero here,
// so aggregation only ever sees numeric counts. Entries are sorted by
// keyword since the artifact carries no lexicon order.
func DecodeFrequencyResult(data []byte) (FrequencyResult, error) {
	var artifact struct {
		Input map[string]any `json:"input"`
	}
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("decode frequency result: %w", err)
	}
	return NormalizeCounts(artifact.Input), nil
}

// NormalizeCounts converts an untyped keyword mapping into a FrequencyResult,
// treating every non-numeric or negative value as zero.
func NormalizeCounts(raw map[string]any) FrequencyResult {
	keywords := make([]string, 0, len(raw))
	for kw := range raw {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)

	result := make(FrequencyResult, 0, len(raw))
	for _, kw := range keywords {
		result = append(result, KeywordCount{Keyword: kw, Count: coerceCount(raw[kw])})
	}
	return result
}

func coerceCount(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	return sanitizeCount(f)
}

// saveResults writes the target text and both frequency results to cache.
func saveResults(ctx context.Context, cache ArtifactCache, text string, counts map[string]FrequencyResult) error {
	if err := cache.Put(ctx, InputArtifact, []byte(text)); err != nil {
		return fmt.Errorf("write %s: %w", InputArtifact, err)
	}

	sources := make([]string, 0, len(counts))
	for source := range counts {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	for _, source := range sources {
		data, err := EncodeFrequencyResult(counts[source])
		if err != nil {
			return err
		}
		name := ResultArtifactName(source)
		if err := cache.Put(ctx, name, data); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}

package readable

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDampen(t *testing.T) {
	tests := []struct {
		raw      float64
		expected Score
		desc     string
	}{
		{10, 4, "floor(10 / 2.4)"},
		{3, 1, "floor(3 / 2.4)"},
		{9.6, 4, "exact multiple"},
		{2, 0, "below the factor"},
		{0, 0, "zero"},
		{-5, 0, "negative input"},
		{math.NaN(), 0, "NaN input"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Equal(t, tt.expected, Dampen(tt.raw))
		})
	}
}

func TestScoresAndDecision(t *testing.T) {
	tests := []struct {
		desc             string
		positiveSum      float64
		negativeSum      float64
		expectedNegative Score
		expected         Decision
	}{
		{"Positive wins", 5, 3, 1, Readable},
		{"Tie is not readable", 4, 9.6, 4, NotReadable},
		{"Negative wins", 1, 12, 5, NotReadable},
		{"Nothing matched", 0, 0, 0, NotReadable},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			pos := PositiveScore(FrequencyResult{{Keyword: "good", Count: tt.positiveSum}})
			neg := NegativeScore(FrequencyResult{{Keyword: "bad", Count: tt.negativeSum}})

			assert.Equal(t, Score(tt.positiveSum), pos)
			assert.Equal(t, tt.expectedNegative, neg)
			assert.Equal(t, tt.expected, Decide(pos, neg))
		})
	}
}

func TestSum(t *testing.T) {
	assert.Equal(t, 0.0, Sum(nil))
	assert.Equal(t, 0.0, Sum(FrequencyResult{}))

	r := FrequencyResult{
		{Keyword: "a", Count: 1},
		{Keyword: "b", Count: 2},
		{Keyword: "c", Count: 3},
		{Keyword: "d", Count: -4},
		{Keyword: "e", Count: math.Inf(1)},
	}
	assert.Equal(t, 6.0, Sum(r))

	reversed := make(FrequencyResult, len(r))
	for i := range r {
		reversed[len(r)-1-i] = r[i]
	}
	assert.Equal(t, Sum(r), Sum(reversed))
}

func TestNormalizeCounts(t *testing.T) {
	raw := map[string]any{
		"good":    float64(3),
		"great":   nil,
		"nice":    "7",
		"fine":    map[string]any{"n": 1},
		"awesome": 2,
		"meh":     -1.0,
	}

	result := NormalizeCounts(raw)
	require.Len(t, result, len(raw))
	assert.Equal(t, map[string]float64{
		"good": 3, "great": 0, "nice": 0, "fine": 0, "awesome": 2, "meh": 0,
	}, result.Map())
	assert.Equal(t, 5.0, Sum(result))
}

func TestDecodeFrequencyResult(t *testing.T) {
	result, err := DecodeFrequencyResult([]byte(`{"input":{"bad":2,"awful":"n/a","worse":null,"poor":8}}`))
	require.NoError(t, err)
	assert.Equal(t, FrequencyResult{
		{Keyword: "awful", Count: 0},
		{Keyword: "bad", Count: 2},
		{Keyword: "poor", Count: 8},
		{Keyword: "worse", Count: 0},
	}, result)
	assert.Equal(t, Score(4), NegativeScore(result))

	_, err = DecodeFrequencyResult([]byte("not json"))
	assert.Error(t, err)
}

func TestEncodeFrequencyResult(t *testing.T) {
	data, err := EncodeFrequencyResult(FrequencyResult{{Keyword: "good", Count: 2}, {Keyword: "nice", Count: 0}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"input":{"good":2,"nice":0}}`, string(data))
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "readable", Readable.String())
	assert.Equal(t, "not readable", NotReadable.String())
}

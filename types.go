package readable

// A Lexicon is an ordered list of keywords loaded from a source file.
//
// Blank lines and duplicates from the source are kept as they are.
type Lexicon struct {
	Name     string   // Source name, e.g. "positive.txt"
	Keywords []string // One entry per source line
}

// Len returns the number of keywords in the lexicon.
func (l Lexicon) Len() int {
	return len(l.Keywords)
}

// A KeywordCount is the number of times a keyword occurs in a target text.
type KeywordCount struct {
	Keyword string
	Count   float64
}

// A FrequencyResult holds one KeywordCount per lexicon entry, in lexicon order.
type FrequencyResult []KeywordCount

// Map returns the keyword to count view of the result. Duplicate keywords
// collapse into a single key.
func (r FrequencyResult) Map() map[string]float64 {
	m := make(map[string]float64, len(r))
	for _, kc := range r {
		m[kc.Keyword] = kc.Count
	}
	return m
}

// Values returns the counts in lexicon order.
func (r FrequencyResult) Values() []float64 {
	values := make([]float64, len(r))
	for i, kc := range r {
		values[i] = kc.Count
	}
	return values
}

// A Score is an aggregated, non-negative keyword count.
type Score float64

// Decision represents the outcome of a classification.
type Decision int

const (
	NotReadable Decision = iota // Positive score did not exceed the negative score
	Readable                    // Positive score exceeded the negative score
)

// String returns a human-readable form of the decision.
func (d Decision) String() string {
	switch d {
	case Readable:
		return "readable"
	default:
		return "not readable"
	}
}

// Verdict is the output of a classification run.
type Verdict struct {
	Decision Decision
	Positive Score // Sum of positive keyword counts
	Negative Score // Dampened sum of negative keyword counts

	PositiveCounts FrequencyResult
	NegativeCounts FrequencyResult
}

// Language represents a lexicon language, used for stop-word lookups.
type Language string

const (
	English  Language = "en"
	Spanish  Language = "es"
	French   Language = "fr"
	German   Language = "de"
	Japanese Language = "ja"
)

// Package sentiment provides the data model shared by the analyzer client,
// the terminal views and the stand-in analyzer service.
package sentiment

import (
	"errors"
	"strconv"
)

// Category is the closed set of sentiment labels the analyzer returns.
// Labels outside the set map to CategoryUnknown.
type Category int

const (
	CategoryUnknown  Category = iota // Anything the analyzer sends that is not listed below
	CategoryPositive                 // "Positive"
	CategoryNegative                 // "Negative"
	CategoryNeutral                  // "Neutral"
)

var categoryLabels = map[Category]string{
	CategoryPositive: "Positive",
	CategoryNegative: "Negative",
	CategoryNeutral:  "Neutral",
}

// ParseCategory maps a wire label to its Category. Matching is exact.
func ParseCategory(label string) Category {
	for c, l := range categoryLabels {
		if l == label {
			return c
		}
	}
	return CategoryUnknown
}

// String returns the wire label, or "Unknown".
func (c Category) String() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return "Unknown"
}

// CategoryFor classifies a polarity score by its sign.
func CategoryFor(polarity float64) Category {
	switch {
	case polarity > 0:
		return CategoryPositive
	case polarity < 0:
		return CategoryNegative
	default:
		return CategoryNeutral
	}
}

// Score is a category with its polarity and subjectivity.
// Polarity is conventionally in [-1, 1] and subjectivity in [0, 1].
type Score struct {
	Category     string  `json:"category"`
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
}

// Kind returns the parsed category of the score.
func (s Score) Kind() Category {
	return ParseCategory(s.Category)
}

// SentenceScore is the analysis of a single sentence.
type SentenceScore struct {
	Sentence     string  `json:"sentence"`
	Category     string  `json:"category"`
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
}

// Score returns the sentence's scores without the sentence text.
func (s SentenceScore) Score() Score {
	return Score{Category: s.Category, Polarity: s.Polarity, Subjectivity: s.Subjectivity}
}

// Result is an analysis as returned by the analyzer endpoint.
type Result struct {
	Overall   Score           `json:"overall_analysis"`
	Sentences []SentenceScore `json:"sentence_analysis"`
}

// Request is the body sent to the analyzer endpoint.
type Request struct {
	Text string `json:"text"`
}

// ErrorBody is the body the analyzer sends with non-2xx responses.
type ErrorBody struct {
	Error string `json:"error"`
}

// ErrIncomplete is returned when a response body is missing one of the
// top-level sections.
var ErrIncomplete = errors.New("incomplete analysis")

// Wire is the decoding target for analyzer responses. Pointers distinguish a
// missing section from a zero-valued one.
type Wire struct {
	Overall   *Score          `json:"overall_analysis"`
	Sentences []SentenceScore `json:"sentence_analysis"`
}

// Result converts the wire body to a Result, rejecting partial bodies.
func (w Wire) Result() (*Result, error) {
	if w.Overall == nil {
		return nil, errors.Join(ErrIncomplete, errors.New("missing overall_analysis"))
	}
	if w.Sentences == nil {
		return nil, errors.Join(ErrIncomplete, errors.New("missing sentence_analysis"))
	}
	return &Result{Overall: *w.Overall, Sentences: w.Sentences}, nil
}

// FormatNumber renders a score in its shortest decimal form.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SentenceLabel is the 1-based axis label for the sentence at index i.
func SentenceLabel(i int) string {
	return "Sentence " + strconv.Itoa(i+1)
}

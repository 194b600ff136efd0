// Package backend is a local stand-in for the remote sentiment analyzer.
// It serves the same request and response contract the client consumes.
package backend

import (
	"errors"
	"math"
	"strings"

	"github.com/f3rmion/senti/internal/sentiment"
	"github.com/jonreiter/govader"
)

// ErrNoSentences is returned when text contains nothing to score.
var ErrNoSentences = errors.New("no valid sentences found in text")

// Scorer scores a single sentence.
type Scorer interface {
	Score(sentence string) (polarity, subjectivity float64)
}

// VaderScorer scores sentences with VADER. Polarity is the compound score.
// Subjectivity is the share of the sentence that carries affect.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer creates a VADER-backed scorer.
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score implements Scorer.
func (v *VaderScorer) Score(sentence string) (float64, float64) {
	s := v.analyzer.PolarityScores(sentence)
	return clamp(s.Compound, -1, 1), clamp(1-s.Neutral, 0, 1)
}

// Analyzer splits text into sentences and scores each one.
type Analyzer struct {
	scorer Scorer
}

// NewAnalyzer creates an Analyzer using scorer.
func NewAnalyzer(scorer Scorer) *Analyzer {
	return &Analyzer{scorer: scorer}
}

// Analyze scores every sentence in text and averages them into the overall
// score. Scores are rounded to two decimals before averaging.
func (a *Analyzer) Analyze(text string) (*sentiment.Result, error) {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return nil, ErrNoSentences
	}

	res := &sentiment.Result{
		Sentences: make([]sentiment.SentenceScore, 0, len(sentences)),
	}

	var polSum, subSum float64
	for _, s := range sentences {
		pol, sub := a.scorer.Score(s)
		pol, sub = round2(pol), round2(sub)
		polSum += pol
		subSum += sub

		res.Sentences = append(res.Sentences, sentiment.SentenceScore{
			Sentence:     s,
			Category:     sentiment.CategoryFor(pol).String(),
			Polarity:     pol,
			Subjectivity: sub,
		})
	}

	n := float64(len(sentences))
	overall := polSum / n
	res.Overall = sentiment.Score{
		Category:     sentiment.CategoryFor(overall).String(),
		Polarity:     round2(overall),
		Subjectivity: round2(subSum / n),
	}

	return res, nil
}

// SplitSentences breaks text after each '.', '!' or '?', trimming whitespace.
// Trailing text without a terminator forms the last sentence. Runs of
// terminators ("Wait..."), empty after trimming, never start a sentence.
func SplitSentences(text string) []string {
	var (
		sentences []string
		current   strings.Builder
	)

	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			s := strings.TrimSpace(current.String())
			if s != "" && !isTerminators(s) {
				sentences = append(sentences, s)
				current.Reset()
			} else if s != "" && len(sentences) > 0 {
				// Extra terminators belong to the previous sentence.
				sentences[len(sentences)-1] += s
				current.Reset()
			}
		}
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

func isTerminators(s string) bool {
	return strings.Trim(s, ".!?") == ""
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

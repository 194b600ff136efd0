package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/f3rmion/senti/internal/sentiment"
	"github.com/stretchr/testify/assert"
)

func TestBadgeStyle(t *testing.T) {
	tests := []struct {
		label  string
		wantFg lipgloss.Color
		wantBg lipgloss.Color
	}{
		{"Positive", PositiveFg, PositiveBg},
		{"Negative", NegativeFg, NegativeBg},
		{"Neutral", NeutralFg, NeutralBg},
		{"Mixed", NeutralFg, NeutralBg},
		{"", NeutralFg, NeutralBg},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			s := BadgeStyle(sentiment.ParseCategory(tt.label))
			assert.Equal(t, tt.wantFg, s.GetForeground())
			assert.Equal(t, tt.wantBg, s.GetBackground())
		})
	}
}

func TestBadgeKeepsLabel(t *testing.T) {
	assert.Contains(t, ansi.Strip(Badge("Positive")), "Positive")
	assert.Contains(t, ansi.Strip(Badge("Mixed")), "Mixed")
}

func TestScoreLine(t *testing.T) {
	line := ansi.Strip(ScoreLine(sentiment.Score{Category: "Negative", Polarity: -0.5, Subjectivity: 0.25}))
	assert.Contains(t, line, "Negative")
	assert.Contains(t, line, "Polarity: -0.5")
	assert.Contains(t, line, "Subjectivity: 0.25")
}

func TestSentenceCard(t *testing.T) {
	card := ansi.Strip(SentenceCard(0, sentiment.SentenceScore{
		Sentence:     "I love this!",
		Category:     "Positive",
		Polarity:     0.8,
		Subjectivity: 0.6,
	}, 40))

	assert.Contains(t, card, "Sentence 1")
	assert.Contains(t, card, "I love this!")
	assert.Contains(t, card, "Polarity: 0.8")
	for _, line := range strings.Split(card, "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(line), 40)
	}
}

func TestWordWrap(t *testing.T) {
	assert.Equal(t, "the quick\nbrown fox", WordWrap("the quick brown fox", 10))
	assert.Equal(t, "", WordWrap("", 10))
	assert.Equal(t, "supercalifragilistic\nword", WordWrap("supercalifragilistic word", 8))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "one two", Truncate("one\ntwo", 20))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
}

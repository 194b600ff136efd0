package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single sentence",
			text: "I love this!",
			want: []string{"I love this!"},
		},
		{
			name: "mixed terminators",
			text: "Great food. Terrible service! Would I return?",
			want: []string{"Great food.", "Terrible service!", "Would I return?"},
		},
		{
			name: "trailing text without terminator",
			text: "First one. and then some",
			want: []string{"First one.", "and then some"},
		},
		{
			name: "ellipsis stays with its sentence",
			text: "Wait... what?!",
			want: []string{"Wait...", "what?!"},
		},
		{
			name: "whitespace and newlines",
			text: "  Line one.\n\nLine two.  ",
			want: []string{"Line one.", "Line two."},
		},
		{
			name: "no terminator at all",
			text: "just words",
			want: []string{"just words"},
		},
		{
			name: "blank",
			text: "   ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSentences(tt.text))
		})
	}
}

type fixedScorer map[string][2]float64

func (f fixedScorer) Score(s string) (float64, float64) {
	v := f[s]
	return v[0], v[1]
}

func TestAnalyzer_AveragesRoundedScores(t *testing.T) {
	a := NewAnalyzer(fixedScorer{
		"Good.":  {0.666, 0.444},
		"Bad.":   {-0.333, 0.561},
		"Table.": {0, 0},
	})

	res, err := a.Analyze("Good. Bad. Table.")
	require.NoError(t, err)
	require.Len(t, res.Sentences, 3)

	assert.Equal(t, "Good.", res.Sentences[0].Sentence)
	assert.Equal(t, "Positive", res.Sentences[0].Category)
	assert.InDelta(t, 0.67, res.Sentences[0].Polarity, 1e-9)
	assert.InDelta(t, 0.44, res.Sentences[0].Subjectivity, 1e-9)

	assert.Equal(t, "Negative", res.Sentences[1].Category)
	assert.InDelta(t, -0.33, res.Sentences[1].Polarity, 1e-9)

	assert.Equal(t, "Neutral", res.Sentences[2].Category)

	// (0.67 - 0.33 + 0) / 3 = 0.1133 -> 0.11
	assert.InDelta(t, 0.11, res.Overall.Polarity, 1e-9)
	assert.Equal(t, "Positive", res.Overall.Category)
	// (0.44 + 0.56 + 0) / 3 = 0.3333 -> 0.33
	assert.InDelta(t, 0.33, res.Overall.Subjectivity, 1e-9)
}

func TestAnalyzer_NoSentences(t *testing.T) {
	_, err := NewAnalyzer(fixedScorer{}).Analyze("  ")
	assert.ErrorIs(t, err, ErrNoSentences)
}

func TestVaderScorer_ContractRanges(t *testing.T) {
	a := NewAnalyzer(NewVaderScorer())

	res, err := a.Analyze("I love this! I hate waiting in line. The table is brown.")
	require.NoError(t, err)
	require.Len(t, res.Sentences, 3)

	assert.Equal(t, "Positive", res.Sentences[0].Category)
	assert.Equal(t, "Negative", res.Sentences[1].Category)
	assert.Equal(t, "Neutral", res.Sentences[2].Category)

	for _, s := range res.Sentences {
		assert.GreaterOrEqual(t, s.Polarity, -1.0)
		assert.LessOrEqual(t, s.Polarity, 1.0)
		assert.GreaterOrEqual(t, s.Subjectivity, 0.0)
		assert.LessOrEqual(t, s.Subjectivity, 1.0)
	}
	assert.Zero(t, res.Sentences[2].Subjectivity, "no affect words means no subjectivity")
}

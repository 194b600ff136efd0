package chart

import (
	"strconv"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoSeries(pol, sub []float64) []Series {
	return []Series{
		{Name: "Polarity", Values: pol, Marker: '●', Style: lipgloss.NewStyle()},
		{Name: "Subjectivity", Values: sub, Marker: '◆', Style: lipgloss.NewStyle()},
	}
}

func lines(s string) []string {
	return strings.Split(ansi.Strip(s), "\n")
}

func TestRender_Empty(t *testing.T) {
	assert.Empty(t, Chart{Width: 40, Height: 5}.Render())
}

func TestRender_SinglePoint(t *testing.T) {
	out := Chart{
		Labels: []string{"Sentence 1"},
		Series: twoSeries([]float64{0.8}, []float64{0.6}),
		Width:  40,
		Height: 5,
	}.Render()

	ls := lines(out)
	require.Len(t, ls, 5+3, "plot rows + axis + labels + legend")

	assert.Contains(t, ls[6], "Sentence 1")
	assert.Contains(t, ls[7], "Polarity")
	assert.Contains(t, ls[7], "Subjectivity")
	assert.Contains(t, out, "●")
	assert.Contains(t, out, "◆")

	for _, l := range ls {
		assert.LessOrEqual(t, ansi.StringWidth(l), 40)
	}
}

func TestRender_MarkerRows(t *testing.T) {
	out := Chart{
		Labels: []string{"Sentence 1", "Sentence 2"},
		Series: twoSeries([]float64{1, -1}, []float64{0.5, 0.5}),
		Width:  40,
		Height: 5,
	}.Render()

	ls := lines(out)

	// Range is [-1, 1] over five rows: 1, 0.5, 0, -0.5, -1.
	assert.True(t, strings.HasPrefix(ls[0], " 1 │●"), "got %q", ls[0])
	assert.True(t, strings.HasSuffix(ls[4], "●"), "got %q", ls[4])
	assert.True(t, strings.HasPrefix(ls[4], "-1 │"), "got %q", ls[4])
	assert.Contains(t, ls[1], "◆")
	assert.Contains(t, ls[2], "┄", "zero line is drawn when the range spans zero")
	assert.Contains(t, ls[0], "·", "points are joined")

	assert.Contains(t, ls[6], "Sentence 1")
	assert.Contains(t, ls[6], "Sentence 2")
}

func TestRender_CrowdedLabelsKeepLast(t *testing.T) {
	n := 12
	labels := make([]string, n)
	pol := make([]float64, n)
	sub := make([]float64, n)
	for i := range labels {
		labels[i] = "Sentence " + string(rune('A'+i))
	}

	out := Chart{Labels: labels, Series: twoSeries(pol, sub), Width: 40, Height: 3}.Render()
	ls := lines(out)
	labelLine := ls[len(ls)-2]

	assert.Contains(t, labelLine, "Sentence L", "last label is always placed")
	assert.Contains(t, labelLine, "Sentence A")
	assert.NotContains(t, labelLine, "Sentence B", "colliding labels are skipped")
}

func TestRender_MoreLabelsThanColumns(t *testing.T) {
	n := 120
	labels := make([]string, n)
	pol := make([]float64, n)
	sub := make([]float64, n)
	for i := range labels {
		labels[i] = "Sentence " + strconv.Itoa(i+1)
		pol[i] = float64(i%3-1) / 2
		sub[i] = float64(i%2) / 2
	}

	const width, height = 40, 9
	out := Chart{Labels: labels, Series: twoSeries(pol, sub), Width: width, Height: height}.Render()
	ls := lines(out)

	require.Len(t, ls, height+3, "points share columns instead of widening rows")
	for i, l := range ls {
		assert.LessOrEqual(t, ansi.StringWidth(l), width, "line %d: %q", i, l)
	}
	for _, l := range ls[:height] {
		assert.Contains(t, l, " │", "every plot row keeps its y axis")
	}
	assert.Equal(t, 1, strings.Count(out, "└"))
	assert.Contains(t, ls[height+1], "Sentence 120")
}

func TestRender_NarrowLegendSplits(t *testing.T) {
	out := Chart{
		Labels: []string{"S1", "S2"},
		Series: twoSeries([]float64{-0.5, 0.5}, []float64{0, 1}),
		Width:  20,
		Height: 3,
	}.Render()
	ls := lines(out)

	require.Len(t, ls, 3+4, "one legend line per series")
	assert.Contains(t, ls[5], "Polarity")
	assert.Contains(t, ls[6], "Subjectivity")
	for _, l := range ls {
		assert.LessOrEqual(t, ansi.StringWidth(l), 20, "got %q", l)
	}
}

func TestBounds(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		lo, hi float64
	}{
		{"all zero", []float64{0, 0}, 0, 1},
		{"positive only", []float64{0.3, 0.8}, 0, 1},
		{"mixed", []float64{-0.2, 0.4}, -0.5, 0.5},
		{"full range", []float64{-1, 1}, -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := Chart{Series: []Series{{Values: tt.values}}}.bounds()
			assert.Equal(t, tt.lo, lo)
			assert.Equal(t, tt.hi, hi)
		})
	}
}

func TestPositions(t *testing.T) {
	assert.Equal(t, []int{4}, positions(1, 10))
	assert.Equal(t, []int{0, 9}, positions(2, 10))
	assert.Equal(t, []int{0, 5, 10}, positions(3, 11))
	assert.Equal(t, []int{0, 1, 1, 2}, positions(4, 3), "points share columns when crowded")
}

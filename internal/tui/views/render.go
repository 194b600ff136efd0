package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/senti/internal/sentiment"
	"github.com/f3rmion/senti/internal/tui/chart"
	"github.com/f3rmion/senti/internal/tui/components"
)

var (
	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3d5a80")).
			Padding(0, 1)

	sectionTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#4ecdc4"))

	polaritySeriesStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#3b82f6"))
	subjectivitySeriesStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10b981"))
)

const chartHeight = 9

// RenderResult renders the overall and per-sentence sections for res within
// width cells. A nil result renders nothing.
func RenderResult(res *sentiment.Result, width int) string {
	if res == nil {
		return ""
	}
	if width < 30 {
		width = 30
	}
	inner := width - 4 // border + padding

	var overall strings.Builder
	overall.WriteString(sectionTitleStyle.Render("Overall Analysis"))
	overall.WriteString("\n\n")
	overall.WriteString(components.ScoreLine(res.Overall))
	if len(res.Sentences) > 0 {
		overall.WriteString("\n\n")
		overall.WriteString(SentenceChart(res, inner).Render())
	}

	var sentences strings.Builder
	sentences.WriteString(sectionTitleStyle.Render("Sentence Analysis"))
	for i, s := range res.Sentences {
		sentences.WriteString("\n")
		sentences.WriteString(components.SentenceCard(i, s, inner))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		sectionStyle.Width(inner+2).Render(overall.String()),
		sectionStyle.Width(inner+2).Render(sentences.String()),
	)
}

// SentenceChart builds the polarity/subjectivity chart with one point per
// sentence, in order.
func SentenceChart(res *sentiment.Result, width int) chart.Chart {
	n := len(res.Sentences)
	labels := make([]string, n)
	polarity := make([]float64, n)
	subjectivity := make([]float64, n)
	for i, s := range res.Sentences {
		labels[i] = sentiment.SentenceLabel(i)
		polarity[i] = s.Polarity
		subjectivity[i] = s.Subjectivity
	}

	return chart.Chart{
		Labels: labels,
		Series: []chart.Series{
			{Name: "Polarity", Values: polarity, Marker: '●', Style: polaritySeriesStyle},
			{Name: "Subjectivity", Values: subjectivity, Marker: '◆', Style: subjectivitySeriesStyle},
		},
		Width:  width,
		Height: chartHeight,
	}
}

// PlainReport renders res as unstyled text for the clipboard.
func PlainReport(res *sentiment.Result) string {
	if res == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Overall: %s (polarity %s, subjectivity %s)\n",
		res.Overall.Category,
		sentiment.FormatNumber(res.Overall.Polarity),
		sentiment.FormatNumber(res.Overall.Subjectivity),
	)
	for i, s := range res.Sentences {
		fmt.Fprintf(&b, "%s: %s [%s] polarity %s, subjectivity %s\n",
			sentiment.SentenceLabel(i),
			s.Sentence,
			s.Category,
			sentiment.FormatNumber(s.Polarity),
			sentiment.FormatNumber(s.Subjectivity),
		)
	}
	return b.String()
}

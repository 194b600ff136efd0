package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/senti/internal/sentiment"
	"github.com/mattn/go-runewidth"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3d5a80")).
			Padding(0, 1)

	cardTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)

	cardTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f1faee"))
)

// SentenceCard renders one sentence with its badge and scores inside a box
// at most width cells wide.
func SentenceCard(index int, s sentiment.SentenceScore, width int) string {
	inner := width - 4 // border + padding
	if inner < 10 {
		inner = 10
	}

	var b strings.Builder
	b.WriteString(cardTitleStyle.Render(sentiment.SentenceLabel(index)))
	b.WriteString("\n")
	b.WriteString(cardTextStyle.Render(WordWrap(s.Sentence, inner)))
	b.WriteString("\n")
	b.WriteString(ScoreLine(s.Score()))

	return cardStyle.Width(inner + 2).Render(b.String())
}

// WordWrap wraps s at word boundaries so no line exceeds width cells.
// Words longer than width are placed on their own line.
func WordWrap(s string, width int) string {
	if width <= 0 {
		width = 60
	}
	var lines []string
	var currentLine strings.Builder
	currentWidth := 0

	words := strings.Fields(s)
	for _, word := range words {
		wordWidth := runewidth.StringWidth(word)
		if currentWidth+wordWidth+1 > width && currentWidth > 0 {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentWidth = 0
		}
		if currentWidth > 0 {
			currentLine.WriteString(" ")
			currentWidth++
		}
		currentLine.WriteString(word)
		currentWidth += wordWidth
	}
	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}
	return strings.Join(lines, "\n")
}

// Truncate shortens s to width cells, collapsing newlines first.
func Truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	return runewidth.Truncate(s, width, "…")
}

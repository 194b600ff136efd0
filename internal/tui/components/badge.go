// Package components provides shared UI components for the TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/senti/internal/sentiment"
)

// Badge colors, light background with dark text.
var (
	PositiveFg = lipgloss.Color("#166534")
	PositiveBg = lipgloss.Color("#dcfce7")
	NegativeFg = lipgloss.Color("#991b1b")
	NegativeBg = lipgloss.Color("#fee2e2")
	NeutralFg  = lipgloss.Color("#1f2937")
	NeutralBg  = lipgloss.Color("#f3f4f6")
)

var badgeBase = lipgloss.NewStyle().
	Bold(true).
	Padding(0, 1)

var neutralBadge = badgeBase.Foreground(NeutralFg).Background(NeutralBg)

// badgeStyles maps each category to its badge. Missing keys fall back to
// neutralBadge.
var badgeStyles = map[sentiment.Category]lipgloss.Style{
	sentiment.CategoryPositive: badgeBase.Foreground(PositiveFg).Background(PositiveBg),
	sentiment.CategoryNegative: badgeBase.Foreground(NegativeFg).Background(NegativeBg),
}

// BadgeStyle returns the badge style for c.
func BadgeStyle(c sentiment.Category) lipgloss.Style {
	if s, ok := badgeStyles[c]; ok {
		return s
	}
	return neutralBadge
}

// Badge renders label as a category badge. The label is shown as received;
// its parsed category picks the colors.
func Badge(label string) string {
	if label == "" {
		label = "—"
	}
	return BadgeStyle(sentiment.ParseCategory(label)).Render(label)
}

var scoreLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a8dadc"))

// ScoreLine renders a badge followed by the polarity and subjectivity values.
func ScoreLine(s sentiment.Score) string {
	parts := []string{
		Badge(s.Category),
		scoreLabelStyle.Render("Polarity:") + " " + sentiment.FormatNumber(s.Polarity),
		scoreLabelStyle.Render("Subjectivity:") + " " + sentiment.FormatNumber(s.Subjectivity),
	}
	return strings.Join(parts, "   ")
}

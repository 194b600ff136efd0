// Package chart renders multi-series line charts as terminal text.
package chart

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Series is one line in the chart.
type Series struct {
	Name   string
	Values []float64
	Marker rune
	Style  lipgloss.Style
}

// Chart is a line chart with one x position per label.
type Chart struct {
	Labels []string
	Series []Series
	Width  int // total width in cells, including the y axis
	Height int // plot rows, excluding the x axis, labels and legend
}

var (
	axisStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	gridStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#3d5a80"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#a8dadc"))
	legendStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f1faee"))
)

const (
	minWidth  = 20
	minHeight = 3
	lineRune  = '·'
	zeroRune  = '┄'
)

type cell struct {
	r      rune
	series int // -1 for grid cells
}

// Render draws the chart. Points are spaced evenly across the plot area in
// label order; consecutive points are joined with interpolated dots.
func (c Chart) Render() string {
	n := len(c.Labels)
	if n == 0 {
		return ""
	}

	height := max(c.Height, minHeight)
	width := max(c.Width, minWidth)

	lo, hi := c.bounds()
	ticks := []float64{hi, (hi + lo) / 2, lo}
	tickLabels := make([]string, len(ticks))
	axisW := 0
	for i, v := range ticks {
		tickLabels[i] = formatTick(v)
		axisW = max(axisW, runewidth.StringWidth(tickLabels[i]))
	}

	// With more points than columns, neighbouring points share a column.
	plotW := max(width-axisW-2, 1)

	grid := make([][]cell, height)
	for y := range grid {
		grid[y] = make([]cell, plotW)
		for x := range grid[y] {
			grid[y][x] = cell{r: ' ', series: -1}
		}
	}

	rowOf := func(v float64) int {
		r := int(math.Round((hi - v) / (hi - lo) * float64(height-1)))
		return min(max(r, 0), height-1)
	}

	if lo < 0 && hi > 0 {
		zr := rowOf(0)
		for x := range grid[zr] {
			grid[zr][x] = cell{r: zeroRune, series: -1}
		}
	}

	xs := positions(n, plotW)

	for si, s := range c.Series {
		vals := s.Values
		if len(vals) > n {
			vals = vals[:n]
		}
		for i := 0; i+1 < len(vals); i++ {
			x0, x1 := xs[i], xs[i+1]
			for x := x0 + 1; x < x1; x++ {
				t := float64(x-x0) / float64(x1-x0)
				v := vals[i] + t*(vals[i+1]-vals[i])
				grid[rowOf(v)][x] = cell{r: lineRune, series: si}
			}
		}
	}

	// Markers go last so they are never hidden by a line.
	for si, s := range c.Series {
		for i, v := range s.Values {
			if i >= n {
				break
			}
			grid[rowOf(v)][xs[i]] = cell{r: s.Marker, series: si}
		}
	}

	rowLabels := make(map[int]string, len(ticks))
	for i, v := range ticks {
		rowLabels[rowOf(v)] = tickLabels[i]
	}

	var b strings.Builder
	for y, row := range grid {
		b.WriteString(labelStyle.Render(padLeft(rowLabels[y], axisW)))
		b.WriteString(axisStyle.Render(" │"))
		for _, cl := range row {
			b.WriteString(c.renderCell(cl))
		}
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat(" ", axisW))
	b.WriteString(axisStyle.Render(" └" + strings.Repeat("─", plotW)))
	b.WriteString("\n")

	b.WriteString(strings.Repeat(" ", axisW+2))
	b.WriteString(labelStyle.Render(placeLabels(c.Labels, xs, plotW)))
	b.WriteString("\n")

	indent := strings.Repeat(" ", axisW+2)
	b.WriteString(indent)
	b.WriteString(strings.Join(c.legend(plotW), "\n"+indent))

	return b.String()
}

func (c Chart) renderCell(cl cell) string {
	if cl.series < 0 {
		if cl.r == ' ' {
			return " "
		}
		return gridStyle.Render(string(cl.r))
	}
	return c.Series[cl.series].Style.Render(string(cl.r))
}

// legend returns the legend lines. Entries share one line when they fit in
// width and get a line each otherwise.
func (c Chart) legend(width int) []string {
	const sep = "   "
	parts := make([]string, 0, len(c.Series))
	total := 0
	for i, s := range c.Series {
		parts = append(parts, s.Style.Render(string(s.Marker))+" "+legendStyle.Render(s.Name))
		total += runewidth.RuneWidth(s.Marker) + 1 + runewidth.StringWidth(s.Name)
		if i > 0 {
			total += len(sep)
		}
	}
	if total <= width {
		return []string{strings.Join(parts, sep)}
	}
	return parts
}

// bounds returns the y range, always including zero and snapped outward to
// the nearest 0.5.
func (c Chart) bounds() (float64, float64) {
	lo, hi := 0.0, 0.0
	for _, s := range c.Series {
		for _, v := range s.Values {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	lo = math.Floor(lo*2) / 2
	hi = math.Ceil(hi*2) / 2
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi
}

// positions spreads n points across width columns. A single point is centred.
func positions(n, width int) []int {
	xs := make([]int, n)
	if n == 1 {
		xs[0] = (width - 1) / 2
		return xs
	}
	for i := range xs {
		xs[i] = int(math.Round(float64(i) * float64(width-1) / float64(n-1)))
	}
	return xs
}

// placeLabels centres each label under its x position, skipping labels that
// would collide with one already placed. The last label is placed in
// preference to the one before it.
func placeLabels(labels []string, xs []int, width int) string {
	line := []rune(strings.Repeat(" ", width))
	occupied := make([]bool, width)

	place := func(i int) bool {
		lbl := []rune(labels[i])
		w := runewidth.StringWidth(labels[i])
		start := xs[i] - w/2
		start = min(max(start, 0), max(width-w, 0))
		end := min(start+w, width)
		for x := max(start-1, 0); x < min(end+1, width); x++ {
			if occupied[x] {
				return false
			}
		}
		for j, r := range lbl {
			if start+j >= width {
				break
			}
			line[start+j] = r
			occupied[start+j] = true
		}
		return true
	}

	last := len(labels) - 1
	place(last)
	for i := 0; i < last; i++ {
		place(i)
	}

	return strings.TrimRight(string(line), " ")
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func padLeft(s string, w int) string {
	if d := w - runewidth.StringWidth(s); d > 0 {
		return strings.Repeat(" ", d) + s
	}
	return s
}

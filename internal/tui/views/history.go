package views

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/senti/internal/history"
	"github.com/f3rmion/senti/internal/tui/components"
	"github.com/rs/zerolog"
)

const historyLimit = 200

var (
	historyRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f1faee"))

	historySelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ffe66d")).
				Background(lipgloss.Color("#2d3436"))

	historyTimeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666"))
)

// HistorySource lists and deletes recorded analyses.
type HistorySource interface {
	List(ctx context.Context, limit int) ([]history.Entry, error)
	Delete(ctx context.Context, id int64) error
}

// HistorySelectedMsg is sent when the user opens a history entry.
type HistorySelectedMsg struct {
	Entry history.Entry
}

type historyLoadedMsg struct {
	entries []history.Entry
	err     error
}

// HistoryModel lists past analyses.
type HistoryModel struct {
	source HistorySource
	logger zerolog.Logger

	entries  []history.Entry
	selected int
	offset   int
	err      error

	width  int
	height int
}

// NewHistoryModel creates the history view. A nil source shows a hint that
// history is disabled.
func NewHistoryModel(source HistorySource, logger zerolog.Logger) HistoryModel {
	return HistoryModel{source: source, logger: logger, width: 80, height: 24}
}

// SetSize updates the view dimensions.
func (m *HistoryModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.clampOffset()
}

// Entries returns the loaded entries.
func (m HistoryModel) Entries() []history.Entry {
	return m.entries
}

// Reload fetches the entries from the source.
func (m HistoryModel) Reload() tea.Cmd {
	if m.source == nil {
		return nil
	}
	src := m.source
	return func() tea.Msg {
		entries, err := src.List(context.Background(), historyLimit)
		return historyLoadedMsg{entries: entries, err: err}
	}
}

func (m HistoryModel) deleteSelected() tea.Cmd {
	if m.source == nil || m.selected >= len(m.entries) {
		return nil
	}
	src := m.source
	id := m.entries[m.selected].ID
	return func() tea.Msg {
		if err := src.Delete(context.Background(), id); err != nil {
			return historyLoadedMsg{err: fmt.Errorf("deleting entry %d: %w", id, err)}
		}
		entries, err := src.List(context.Background(), historyLimit)
		return historyLoadedMsg{entries: entries, err: err}
	}
}

// Update handles messages.
func (m HistoryModel) Update(msg tea.Msg) (HistoryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.selected < len(m.entries)-1 {
				m.selected++
				m.clampOffset()
			}
		case "k", "up":
			if m.selected > 0 {
				m.selected--
				m.clampOffset()
			}
		case "enter":
			if m.selected < len(m.entries) {
				entry := m.entries[m.selected]
				return m, func() tea.Msg { return HistorySelectedMsg{Entry: entry} }
			}
		case "d":
			return m, m.deleteSelected()
		case "r":
			return m, m.Reload()
		}
		return m, nil

	case historyLoadedMsg:
		if msg.err != nil {
			m.logger.Error().Err(msg.err).Msg("load history")
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.entries = msg.entries
		if m.selected >= len(m.entries) {
			m.selected = max(len(m.entries)-1, 0)
		}
		m.clampOffset()
		return m, nil

	case AnalysisRecordedMsg:
		return m, m.Reload()
	}

	return m, nil
}

func (m HistoryModel) visibleRows() int {
	return max(m.height-6, 1)
}

func (m *HistoryModel) clampOffset() {
	rows := m.visibleRows()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+rows {
		m.offset = m.selected - rows + 1
	}
}

// View renders the history view.
func (m HistoryModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("History"))
	b.WriteString("\n\n")

	if m.source == nil {
		b.WriteString(helpStyle.Render("History is disabled. Enable it with --history or history.enabled: true in config.yaml."))
		return b.String()
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n\n")
	}

	if len(m.entries) == 0 {
		b.WriteString(helpStyle.Render("No analyses recorded yet."))
		return b.String()
	}

	end := min(m.offset+m.visibleRows(), len(m.entries))
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(i))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("%d/%d • j/k: move • enter: open • d: delete • r: reload", m.selected+1, len(m.entries))))

	return b.String()
}

func (m HistoryModel) renderRow(i int) string {
	e := m.entries[i]

	stamp := historyTimeStyle.Render(e.CreatedAt.Format("2006-01-02 15:04"))
	badge := components.Badge(e.Result.Overall.Category)

	textWidth := max(m.width-lipgloss.Width(stamp)-lipgloss.Width(badge)-6, 10)
	text := components.Truncate(e.Text, textWidth)

	style := historyRowStyle
	cursor := "  "
	if i == m.selected {
		style = historySelectedStyle
		cursor = "▸ "
	}

	return cursor + stamp + " " + badge + " " + style.Render(text)
}

package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/senti/internal/tui/views"
	"github.com/rs/zerolog"
)

// ViewType represents the current active view
type ViewType int

const (
	ViewAnalyze ViewType = iota
	ViewHistory
	ViewSettings
)

// MenuItem represents a sidebar menu entry
type MenuItem struct {
	Label    string
	View     ViewType
	Shortcut string
}

// ViewSwitchMsg requests a view change
type ViewSwitchMsg struct {
	View ViewType
}

// AppModel is the main TUI model. It owns the sidebar and routes messages to
// the analyze and history views.
type AppModel struct {
	logger zerolog.Logger

	// Layout state
	width        int
	height       int
	sidebarWidth int
	ready        bool

	// Navigation
	currentView   ViewType
	menuItems     []MenuItem
	selectedMenu  int
	sidebarActive bool

	analyzeView  views.AnalyzeModel
	historyView  views.HistoryModel
	settingsView views.SettingsModel

	// Help overlay
	showHelp bool
}

// NewApp creates the TUI application. opts.History may be nil when history
// is disabled.
func NewApp(opts Options) AppModel {
	var (
		rec views.Recorder
		src views.HistorySource
	)
	if opts.History != nil {
		rec, src = opts.History, opts.History
	}

	return AppModel{
		logger:       opts.Logger,
		sidebarWidth: 18,
		currentView:  ViewAnalyze,
		menuItems: []MenuItem{
			{Label: "Analyze", View: ViewAnalyze, Shortcut: "1"},
			{Label: "History", View: ViewHistory, Shortcut: "2"},
			{Label: "Settings", View: ViewSettings, Shortcut: "3"},
		},
		analyzeView:  views.NewAnalyzeModel(opts.Analyzer, rec, opts.Logger),
		historyView:  views.NewHistoryModel(src, opts.Logger),
		settingsView: views.NewSettingsModel(opts.Config, opts.ConfigDir),
	}
}

// HistoryStore is the history backend used by both views.
type HistoryStore interface {
	views.Recorder
	views.HistorySource
}

// CurrentView returns the active view.
func (m AppModel) CurrentView() ViewType {
	return m.currentView
}

// SidebarActive reports whether the sidebar has focus.
func (m AppModel) SidebarActive() bool {
	return m.sidebarActive
}

// Analyze returns the analyze view.
func (m AppModel) Analyze() views.AnalyzeModel {
	return m.analyzeView
}

// History returns the history view.
func (m AppModel) History() views.HistoryModel {
	return m.historyView
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.historyView.Reload())
}

func (m AppModel) quit() (tea.Model, tea.Cmd) {
	m.analyzeView.Close()
	return m, tea.Quit
}

func (m *AppModel) switchTo(v ViewType) {
	m.currentView = v
	for i, item := range m.menuItems {
		if item.View == v {
			m.selectedMenu = i
			break
		}
	}
	m.sidebarActive = false
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Help overlay - any key closes it
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c":
			return m.quit()
		case "esc":
			m.sidebarActive = !m.sidebarActive
			return m, nil
		}

		// Sidebar keys; typing in the views must not trigger them
		if m.sidebarActive {
			switch msg.String() {
			case "q":
				return m.quit()
			case "?":
				m.showHelp = true
			case "1":
				m.switchTo(ViewAnalyze)
			case "2":
				m.switchTo(ViewHistory)
			case "3":
				m.switchTo(ViewSettings)
			case "j", "down":
				if m.selectedMenu < len(m.menuItems)-1 {
					m.selectedMenu++
				}
			case "k", "up":
				if m.selectedMenu > 0 {
					m.selectedMenu--
				}
			case "enter", "l", "right":
				m.switchTo(m.menuItems[m.selectedMenu].View)
			}
			return m, nil
		}

		var cmd tea.Cmd
		switch m.currentView {
		case ViewAnalyze:
			m.analyzeView, cmd = m.analyzeView.Update(msg)
		case ViewHistory:
			m.historyView, cmd = m.historyView.Update(msg)
		case ViewSettings:
			m.settingsView, cmd = m.settingsView.Update(msg)
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		contentWidth := m.width - m.sidebarWidth - 8
		contentHeight := m.height - 4

		m.analyzeView.SetSize(contentWidth, contentHeight)
		m.historyView.SetSize(contentWidth, contentHeight)
		m.settingsView.SetSize(contentWidth, contentHeight)
		return m, nil

	case ViewSwitchMsg:
		m.switchTo(msg.View)
		return m, nil

	case views.HistorySelectedMsg:
		entry := msg.Entry
		m.analyzeView.Load(entry.Text, &entry.Result)
		m.switchTo(ViewAnalyze)
		return m, nil
	}

	// Async results and ticks reach both views regardless of focus.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.analyzeView, cmd = m.analyzeView.Update(msg)
	cmds = append(cmds, cmd)
	m.historyView, cmd = m.historyView.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	sidebar := m.renderSidebar()

	var content string
	switch m.currentView {
	case ViewAnalyze:
		content = m.analyzeView.View()
	case ViewHistory:
		content = m.historyView.View()
	case ViewSettings:
		content = m.settingsView.View()
	}

	contentWidth := m.width - m.sidebarWidth - 4
	mainContent := ContentStyle.
		Width(contentWidth).
		Height(m.height - 2).
		Render(content)

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, mainContent)
}

// renderSidebar renders the sidebar navigation
func (m AppModel) renderSidebar() string {
	var items []string

	items = append(items, SidebarTitleStyle.Render(" senti "))
	items = append(items, "")

	for i, item := range m.menuItems {
		label := item.Shortcut + ". " + item.Label

		var style lipgloss.Style
		switch {
		case i == m.selectedMenu && m.sidebarActive:
			style = SidebarItemActiveStyle
		case i == m.selectedMenu:
			style = SidebarItemStyle.Bold(true).Foreground(ColorSecondary)
		default:
			style = SidebarItemStyle
		}

		items = append(items, style.Render(label))
	}

	usedHeight := len(items) + 4
	if m.height > usedHeight {
		for i := 0; i < m.height-usedHeight-2; i++ {
			items = append(items, "")
		}
	}

	hint := "esc Menu"
	if m.sidebarActive {
		hint = "? Help  q Quit"
	}
	items = append(items, SidebarHelpStyle.Render(hint))

	content := lipgloss.JoinVertical(lipgloss.Left, items...)

	return SidebarStyle.
		Width(m.sidebarWidth).
		Height(m.height - 2).
		Render(content)
}

type helpSection struct {
	title string
	keys  [][2]string
}

var helpSections = []helpSection{
	{"Global Keys", [][2]string{
		{"esc", "Toggle sidebar focus"},
		{"ctrl+c", "Quit"},
	}},
	{"Sidebar", [][2]string{
		{"1-3", "Switch views"},
		{"j/k ↑/↓", "Move selection"},
		{"?", "Show this help"},
		{"q", "Quit"},
	}},
	{"Analyze View", [][2]string{
		{"ctrl+s", "Analyze text"},
		{"tab", "Focus input/button"},
		{"ctrl+y", "Copy result"},
		{"pgup/pgdn", "Scroll results"},
	}},
	{"History View", [][2]string{
		{"j/k ↑/↓", "Navigate entries"},
		{"enter", "Open entry"},
		{"d", "Delete entry"},
		{"r", "Reload"},
	}},
	{"Settings View", [][2]string{
		{"tab/←→", "Switch tabs"},
	}},
}

// renderHelp renders the help overlay
func (m AppModel) renderHelp() string {
	sectionStyle := HelpTitleStyle.Foreground(ColorSecondary).MarginBottom(0).MarginTop(1)

	helpText := HelpTitleStyle.Render("senti - Sentiment Analyzer") + "\n"
	for _, s := range helpSections {
		helpText += sectionStyle.Render(s.title) + "\n"
		for _, k := range s.keys {
			helpText += HelpKeyStyle.Render(k[0]) + HelpDescStyle.Render(k[1]) + "\n"
		}
	}

	helpText += "\n" + lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true).
		Render("Press any key to close")

	helpBox := HelpBoxStyle.Width(50).Render(helpText)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, helpBox)
}

package views

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/senti/internal/config"
)

// Settings view styles
var (
	settingsPathStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Italic(true)

	settingsTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#888888")).
				Padding(0, 2)

	settingsTabActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ffe66d")).
				Background(lipgloss.Color("#2d3436")).
				Padding(0, 2)

	settingsKeyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a8dadc")).
				Bold(true).
				Width(18)

	settingsRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f1faee"))

	settingsMutedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666"))
)

var settingsTabs = []string{"Analyzer", "Storage", "Service"}

// SettingsModel shows the effective configuration, after flag and
// environment overrides.
type SettingsModel struct {
	config    *config.Config
	configDir string

	tab int

	width  int
	height int
}

// NewSettingsModel creates a new settings model.
func NewSettingsModel(cfg *config.Config, configDir string) SettingsModel {
	return SettingsModel{
		config:    cfg,
		configDir: configDir,
	}
}

// SetSize updates the view dimensions.
func (m *SettingsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages.
func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "right", "l":
			m.tab = (m.tab + 1) % len(settingsTabs)
		case "shift+tab", "left", "h":
			m.tab = (m.tab + len(settingsTabs) - 1) % len(settingsTabs)
		}
	}
	return m, nil
}

// View renders the settings view.
func (m SettingsModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Configuration"))
	b.WriteString("\n")
	if m.configDir != "" {
		b.WriteString(settingsPathStyle.Render("Config: " + filepath.Join(m.configDir, config.FileName)))
	}
	b.WriteString("\n\n")

	if m.config == nil {
		b.WriteString(settingsMutedStyle.Render("No configuration loaded"))
		return b.String()
	}

	var tabViews []string
	for i, t := range settingsTabs {
		style := settingsTabStyle
		if i == m.tab {
			style = settingsTabActiveStyle
		}
		tabViews = append(tabViews, style.Render(t))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabViews...))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#3d5a80")).Render(strings.Repeat("─", min(max(m.width-4, 10), 60))))
	b.WriteString("\n\n")

	for _, row := range m.rows() {
		b.WriteString(settingsKeyStyle.Render(row[0]))
		b.WriteString(settingsRowStyle.Render(row[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab/←→: switch tabs • edit config.yaml or use SENTI_* env vars to change"))

	return b.String()
}

func (m SettingsModel) rows() [][2]string {
	c := m.config
	switch m.tab {
	case 0:
		timeout := "none"
		if c.Analyzer.Timeout > 0 {
			timeout = c.Analyzer.Timeout.String()
		}
		return [][2]string{
			{"endpoint", c.Analyzer.Endpoint},
			{"timeout", timeout},
		}
	case 1:
		return [][2]string{
			{"history", onOff(c.History.Enabled)},
			{"history database", c.History.Path},
			{"log level", c.Log.Level},
			{"log file", c.Log.File},
		}
	default:
		return [][2]string{
			{"serve address", c.Serve.Addr},
			{"serve URL", fmt.Sprintf("http://%s/api/analyze-sentiment", c.Serve.Addr)},
		}
	}
}

func onOff(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}

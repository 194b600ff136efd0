package views

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/senti/internal/config"
	"github.com/f3rmion/senti/internal/tui/tuitest"
	"github.com/stretchr/testify/assert"
)

func TestSettings_NoConfig(t *testing.T) {
	m := NewSettingsModel(nil, "")
	assert.Contains(t, tuitest.StripANSI(m.View()), "No configuration loaded")
}

func TestSettings_Tabs(t *testing.T) {
	cfg := config.Default()
	cfg.Analyzer.Timeout = 5 * time.Second
	cfg.History.Enabled = true
	cfg.History.Path = "/tmp/senti/history.db"

	m := NewSettingsModel(cfg, "/tmp/senti")
	m.SetSize(80, 24)

	view := tuitest.StripANSI(m.View())
	assert.Contains(t, view, "/tmp/senti/config.yaml")
	assert.Contains(t, view, "5s")

	m, _ = m.Update(tuitest.Key(tea.KeyTab))
	view = tuitest.StripANSI(m.View())
	assert.Contains(t, view, "enabled")
	assert.Contains(t, view, "/tmp/senti/history.db")

	m, _ = m.Update(tuitest.Key(tea.KeyTab))
	assert.Contains(t, tuitest.StripANSI(m.View()), "localhost:5000")

	// wraps back to the first tab
	m, _ = m.Update(tuitest.Key(tea.KeyShiftTab))
	m, _ = m.Update(tuitest.Key(tea.KeyShiftTab))
	m, _ = m.Update(tuitest.Key(tea.KeyShiftTab))
	assert.Contains(t, tuitest.StripANSI(m.View()), "localhost:5000")
}

// Package views provides the individual views for the unified TUI.
package views

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/senti/internal/analyzer"
	"github.com/f3rmion/senti/internal/clipboard"
	"github.com/f3rmion/senti/internal/sentiment"
	"github.com/rs/zerolog"
)

const (
	labelAnalyze   = "Analyze Sentiment"
	labelAnalyzing = "Analyzing..."
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3b82f6")).
			Background(lipgloss.Color("#1a1a2e")).
			Padding(0, 1)

	buttonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#3b82f6")).
			Padding(0, 2)

	buttonFocusedStyle = buttonStyle.
				Background(lipgloss.Color("#2563eb")).
				Underline(true)

	buttonDisabledStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#cbd5e1")).
				Background(lipgloss.Color("#64748b")).
				Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff6b6b")).
			Bold(true)

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffe66d")).
			Bold(true).
			Italic(true)

	copiedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8e6cf")).
			Bold(true)
)

// Analyzer sends text to a sentiment endpoint.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*sentiment.Result, error)
}

// Recorder stores successful analyses.
type Recorder interface {
	Record(ctx context.Context, text string, res *sentiment.Result) (int64, error)
}

// AnalysisRecordedMsg is sent after an analysis has been written to history.
type AnalysisRecordedMsg struct {
	ID int64
}

// Message types
type analyzeResultMsg struct {
	seq    int
	text   string
	result *sentiment.Result
	err    error
}

type copiedMsg struct {
	err error
}

type clearCopiedMsg struct{}

func clearCopiedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

type focusArea int

const (
	focusInput focusArea = iota
	focusButton
)

type analyzeKeyMap struct {
	Analyze    key.Binding
	Focus      key.Binding
	Copy       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
}

func (k analyzeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Analyze, k.Focus, k.Copy, k.ScrollUp, k.ScrollDown}
}

func (k analyzeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultAnalyzeKeys() analyzeKeyMap {
	return analyzeKeyMap{
		Analyze:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "analyze")),
		Focus:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
		Copy:       key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy")),
		ScrollUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		ScrollDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
	}
}

// AnalyzeModel is the sentiment analysis view. It owns the input text, the
// loading flag and the last successful result.
type AnalyzeModel struct {
	input   textarea.Model
	spinner spinner.Model
	results viewport.Model
	help    help.Model
	keys    analyzeKeyMap

	analyzer Analyzer
	recorder Recorder
	logger   zerolog.Logger

	result  *sentiment.Result
	loading bool
	err     error
	copied  bool
	focus   focusArea

	// seq identifies the latest request; responses carrying an older seq
	// are dropped.
	seq    int
	cancel context.CancelFunc

	width  int
	height int
}

// NewAnalyzeModel creates the analyze view. rec may be nil to disable history.
func NewAnalyzeModel(a Analyzer, rec Recorder, logger zerolog.Logger) AnalyzeModel {
	ta := textarea.New()
	ta.Placeholder = "Enter text to analyze sentiment..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Focus()

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(loadingStyle),
	)

	m := AnalyzeModel{
		input:    ta,
		spinner:  sp,
		results:  viewport.New(80, 20),
		help:     help.New(),
		keys:     defaultAnalyzeKeys(),
		analyzer: a,
		recorder: rec,
		logger:   logger,
	}
	m.SetSize(80, 40)
	return m
}

// SetSize updates the view dimensions.
func (m *AnalyzeModel) SetSize(width, height int) {
	m.width = width
	m.height = height

	inputHeight := min(max(height/4, 3), 10)
	m.input.SetWidth(max(width, 20))
	m.input.SetHeight(inputHeight)

	// title, input, button row, notice row, help and spacing
	chrome := inputHeight + 8
	m.results.Width = max(width, 20)
	m.results.Height = max(height-chrome, 5)
	m.help.Width = width
	m.refreshResults()
}

// SetText replaces the input text.
func (m *AnalyzeModel) SetText(value string) {
	m.input.SetValue(value)
}

// Text returns the current input text.
func (m AnalyzeModel) Text() string {
	return m.input.Value()
}

// Loading reports whether a request is in flight.
func (m AnalyzeModel) Loading() bool {
	return m.loading
}

// Result returns the last successful analysis, or nil.
func (m AnalyzeModel) Result() *sentiment.Result {
	return m.result
}

// Err returns the error from the last request, if it failed.
func (m AnalyzeModel) Err() error {
	return m.err
}

// CanAnalyze reports whether the analyze action is enabled.
func (m AnalyzeModel) CanAnalyze() bool {
	return !m.loading && m.input.Value() != ""
}

// ButtonLabel returns the label of the analyze action.
func (m AnalyzeModel) ButtonLabel() string {
	if m.loading {
		return labelAnalyzing
	}
	return labelAnalyze
}

// Analyze starts a request for the current text. It is a no-op when the
// action is disabled.
func (m AnalyzeModel) Analyze() (AnalyzeModel, tea.Cmd) {
	if !m.CanAnalyze() || m.analyzer == nil {
		return m, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.seq++
	m.cancel = cancel
	m.loading = true
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.analyzeCmd(ctx, m.seq, m.input.Value()))
}

// Load shows a previously recorded analysis. Any in-flight request is
// cancelled and its response will be ignored.
func (m *AnalyzeModel) Load(text string, res *sentiment.Result) {
	m.Close()
	m.seq++
	m.loading = false
	m.err = nil
	m.input.SetValue(text)
	m.result = res
	m.refreshResults()
	m.results.GotoTop()
}

// Close cancels any in-flight request.
func (m *AnalyzeModel) Close() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m AnalyzeModel) analyzeCmd(ctx context.Context, seq int, text string) tea.Cmd {
	a := m.analyzer

	return func() tea.Msg {
		res, err := a.Analyze(ctx, text)
		return analyzeResultMsg{seq: seq, text: text, result: res, err: err}
	}
}

// recordCmd writes an accepted result to history.
func (m AnalyzeModel) recordCmd(text string, res *sentiment.Result) tea.Cmd {
	rec, logger := m.recorder, m.logger

	return func() tea.Msg {
		id, err := rec.Record(context.Background(), text, res)
		if err != nil {
			logger.Warn().Err(err).Msg("record analysis")
			return nil
		}
		return AnalysisRecordedMsg{ID: id}
	}
}

// Update handles messages.
func (m AnalyzeModel) Update(msg tea.Msg) (AnalyzeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Analyze):
			return m.Analyze()
		case key.Matches(msg, m.keys.Focus):
			return m, m.toggleFocus()
		case key.Matches(msg, m.keys.Copy):
			return m, m.copyResult()
		case key.Matches(msg, m.keys.ScrollUp, m.keys.ScrollDown):
			var cmd tea.Cmd
			m.results, cmd = m.results.Update(msg)
			return m, cmd
		}

		if m.focus == focusButton {
			if msg.Type == tea.KeyEnter || msg.String() == " " {
				return m.Analyze()
			}
			return m, nil
		}

	case analyzeResultMsg:
		return m.handleResult(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case copiedMsg:
		if msg.err != nil {
			m.logger.Warn().Err(msg.err).Msg("copy result")
			m.err = msg.err
			return m, nil
		}
		m.copied = true
		return m, clearCopiedAfter(2 * time.Second)

	case clearCopiedMsg:
		m.copied = false
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m AnalyzeModel) handleResult(msg analyzeResultMsg) (AnalyzeModel, tea.Cmd) {
	if msg.seq != m.seq {
		m.logger.Debug().Int("seq", msg.seq).Int("latest", m.seq).Msg("dropping superseded analysis")
		return m, nil
	}

	m.loading = false
	m.Close()

	if msg.err != nil {
		ev := m.logger.Error().Err(msg.err)
		if e, ok := m.analyzer.(interface{ Endpoint() string }); ok {
			ev = ev.Str("endpoint", e.Endpoint())
		}
		var reqErr *analyzer.RequestError
		if errors.As(msg.err, &reqErr) && reqErr.StatusCode != 0 {
			ev = ev.Int("status", reqErr.StatusCode)
		}
		ev.Msg("analyze sentiment")
		m.err = msg.err
		return m, nil
	}

	m.result = msg.result
	m.err = nil
	m.refreshResults()
	m.results.GotoTop()

	m.logger.Debug().
		Str("category", msg.result.Overall.Category).
		Int("sentences", len(msg.result.Sentences)).
		Msg("analysis complete")

	if m.recorder != nil {
		return m, m.recordCmd(msg.text, msg.result)
	}
	return m, nil
}

func (m *AnalyzeModel) toggleFocus() tea.Cmd {
	if m.focus == focusInput {
		m.focus = focusButton
		m.input.Blur()
		return nil
	}
	m.focus = focusInput
	return m.input.Focus()
}

func (m AnalyzeModel) copyResult() tea.Cmd {
	if m.result == nil {
		return nil
	}
	report := PlainReport(m.result)
	return func() tea.Msg {
		return copiedMsg{err: clipboard.Write(report)}
	}
}

func (m *AnalyzeModel) refreshResults() {
	m.results.SetContent(RenderResult(m.result, m.results.Width))
}

// View renders the analyze view.
func (m AnalyzeModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Sentiment Analyzer"))
	b.WriteString("\n\n")

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	b.WriteString(m.renderButton())
	if m.loading {
		b.WriteString(" ")
		b.WriteString(m.spinner.View())
	}
	if m.copied {
		b.WriteString("  ")
		b.WriteString(copiedStyle.Render("✓ Copied to clipboard"))
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("Analysis failed: " + m.err.Error()))
		b.WriteString("\n")
	}

	if m.result != nil {
		b.WriteString("\n")
		b.WriteString(m.results.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))

	return b.String()
}

func (m AnalyzeModel) renderButton() string {
	label := m.ButtonLabel()
	switch {
	case !m.CanAnalyze():
		return buttonDisabledStyle.Render(label)
	case m.focus == focusButton:
		return buttonFocusedStyle.Render(label)
	default:
		return buttonStyle.Render(label)
	}
}

package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/matchday/internal/logtail"
)

// readLogsCmd tails the debug log off the update loop.
func (m Model) readLogsCmd() tea.Cmd {
	path := m.logFile
	return func() tea.Msg {
		if path == "" {
			return logLinesMsg{}
		}
		lines, err := logtail.Read(path, LogOverlayLines)
		return logLinesMsg{lines: lines, err: err}
	}
}

// resizeLogViewport fits the log viewport inside the overlay box.
func (m *Model) resizeLogViewport() {
	width := max(m.width-4, 1)
	height := max(m.height-headerLines-boxBorders-1, 1)
	if m.logViewport.Width == 0 {
		m.logViewport = viewport.New(width, height)
		return
	}
	m.logViewport.Width = width
	m.logViewport.Height = height
}

// setLogContent colorizes lines and keeps the view pinned to the bottom when
// it already was.
func (m *Model) setLogContent(lines []string) {
	atBottom := m.logViewport.AtBottom() || m.logViewport.TotalLineCount() == 0
	styles := m.theme.Styles()
	rendered := make([]string, len(lines))
	for i, line := range lines {
		rendered[i] = colorizeLogLine(logtail.Parse(line), styles)
	}
	m.logViewport.SetContent(strings.Join(rendered, "\n"))
	if atBottom {
		m.logViewport.GotoBottom()
	}
}

// colorizeLogLine renders "15:04:05 LEVEL message key=value ...".
func colorizeLogLine(entry logtail.Entry, styles Styles) string {
	if entry.Level == "" && entry.Time == "" {
		return styles.Text.Render(entry.Raw)
	}

	var parts []string
	if entry.Time != "" {
		ts := entry.Time
		if i := strings.IndexByte(ts, 'T'); i >= 0 && len(ts) >= i+9 {
			ts = ts[i+1 : i+9]
		}
		parts = append(parts, styles.FaintText.Render(ts))
	}
	if entry.Level != "" {
		parts = append(parts, levelStyle(entry.Level, styles).Render(padRight(entry.Level, 5)))
	}
	parts = append(parts, styles.Text.Render(entry.Message))
	for _, attr := range entry.Attrs {
		parts = append(parts, styles.MutedText.Render(attr.Key+"=")+styles.InfoText.Render(attr.Value))
	}
	return strings.Join(parts, " ")
}

func levelStyle(level string, styles Styles) lipgloss.Style {
	switch strings.ToUpper(level) {
	case "ERROR":
		return styles.DangerText
	case "WARN":
		return styles.WarningText.Bold(true)
	case "DEBUG":
		return styles.FaintText
	default:
		return styles.SuccessText
	}
}

// handleLogsKey processes keys while the log overlay is open.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Logs):
		m.showLogs = false
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.logViewport.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.logViewport.ScrollUp(1)
	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
	case key.Matches(msg, m.keys.HalfPageDown):
		m.logViewport.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.logViewport.HalfPageUp()
	}
	return m, nil
}

// renderLogs renders the log overlay with a status line below the box.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	var content string
	switch {
	case m.logFile == "":
		content = styles.MutedText.Render("Debug logging is off. Start with -debug to record a log.")
	case m.logErr != nil:
		content = styles.DangerText.Render(m.logErr.Error())
	case m.logViewport.TotalLineCount() == 0:
		content = styles.MutedText.Render("Log is empty")
	default:
		content = m.logViewport.View()
	}

	box := m.renderTitledBox("Debug Log", content, m.width, m.height-headerLines-1, true)
	status := bg.Render(truncate(m.logFile, m.width/2), styles.MutedText) + bg.Spaces(2) +
		bg.Render("updated "+since(m.now(), m.lastUpdated), styles.FaintText) + bg.Spaces(2) +
		bg.Render("esc/L close", styles.FaintText)
	return m.renderHeader() + "\n" + m.renderCommandBar() + "\n" + box + "\n" + bg.FillLine(status, m.width)
}

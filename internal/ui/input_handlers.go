package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/matchday/internal/prefs"
	"github.com/five82/matchday/internal/view"
)

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if m.showLogs {
		return m.handleLogsKey(msg)
	}
	if m.typing {
		return m.handleSearchInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
			m.logger.Warn("save prefs", "path", m.prefsPath, "error", err)
		}
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		m.showLogs = true
		m.resizeLogViewport()
		return m, m.readLogsCmd()

	case key.Matches(msg, m.keys.Retry):
		cmd := m.startLoad()
		return m, cmd
	}

	if m.projector == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Search):
		m.projector.SetSearchActive(true)
		m.typing = true
		m.searchInput.SetValue(m.ui.Query)
		m.searchInput.CursorEnd()
		m.syncState()
		cmd := m.searchInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Escape):
		if m.ui.SearchActive {
			m.projector.ClearSearch()
			m.searchInput.SetValue("")
			m.syncState()
		}
		return m, nil

	case key.Matches(msg, m.keys.FavoritesOnly):
		m.projector.ShowOnlyFavorites()
		m.syncState()
		return m, nil

	case key.Matches(msg, m.keys.ToggleSport):
		cmd := m.toggleSelectedSport()
		return m, cmd

	case key.Matches(msg, m.keys.Favorite):
		row, ok := m.selectedRow()
		if !ok || row.Kind != view.RowEvent {
			return m, nil
		}
		reload := m.projector.ToggleEventFavorite(row.Event.ID)
		m.syncState()
		if reload {
			cmd := m.startLoad()
			return m, cmd
		}
		return m, nil
	}

	m.handleNavigation(msg)
	return m, nil
}

// toggleSelectedSport expands or collapses the sport under the cursor. On an
// event row it acts on the event's sport and moves the cursor to its header.
func (m *Model) toggleSelectedSport() tea.Cmd {
	row, ok := m.selectedRow()
	if !ok {
		return nil
	}
	sportID := row.Sport.ID
	if row.Kind == view.RowEvent {
		sportID = row.Event.SportID
		for i := m.selected; i >= 0; i-- {
			if m.ui.Items[i].Kind == view.RowSport {
				m.selected = i
				break
			}
		}
	}
	reload := m.projector.ToggleSportExpanded(sportID)
	m.syncState()
	if reload {
		return m.startLoad()
	}
	return nil
}

// handleNavigation moves the cursor through the list.
func (m *Model) handleNavigation(msg tea.KeyMsg) {
	count := len(m.ui.Items)
	if count == 0 {
		return
	}
	half := max(m.listHeight()/2, 1)

	switch {
	case key.Matches(msg, m.keys.Down):
		m.selected++
	case key.Matches(msg, m.keys.Up):
		m.selected--
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = count - 1
	case key.Matches(msg, m.keys.HalfPageDown):
		m.selected += half
	case key.Matches(msg, m.keys.HalfPageUp):
		m.selected -= half
	default:
		return
	}
	m.clampSelection()
	m.refreshCountdowns(m.now())
}

// handleSearchInput feeds keys to the search box. Every edit re-filters.
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.typing = false
		m.searchInput.Blur()
		if m.searchInput.Value() == "" {
			m.projector.SetSearchActive(false)
			m.syncState()
		}
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.typing = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.projector.ClearSearch()
		m.syncState()
		return m, nil

	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() != m.ui.Query {
		m.projector.UpdateSearchQuery(m.searchInput.Value())
		m.selected = 0
		m.syncState()
	}
	return m, cmd
}

// selectedRow returns the row under the cursor.
func (m Model) selectedRow() (view.Row, bool) {
	if m.selected < 0 || m.selected >= len(m.ui.Items) {
		return view.Row{}, false
	}
	return m.ui.Items[m.selected], true
}

// clampSelection keeps the cursor on a row and the row on screen.
func (m *Model) clampSelection() {
	count := len(m.ui.Items)
	if count == 0 {
		m.selected, m.offset = 0, 0
		return
	}
	m.selected = min(max(m.selected, 0), count-1)

	height := m.listHeight()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+height {
		m.offset = m.selected - height + 1
	}
	m.offset = min(max(m.offset, 0), max(count-height, 0))
}

// visibleRange returns the [start, end) item indices shown in the list pane.
func (m Model) visibleRange() (int, int) {
	count := len(m.ui.Items)
	start := min(max(m.offset, 0), count)
	end := min(start+m.listHeight(), count)
	return start, end
}

// listHeight is the number of rows that fit inside the list box.
func (m Model) listHeight() int {
	if m.height == 0 {
		// Before the first WindowSizeMsg, treat everything as visible.
		return max(len(m.ui.Items), 1)
	}
	h := m.height - headerLines - boxBorders
	if m.ui.SearchActive {
		h--
	}
	return max(h, 1)
}

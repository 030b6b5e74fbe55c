package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/matchday/internal/feed"
	"github.com/five82/matchday/internal/view"
)

// renderMain renders header, command bar and the panes.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	return b.String()
}

// renderContent lays out the list pane and, when wide enough, the detail pane.
func (m Model) renderContent() string {
	contentHeight := m.height - headerLines
	var search string
	if m.ui.SearchActive {
		search = m.renderSearchBar() + "\n"
		contentHeight--
	}

	if len(m.ui.Items) == 0 {
		return search + lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, m.renderEmpty())
	}

	if m.width < LayoutCompactWidth {
		return search + m.renderTitledBox(m.listTitle(), m.renderList(m.width-2), m.width, contentHeight, true)
	}

	listWidth := m.width * 45 / 100
	if m.width >= LayoutExtraWideWidth {
		listWidth = m.width * 35 / 100
	}
	detailWidth := m.width - listWidth

	listPane := m.renderTitledBox(m.listTitle(), m.renderList(listWidth-2), listWidth, contentHeight, true)
	detailPane := m.renderTitledBox("Details", m.renderDetail(detailWidth-4), detailWidth, contentHeight, false)
	return search + lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// renderEmpty explains why there is nothing to show.
func (m Model) renderEmpty() string {
	styles := m.theme.Styles()
	switch {
	case m.ui.Loading:
		return styles.WarningText.Render(m.spinner.View() + " Loading sports events...")
	case m.ui.Err != "":
		return styles.DangerText.Render(m.ui.Err) + "\n" + styles.MutedText.Render("Press r to retry")
	case m.ui.FavoritesActive:
		return styles.MutedText.Render("No favorite events yet. Press f on an event to add one.")
	case m.ui.SearchActive && strings.TrimSpace(m.ui.Query) != "":
		return styles.MutedText.Render(fmt.Sprintf("No events match %q", m.ui.Query))
	default:
		return styles.MutedText.Render("No sports events")
	}
}

// renderSearchBar renders the search input line.
func (m Model) renderSearchBar() string {
	bg := NewBgStyle(m.theme.Surface)
	input := m.searchInput.View()
	if !m.typing {
		styles := m.theme.Styles()
		input = bg.Render("/ "+m.ui.Query, styles.AccentText) + bg.Spaces(2) +
			bg.Render("(/ to edit, esc to clear)", styles.FaintText)
	}
	return bg.FillLine(input, m.width)
}

// listTitle returns the list pane title with the active mode.
func (m Model) listTitle() string {
	switch {
	case m.ui.FavoritesActive:
		return "Favorites"
	case m.ui.SearchActive:
		return "Search"
	default:
		return "Sports"
	}
}

// renderList renders the visible slice of rows.
func (m Model) renderList(width int) string {
	start, end := m.visibleRange()
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		row := m.ui.Items[i]
		selected := i == m.selected
		bgColor := ternary(selected, m.theme.SelectionBg, m.theme.FocusBg)

		var content string
		if row.Kind == view.RowSport {
			content = m.formatSportRow(row.Sport, width, bgColor, selected)
		} else {
			content = m.formatEventRow(row.Event, width, bgColor, selected)
		}
		lines = append(lines, NewBgStyle(bgColor).FillLine(content, width))
	}
	return strings.Join(lines, "\n")
}

// formatSportRow formats a section header: "▾ SOCCER (2)".
func (m Model) formatSportRow(sport view.SportRow, width int, bgColor string, selected bool) string {
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()
	nameStyle, countStyle := styles.AccentText.Bold(true), styles.MutedText
	if selected {
		sel := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		nameStyle, countStyle = sel.Bold(true), sel
	}

	arrow := ternary(sport.Expanded, "▾", "▸")
	count := fmt.Sprintf("(%d)", sport.EventCount)
	name := truncate(sport.Name, max(width-lipgloss.Width(count)-4, 4))
	return bg.Render(arrow+" "+name, nameStyle) + bg.Space() + bg.Render(count, countStyle)
}

// formatEventRow formats an event: "  ⚽ Arsenal - Chelsea   starts 0m 30s ★".
func (m Model) formatEventRow(event view.EventRow, width int, bgColor string, selected bool) string {
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()

	countdown := m.countdownFor(event)
	star := ternary(event.Favorite, "★", " ")

	titleStyle := styles.Text
	countdownStyle := styles.ToneStyle(m.eventTone(event.ID))
	starStyle := styles.ToneStyle("favorite")
	if selected {
		sel := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		titleStyle, countdownStyle, starStyle = sel, sel, sel
	}

	prefix := "  " + event.Icon + " "
	right := countdown + " " + star
	titleWidth := max(width-lipgloss.Width(prefix)-lipgloss.Width(right)-2, 6)
	title := padRight(truncate(event.Title, titleWidth), titleWidth)

	return bg.Render(prefix, titleStyle) +
		bg.Render(title, titleStyle) + bg.Spaces(1) +
		bg.Render(countdown, countdownStyle) + bg.Space() +
		bg.Render(star, starStyle)
}

// eventTone classifies an event for coloring: live once started, soon within
// the detailed countdown window, today within a day, later otherwise.
func (m Model) eventTone(eventID string) string {
	if m.store == nil {
		return "later"
	}
	event, ok := m.store.EventByID(eventID)
	if !ok {
		return "later"
	}
	now := m.now()
	until := event.Start().Sub(now)
	switch {
	case until <= 0:
		return "live"
	case until <= soonWindow:
		return "soon"
	case event.IsToday(now):
		return "today"
	default:
		return "later"
	}
}

// renderDetail renders the detail pane for the selected row.
func (m Model) renderDetail(width int) string {
	styles := m.theme.Styles()
	row, ok := m.selectedRow()
	if !ok || m.store == nil {
		return styles.MutedText.Render("Select an event")
	}
	if row.Kind == view.RowSport {
		return m.renderSportDetail(row.Sport, width)
	}

	event, ok := m.store.EventByID(row.Event.ID)
	if !ok {
		return styles.MutedText.Render("Event no longer in the feed")
	}

	var b strings.Builder
	for _, line := range strings.Split(event.DisplayName(), "\n") {
		b.WriteString(styles.Text.Bold(true).Render(truncate(line, width)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	field := func(label, value string, style lipgloss.Style) {
		b.WriteString(styles.MutedText.Render(padRight(label, 10)))
		b.WriteString(style.Render(truncate(value, max(width-10, 4))))
		b.WriteString("\n")
	}
	now := m.now()
	field("Sport", row.Event.Icon+" "+row.Event.SportID, styles.Text)
	if event.ShortName != "" {
		field("Short", event.ShortName, styles.Text)
	}
	field("Starts", event.Start().Local().Format("Mon 02 Jan 15:04"), styles.Text)
	field("Countdown", m.countdownFor(row.Event), styles.ToneStyle(m.eventTone(event.ID)))
	if event.IsToday(now) {
		field("", "Today", styles.InfoText.Bold(true))
	}
	field("Favorite", ternary(row.Event.Favorite, "★ yes (f to remove)", "no (f to add)"), styles.ToneStyle("favorite"))
	field("ID", event.ID, styles.FaintText)
	return b.String()
}

// renderSportDetail summarizes a sport: event count, favorites and the next
// event that has not started yet.
func (m Model) renderSportDetail(sport view.SportRow, width int) string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(view.SportIcon(sport.ID) + " " + truncate(sport.Name, width-3)))
	b.WriteString("\n\n")

	events := m.sportEvents(sport.ID)
	favorites := 0
	for _, event := range events {
		if m.store.IsFavorite(event.ID) {
			favorites++
		}
	}
	b.WriteString(styles.MutedText.Render(padRight("Events", 10)) + styles.Text.Render(fmt.Sprintf("%d", len(events))) + "\n")
	b.WriteString(styles.MutedText.Render(padRight("Favorites", 10)) + styles.ToneStyle("favorite").Render(fmt.Sprintf("%d", favorites)) + "\n")
	b.WriteString(styles.MutedText.Render(padRight("Section", 10)) + styles.Text.Render(ternary(sport.Expanded, "expanded", "collapsed")) + "\n")

	now := m.now()
	for _, event := range events {
		if event.Start().After(now) {
			b.WriteString("\n" + styles.MutedText.Render("Next up") + "\n")
			b.WriteString(styles.Text.Render(truncate(event.Name, width)) + "\n")
			b.WriteString(styles.ToneStyle(m.eventTone(event.ID)).Render(m.projector.EventCountdown(event.ID, now)))
			break
		}
	}
	return b.String()
}

// sportEvents returns the full, time-ordered event list of a sport regardless
// of the active filter.
func (m Model) sportEvents(sportID string) []feed.Event {
	collection := feed.Collection{Sports: m.store.Sports()}
	var out []feed.Event
	for _, event := range collection.AllEventsByTime() {
		if event.SportID == sportID {
			out = append(out, event)
		}
	}
	if len(out) == 0 {
		out = collection.EventsForSport(sportID)
	}
	return out
}

// since formats how long ago t was, for the log overlay status line.
func since(now, t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return now.Sub(t).Round(time.Second).String() + " ago"
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/matchday/internal/view"
)

// renderHeader renders the status bar: logo, connectivity, counts, mode chips
// and the load state.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("matchday", styles.Logo)}

	if m.online {
		parts = append(parts, bg.Render("● Online", styles.SuccessText))
	} else {
		parts = append(parts, bg.Render("● Offline", styles.DangerText))
	}

	sports, events := m.counts()
	parts = append(parts,
		bg.Render("Sports:", styles.MutedText)+bg.Space()+bg.Render(fmt.Sprintf("%d", sports), styles.Text),
		bg.Render("Events:", styles.MutedText)+bg.Space()+bg.Render(fmt.Sprintf("%d", events), styles.Text),
	)
	if m.store != nil {
		parts = append(parts, bg.Render(fmt.Sprintf("★ %d", m.store.Favorites()), styles.ToneStyle("favorite")))
	}

	if m.ui.FavoritesActive {
		parts = append(parts, bg.Render("FAVORITES", styles.WarningText.Bold(true)))
	}
	if m.ui.SearchActive {
		chip := "SEARCH"
		if q := strings.TrimSpace(m.ui.Query); q != "" {
			chip += " " + truncate(q, 20)
		}
		parts = append(parts, bg.Render(chip, styles.AccentText.Bold(true)))
	}

	switch {
	case m.ui.Loading:
		parts = append(parts, bg.Render(m.spinner.View()+" Loading", styles.WarningText.Bold(true)))
	case m.ui.Err != "":
		parts = append(parts, bg.Render(m.ui.Err, styles.DangerText))
	case !m.lastUpdated.IsZero():
		parts = append(parts, bg.Render("Updated "+m.lastUpdated.Format("15:04:05"), styles.FaintText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderCommandBar renders the short key help below the header.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var parts []string
	for _, binding := range m.keys.ShortHelp() {
		h := binding.Help()
		parts = append(parts, bg.Render("<"+h.Key+">", styles.WarningText)+bg.Space()+bg.Render(h.Desc, styles.MutedText))
	}
	return styles.Footer.Width(m.width).Render(bg.Join(parts, "  "))
}

// counts reports the sports and events in the current projection.
func (m Model) counts() (sports, events int) {
	for _, row := range m.ui.Items {
		if row.Kind == view.RowSport {
			sports++
			events += row.Sport.EventCount
		}
	}
	return sports, events
}

// renderTitledBox renders content in a box with the title embedded in the top
// border: ┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColorStr, bgColorStr := m.theme.Border, m.theme.SurfaceAlt
	if focused {
		borderColorStr, bgColorStr = m.theme.BorderFocus, m.theme.FocusBg
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	title = truncate(title, max(innerWidth-4, 1))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	top := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)
	bottom := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	lineStyle := lipgloss.NewStyle().Width(innerWidth).MaxWidth(innerWidth).Background(lipgloss.Color(bgColorStr))
	contentLines := strings.Split(content, "\n")
	lines := make([]string, 0, height)
	for i := 0; i < height-boxBorders; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines, bg.Render("│", borderStyle)+lineStyle.Render(line)+bg.Render("│", borderStyle))
	}

	return top + "\n" + strings.Join(lines, "\n") + "\n" + bottom
}

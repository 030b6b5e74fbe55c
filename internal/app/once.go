package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/five82/matchday/internal/view"
)

// printOnce loads the feed, applies the requested modes and writes the list
// as a table.
func printOnce(ctx context.Context, s *session, opts Options, out io.Writer) error {
	st := s.projector.Load(ctx)
	if st.Err != "" {
		return errors.New(st.Err)
	}

	for _, id := range opts.Favorites {
		if id = strings.TrimSpace(id); id != "" && !s.store.IsFavorite(id) {
			s.projector.ToggleEventFavorite(id)
		}
	}
	if strings.TrimSpace(opts.Search) != "" {
		s.projector.SearchEvents(opts.Search)
	}
	if opts.FavoritesOnly {
		s.projector.ShowOnlyFavorites()
	}

	rendered := renderTable(s.projector.State().Items)
	if _, err := fmt.Fprintln(out, rendered); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// renderTable lays rows out as Sport | Event | Starts | ★. Sports without
// visible events still get one line so nothing silently disappears.
func renderTable(rows []view.Row) string {
	if len(rows) == 0 {
		return "No sports events"
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("Sport", "Event", "Starts", "★")

	var sport view.SportRow
	pending := false
	flush := func() {
		if pending {
			t.Row(sport.Name, "(no events)", "", "")
		}
	}
	for _, row := range rows {
		if row.Kind == view.RowSport {
			flush()
			sport, pending = row.Sport, true
			continue
		}
		name := ""
		if pending {
			name = sport.Name
		}
		pending = false
		star := ""
		if row.Event.Favorite {
			star = "★"
		}
		t.Row(name, row.Event.Icon+" "+row.Event.Title, row.Event.StartsIn, star)
	}
	flush()
	return t.Render()
}

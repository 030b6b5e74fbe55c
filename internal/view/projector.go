package view

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/message"

	"github.com/five82/matchday/internal/feed"
	"github.com/five82/matchday/internal/state"
)

const fallbackErrorMessage = "Failed to load sports events"

// UIState is what the presentation layer renders.
type UIState struct {
	Loading         bool
	Items           []Row
	Err             string
	SearchActive    bool
	FavoritesActive bool
	Query           string
}

// Options configure a Projector.
type Options struct {
	Printer *message.Printer
	Now     func() time.Time
	Logger  *slog.Logger

	// ReloadOnToggle restores the legacy behavior of refetching the feed after
	// every favorite or expand toggle. Off by default; toggles are local.
	ReloadOnToggle bool

	// AutoExpandSearch shows matching sections expanded while a non-blank
	// search is active, without touching the collapsed set.
	AutoExpandSearch bool
}

// Projector turns the Store's data into a flat list of rows and tracks the UI
// flags. It is not safe for concurrent use; drive it from one goroutine.
type Projector struct {
	store            *state.Store
	printer          *message.Printer
	now              func() time.Time
	logger           *slog.Logger
	reloadOnToggle   bool
	autoExpandSearch bool

	ui UIState
}

// NewProjector builds a Projector in the initial loading state.
func NewProjector(store *state.Store, opts Options) *Projector {
	printer := opts.Printer
	if printer == nil {
		printer = NewPrinter("en")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Projector{
		store:            store,
		printer:          printer,
		now:              now,
		logger:           logger,
		reloadOnToggle:   opts.ReloadOnToggle,
		autoExpandSearch: opts.AutoExpandSearch,
		ui:               UIState{Loading: true},
	}
}

// State returns a copy of the current UI state.
func (p *Projector) State() UIState {
	out := p.ui
	out.Items = append([]Row(nil), p.ui.Items...)
	return out
}

// BeginLoad enters the loading state and clears any error. Items stay as they
// are until the load completes.
func (p *Projector) BeginLoad() {
	p.ui.Loading = true
	p.ui.Err = ""
}

// CompleteLoad applies the outcome of a Store refresh. On failure the error is
// recorded and the previous items are kept.
func (p *Projector) CompleteLoad(err error) {
	p.ui.Loading = false
	if err != nil {
		p.ui.Err = errorMessage(err)
		p.logger.Warn("sports load failed", "error", err)
		return
	}
	p.ui.Err = ""
	p.rederive()
}

// Load refreshes the Store and re-derives the items.
func (p *Projector) Load(ctx context.Context) UIState {
	p.BeginLoad()
	_, err := p.store.Refresh(ctx)
	p.CompleteLoad(err)
	return p.State()
}

// Retry reloads after an error. Recovery is only ever user initiated.
func (p *Projector) Retry(ctx context.Context) UIState {
	return p.Load(ctx)
}

// ToggleSportExpanded flips a section and re-derives the list. It reports
// whether the caller should also reload from the network, which only happens
// with ReloadOnToggle.
func (p *Projector) ToggleSportExpanded(sportID string) bool {
	p.store.ToggleExpand(sportID)
	p.rederive()
	return p.reloadOnToggle
}

// ToggleEventFavorite flips a favorite and re-derives the list. The return
// value has the same meaning as for ToggleSportExpanded.
func (p *Projector) ToggleEventFavorite(eventID string) bool {
	p.store.ToggleFavorite(eventID)
	p.rederive()
	return p.reloadOnToggle
}

// UpdateSearchQuery sets the query and re-filters.
func (p *Projector) UpdateSearchQuery(query string) {
	p.ui.Query = query
	p.rederive()
}

// SetSearchActive toggles search mode; leaving it clears the query.
func (p *Projector) SetSearchActive(active bool) {
	p.ui.SearchActive = active
	if !active {
		p.ClearSearch()
		return
	}
	p.rederive()
}

// ClearSearch drops the query and leaves search mode.
func (p *Projector) ClearSearch() {
	p.ui.Query = ""
	p.ui.SearchActive = false
	p.rederive()
}

// SearchEvents enters search mode with the given query.
func (p *Projector) SearchEvents(query string) {
	p.ui.SearchActive = true
	p.ui.Query = query
	p.rederive()
}

// ShowOnlyFavorites flips the favorites-only mode.
func (p *Projector) ShowOnlyFavorites() {
	p.ui.FavoritesActive = !p.ui.FavoritesActive
	p.rederive()
}

// EventCountdown recomputes the countdown text of an event at now. Unknown
// events fall back to the text stored in the current rows.
func (p *Projector) EventCountdown(eventID string, now time.Time) string {
	if event, ok := p.store.EventByID(eventID); ok {
		return Countdown(event.StartTimeMillis(), now.UnixMilli(), p.printer)
	}
	for _, row := range p.ui.Items {
		if row.Kind == RowEvent && row.Event.ID == eventID {
			return row.Event.StartsIn
		}
	}
	return ""
}

// rederive rebuilds the items from the Store using the active mode:
// favorites-only, then search, then the full collection.
func (p *Projector) rederive() {
	var sports []feed.Sport
	switch {
	case p.ui.FavoritesActive:
		sports = p.store.ShowFavoriteEvents(true)
	case p.ui.SearchActive:
		sports = p.store.ApplyFilters(p.ui.Query)
	default:
		sports = p.store.Sports()
	}
	p.ui.Items = p.flatten(sports)
	p.ui.Loading = false
}

func (p *Projector) flatten(sports []feed.Sport) []Row {
	nowMillis := p.now().UnixMilli()
	forceExpand := p.autoExpandSearch && p.ui.SearchActive && strings.TrimSpace(p.ui.Query) != ""

	rows := make([]Row, 0, len(sports))
	for _, sport := range sports {
		expanded := p.store.IsExpanded(sport.ID) || (forceExpand && len(sport.Events) > 0)
		rows = append(rows, Row{Kind: RowSport, Sport: SportRow{
			ID:         sport.ID,
			Name:       sport.Name,
			Expanded:   expanded,
			EventCount: len(sport.Events),
		}})
		if !expanded {
			continue
		}
		for _, event := range sport.Events {
			rows = append(rows, Row{Kind: RowEvent, Event: EventRow{
				ID:       event.ID,
				SportID:  sport.ID,
				Title:    event.Name,
				Icon:     SportIcon(sport.ID),
				StartsIn: Countdown(event.StartTimeMillis(), nowMillis, p.printer),
				Favorite: p.store.IsFavorite(event.ID),
			}})
		}
	}
	return rows
}

func errorMessage(err error) string {
	var serverErr *state.ServerError
	switch {
	case errors.Is(err, state.ErrNoConnectivity):
		return "No internet connection"
	case errors.As(err, &serverErr):
		return serverErr.Error()
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return fallbackErrorMessage
}

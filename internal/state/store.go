package state

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/five82/matchday/internal/feed"
	"github.com/five82/matchday/internal/netcheck"
)

// ErrNoConnectivity is returned by Refresh when the checker reports the host offline.
var ErrNoConnectivity = errors.New("no internet connection")

// ServerError reports a non-OK response from the feed.
type ServerError struct {
	Code    int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("feed returned status %d", e.Code)
	}
	return e.Message
}

// TransportError wraps a failure while fetching or decoding the feed.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	if e.Cause == nil {
		return "failed to connect to the server"
	}
	return e.Cause.Error()
}

func (e *TransportError) Unwrap() error { return e.Cause }

// Store holds the last fetched sports plus the favorited and collapsed sets.
// One Store belongs to one session; share it by passing the pointer.
type Store struct {
	fetcher feed.Fetcher
	checker netcheck.Checker

	mu        sync.RWMutex
	sports    []feed.Sport
	favorited map[string]struct{}
	collapsed map[string]struct{}
}

// NewStore builds a Store. A nil checker skips the connectivity pre-check.
func NewStore(fetcher feed.Fetcher, checker netcheck.Checker) *Store {
	return &Store{
		fetcher:   fetcher,
		checker:   checker,
		favorited: make(map[string]struct{}),
		collapsed: make(map[string]struct{}),
	}
}

// Refresh fetches the feed and replaces the stored sports on success. On any
// failure the previous sports are kept.
func (s *Store) Refresh(ctx context.Context) ([]feed.Sport, error) {
	if s.fetcher == nil {
		return nil, &TransportError{Cause: fmt.Errorf("no fetcher configured")}
	}
	if s.checker != nil && !s.checker.IsAvailable() {
		return nil, ErrNoConnectivity
	}

	res := s.fetcher.Fetch(ctx)
	switch res.Kind {
	case feed.KindSuccess:
		s.mu.Lock()
		s.sports = feed.CloneSports(res.Data.Sports)
		out := feed.CloneSports(s.sports)
		s.mu.Unlock()
		return out, nil
	case feed.KindError:
		return nil, &ServerError{Code: res.Code, Message: res.Message}
	case feed.KindFailure:
		return nil, &TransportError{Cause: res.Cause}
	default:
		return nil, &TransportError{Cause: fmt.Errorf("unexpected %s result", res.Kind)}
	}
}

// Sports returns a copy of the last fetched sports.
func (s *Store) Sports() []feed.Sport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return feed.CloneSports(s.sports)
}

// ToggleFavorite flips the membership of eventID and reports whether it is now
// a favorite.
func (s *Store) ToggleFavorite(eventID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return toggle(s.favorited, eventID)
}

// ToggleExpand flips the collapsed state of sportID and reports whether the
// sport is now expanded. Note the inverse convention to ToggleFavorite: the
// set tracks collapsed sports, the return value is the expanded state.
func (s *Store) ToggleExpand(sportID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !toggle(s.collapsed, sportID)
}

// IsExpanded reports whether sportID is expanded. Sports default to expanded.
func (s *Store) IsExpanded(sportID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, collapsed := s.collapsed[sportID]
	return !collapsed
}

// IsFavorite reports whether eventID is a favorite.
func (s *Store) IsFavorite(eventID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.favorited[eventID]
	return ok
}

// Favorites returns the number of favorited events.
func (s *Store) Favorites() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.favorited)
}

// ApplyFilters keeps the events whose name contains query, ignoring case. A
// blank query keeps every sport, including empty ones; otherwise sports without
// a match are dropped.
func (s *Store) ApplyFilters(query string) []feed.Sport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if strings.TrimSpace(query) == "" {
		return feed.CloneSports(s.sports)
	}
	needle := strings.ToLower(query)

	out := make([]feed.Sport, 0, len(s.sports))
	for _, sport := range s.sports {
		var matched []feed.Event
		for _, event := range sport.Events {
			if strings.Contains(strings.ToLower(event.Name), needle) {
				matched = append(matched, event)
			}
		}
		if len(matched) == 0 {
			continue
		}
		sport.Events = matched
		out = append(out, sport)
	}
	return out
}

// ShowFavoriteEvents returns only sports with favorited events, each reduced to
// those events. When enable is false the full collection is returned.
func (s *Store) ShowFavoriteEvents(enable bool) []feed.Sport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !enable {
		return feed.CloneSports(s.sports)
	}
	out := make([]feed.Sport, 0, len(s.sports))
	for _, sport := range s.sports {
		var favs []feed.Event
		for _, event := range sport.Events {
			if _, ok := s.favorited[event.ID]; ok {
				favs = append(favs, event)
			}
		}
		if len(favs) == 0 {
			continue
		}
		sport.Events = favs
		out = append(out, sport)
	}
	return out
}

// EventByID scans every sport for the first event with the given id.
func (s *Store) EventByID(eventID string) (feed.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return feed.Collection{Sports: s.sports}.FindEvent(eventID)
}

// toggle flips membership and reports whether id is now in the set.
func toggle(set map[string]struct{}, id string) bool {
	if _, ok := set[id]; ok {
		delete(set, id)
		return false
	}
	set[id] = struct{}{}
	return true
}

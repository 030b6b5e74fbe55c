package state

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/five82/matchday/internal/feed"
	"github.com/five82/matchday/internal/netcheck"
)

type stubFetcher struct {
	results []feed.Result
	calls   int
}

func (f *stubFetcher) Fetch(ctx context.Context) feed.Result {
	res := f.results[min(f.calls, len(f.results)-1)]
	f.calls++
	return res
}

func (f *stubFetcher) FetchStream(ctx context.Context) <-chan feed.Result {
	out := make(chan feed.Result, 2)
	out <- feed.Loading()
	out <- f.Fetch(ctx)
	close(out)
	return out
}

func threeSports() []feed.Sport {
	return []feed.Sport{
		{ID: "FOOT", Name: "SOCCER", Events: []feed.Event{
			{ID: "1", Name: "Arsenal - Chelsea", SportID: "FOOT"},
			{ID: "2", Name: "Ajax - PSV", SportID: "FOOT"},
		}},
		{ID: "BASK", Name: "BASKETBALL", Events: []feed.Event{}},
		{ID: "TENN", Name: "TENNIS", Events: []feed.Event{
			{ID: "3", Name: "Nadal - Federer", SportID: "TENN"},
		}},
	}
}

func loadedStore(t *testing.T) (*Store, *stubFetcher) {
	t.Helper()
	fetcher := &stubFetcher{results: []feed.Result{feed.Success(feed.Collection{Sports: threeSports()})}}
	s := NewStore(fetcher, netcheck.Static(true))
	if _, err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	return s, fetcher
}

func TestStore_RefreshReplacesSports(t *testing.T) {
	s, _ := loadedStore(t)

	sports := s.Sports()
	if len(sports) != 3 {
		t.Fatalf("Sports() = %d, want 3", len(sports))
	}

	// Returned slices are independent of the stored ones.
	sports[0].Events[0].Name = "mutated"
	if s.Sports()[0].Events[0].Name != "Arsenal - Chelsea" {
		t.Fatal("Sports() should clone events")
	}
}

func TestStore_RefreshFailureKeepsPreviousSports(t *testing.T) {
	cause := errors.New("connection reset")
	fetcher := &stubFetcher{results: []feed.Result{
		feed.Success(feed.Collection{Sports: threeSports()}),
		feed.Error(503, "Error fetching sports data: Service Unavailable"),
		feed.Failure(cause),
	}}
	s := NewStore(fetcher, nil)
	if _, err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	prev := s.Sports()

	_, err := s.Refresh(context.Background())
	var serverErr *ServerError
	if !errors.As(err, &serverErr) || serverErr.Code != 503 {
		t.Fatalf("Refresh error = %v, want ServerError 503", err)
	}
	if serverErr.Error() != "Error fetching sports data: Service Unavailable" {
		t.Fatalf("ServerError message = %q", serverErr.Error())
	}
	if !reflect.DeepEqual(s.Sports(), prev) {
		t.Fatal("sports changed after server error")
	}

	_, err = s.Refresh(context.Background())
	var transportErr *TransportError
	if !errors.As(err, &transportErr) || !errors.Is(err, cause) {
		t.Fatalf("Refresh error = %v, want TransportError wrapping cause", err)
	}
	if !reflect.DeepEqual(s.Sports(), prev) {
		t.Fatal("sports changed after transport failure")
	}
}

func TestStore_RefreshOfflineSkipsFetch(t *testing.T) {
	fetcher := &stubFetcher{results: []feed.Result{feed.Success(feed.Collection{Sports: threeSports()})}}
	s := NewStore(fetcher, netcheck.Static(false))

	_, err := s.Refresh(context.Background())
	if !errors.Is(err, ErrNoConnectivity) {
		t.Fatalf("Refresh error = %v, want ErrNoConnectivity", err)
	}
	if fetcher.calls != 0 {
		t.Fatalf("fetcher called %d times, want 0", fetcher.calls)
	}
}

func TestStore_ToggleFavoriteIsInvolution(t *testing.T) {
	s := NewStore(nil, nil)
	for _, id := range []string{"1", "unknown", ""} {
		before := s.IsFavorite(id)
		if got := s.ToggleFavorite(id); got != !before {
			t.Fatalf("ToggleFavorite(%q) = %v, want %v", id, got, !before)
		}
		if s.IsFavorite(id) == before {
			t.Fatalf("IsFavorite(%q) unchanged after toggle", id)
		}
		if got := s.ToggleFavorite(id); got != before {
			t.Fatalf("second ToggleFavorite(%q) = %v, want %v", id, got, before)
		}
		if s.IsFavorite(id) != before {
			t.Fatalf("IsFavorite(%q) not restored", id)
		}
	}
}

func TestStore_ToggleExpandReturnsExpandedState(t *testing.T) {
	s := NewStore(nil, nil)

	if !s.IsExpanded("FOOT") {
		t.Fatal("never-toggled sport should be expanded")
	}
	if got := s.ToggleExpand("FOOT"); got {
		t.Fatalf("first ToggleExpand = %v, want false (collapsed)", got)
	}
	if s.IsExpanded("FOOT") {
		t.Fatal("IsExpanded = true after collapsing")
	}
	if got := s.ToggleExpand("FOOT"); !got {
		t.Fatalf("second ToggleExpand = %v, want true (expanded)", got)
	}
	if !s.IsExpanded("FOOT") {
		t.Fatal("IsExpanded not restored after two toggles")
	}
}

func TestStore_ApplyFilters(t *testing.T) {
	s, _ := loadedStore(t)

	all := s.ApplyFilters("")
	if !reflect.DeepEqual(all, threeSports()) {
		t.Fatalf("ApplyFilters(\"\") = %#v, want full collection", all)
	}
	if got := s.ApplyFilters("   "); len(got) != 3 {
		t.Fatalf("ApplyFilters(blank) = %d sports, want 3", len(got))
	}

	cases := []struct {
		query      string
		wantSports []string
		wantEvents int
	}{
		{"ajax", []string{"FOOT"}, 1},
		{"AJAX", []string{"FOOT"}, 1},
		{" - ", []string{"FOOT", "TENN"}, 3},
		{"federer", []string{"TENN"}, 1},
		{"zzz-no-match", nil, 0},
		{" a ", nil, 0},
		{" ajax", nil, 0},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			got := s.ApplyFilters(tc.query)
			var ids []string
			events := 0
			for _, sport := range got {
				if len(sport.Events) == 0 {
					t.Fatalf("sport %s returned with no events for %q", sport.ID, tc.query)
				}
				ids = append(ids, sport.ID)
				events += len(sport.Events)
			}
			if !reflect.DeepEqual(ids, tc.wantSports) {
				t.Fatalf("sports = %v, want %v", ids, tc.wantSports)
			}
			if events != tc.wantEvents {
				t.Fatalf("events = %d, want %d", events, tc.wantEvents)
			}
		})
	}
}

func TestStore_ApplyFiltersLeavesCollapsedState(t *testing.T) {
	s, _ := loadedStore(t)
	s.ToggleExpand("FOOT")
	_ = s.ApplyFilters("ajax")
	if s.IsExpanded("FOOT") {
		t.Fatal("filtering should not expand a collapsed sport")
	}
}

func TestStore_ShowFavoriteEvents(t *testing.T) {
	s, _ := loadedStore(t)

	if got := s.ShowFavoriteEvents(true); len(got) != 0 {
		t.Fatalf("ShowFavoriteEvents(true) with no favorites = %d sports, want 0", len(got))
	}

	s.ToggleFavorite("2")
	s.ToggleFavorite("3")
	got := s.ShowFavoriteEvents(true)
	if len(got) != 2 {
		t.Fatalf("ShowFavoriteEvents(true) = %d sports, want 2", len(got))
	}
	if got[0].ID != "FOOT" || len(got[0].Events) != 1 || got[0].Events[0].ID != "2" {
		t.Fatalf("first sport = %#v, want FOOT reduced to event 2", got[0])
	}
	if got[1].ID != "TENN" || len(got[1].Events) != 1 || got[1].Events[0].ID != "3" {
		t.Fatalf("second sport = %#v, want TENN with event 3", got[1])
	}

	if full := s.ShowFavoriteEvents(false); !reflect.DeepEqual(full, threeSports()) {
		t.Fatalf("ShowFavoriteEvents(false) = %#v, want full collection", full)
	}
}

func TestStore_EventByID(t *testing.T) {
	s, _ := loadedStore(t)

	ev, ok := s.EventByID("3")
	if !ok || ev.Name != "Nadal - Federer" {
		t.Fatalf("EventByID(3) = %#v, %v", ev, ok)
	}
	if _, ok := s.EventByID("missing"); ok {
		t.Fatal("EventByID(missing) found an event")
	}
}

func TestStore_EndToEndThreeSports(t *testing.T) {
	s, _ := loadedStore(t)

	counts := []int{}
	for _, sport := range s.ApplyFilters("") {
		counts = append(counts, len(sport.Events))
	}
	if !reflect.DeepEqual(counts, []int{2, 0, 1}) {
		t.Fatalf("event counts = %v, want [2 0 1]", counts)
	}
	if got := s.ApplyFilters("zzz-no-match"); len(got) != 0 {
		t.Fatalf("ApplyFilters(no match) = %d sports, want 0", len(got))
	}
}

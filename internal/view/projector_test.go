package view

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/five82/matchday/internal/feed"
	"github.com/five82/matchday/internal/netcheck"
	"github.com/five82/matchday/internal/state"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

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

func sampleSports() []feed.Sport {
	start := fixedNow.Add(30 * time.Second).Unix()
	return []feed.Sport{
		{ID: "FOOT", Name: "SOCCER", Events: []feed.Event{
			{ID: "1", Name: "Arsenal - Chelsea", SportID: "FOOT", StartTime: start},
			{ID: "2", Name: "Ajax - PSV", SportID: "FOOT", StartTime: fixedNow.Add(5 * time.Hour).Unix()},
		}},
		{ID: "BASK", Name: "BASKETBALL", Events: []feed.Event{}},
		{ID: "TENN", Name: "TENNIS", Events: []feed.Event{
			{ID: "3", Name: "Nadal - Federer", SportID: "TENN", StartTime: fixedNow.Add(-time.Minute).Unix()},
		}},
	}
}

func newProjector(t *testing.T, opts Options, results ...feed.Result) (*Projector, *stubFetcher) {
	t.Helper()
	if len(results) == 0 {
		results = []feed.Result{feed.Success(feed.Collection{Sports: sampleSports()})}
	}
	fetcher := &stubFetcher{results: results}
	store := state.NewStore(fetcher, netcheck.Static(true))
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	return NewProjector(store, opts), fetcher
}

func rowIDs(rows []Row) []string {
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID())
	}
	return ids
}

func equalIDs(got []string, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestProjector_InitialStateIsLoading(t *testing.T) {
	p, _ := newProjector(t, Options{})
	st := p.State()
	if !st.Loading || len(st.Items) != 0 || st.Err != "" {
		t.Fatalf("initial state = %+v", st)
	}
}

func TestProjector_LoadFlattensExpandedSports(t *testing.T) {
	p, _ := newProjector(t, Options{})
	st := p.Load(context.Background())

	if st.Loading || st.Err != "" {
		t.Fatalf("state after load = %+v", st)
	}
	if !equalIDs(rowIDs(st.Items), "FOOT", "1", "2", "BASK", "TENN", "3") {
		t.Fatalf("rows = %v", rowIDs(st.Items))
	}

	header := st.Items[0]
	if header.Kind != RowSport || !header.Sport.Expanded || header.Sport.EventCount != 2 {
		t.Fatalf("header = %+v", header.Sport)
	}
	first := st.Items[1].Event
	if first.Title != "Arsenal - Chelsea" || first.Icon != SportIcon("FOOT") || first.StartsIn != "starts 0m 30s" {
		t.Fatalf("event row = %+v", first)
	}
	if st.Items[2].Event.StartsIn != "starts in 5 hours" {
		t.Fatalf("second countdown = %q", st.Items[2].Event.StartsIn)
	}
	if st.Items[5].Event.StartsIn != "started" {
		t.Fatalf("past countdown = %q", st.Items[5].Event.StartsIn)
	}
}

func TestProjector_LoadErrorsMapToMessages(t *testing.T) {
	tests := []struct {
		name   string
		result feed.Result
		want   string
	}{
		{name: "server", result: feed.Error(404, "Error fetching sports data: Not Found"), want: "Error fetching sports data: Not Found"},
		{name: "transport", result: feed.Failure(errors.New("dial tcp: refused")), want: "dial tcp: refused"},
		{name: "blank transport", result: feed.Failure(errors.New(" ")), want: fallbackErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newProjector(t, Options{}, tt.result)
			st := p.Load(context.Background())
			if st.Loading || st.Err != tt.want {
				t.Fatalf("state = %+v, want err %q", st, tt.want)
			}
		})
	}
}

func TestProjector_OfflineReportsNoConnectivity(t *testing.T) {
	fetcher := &stubFetcher{results: []feed.Result{feed.Success(feed.Collection{Sports: sampleSports()})}}
	p := NewProjector(state.NewStore(fetcher, netcheck.Static(false)), Options{})

	st := p.Load(context.Background())
	if st.Err != "No internet connection" {
		t.Fatalf("Err = %q", st.Err)
	}
	if fetcher.calls != 0 {
		t.Fatalf("fetcher called %d times while offline", fetcher.calls)
	}
}

func TestProjector_RetryRecoversAndKeepsItemsOnFailure(t *testing.T) {
	p, fetcher := newProjector(t, Options{},
		feed.Success(feed.Collection{Sports: sampleSports()}),
		feed.Failure(errors.New("timeout")),
		feed.Success(feed.Collection{Sports: sampleSports()[:1]}),
	)
	ctx := context.Background()

	p.Load(ctx)
	st := p.Retry(ctx)
	if st.Err != "timeout" || len(st.Items) != 6 {
		t.Fatalf("failed retry state = %+v", st)
	}

	st = p.Retry(ctx)
	if st.Err != "" || !equalIDs(rowIDs(st.Items), "FOOT", "1", "2") {
		t.Fatalf("successful retry rows = %v err %q", rowIDs(st.Items), st.Err)
	}
	if fetcher.calls != 3 {
		t.Fatalf("fetch calls = %d, want 3", fetcher.calls)
	}
}

func TestProjector_TogglesRederiveLocally(t *testing.T) {
	p, fetcher := newProjector(t, Options{})
	p.Load(context.Background())

	if reload := p.ToggleSportExpanded("FOOT"); reload {
		t.Fatal("ToggleSportExpanded requested reload by default")
	}
	if got := rowIDs(p.State().Items); !equalIDs(got, "FOOT", "BASK", "TENN", "3") {
		t.Fatalf("rows after collapse = %v", got)
	}
	if p.State().Items[0].Sport.Expanded {
		t.Fatal("FOOT should be collapsed")
	}

	if reload := p.ToggleEventFavorite("3"); reload {
		t.Fatal("ToggleEventFavorite requested reload by default")
	}
	if !p.State().Items[3].Event.Favorite {
		t.Fatal("event 3 should be marked favorite")
	}
	if fetcher.calls != 1 {
		t.Fatalf("toggles fetched %d extra times", fetcher.calls-1)
	}
}

func TestProjector_ReloadOnToggleRequestsReload(t *testing.T) {
	p, _ := newProjector(t, Options{ReloadOnToggle: true})
	p.Load(context.Background())

	if !p.ToggleSportExpanded("FOOT") || !p.ToggleEventFavorite("1") {
		t.Fatal("toggles should request reload when ReloadOnToggle is set")
	}
}

func TestProjector_SearchLifecycle(t *testing.T) {
	p, _ := newProjector(t, Options{})
	p.Load(context.Background())

	p.SetSearchActive(true)
	p.UpdateSearchQuery("FEDERER")
	st := p.State()
	if !st.SearchActive || st.Query != "FEDERER" || !equalIDs(rowIDs(st.Items), "TENN", "3") {
		t.Fatalf("search state = %+v rows %v", st, rowIDs(st.Items))
	}

	p.SetSearchActive(false)
	st = p.State()
	if st.SearchActive || st.Query != "" || len(st.Items) != 6 {
		t.Fatalf("after leaving search = %+v", st)
	}

	p.SearchEvents("ajax")
	if got := rowIDs(p.State().Items); !equalIDs(got, "FOOT", "2") {
		t.Fatalf("SearchEvents rows = %v", got)
	}

	p.ClearSearch()
	if st := p.State(); st.SearchActive || len(st.Items) != 6 {
		t.Fatalf("after ClearSearch = %+v", st)
	}
}

func TestProjector_SearchRespectsCollapsedUnlessAutoExpand(t *testing.T) {
	for _, autoExpand := range []bool{false, true} {
		p, _ := newProjector(t, Options{AutoExpandSearch: autoExpand})
		p.Load(context.Background())
		p.ToggleSportExpanded("TENN")

		p.SearchEvents("nadal")
		got := rowIDs(p.State().Items)
		want := []string{"TENN"}
		if autoExpand {
			want = append(want, "3")
		}
		if !equalIDs(got, want...) {
			t.Fatalf("autoExpand=%v rows = %v, want %v", autoExpand, got, want)
		}

		p.ClearSearch()
		if p.State().Items[len(p.State().Items)-1].ID() != "TENN" {
			t.Fatalf("autoExpand=%v should not expand TENN after search", autoExpand)
		}
	}
}

func TestProjector_FavoritesOnlyTakesPrecedence(t *testing.T) {
	p, _ := newProjector(t, Options{})
	p.Load(context.Background())
	p.ToggleEventFavorite("2")

	p.ShowOnlyFavorites()
	st := p.State()
	if !st.FavoritesActive || !equalIDs(rowIDs(st.Items), "FOOT", "2") {
		t.Fatalf("favorites rows = %v", rowIDs(st.Items))
	}

	// Search does not widen the favorites-only view.
	p.SearchEvents("federer")
	if got := rowIDs(p.State().Items); !equalIDs(got, "FOOT", "2") {
		t.Fatalf("favorites with search rows = %v", got)
	}

	p.ShowOnlyFavorites()
	if got := rowIDs(p.State().Items); !equalIDs(got, "TENN", "3") {
		t.Fatalf("search after favorites off = %v", got)
	}
}

func TestProjector_EventCountdown(t *testing.T) {
	p, _ := newProjector(t, Options{})
	p.Load(context.Background())

	if got := p.EventCountdown("1", fixedNow.Add(20*time.Second)); got != "starts 0m 10s" {
		t.Fatalf("EventCountdown = %q", got)
	}
	if got := p.EventCountdown("1", fixedNow.Add(time.Minute)); got != "started" {
		t.Fatalf("EventCountdown after start = %q", got)
	}
	if got := p.EventCountdown("missing", fixedNow); got != "" {
		t.Fatalf("EventCountdown(missing) = %q", got)
	}
}

func TestProjector_StateReturnsCopy(t *testing.T) {
	p, _ := newProjector(t, Options{})
	st := p.Load(context.Background())
	st.Items[0].Sport.Name = "mutated"
	if p.State().Items[0].Sport.Name != "SOCCER" {
		t.Fatal("State() should not alias items")
	}
}

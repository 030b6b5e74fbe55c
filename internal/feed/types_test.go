package feed

import (
	"encoding/json"
	"testing"
	"time"
)

func TestSport_UnmarshalIgnoresUnknownFields(t *testing.T) {
	var sports []Sport
	if err := json.Unmarshal([]byte(sampleFeed), &sports); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if len(sports) != 3 {
		t.Fatalf("sports = %d, want 3", len(sports))
	}
	if sports[2].Events[0].Name != "Nadal - Federer" {
		t.Fatalf("event name = %q", sports[2].Events[0].Name)
	}
}

func TestDisplayName_SplitsOnDash(t *testing.T) {
	ev := Event{Name: "Arsenal - Chelsea"}
	if got := ev.DisplayName(); got != "Arsenal\nChelsea" {
		t.Fatalf("DisplayName = %q, want %q", got, "Arsenal\nChelsea")
	}
	sp := Sport{Name: "SOCCER"}
	if got := sp.DisplayName(); got != "SOCCER" {
		t.Fatalf("DisplayName = %q, want SOCCER", got)
	}
}

func TestEvent_TimeHelpers(t *testing.T) {
	ev := Event{StartTime: 1700000000}
	if got := ev.StartTimeMillis(); got != 1700000000000 {
		t.Fatalf("StartTimeMillis = %d", got)
	}
	if !ev.Start().Equal(time.Unix(1700000000, 0)) {
		t.Fatalf("Start = %v", ev.Start())
	}

	now := time.Unix(1700000000, 0)
	cases := []struct {
		name  string
		start int64
		want  bool
	}{
		{"same instant", 1700000000, true},
		{"twelve hours ahead", 1700000000 + 12*3600, true},
		{"twelve hours ago", 1700000000 - 12*3600, true},
		{"exactly a day ahead", 1700000000 + 24*3600, false},
		{"two days ago", 1700000000 - 48*3600, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := (Event{StartTime: tc.start}).IsToday(now); got != tc.want {
				t.Fatalf("IsToday = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCollection_Lookups(t *testing.T) {
	c := Collection{Sports: []Sport{
		{ID: "A", Events: []Event{{ID: "a2", StartTime: 20}, {ID: "a1", StartTime: 10}}},
		{ID: "B", Events: []Event{{ID: "b1", StartTime: 15}}},
	}}

	all := c.AllEventsByTime()
	if len(all) != 3 || all[0].ID != "a1" || all[1].ID != "b1" || all[2].ID != "a2" {
		t.Fatalf("AllEventsByTime = %#v", all)
	}
	if got := c.EventsForSport("B"); len(got) != 1 || got[0].ID != "b1" {
		t.Fatalf("EventsForSport(B) = %#v", got)
	}
	if got := c.EventsForSport("missing"); got != nil {
		t.Fatalf("EventsForSport(missing) = %#v, want nil", got)
	}
	if ev, ok := c.FindEvent("b1"); !ok || ev.ID != "b1" {
		t.Fatalf("FindEvent(b1) = %#v, %v", ev, ok)
	}
	if _, ok := c.FindEvent("zzz"); ok {
		t.Fatalf("FindEvent(zzz) found, want miss")
	}
}

func TestCloneSports_DoesNotAlias(t *testing.T) {
	orig := []Sport{{ID: "A", Events: []Event{{ID: "1"}}}}
	dup := CloneSports(orig)
	dup[0].Events[0].ID = "changed"
	if orig[0].Events[0].ID != "1" {
		t.Fatalf("CloneSports aliased events")
	}
	if CloneSports(nil) != nil {
		t.Fatalf("CloneSports(nil) should be nil")
	}
}

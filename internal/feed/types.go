package feed

import (
	"sort"
	"strings"
	"time"
)

// Sport mirrors a sport entry of the feed. Field names on the wire are short
// codes: i (id), d (display name), e (events).
type Sport struct {
	ID     string  `json:"i"`
	Name   string  `json:"d"`
	Events []Event `json:"e"`
}

// DisplayName splits dash-separated names onto separate lines.
func (s Sport) DisplayName() string {
	return splitName(s.Name)
}

// Event mirrors a single scheduled event of a sport.
type Event struct {
	ID        string `json:"i"`
	Name      string `json:"d"`
	ShortName string `json:"sh"`
	SportID   string `json:"si"`
	StartTime int64  `json:"tt"` // unix seconds
}

// DisplayName splits "Home - Away" style names onto separate lines.
func (e Event) DisplayName() string {
	return splitName(e.Name)
}

// StartTimeMillis returns the start timestamp in milliseconds.
func (e Event) StartTimeMillis() int64 {
	return e.StartTime * 1000
}

// Start returns the start timestamp as time.Time.
func (e Event) Start() time.Time {
	return time.Unix(e.StartTime, 0)
}

// IsToday reports whether the event starts within a day of now, in either direction.
func (e Event) IsToday(now time.Time) bool {
	delta := e.StartTime - now.Unix()
	if delta < 0 {
		delta = -delta
	}
	return delta < int64((24 * time.Hour).Seconds())
}

// Collection is the decoded feed: an ordered list of sports.
type Collection struct {
	Sports []Sport
}

// AllEventsByTime flattens every event and orders them by start time.
func (c Collection) AllEventsByTime() []Event {
	var events []Event
	for _, sport := range c.Sports {
		events = append(events, sport.Events...)
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartTime < events[j].StartTime
	})
	return events
}

// EventsForSport returns the events of the sport with the given id.
func (c Collection) EventsForSport(sportID string) []Event {
	for _, sport := range c.Sports {
		if sport.ID == sportID {
			return sport.Events
		}
	}
	return nil
}

// FindEvent returns the first event with the given id.
func (c Collection) FindEvent(eventID string) (Event, bool) {
	for _, sport := range c.Sports {
		for _, event := range sport.Events {
			if event.ID == eventID {
				return event, true
			}
		}
	}
	return Event{}, false
}

// CloneSports deep-copies sports so callers can't alias each other's event slices.
func CloneSports(sports []Sport) []Sport {
	if sports == nil {
		return nil
	}
	dup := make([]Sport, len(sports))
	for i, sport := range sports {
		dup[i] = sport
		if sport.Events != nil {
			dup[i].Events = make([]Event, len(sport.Events))
			copy(dup[i].Events, sport.Events)
		}
	}
	return dup
}

func splitName(name string) string {
	parts := strings.Split(name, "-")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, "\n")
}

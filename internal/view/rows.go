package view

// RowKind tells sport headers and event rows apart in the flattened list.
type RowKind int

const (
	RowSport RowKind = iota
	RowEvent
)

// Row is one render-ready line of the list. Only the field matching Kind is set.
type Row struct {
	Kind  RowKind
	Sport SportRow
	Event EventRow
}

// ID returns the sport or event id of the row.
func (r Row) ID() string {
	if r.Kind == RowSport {
		return r.Sport.ID
	}
	return r.Event.ID
}

// SportRow is a section header.
type SportRow struct {
	ID         string
	Name       string
	Expanded   bool
	EventCount int
}

// EventRow is a single event under its sport header.
type EventRow struct {
	ID       string
	SportID  string
	Title    string
	Icon     string
	StartsIn string
	Favorite bool
}

var sportIcons = map[string]string{
	"FOOT": "⚽",
	"BASK": "🏀",
	"TENN": "🎾",
	"TABL": "🏓",
	"VOLL": "🏐",
	"ESPS": "🎮",
	"ICEH": "🏒",
	"HAND": "🤾",
	"SNOO": "🎱",
	"FUTS": "⚽",
	"DART": "🎯",
}

// SportIcon returns the glyph shown next to events of the given sport.
func SportIcon(sportID string) string {
	if icon, ok := sportIcons[sportID]; ok {
		return icon
	}
	return sportIcons["FOOT"]
}

// Package ui is the Bubble Tea terminal interface of matchday.
//
// # Layout
//
//   - Header: logo, connectivity, sport/event/favorite counts, mode chips and
//     the load state (spinner, error, or last update time)
//   - Command bar: the short key help
//   - Search bar: shown while search mode is active
//   - List pane: sport headers with their events when expanded
//   - Detail pane: the selected event or sport; hidden below
//     LayoutCompactWidth columns
//
// Overlays replace the main screen: the help overlay (h/?) and the debug log
// overlay (L), which tails the log file written with -debug.
//
// # Data Flow
//
// The Model never builds rows itself. Every intent goes to view.Projector and
// the resulting UIState is copied back with syncState, which keeps the cursor
// on the same row id when it survives the change.
//
// Network refreshes run as a tea.Cmd. BeginLoad happens on the update loop,
// the Store refresh on the command goroutine, and CompleteLoad once the
// refreshedMsg arrives. Nothing retries on its own; r reloads.
//
// # Timers and Subscriptions
//
//   - A one-second tick recomputes countdowns for the rows on screen only
//   - The connectivity channel from netcheck is read one value per command and
//     re-armed after each message; it closes with the program context
//   - The spinner ticks only while loading
//
// # Preferences
//
// T cycles Nightfox, Kanagawa and Slate and saves the choice with prefs.Save.
// A failed save is logged and otherwise ignored.
package ui

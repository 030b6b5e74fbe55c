// Package app is the composition root of matchday.
//
// # Overview
//
// Run loads configuration and preferences, builds the logger, the feed client,
// the connectivity monitor, the session Store and the view Projector, then
// either starts the TUI or prints the list once and exits.
//
// # Startup Order
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()        TOML config with defaults
//	       ├─────> prefs.Load()         theme and language overrides
//	       ├─────> logging.New()        slog to file, or discarded
//	       ├─────> feed.NewClient()     retrying, cached HTTP client
//	       ├─────> netcheck.NewMonitor  unless connectivity_check = false
//	       ├─────> state.NewStore()     session data
//	       ├─────> view.NewProjector()  row projection and UI flags
//	       └─────> ui.Run() | printOnce()
//
// There is no background poller. The first load happens when the UI starts and
// every later load is triggered by the user pressing retry, or by a toggle when
// reload_on_toggle is set.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Config file unreadable or invalid
//   - Log file cannot be opened while debug is on
//   - Feed base URL invalid
//   - In once mode, a failed load, reported with the same text the TUI shows
//
// Everything else is surfaced inside the UI and recovered by retrying.
//
// # Once Mode
//
// With Options.Once the feed is loaded a single time, favorites from
// Options.Favorites are applied, the search or favorites-only mode is entered
// when requested and the resulting rows are written as a table to Options.Out.
// The command line falls back to this mode when stdout is not a terminal.
package app

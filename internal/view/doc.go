// Package view projects the Store into render-ready rows and owns the UI mode
// flags (loading, error, search, favorites-only).
//
// The Projector is driven from a single goroutine. Network work happens in
// Load or, for the TUI, between BeginLoad and CompleteLoad on a command
// goroutine. Everything else re-derives from data already held by the Store.
//
// Countdown texts are localized through golang.org/x/text/message; English and
// German are bundled.
package view

// Package state owns the session data of matchday: the last fetched sports
// feed plus the favorited events and collapsed sports.
//
// # Overview
//
// The Store sits between the feed client and the view projection. It keeps the
// most recent successful fetch and derives filtered views from it on demand.
// Nothing here is persisted; favorites and collapsed sections live for the
// process lifetime only.
//
// # Core Types
//
// Store:
//   - Holds the sports collection, the favorited set and the collapsed set
//   - One instance per session, passed to consumers by pointer
//   - Uses sync.RWMutex because refreshes complete on a command goroutine
//     while the UI update loop reads
//
// Errors:
//   - ErrNoConnectivity: the connectivity checker reported the host offline,
//     no request was attempted
//   - *ServerError: the feed answered with a non-OK status
//   - *TransportError: the request or JSON decoding failed
//
// # Refresh Semantics
//
//	// Success: replace the whole collection
//	sports, err := store.Refresh(ctx)
//	→ store.Sports() == sports
//
//	// Failure: keep the previous collection
//	_, err := store.Refresh(ctx)
//	→ store.Sports() unchanged
//	→ err is one of the types above
//
// Refresh never retries. Retries belong to the HTTP transport beneath the feed
// client and are invisible here.
//
// # Toggle Conventions
//
// ToggleFavorite returns the new favorite state. ToggleExpand returns the new
// expanded state, which is the inverse of membership in the collapsed set.
// Callers must not assume the two are symmetric. Toggling the same id twice
// always restores the previous state, and unknown ids are accepted.
//
// # Derived Views
//
//   - ApplyFilters(query): case-insensitive substring match on event names.
//     A blank query returns every sport, including sports without events.
//     A non-blank query drops sports left without events.
//   - ShowFavoriteEvents(true): only sports with favorites, reduced to them.
//   - ShowFavoriteEvents(false): the full collection.
//
// Filtering never touches the collapsed set. Whether a search should expand
// matching sections is a presentation decision.
//
// # Defensive Copying
//
// Every accessor returns cloned sport and event slices, so callers can keep or
// modify what they receive without affecting the Store.
package state

// Package prefs persists cosmetic matchday preferences in
// ~/.config/matchday/prefs.toml. Favorites and collapsed sections are never
// written here; they live for one session only.
package prefs

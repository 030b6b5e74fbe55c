// Package logging builds the process logger. The TUI owns the terminal, so
// logs only ever go to a file, and only when debug is enabled.
package logging

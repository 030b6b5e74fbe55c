// Package logtail reads the end of matchday's debug log for the in-app log
// overlay.
//
// # Reading
//
// Read scans the file once and keeps at most about twice maxLines in memory,
// returning the last maxLines in file order. A missing file is not an error:
// debug logging may simply be off.
//
//	lines, err := logtail.Read(cfg.LogFile, 200)
//
// # Parsing
//
// Parse understands the log/slog text handler format (key=value pairs, with
// Go-quoted values when they contain spaces). The well-known keys time, level
// and msg are lifted into fields; everything else stays in Attrs in order.
// Lines that do not parse, such as panics written by the runtime, come back
// as a bare Message so the overlay can still show them.
package logtail

package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the width below which the detail pane is hidden.
	LayoutCompactWidth = 90

	// LayoutExtraWideWidth gives the list a smaller share of the screen.
	LayoutExtraWideWidth = 160
)

// Chrome heights: header and command bar above the panes.
const (
	headerLines = 2
	boxBorders  = 2
)

const (
	// CountdownInterval is how often visible countdowns are recomputed.
	CountdownInterval = time.Second

	// LogOverlayLines is how many trailing log lines the overlay loads.
	LogOverlayLines = 500

	// soonWindow marks events close enough to be highlighted.
	soonWindow = 4 * time.Hour
)

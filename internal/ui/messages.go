// Package ui provides the Bubble Tea TUI for news-analyzer.
package ui

// PrefsLoaded is sent once stored preferences have been read and the theme
// resolved.
type PrefsLoaded struct {
	Err error
}

// loadingTick rotates the loading message. Only the tick for the current
// loading run is honoured.
type loadingTick struct {
	run int
}

// Package ui renders download progress for the scfetch CLI.
//
// # Views
//
// Two renderers read the same state.Store:
//
//   - Run: a Bubble Tea program with one bubbles/progress bar per transfer,
//     a spinner while the size is unknown, and lipgloss status badges.
//   - RunPlain: line-oriented progressbar/v3 output for pipes, log capture,
//     and terminals where the full-screen view is unwanted.
//
// Both poll Store.Snapshot on a ticker and return once every transfer has
// ended.
//
// # Keyboard
//
//   - q, Esc, Ctrl+C: cancel the downloads and exit (Run returns ErrAborted)
//   - t: cycle themes
//
// # Themes
//
// Dracula (default), Nightfox, Kanagawa, and Slate. Unknown names fall back
// to Dracula.
package ui

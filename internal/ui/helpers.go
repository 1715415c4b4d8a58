package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/five82/scfetch/internal/state"
)

// transferStatus maps a transfer to one of the status color keys.
func transferStatus(t state.Transfer) string {
	switch {
	case t.Done && t.Err != nil:
		return statusFailed
	case t.Done:
		return statusDone
	case t.Percent < 0:
		return statusWaiting
	default:
		return statusDownloading
	}
}

func formatBytes(n int) string {
	const (
		kib = 1024
		mib = 1024 * 1024
	)
	switch {
	case n >= mib:
		return fmt.Sprintf("%.2f MiB", float64(n)/mib)
	case n >= kib:
		return fmt.Sprintf("%.1f KiB", float64(n)/kib)
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func humanizeDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return "now"
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
	}
}

func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || value == "" {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-1]) + "…"
}

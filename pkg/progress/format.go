// Package progress formats transfer sizes and renders per-track progress lines.
package progress

import (
	"fmt"

	"github.com/yourusername/ytchannel-go/internal/domain"
)

var sizeUnits = []string{"B", "KB", "MB", "GB"}

// FormatSize renders a byte count with two decimals in B, KB, MB or GB,
// dividing by 1024 until the value drops below 1024. GB is the largest unit.
func FormatSize(bytes int64) string {
	size := float64(bytes)
	unit := 0
	for size >= 1024 && unit < len(sizeUnits)-1 {
		size /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %s", size, sizeUnits[unit])
}

// FormatPercent returns "Done" for a complete transfer, a two-decimal
// percentage while in flight, and "" when the total is unknown.
func FormatPercent(state domain.ProgressState) string {
	if !state.Known() {
		return ""
	}
	if state.Received == state.Total {
		return "Done"
	}
	return fmt.Sprintf("%.2f%%", float64(state.Received)/float64(state.Total)*100)
}

// RenderLine builds the status line of a track, or "" when nothing should be shown.
func RenderLine(kind domain.TrackKind, state domain.ProgressState) string {
	pct := FormatPercent(state)
	if pct == "" {
		return ""
	}
	return fmt.Sprintf("\t%s progression: %s of %s", kind.Label(), pct, FormatSize(state.Total))
}

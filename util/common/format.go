package common

import (
	"fmt"
)

// FormatDistance renders a kilometer value with two decimals for display.
func FormatDistance(km float64) string {
	return fmt.Sprintf("%.2f km", km)
}

// FormatDuration renders a minute count as "1h 30m".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

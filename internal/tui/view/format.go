// Package view provides rendering helpers for the TUI and the CLI.
package view

import (
	"strconv"

	"github.com/javiermolinar/ttg/internal/render"
)

// FormatHours formats a number of hours or credits without trailing zeros.
func FormatHours(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatTotals renders the totals line shown under a term.
func FormatTotals(t render.TermTotals) string {
	return "TOTAL HOURS : " + FormatHours(t.Hours) + ", TOTAL UNITS : " + FormatHours(t.Credits)
}

package ui

import (
	"strings"

	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

// truncateText shortens value to limit cells, adding an ellipsis if needed.
func truncateText(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	return truncate.StringWithTail(value, uint(limit), "…")
}

// wrapText word-wraps value to width cells. Words longer than width are kept
// whole.
func wrapText(value string, width int) string {
	if width <= 0 {
		return value
	}
	return wordwrap.String(value, width)
}

// indentLines prefixes every line after the first with n spaces.
func indentLines(value string, n int) string {
	if n <= 0 {
		return value
	}
	return strings.ReplaceAll(value, "\n", "\n"+strings.Repeat(" ", n))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

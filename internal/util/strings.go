// Package util provides text helpers for laying out terminal columns.
package util

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const ellipsis = "..."

// Fit shortens s to at most width terminal columns, ending in "..." when
// cut. Escape sequences and wide runes are measured by their rendered width.
func Fit(s string, width int) string {
	if width <= len(ellipsis) {
		return ellipsis[:max(width, 0)]
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, ellipsis)
}

// Column fits s into exactly width columns, padding on the right.
func Column(s string, width int) string {
	s = Fit(s, width)
	if pad := width - lipgloss.Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// Package overlay draws a popup on top of an already rendered view.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Splice replaces a rectangular region of view with the popup lines,
// starting at column x and row y. Cutting is ANSI-aware so styling on
// either side of the popup survives.
func Splice(view string, popupLines []string, x, y int) string {
	if len(popupLines) == 0 {
		return view
	}

	viewLines := strings.Split(view, "\n")
	popupWidth := 0
	for _, line := range popupLines {
		popupWidth = max(popupWidth, ansi.StringWidth(line))
	}

	for i, popupLine := range popupLines {
		row := y + i
		if row < 0 || row >= len(viewLines) {
			continue
		}

		viewLine := viewLines[row]
		viewLineWidth := ansi.StringWidth(viewLine)

		var b strings.Builder
		if x > 0 {
			prefix := ansi.Truncate(viewLine, x, "")
			b.WriteString(prefix)
			// Short lines are padded so the popup lands in its column.
			if w := ansi.StringWidth(prefix); w < x {
				b.WriteString(strings.Repeat(" ", x-w))
			}
		}
		b.WriteString("\x1b[0m")
		b.WriteString(popupLine)
		if w := ansi.StringWidth(popupLine); w < popupWidth {
			b.WriteString(strings.Repeat(" ", popupWidth-w))
		}
		b.WriteString("\x1b[0m")

		if suffixStart := x + popupWidth; suffixStart < viewLineWidth {
			b.WriteString(ansi.TruncateLeft(viewLine, suffixStart, ""))
		}

		viewLines[row] = b.String()
	}

	return strings.Join(viewLines, "\n")
}

// Center places popup in the middle of a width×height view.
func Center(view, popup string, width, height int) string {
	x := max(0, (width-lipgloss.Width(popup))/2)
	y := max(0, (height-lipgloss.Height(popup))/2)
	return Splice(view, strings.Split(popup, "\n"), x, y)
}

package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette. Use these instead of inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: file paths, field names.
	ColorCyan = lipgloss.Color("14")

	// ColorBoldRed is used for failures.
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for table borders.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (paths, field names).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)

	styleCheck   = lipgloss.NewStyle().Foreground(ColorGreenCheck)
	styleFailure = lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
)

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Stylize renders s with style when w is a terminal and returns s unchanged otherwise.
func Stylize(w io.Writer, style lipgloss.Style, s string) string {
	if !IsTerminal(w) {
		return s
	}
	return style.Render(s)
}

// FormatCheckmark renders a checkmark followed by msg for w.
func FormatCheckmark(w io.Writer, msg string) string {
	return Stylize(w, styleCheck, "✔") + " " + Stylize(w, StyleSummary, msg)
}

// FormatFailure renders a cross followed by msg for w.
func FormatFailure(w io.Writer, msg string) string {
	return Stylize(w, styleFailure, "✘") + " " + msg
}

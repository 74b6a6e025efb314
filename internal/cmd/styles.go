package cmd

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/Iron-Ham/cogniload/internal/load"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	// Colors
	primaryColor = lipgloss.Color("#A78BFA") // Purple
	calmColor    = lipgloss.Color("#10B981") // Green
	steadyColor  = lipgloss.Color("#60A5FA") // Blue
	warningColor = lipgloss.Color("#F59E0B") // Amber
	errorColor   = lipgloss.Color("#F87171") // Red
	mutedColor   = lipgloss.Color("#9CA3AF") // Gray

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	mutedStyle = lipgloss.NewStyle().Foreground(mutedColor)
	warnStyle  = lipgloss.NewStyle().Foreground(warningColor)
	okStyle    = lipgloss.NewStyle().Foreground(calmColor)
)

// defaultWidth is used when stdout is not a terminal.
const defaultWidth = 80

// colorEnabled reports whether output should be styled: the user has not
// turned color off and stdout is a terminal.
func colorEnabled(w io.Writer, enabled bool) bool {
	if !enabled {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of the terminal behind w.
func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultWidth
}

// printer renders command output with or without styling.
type printer struct {
	w     io.Writer
	color bool
	width int
}

func newPrinter(w io.Writer, color bool) *printer {
	return &printer{w: w, color: colorEnabled(w, color), width: terminalWidth(w)}
}

func (p *printer) style(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

func (p *printer) title(text string) {
	_, _ = io.WriteString(p.w, "\n"+p.style(titleStyle, strings.ToUpper(text))+"\n")
	_, _ = io.WriteString(p.w, p.style(mutedStyle, strings.Repeat("─", min(50, p.width)))+"\n")
}

func (p *printer) line(text string) {
	_, _ = io.WriteString(p.w, text+"\n")
}

func (p *printer) muted(text string) string { return p.style(mutedStyle, text) }
func (p *printer) warn(text string) string  { return p.style(warnStyle, text) }
func (p *printer) ok(text string) string    { return p.style(okStyle, text) }

// stateStyle colors a load band.
func stateStyle(s load.State) lipgloss.Style {
	switch s {
	case load.StateCalm:
		return lipgloss.NewStyle().Foreground(calmColor).Bold(true)
	case load.StateSteady:
		return lipgloss.NewStyle().Foreground(steadyColor).Bold(true)
	case load.StateStretched:
		return lipgloss.NewStyle().Foreground(warningColor).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	}
}

// bar draws a horizontal bar of n out of max cells.
func bar(value, maxValue, cells int) string {
	if maxValue <= 0 || cells <= 0 || value <= 0 {
		return ""
	}
	n := value * cells / maxValue
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", min(n, cells))
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

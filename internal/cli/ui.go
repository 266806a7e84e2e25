package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan  = lipgloss.Color("36")  // spinner
	colorGreen = lipgloss.Color("35")  // success, cache hits
	colorRed   = lipgloss.Color("167") // failures
	colorWhite = lipgloss.Color("255") // paths and values
	colorGray  = lipgloss.Color("245") // info icon, fresh artifacts
	colorDim   = lipgloss.Color("240") // details
)

var (
	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for paths and other data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	styleOK      = lipgloss.NewStyle().Foreground(colorGreen)
	styleFail    = lipgloss.NewStyle().Foreground(colorRed)
	styleInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
)

// status prints the short styled lines a command shows its user. Logging
// goes through charmbracelet/log instead; status lines are the result.
type status struct {
	w io.Writer
}

func newStatus(w io.Writer) *status {
	return &status{w: w}
}

func (s *status) line(icon lipgloss.Style, glyph, format string, args []any) {
	fmt.Fprintln(s.w, icon.Render(glyph)+" "+fmt.Sprintf(format, args...))
}

func (s *status) success(format string, args ...any) { s.line(styleOK, iconSuccess, format, args) }
func (s *status) failure(format string, args ...any) { s.line(styleFail, iconError, format, args) }
func (s *status) info(format string, args ...any)    { s.line(styleInfo, iconInfo, format, args) }

// detail prints an indented, dimmed line.
func (s *status) detail(format string, args ...any) {
	fmt.Fprintln(s.w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file prints an output path tagged with whether it came from the cache.
func (s *status) file(path string, cached bool) {
	tag := styleInfo.Render("fresh")
	if cached {
		tag = styleOK.Render("cached")
	}
	fmt.Fprintln(s.w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path)+" "+tag)
}

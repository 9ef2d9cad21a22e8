// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// defaultTermWidth is used when the writer is not a terminal.
const defaultTermWidth = 80

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Status styles
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style

	// Breakdown components
	Title    lipgloss.Style
	Language lipgloss.Style
	Value    lipgloss.Style
	Percent  lipgloss.Style
	Path     lipgloss.Style

	// Guess components
	Safe     lipgloss.Style
	Unsafe   lipgloss.Style
	Strategy lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style

	colorEnabled bool
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),

		Title:    lipgloss.NewStyle().Bold(true).Underline(true),
		Language: lipgloss.NewStyle().Bold(true),
		Value:    lipgloss.NewStyle(),
		Percent:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Path:     lipgloss.NewStyle().Foreground(lipgloss.Color("7")),

		Safe:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Unsafe:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Strategy: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),

		colorEnabled: true,
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error:    plain,
		Warning:  plain,
		Success:  plain,
		Title:    plain,
		Language: plain,
		Value:    plain,
		Percent:  plain,
		Path:     plain,
		Safe:     plain,
		Unsafe:   plain,
		Strategy: plain,
		Dim:      plain,
		Bold:     plain,
	}
}

// LanguageColor returns a style painting text in a catalog color such as
// "#00ADD8". Without color it returns a plain style.
func (s *Styles) LanguageColor(hex string) lipgloss.Style {
	if !s.colorEnabled || hex == "" {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// Check NO_COLOR environment variable (https://no-color.org/)
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		return IsTerminal(writer)
	}
}

// IsTerminal reports whether writer is a terminal.
func IsTerminal(writer io.Writer) bool {
	if f, ok := writer.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// TerminalWidth attempts to get the terminal width from the writer.
func TerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}

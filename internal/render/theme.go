package render

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	colorMuted    = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	colorAccent   = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#87B2DA"}
	colorSurface  = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#E5E7EB"}
	colorBorder   = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"}
	colorDone     = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#64D281"}
	colorBug      = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F76F84"}
	colorColumnFg = lipgloss.Color("#FFFFFF")
)

// ApplyColorProfile picks Lip Gloss's colour profile for terminal output.
//
// NO_COLOR (or noColor) forces plain text. Otherwise termenv's detection is used, upgraded when
// TERM/COLORTERM advertise more than the probe reports.
func ApplyColorProfile(noColor bool) {
	if noColor || strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && profile == termenv.ANSI {
		profile = termenv.ANSI256
	}
	lipgloss.SetColorProfile(profile)
}

func styleMuted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorMuted)
}

// columnHeaderStyle paints a column title on its configured background colour.
func columnHeaderStyle(bg string) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	if strings.TrimSpace(bg) != "" {
		s = s.Background(lipgloss.Color(bg)).Foreground(colorColumnFg)
	} else {
		s = s.Foreground(colorSurface).Underline(true)
	}
	return s
}

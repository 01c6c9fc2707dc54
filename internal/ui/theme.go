package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// dated's color palette, calendar paper and ink.
var (
	Ink    = lipgloss.Color("#E8E3D9")
	Red    = lipgloss.Color("#D9534F")
	Orange = lipgloss.Color("#F0AD4E")
	Green  = lipgloss.Color("#5CB85C")
	Blue   = lipgloss.Color("#5B8DEF")
	Slate  = lipgloss.Color("#7A8290")
	Dim    = lipgloss.Color("#666666")
	Bright = lipgloss.Color("#FFFFFF")

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Blue)

	Subtitle = lipgloss.NewStyle().
			Foreground(Slate)

	Success = lipgloss.NewStyle().
		Foreground(Green)

	Error = lipgloss.NewStyle().
		Foreground(Red)

	Warning = lipgloss.NewStyle().
		Foreground(Orange)

	Info = lipgloss.NewStyle().
		Foreground(Blue)

	Muted = lipgloss.NewStyle().
		Foreground(Dim)

	Accent = lipgloss.NewStyle().
		Foreground(Ink).
		Bold(true)

	// Tab styles for the interactive view header.
	TabActive = lipgloss.NewStyle().
			Foreground(Bright).
			Background(Blue).
			Padding(0, 1).
			Bold(true)

	TabInactive = lipgloss.NewStyle().
			Foreground(Slate).
			Padding(0, 1)

	KeyStyle = lipgloss.NewStyle().
			Foreground(Orange).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Bright)
)

const (
	IconDated   = "🗓️ "
	IconToday   = "📌"
	IconOverdue = "🔴"
	IconDone    = "✅"
	IconWarn    = "⚠️ "
	IconError   = "✗ "
	IconOk      = "✓ "
	IconArrow   = "→"
	IconDot     = "·"
)

var colorEnabled = true

// SetColor switches styled output on or off for the whole process. Color
// is also off when NO_COLOR is set.
func SetColor(enabled bool) {
	if os.Getenv("NO_COLOR") != "" {
		enabled = false
	}
	colorEnabled = enabled
	if enabled {
		lipgloss.SetColorProfile(termenv.EnvColorProfile())
	} else {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// ColorEnabled reports the setting made by SetColor.
func ColorEnabled() bool { return colorEnabled }

package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorCyan    = lipgloss.Color("6")  // Cyan - train numbers, focus
	colorYellow  = lipgloss.Color("3")  // Yellow - loading
	colorRed     = lipgloss.Color("1")  // Red - errors, brand
	colorMagenta = lipgloss.Color("5")  // Magenta - platforms
	colorWhite   = lipgloss.Color("15") // White - text
	colorGray    = lipgloss.Color("8")  // Gray - muted text
)

// Text styles
var (
	styleNumber   = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	stylePlatform = lipgloss.NewStyle().Foreground(colorMagenta)
	styleValue    = lipgloss.NewStyle().Foreground(colorWhite)
	styleMuted    = lipgloss.NewStyle().Foreground(colorGray)
	styleHeader   = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	styleLabel    = lipgloss.NewStyle().Foreground(colorGray).Width(18)
)

var (
	stylePanelFocused = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorCyan)

	stylePanelNormal = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorGray)
)

var (
	styleButton = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(colorGray).
			Padding(0, 2)

	styleButtonFocused = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(colorCyan).
				Bold(true).
				Padding(0, 2)
)

// Status bar at the bottom
var styleStatusBar = lipgloss.NewStyle().
	Foreground(colorGray).
	Background(lipgloss.Color("0"))

// Loading indicator
var styleLoading = lipgloss.NewStyle().Foreground(colorYellow).Italic(true)

// Error text
var styleError = lipgloss.NewStyle().Foreground(colorRed)

// Logo/brand style
var styleLogo = lipgloss.NewStyle().Foreground(colorRed).Bold(true)

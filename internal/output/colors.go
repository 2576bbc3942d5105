package output

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorMode represents the color output mode
type ColorMode int

const (
	// ColorAuto enables colors if output is a TTY
	ColorAuto ColorMode = iota
	// ColorAlways forces colors on
	ColorAlways
	// ColorNever disables colors
	ColorNever
)

// Colors holds the color functions for the parts of a train card
type Colors struct {
	Header   func(format string, a ...interface{}) string
	Label    func(format string, a ...interface{}) string
	Number   func(format string, a ...interface{}) string
	Value    func(format string, a ...interface{}) string
	Platform func(format string, a ...interface{}) string
	Muted    func(format string, a ...interface{}) string
	Error    func(format string, a ...interface{}) string
}

// NewColors creates a new Colors instance based on the color mode
func NewColors(mode ColorMode) *Colors {
	useColors := false
	switch mode {
	case ColorAlways:
		useColors = true
		color.NoColor = false // Force colors on
	case ColorNever:
		useColors = false
	case ColorAuto:
		useColors = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	if !useColors {
		noColor := func(format string, a ...interface{}) string {
			if len(a) == 0 {
				return format
			}
			return color.New().Sprintf(format, a...)
		}
		return &Colors{
			Header:   noColor,
			Label:    noColor,
			Number:   noColor,
			Value:    noColor,
			Platform: noColor,
			Muted:    noColor,
			Error:    noColor,
		}
	}

	return &Colors{
		Header:   color.New(color.FgWhite, color.Bold).SprintfFunc(),
		Label:    color.New(color.FgHiBlack).SprintfFunc(),
		Number:   color.New(color.FgCyan, color.Bold).SprintfFunc(),
		Value:    color.New(color.FgWhite).SprintfFunc(),
		Platform: color.New(color.FgMagenta).SprintfFunc(),
		Muted:    color.New(color.FgHiBlack).SprintfFunc(),
		Error:    color.New(color.FgRed).SprintfFunc(),
	}
}

// ParseColorMode parses a color mode string
func ParseColorMode(s string) ColorMode {
	switch s {
	case "always":
		return ColorAlways
	case "never":
		return ColorNever
	default:
		return ColorAuto
	}
}

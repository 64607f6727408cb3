// Package console provides the terminal input and output collaborators for a
// fight: prompting for choices and narrating events as text lines.
package console

import (
	"fmt"
	"regexp"
)

// ANSI escape codes used by the narration.
const (
	Reset        = "\033[0m"
	Bold         = "\033[1m"
	Dim          = "\033[2m"
	Red          = "\033[31m"
	Green        = "\033[32m"
	Yellow       = "\033[33m"
	Cyan         = "\033[36m"
	BrightRed    = "\033[91m"
	BrightGreen  = "\033[92m"
	BrightYellow = "\033[93m"
	BrightWhite  = "\033[97m"
)

var ansiPattern = regexp.MustCompile("\033\\[[0-9;]*m")

// Palette applies ANSI colors when enabled and passes text through otherwise.
type Palette struct {
	Enabled bool
}

// Colorize wraps text with color and a reset suffix.
//
// Postcondition: Returns text unchanged when the palette is disabled.
func (p Palette) Colorize(color, text string) string {
	if !p.Enabled {
		return text
	}
	return color + text + Reset
}

// Colorf formats and colorizes in one call.
func (p Palette) Colorf(color, format string, args ...any) string {
	return p.Colorize(color, fmt.Sprintf(format, args...))
}

// StripANSI removes all SGR escape sequences from s.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

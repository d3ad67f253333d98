package views

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ParseColorProfile maps a --color value to a terminal profile.
// "auto" (or empty) reports ok=false so the detected profile stays in effect.
func ParseColorProfile(name string) (profile termenv.Profile, ok bool, err error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return termenv.Ascii, false, nil
	case "truecolor", "true", "24bit":
		return termenv.TrueColor, true, nil
	case "256", "ansi256":
		return termenv.ANSI256, true, nil
	case "16", "ansi", "basic":
		return termenv.ANSI, true, nil
	case "none", "off", "ascii":
		return termenv.Ascii, true, nil
	}
	return termenv.Ascii, false, fmt.Errorf("unknown color mode %q", name)
}

// InitColorProfile applies the --color value, falling back to COLORTERM
// detection when it is "auto".
func InitColorProfile(name string) error {
	profile, ok, err := ParseColorProfile(name)
	if err != nil {
		return err
	}
	if ok {
		lipgloss.SetColorProfile(profile)
		return nil
	}
	if ct := os.Getenv("COLORTERM"); ct == "truecolor" || ct == "24bit" {
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
	return nil
}

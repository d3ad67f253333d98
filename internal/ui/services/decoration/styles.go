package decoration

import (
	"github.com/lucasb-eyer/go-colorful"

	"luminol/internal/config"
	"luminol/internal/domain"
)

// StylesFrom derives layer styles from highlight settings.
// The dim color is blended toward the background by 1-opacity, so opacity 1
// keeps the dim color and opacity 0 makes text vanish into the background.
func StylesFrom(h config.HighlightSettings) Styles {
	return Styles{
		Dim:       dimStyle(h),
		Highlight: domain.Style{Foreground: h.HighlightColor},
		Sole:      domain.Style{Foreground: h.SoleHighlightColor},
		Overview:  domain.Style{Foreground: h.HighlightColor},
	}
}

func dimStyle(h config.HighlightSettings) domain.Style {
	fg, errFg := colorful.Hex(h.DimColor)
	bg, errBg := colorful.Hex(h.BackgroundColor)
	if errFg != nil || errBg != nil {
		// Not hex (e.g. an ANSI index); fall back to the terminal's faint attribute
		return domain.Style{Foreground: h.DimColor, Faint: h.DimOpacity < 1}
	}
	return domain.Style{Foreground: fg.BlendRgb(bg, 1-h.DimOpacity).Clamped().Hex()}
}

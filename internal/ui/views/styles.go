package views

import (
	"github.com/charmbracelet/lipgloss"

	"luminol/internal/domain"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Text      lipgloss.Style
	Status    lipgloss.Style
	StatusBar lipgloss.Style
	FileName  lipgloss.Style
	Help      lipgloss.Style
	Error     lipgloss.Style
	Gutter    lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Text:      lipgloss.NewStyle(),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		StatusBar: lipgloss.NewStyle().Background(lipgloss.Color("236")),
		FileName:  lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		Help:      lipgloss.NewStyle().Faint(true),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Gutter:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// LayerStyle converts a decoration style to a lipgloss style
func LayerStyle(layer domain.Layer, s domain.Style) lipgloss.Style {
	st := lipgloss.NewStyle()
	if s.Foreground != "" {
		st = st.Foreground(lipgloss.Color(s.Foreground))
	}
	if s.Faint {
		st = st.Faint(true)
	}
	switch layer {
	case domain.LayerHighlight, domain.LayerSole:
		st = st.Bold(true)
	}
	return st
}

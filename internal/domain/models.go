package domain

import "fmt"

// Position is a line/column location in a document.
// Both fields are 0-indexed and Column is measured in characters (runes).
type Position struct {
	Line   int
	Column int
}

// String returns a human-readable representation of the position
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other
func (p Position) Compare(other Position) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Column < other.Column:
		return -1
	case p.Column > other.Column:
		return 1
	}
	return 0
}

// Before returns true if p comes before other
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// Range is a span between two positions, Start <= End
type Range struct {
	Start Position
	End   Position
}

// IsEmpty returns true if the range covers nothing
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Selection is an editor selection. Anchor is where it started, Active is the caret.
type Selection struct {
	Anchor Position
	Active Position
}

// NewSelection creates a selection from anchor to active
func NewSelection(anchor, active Position) Selection {
	return Selection{Anchor: anchor, Active: active}
}

// Caret creates an empty selection at pos
func Caret(pos Position) Selection {
	return Selection{Anchor: pos, Active: pos}
}

// IsEmpty returns true if nothing is selected
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Active
}

// Range returns the selection as a normalized range
func (s Selection) Range() Range {
	if s.Active.Before(s.Anchor) {
		return Range{Start: s.Active, End: s.Anchor}
	}
	return Range{Start: s.Anchor, End: s.Active}
}

// Occurrence is one match of the search text in rune offsets, half-open [Start, End)
type Occurrence struct {
	Start int
	End   int
}

// Len returns the number of characters covered
func (o Occurrence) Len() int {
	return o.End - o.Start
}

// Covers reports whether offset lies strictly inside the occurrence span [Start, End)
func (o Occurrence) Covers(offset int) bool {
	return offset >= o.Start && offset < o.End
}

// Style describes how a decoration layer is drawn.
// Colors are lipgloss color strings (ANSI index or hex).
type Style struct {
	Foreground string
	Faint      bool
}

// Layer names a decoration layer
type Layer string

const (
	LayerDim       Layer = "dim"
	LayerHighlight Layer = "highlight"
	LayerSole      Layer = "sole-highlight"
	LayerOverview  Layer = "overview"
)

// Layers lists every layer in paint order, bottom first
var Layers = []Layer{LayerDim, LayerHighlight, LayerSole, LayerOverview}

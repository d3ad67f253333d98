// Package editor defines the text-buffer and editor-view capabilities the
// highlight engine consumes, plus in-memory implementations used by the
// terminal viewer and by tests.
package editor

import "luminol/internal/domain"

// TextBuffer gives read access to document text.
// Offsets and columns are counted in runes.
type TextBuffer interface {
	Text() string
	Len() int
	LineCount() int
	PositionAt(offset int) domain.Position
	OffsetAt(pos domain.Position) int
	TextInRange(r domain.Range) string
	// WordRangeAt returns the word touching pos, if any
	WordRangeAt(pos domain.Position) (domain.Range, bool)
	// LineRange returns the full span of a line without its terminator
	LineRange(line int) domain.Range
}

// EditorView is the view showing a TextBuffer.
type EditorView interface {
	Buffer() TextBuffer
	// Selections returns the selection set; the first one is primary
	Selections() []domain.Selection
	// SetSelections replaces the selection set and notifies selection listeners
	SetSelections(sels []domain.Selection)
	// RevealRange scrolls r into view, centering it, if it is off-screen
	RevealRange(r domain.Range)
	SetDecorations(layer domain.Layer, style domain.Style, ranges []domain.Range)
	ClearDecorations(layer domain.Layer)
	// OnSelectionChange registers a listener called after every selection change
	OnSelectionChange(fn func())
}

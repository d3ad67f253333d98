package editor

import (
	"sync"

	"luminol/internal/domain"
)

// Decoration is one applied layer
type Decoration struct {
	Style  domain.Style
	Ranges []domain.Range
}

// View is an in-memory EditorView over a Document with a line viewport.
// Selection listeners run synchronously inside SetSelections.
type View struct {
	mu          sync.Mutex
	doc         *Document
	selections  []domain.Selection
	decorations map[domain.Layer]Decoration
	listeners   []func()

	top    int // first visible line
	height int // visible line count
}

// NewView creates a view with a caret at the document start
func NewView(doc *Document) *View {
	return &View{
		doc:         doc,
		selections:  []domain.Selection{domain.Caret(domain.Position{})},
		decorations: make(map[domain.Layer]Decoration),
		height:      1,
	}
}

// Buffer returns the document
func (v *View) Buffer() TextBuffer {
	return v.Document()
}

// Document returns the concrete document
func (v *View) Document() *Document {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.doc
}

// SetDocument swaps the document, resets selection to a clamped caret and drops
// all decorations. Listeners are notified because the selection moved.
func (v *View) SetDocument(doc *Document) {
	v.mu.Lock()
	caret := v.selections[0].Active
	v.doc = doc
	v.decorations = make(map[domain.Layer]Decoration)
	v.top = v.clampTop(v.top)
	v.mu.Unlock()

	v.SetSelections([]domain.Selection{domain.Caret(v.clamp(caret))})
}

// Selections returns a copy of the selection set
func (v *View) Selections() []domain.Selection {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]domain.Selection(nil), v.selections...)
}

// Primary returns the primary selection
func (v *View) Primary() domain.Selection {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selections[0]
}

// SetSelections replaces the selection set and notifies listeners.
// An empty set collapses to a caret at the document start.
func (v *View) SetSelections(sels []domain.Selection) {
	v.mu.Lock()
	if len(sels) == 0 {
		sels = []domain.Selection{domain.Caret(domain.Position{})}
	}
	v.selections = append([]domain.Selection(nil), sels...)
	listeners := append([]func(){}, v.listeners...)
	v.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// OnSelectionChange registers a selection listener
func (v *View) OnSelectionChange(fn func()) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.listeners = append(v.listeners, fn)
}

// MoveCaret collapses the selection to a caret at pos (a user action)
func (v *View) MoveCaret(pos domain.Position) {
	v.SetSelections([]domain.Selection{domain.Caret(v.clamp(pos))})
	v.RevealRange(domain.Range{Start: pos, End: pos})
}

// ExtendSelection moves the active end of the primary selection (a user action)
func (v *View) ExtendSelection(pos domain.Position) {
	anchor := v.Primary().Anchor
	v.SetSelections([]domain.Selection{domain.NewSelection(anchor, v.clamp(pos))})
	v.RevealRange(domain.Range{Start: pos, End: pos})
}

func (v *View) clamp(pos domain.Position) domain.Position {
	doc := v.Document()
	return doc.PositionAt(doc.OffsetAt(pos))
}

// SetViewport sets the visible line window
func (v *View) SetViewport(top, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if height < 1 {
		height = 1
	}
	v.height = height
	v.top = v.clampTop(top)
}

// SetHeight changes the viewport height, keeping the top line
func (v *View) SetHeight(height int) {
	v.mu.Lock()
	top := v.top
	v.mu.Unlock()
	v.SetViewport(top, height)
}

// Viewport returns the first visible line and the visible line count
func (v *View) Viewport() (top, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.top, v.height
}

// Scroll moves the viewport by delta lines
func (v *View) Scroll(delta int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.top = v.clampTop(v.top + delta)
}

func (v *View) clampTop(top int) int {
	maxTop := v.doc.LineCount() - v.height
	if top > maxTop {
		top = maxTop
	}
	if top < 0 {
		top = 0
	}
	return top
}

// IsVisible reports whether both ends of r lie inside the viewport
func (v *View) IsVisible(r domain.Range) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visible(r)
}

func (v *View) visible(r domain.Range) bool {
	return r.Start.Line >= v.top && r.End.Line < v.top+v.height
}

// RevealRange centers r in the viewport when it is off-screen
func (v *View) RevealRange(r domain.Range) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.visible(r) {
		return
	}
	v.top = v.clampTop(r.Start.Line - v.height/2)
}

// SetDecorations replaces one layer
func (v *View) SetDecorations(layer domain.Layer, style domain.Style, ranges []domain.Range) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.decorations[layer] = Decoration{Style: style, Ranges: append([]domain.Range(nil), ranges...)}
}

// ClearDecorations removes one layer
func (v *View) ClearDecorations(layer domain.Layer) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.decorations, layer)
}

// Decoration returns an applied layer
func (v *View) Decoration(layer domain.Layer) (Decoration, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	d, ok := v.decorations[layer]
	return d, ok
}

// Layers returns which layers are applied, in paint order
func (v *View) Layers() []domain.Layer {
	v.mu.Lock()
	defer v.mu.Unlock()
	var out []domain.Layer
	for _, l := range domain.Layers {
		if _, ok := v.decorations[l]; ok {
			out = append(out, l)
		}
	}
	return out
}

package decoration

import (
	"luminol/internal/domain"
	"luminol/internal/editor"
)

// Build derives the decoration plan for a match set.
// The dim layer always comes first and spans the whole document. Exactly one
// match gets the sole style, more than one get the highlight style, none gets
// neither. Overview markers are emitted once per occurrence, so a line with
// several matches carries several markers.
func Build(buf editor.TextBuffer, matches []domain.Occurrence, styles Styles, opts Options) Plan {
	var plan Plan

	lastLine := buf.LineCount() - 1
	whole := domain.Range{
		Start: domain.Position{},
		End:   buf.LineRange(lastLine).End,
	}
	plan.Layers = append(plan.Layers, LayerPlan{Layer: domain.LayerDim, Style: styles.Dim, Ranges: []domain.Range{whole}})

	ranges := make([]domain.Range, len(matches))
	for i, m := range matches {
		ranges[i] = domain.Range{Start: buf.PositionAt(m.Start), End: buf.PositionAt(m.End)}
	}

	switch {
	case len(matches) == 1:
		plan.Layers = append(plan.Layers, LayerPlan{Layer: domain.LayerSole, Style: styles.Sole, Ranges: ranges})
	case len(matches) > 1:
		plan.Layers = append(plan.Layers, LayerPlan{Layer: domain.LayerHighlight, Style: styles.Highlight, Ranges: ranges})
	}

	if opts.OverviewMarkers && len(matches) > 0 {
		markers := make([]domain.Range, len(ranges))
		for i, r := range ranges {
			markers[i] = buf.LineRange(r.Start.Line)
		}
		plan.Layers = append(plan.Layers, LayerPlan{Layer: domain.LayerOverview, Style: styles.Overview, Ranges: markers})
	}

	return plan
}

// Service owns the decoration layers of one view. Layers are always
// disposed and recreated together.
type Service struct {
	view    editor.EditorView
	applied bool
}

// NewService creates a decoration service for view
func NewService(view editor.EditorView) *Service {
	return &Service{view: view}
}

// Apply removes every layer, then applies plan in order
func (s *Service) Apply(plan Plan) {
	s.removeAll()
	for _, l := range plan.Layers {
		s.view.SetDecorations(l.Layer, l.Style, l.Ranges)
	}
	s.applied = len(plan.Layers) > 0
}

// Clear removes every layer
func (s *Service) Clear() {
	s.removeAll()
	s.applied = false
}

// Applied reports whether any layer is currently applied
func (s *Service) Applied() bool {
	return s.applied
}

func (s *Service) removeAll() {
	for _, layer := range domain.Layers {
		s.view.ClearDecorations(layer)
	}
}

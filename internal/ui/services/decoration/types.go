package decoration

import "luminol/internal/domain"

// Styles are the per-layer styles taken from a configuration snapshot
type Styles struct {
	Dim       domain.Style
	Highlight domain.Style
	Sole      domain.Style
	Overview  domain.Style
}

// Options control which optional layers are built
type Options struct {
	OverviewMarkers bool
}

// LayerPlan is one layer to apply
type LayerPlan struct {
	Layer  domain.Layer
	Style  domain.Style
	Ranges []domain.Range
}

// Plan is the complete decoration state for a match set, in paint order
type Plan struct {
	Layers []LayerPlan
}

// Ranges returns the ranges planned for a layer, or nil
func (p Plan) Ranges(layer domain.Layer) []domain.Range {
	for _, l := range p.Layers {
		if l.Layer == layer {
			return l.Ranges
		}
	}
	return nil
}

// Has reports whether a layer is part of the plan
func (p Plan) Has(layer domain.Layer) bool {
	for _, l := range p.Layers {
		if l.Layer == layer {
			return true
		}
	}
	return false
}

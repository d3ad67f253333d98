package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"luminol/internal/domain"
)

// Overview gutter glyphs
const (
	markerSingle = "▐"
	markerMulti  = "█"
	emptyLine    = "~"
)

// LayerState is one applied decoration layer
type LayerState struct {
	Layer  domain.Layer
	Style  domain.Style
	Ranges []domain.Range
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width      int
	Height     int
	FileName   string
	Top        int      // document line shown on the first row
	Lines      []string // visible document lines starting at Top
	Layers     []LayerState
	Selections []domain.Selection
	Status     string
	ShowStatus bool
	Message    string
	HelpLine   string
	TabWidth   int
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

type paint struct {
	layer    domain.Layer // "" for undecorated text
	selected bool
}

type span struct {
	from, to int // rune columns, half-open
}

// Render produces the complete view: document rows, each followed by an
// overview gutter cell, then the status bar.
func (r *Renderer) Render(state ViewState) string {
	if state.Width <= 0 || state.Height <= 0 {
		return ""
	}

	textWidth := state.Width - 1
	textRows := state.Height - 1
	markers := overviewCounts(state.Layers)
	layerStyles := make(map[domain.Layer]lipgloss.Style, len(state.Layers))
	for _, l := range state.Layers {
		layerStyles[l.Layer] = LayerStyle(l.Layer, l.Style)
	}

	var b strings.Builder
	for row := 0; row < textRows; row++ {
		line := state.Top + row
		if row < len(state.Lines) {
			b.WriteString(r.renderLine(state, layerStyles, line, state.Lines[row], textWidth))
			b.WriteString(r.renderMarker(layerStyles, markers[line]))
		} else {
			b.WriteString(r.styles.Gutter.Render(emptyLine))
			b.WriteString(spaces(state.Width - 1))
		}
		b.WriteByte('\n')
	}
	b.WriteString(r.renderStatusBar(state))
	return b.String()
}

func (r *Renderer) renderLine(state ViewState, layerStyles map[domain.Layer]lipgloss.Style, lineNo int, line string, width int) string {
	cells := layoutLine(line, state.TabWidth, width)
	lineLen := len([]rune(line))

	textLayers := make([][]span, len(state.Layers))
	for i, l := range state.Layers {
		if l.Layer == domain.LayerOverview {
			continue
		}
		textLayers[i] = spansOnLine(l.Ranges, lineNo, lineLen)
	}
	selected := selectionSpans(state.Selections, lineNo, lineLen)

	paintAt := func(col int) paint {
		var p paint
		for i, spans := range textLayers {
			if covers(spans, col) {
				p.layer = state.Layers[i].Layer
			}
		}
		p.selected = covers(selected, col)
		return p
	}

	var b strings.Builder
	used := 0
	var seg strings.Builder
	var cur paint
	flush := func() {
		if seg.Len() == 0 {
			return
		}
		b.WriteString(r.style(layerStyles, cur).Render(seg.String()))
		seg.Reset()
	}

	for i, c := range cells {
		p := paintAt(c.col)
		if i > 0 && p != cur {
			flush()
		}
		cur = p
		seg.WriteString(c.text)
		used += c.width
	}
	flush()

	// caret past the last rune of the line
	if caretAtEnd(state.Selections, lineNo, lineLen) && used < width && len(cells) == lineLen {
		p := paintAt(lineLen)
		p.selected = true
		b.WriteString(r.style(layerStyles, p).Render(" "))
		used++
	}

	b.WriteString(spaces(width - used))
	return b.String()
}

func (r *Renderer) style(layerStyles map[domain.Layer]lipgloss.Style, p paint) lipgloss.Style {
	st := r.styles.Text
	if p.layer != "" {
		st = layerStyles[p.layer]
	}
	if p.selected {
		st = st.Reverse(true)
	}
	return st
}

func (r *Renderer) renderMarker(layerStyles map[domain.Layer]lipgloss.Style, count int) string {
	switch {
	case count == 0:
		return " "
	case count == 1:
		return layerStyles[domain.LayerOverview].Render(markerSingle)
	default:
		return layerStyles[domain.LayerOverview].Render(markerMulti)
	}
}

func (r *Renderer) renderStatusBar(state ViewState) string {
	width := state.Width

	right := ""
	if state.ShowStatus && state.Status != "" {
		right = Truncate(state.Status, width)
	}
	room := width - lipgloss.Width(right)
	if right != "" {
		room--
	}

	left := Truncate(state.FileName, room)
	leftRendered := r.styles.FileName.Render(left)
	used := lipgloss.Width(left)

	if state.Message != "" && room-used > 2 {
		msg := Truncate(state.Message, room-used-1)
		leftRendered += " " + r.styles.Error.Render(msg)
		used += 1 + lipgloss.Width(msg)
	} else if state.HelpLine != "" && room-used > lipgloss.Width(state.HelpLine)+2 {
		leftRendered += "  " + r.styles.Help.Render(state.HelpLine)
		used += 2 + lipgloss.Width(state.HelpLine)
	}

	pad := width - used - lipgloss.Width(right)
	if pad < 0 {
		pad = 0
	}
	return leftRendered + spaces(pad) + r.styles.Status.Render(right)
}

// overviewCounts counts overview markers per line
func overviewCounts(layers []LayerState) map[int]int {
	counts := make(map[int]int)
	for _, l := range layers {
		if l.Layer != domain.LayerOverview {
			continue
		}
		for _, rg := range l.Ranges {
			counts[rg.Start.Line]++
		}
	}
	return counts
}

// spansOnLine clips ranges to one line. A range continuing past the line
// covers the line break too, which is column lineLen.
func spansOnLine(ranges []domain.Range, line, lineLen int) []span {
	var out []span
	for _, rg := range ranges {
		if rg.Start.Line > line || rg.End.Line < line {
			continue
		}
		from, to := 0, lineLen+1
		if rg.Start.Line == line {
			from = rg.Start.Column
		}
		if rg.End.Line == line {
			to = rg.End.Column
		}
		if to > from {
			out = append(out, span{from: from, to: to})
		}
	}
	return out
}

func selectionSpans(sels []domain.Selection, line, lineLen int) []span {
	ranges := make([]domain.Range, 0, len(sels))
	for _, s := range sels {
		if !s.IsEmpty() {
			ranges = append(ranges, s.Range())
		}
	}
	out := spansOnLine(ranges, line, lineLen)

	// an empty primary selection is drawn as a one-cell caret
	if len(sels) > 0 && sels[0].IsEmpty() {
		c := sels[0].Active
		if c.Line == line && c.Column < lineLen {
			out = append(out, span{from: c.Column, to: c.Column + 1})
		}
	}
	return out
}

func caretAtEnd(sels []domain.Selection, line, lineLen int) bool {
	if len(sels) == 0 || !sels[0].IsEmpty() {
		return false
	}
	c := sels[0].Active
	return c.Line == line && c.Column >= lineLen
}

func covers(spans []span, col int) bool {
	for _, s := range spans {
		if col >= s.from && col < s.to {
			return true
		}
	}
	return false
}

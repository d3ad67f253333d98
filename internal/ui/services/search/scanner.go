package search

import (
	"unicode/utf8"

	"luminol/internal/domain"
)

// NoCursor marks "no current occurrence"
const NoCursor = -1

// Result is the outcome of one scan
type Result struct {
	Matches []domain.Occurrence
	Cursor  int // index of the occurrence under the caret, or NoCursor
}

// Scan finds every non-overlapping occurrence of p in text, in document order.
// Offsets are in runes. caret is a rune offset used to seed the cursor: the first
// occurrence covering it wins, then the first one ending exactly at it.
// An empty literal yields no matches.
func Scan(text string, p *Pattern, caret int) Result {
	res := Result{Cursor: NoCursor}
	if p == nil || p.Literal == "" {
		return res
	}

	spans := p.re.FindAllStringIndex(text, -1)
	if len(spans) == 0 {
		return res
	}

	res.Matches = make([]domain.Occurrence, 0, len(spans))
	endsAtCaret := NoCursor

	// Convert byte spans to rune offsets in a single forward pass
	bytePos, runePos := 0, 0
	advance := func(to int) int {
		runePos += utf8.RuneCountInString(text[bytePos:to])
		bytePos = to
		return runePos
	}

	for _, span := range spans {
		if span[1] == span[0] {
			continue
		}
		occ := domain.Occurrence{Start: advance(span[0]), End: advance(span[1])}
		idx := len(res.Matches)
		res.Matches = append(res.Matches, occ)

		if res.Cursor == NoCursor && occ.Covers(caret) {
			res.Cursor = idx
		}
		if endsAtCaret == NoCursor && occ.End == caret {
			endsAtCaret = idx
		}
	}

	if res.Cursor == NoCursor {
		res.Cursor = endsAtCaret
	}
	return res
}

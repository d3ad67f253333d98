package editor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"luminol/internal/domain"
)

// ErrNotRegularFile is returned when a path is a directory or device
var ErrNotRegularFile = errors.New("not a regular file")

// Document is an immutable in-memory TextBuffer with line/offset tables.
type Document struct {
	runes      []rune
	text       string
	lineStarts []int // rune offset of each line start
}

// NewDocument builds a document from text. Lines are separated by '\n'.
func NewDocument(text string) *Document {
	d := &Document{
		runes:      []rune(text),
		text:       text,
		lineStarts: []int{0},
	}
	for i, r := range d.runes {
		if r == '\n' {
			d.lineStarts = append(d.lineStarts, i+1)
		}
	}
	return d
}

// LoadDocument reads a file into a document
func LoadDocument(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegularFile, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return NewDocument(string(data)), nil
}

// ReadDocument reads r to the end into a document
func ReadDocument(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return NewDocument(string(data)), nil
}

// Text returns the whole document
func (d *Document) Text() string {
	return d.text
}

// Len returns the document length in runes
func (d *Document) Len() int {
	return len(d.runes)
}

// LineCount returns the number of lines; an empty document has one line
func (d *Document) LineCount() int {
	return len(d.lineStarts)
}

// Line returns the text of a line without its terminator
func (d *Document) Line(line int) string {
	r := d.LineRange(line)
	return string(d.runes[d.lineStarts[r.Start.Line] : d.lineStarts[r.Start.Line]+r.End.Column])
}

// PositionAt maps an offset to a position, clamping to the document
func (d *Document) PositionAt(offset int) domain.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(d.runes) {
		offset = len(d.runes)
	}
	// Binary search for the last line start <= offset
	lo, hi := 0, len(d.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if d.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return domain.Position{Line: lo, Column: offset - d.lineStarts[lo]}
}

// OffsetAt maps a position to an offset, clamping line and column
func (d *Document) OffsetAt(pos domain.Position) int {
	r := d.LineRange(pos.Line)
	col := pos.Column
	if col < 0 {
		col = 0
	}
	if col > r.End.Column {
		col = r.End.Column
	}
	return d.lineStarts[r.Start.Line] + col
}

// TextInRange returns the text covered by r
func (d *Document) TextInRange(r domain.Range) string {
	start, end := d.OffsetAt(r.Start), d.OffsetAt(r.End)
	if end < start {
		start, end = end, start
	}
	return string(d.runes[start:end])
}

// LineRange returns the span of a line, clamping the line number
func (d *Document) LineRange(line int) domain.Range {
	if line < 0 {
		line = 0
	}
	if line >= len(d.lineStarts) {
		line = len(d.lineStarts) - 1
	}
	end := len(d.runes)
	if line+1 < len(d.lineStarts) {
		end = d.lineStarts[line+1] - 1
	}
	return domain.Range{
		Start: domain.Position{Line: line, Column: 0},
		End:   domain.Position{Line: line, Column: end - d.lineStarts[line]},
	}
}

// WordRangeAt returns the word containing pos. A caret just after a word
// also counts as touching it. Words are runs of letters, digits and '_'.
func (d *Document) WordRangeAt(pos domain.Position) (domain.Range, bool) {
	lineRange := d.LineRange(pos.Line)
	if pos.Line != lineRange.Start.Line {
		return domain.Range{}, false
	}
	base := d.lineStarts[pos.Line]
	line := d.runes[base : base+lineRange.End.Column]

	col := pos.Column
	if col > len(line) {
		col = len(line)
	}
	if col < 0 {
		col = 0
	}

	switch {
	case col < len(line) && isWordRune(line[col]):
	case col > 0 && isWordRune(line[col-1]):
		col--
	default:
		return domain.Range{}, false
	}

	start, end := col, col
	for start > 0 && isWordRune(line[start-1]) {
		start--
	}
	for end < len(line) && isWordRune(line[end]) {
		end++
	}
	return domain.Range{
		Start: domain.Position{Line: pos.Line, Column: start},
		End:   domain.Position{Line: pos.Line, Column: end},
	}, true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// String returns a short description for logs
func (d *Document) String() string {
	first := d.text
	if i := strings.IndexByte(first, '\n'); i >= 0 {
		first = first[:i]
	}
	return fmt.Sprintf("Document{lines=%d, first=%q}", d.LineCount(), first)
}

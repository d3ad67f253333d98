package views

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// DefaultTabWidth is the tab stop used when rendering document lines
const DefaultTabWidth = 4

// cell is one rune of a line placed on screen
type cell struct {
	text  string // rune or expanded tab
	col   int    // rune column in the document line
	x     int    // first screen column
	width int
}

// layoutLine places the runes of line on screen columns, expanding tabs and
// stopping before maxWidth is exceeded.
func layoutLine(line string, tabWidth, maxWidth int) []cell {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	var cells []cell
	x := 0
	col := 0
	for _, r := range line {
		var c cell
		switch {
		case r == '\t':
			w := tabWidth - (x % tabWidth)
			c = cell{text: spaces(w), col: col, x: x, width: w}
		case r < 0x20 || r == 0x7f:
			// caret notation, e.g. ^M for a carriage return
			c = cell{text: "^" + string(r^0x40), col: col, x: x, width: 2}
		default:
			w := runewidth.RuneWidth(r)
			if w < 1 {
				w = 1
			}
			c = cell{text: string(r), col: col, x: x, width: w}
		}
		if maxWidth >= 0 && x+c.width > maxWidth {
			break
		}
		cells = append(cells, c)
		x += c.width
		col++
	}
	return cells
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

// ColumnAt maps screen column x on line to a rune column.
// Columns past the end of the line map to the line length.
func ColumnAt(line string, x, tabWidth int) int {
	cells := layoutLine(line, tabWidth, -1)
	for _, c := range cells {
		if x < c.x+c.width {
			return c.col
		}
	}
	return len(cells)
}

// DisplayWidth reports the screen width of line with tabs expanded
func DisplayWidth(line string, tabWidth int) int {
	cells := layoutLine(line, tabWidth, -1)
	if len(cells) == 0 {
		return 0
	}
	last := cells[len(cells)-1]
	return last.x + last.width
}

// Truncate shortens s to width screen columns
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

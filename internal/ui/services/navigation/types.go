package navigation

// NoCursor marks an unset cursor
const NoCursor = -1

// State holds the cyclic cursor over the match set
type State struct {
	Cursor int
	Count  int
}

// Direction represents movement directions
type Direction string

const (
	DirectionNext Direction = "next"
	DirectionPrev Direction = "prev"
)

// Event types for navigation changes
type CursorMovedEvent struct {
	OldIndex int
	NewIndex int
}

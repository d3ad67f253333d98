package selection

import "luminol/internal/domain"

// State holds the suppression flag and the selection saved before a session
type State struct {
	// Suppressed is armed right before the engine changes the editor selection
	Suppressed bool
	Saved      []domain.Selection
	HasSaved   bool
}

package search

// State holds the last search
type State struct {
	Pattern *Pattern
	Result  Result
}

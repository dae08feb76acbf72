package search

import "hnterm/internal/hn"

// Result is one matching story. Index refers to the position in the
// story list most recently passed to Index, so the UI can map matches
// back to its selection state.
type Result struct {
	Index int
	Story hn.Story
	Score float64
}

// Searcher filters the currently displayed story list. Engines are
// re-indexed whenever the visible section changes; the index never
// outlives the process.
type Searcher interface {
	Index(stories []hn.Story) error
	Search(query string, limit int) ([]Result, error)
}

package search

import (
	"sort"
	"strings"
	"unicode"

	"hnterm/internal/hn"
)

// Engine is a dependency-free substring matcher used as the fallback
// when the bleve engine cannot be built. Titles weigh most, then story
// text, then the author handle.
type Engine struct {
	stories []hn.Story
}

func NewEngine() *Engine {
	return &Engine{}
}

func (e *Engine) Index(stories []hn.Story) error {
	e.stories = stories
	return nil
}

func (e *Engine) Search(query string, limit int) ([]Result, error) {
	terms := tokenize(query)
	if len(terms) == 0 {
		return []Result{}, nil
	}

	var results []Result
	for i, story := range e.stories {
		score := scoreField(story.Title, terms, 3.0) +
			scoreField(story.Text, terms, 1.5) +
			scoreField(story.By, terms, 1.0)
		if score > 0 {
			results = append(results, Result{Index: i, Story: story, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func scoreField(text string, terms []string, weight float64) float64 {
	if text == "" {
		return 0
	}
	lower := strings.ToLower(text)

	var score float64
	for _, term := range terms {
		idx := strings.Index(lower, term)
		if idx < 0 {
			return 0 // a field only counts when every term hits it
		}
		score += weight
		// Word-boundary matches beat mid-word ones.
		if idx == 0 || !unicode.IsLetter(rune(lower[idx-1])) {
			score += weight / 2
		}
	}
	return score
}

func tokenize(query string) []string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(query)))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) >= 2 {
			terms = append(terms, f)
		}
	}
	return terms
}

package hn

import "fmt"

const itemBaseURL = "https://news.ycombinator.com/item?id="

// Story is one Hacker News item as returned by the Firebase API. Stories
// are immutable once fetched; the cache and the UI share the same values.
type Story struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
	Text  string `json:"text,omitempty"`
	By    string `json:"by"`
	Score int    `json:"score"`
}

// CommentsURL returns the news.ycombinator.com discussion page for the
// story. Used for "open comments" and as the open target for stories
// without an external URL (Ask HN, most Jobs).
func (s Story) CommentsURL() string {
	return fmt.Sprintf("%s%d", itemBaseURL, s.ID)
}

// OpenURL returns the external link when present, otherwise the
// discussion page.
func (s Story) OpenURL() string {
	if s.URL != "" {
		return s.URL
	}
	return s.CommentsURL()
}

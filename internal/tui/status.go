package tui

import (
	"fmt"

	"hnterm/internal/hn"
)

// Canonical short status messages used across the app.
const (
	MsgLoading        = "Loading sections…"
	MsgRefreshing     = "Refreshing…"
	MsgRefreshingAll  = "Refreshing all sections…"
	MsgSummarizing    = "Summarizing…"
	MsgLoadCancelled  = "Load cancelled"
	MsgLoadTimedOut   = "Timed out while loading sections"
	MsgOpenedBrowser  = "Opened in browser"
	MsgOpenedComments = "Opened comments in browser"
	MsgSummarizerOff  = "Summarizer not configured (set HNTERM_API_KEY)"
)

func MsgSwitched(section hn.Section) string {
	return fmt.Sprintf("Switched to %s stories", section)
}

func MsgRefreshed(section hn.Section, count int) string {
	return fmt.Sprintf("Refreshed %s • %d stories", section, count)
}

func MsgLoadedSections(n int) string {
	if n == 1 {
		return "Loaded 1 section"
	}
	return fmt.Sprintf("Loaded %d sections", n)
}

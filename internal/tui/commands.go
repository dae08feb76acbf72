package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"hnterm/internal/hn"
)

// loadAllSections runs the warm-up fetch for every section. The
// orchestrator writes the cache; the resulting message carries the batch
// report back to the UI goroutine.
func (a *App) loadAllSections() tea.Cmd {
	return func() tea.Msg {
		report, err := a.orch.LoadAll(context.Background(), hn.Sections())
		return sectionsLoadedMsg{report: report, err: err}
	}
}

// loadSection fetches one section and, on success, installs the result
// in the cache. LoadOne leaves cache writes to its caller.
func (a *App) loadSection(section hn.Section) tea.Cmd {
	return func() tea.Msg {
		stories, err := a.orch.LoadOne(context.Background(), section)
		if err == nil {
			a.cache.Put(section, stories)
		}
		return sectionLoadedMsg{section: section, stories: stories, err: err}
	}
}

// rainTick schedules the next repaint while a load is in flight. The
// orchestrator advances the animation on its own loop; this tick only
// tells bubbletea to read the latest frame.
func (a *App) rainTick() tea.Cmd {
	return tea.Tick(a.cfg.Fetch.Tick, func(time.Time) tea.Msg {
		return rainFrameMsg{}
	})
}

func (a *App) summarizeStory(story hn.Story) tea.Cmd {
	return func() tea.Msg {
		text := story.Text
		if text == "" {
			text = story.URL
		}
		summarized, err := a.summarizer.Summarize(context.Background(), story.Title, text)
		return summaryReadyMsg{summary: summarized, err: err}
	}
}

// openInBrowser launches the URL off the UI goroutine and reports the
// outcome as a status message.
func (a *App) openInBrowser(url, status string) tea.Cmd {
	return func() tea.Msg {
		if err := a.openURL(url); err != nil {
			return urlOpenedMsg{err: err}
		}
		return urlOpenedMsg{status: status}
	}
}

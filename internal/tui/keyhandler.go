package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"hnterm/internal/config"
	"hnterm/internal/hn"
)

// KeyHandler is the mode state machine for all key input. Section
// switching goes through the cache-first short circuit: a cached section
// is served instantly with zero network traffic, an uncached one runs a
// single-section load.
type KeyHandler struct {
	app  *App
	keys config.KeyConfig
}

func NewKeyHandler(app *App, cfg *config.Config) *KeyHandler {
	return &KeyHandler{app: app, keys: cfg.Keys}
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app

	// While a load is in flight the only accepted input is cancel.
	if a.loading {
		key := msg.String()
		if key == kh.keys.Quit || key == "ctrl+c" {
			a.cancel.signal()
		}
		return a, nil
	}

	switch a.mode {
	case ModeMenu:
		return kh.handleMenuKeys(msg)
	case ModeSummary:
		return kh.handleSummaryKeys(msg)
	case ModePalette:
		return kh.handlePaletteKeys(msg)
	case ModeSearch:
		return kh.handleSearchKeys(msg)
	default:
		return kh.handleNormalKeys(msg)
	}
}

func (kh *KeyHandler) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app

	switch key := msg.String(); key {
	case kh.keys.Quit, "ctrl+c":
		return a, tea.Quit

	case kh.keys.Refresh:
		return a, a.startLoad(a.loadSection(a.section), MsgRefreshing)

	case kh.keys.RefreshAll:
		return a, a.startLoad(a.loadAllSections(), MsgRefreshingAll)

	case kh.keys.Search:
		return kh.enterSearchMode()

	case kh.keys.Palette:
		a.mode = ModePalette
		a.paletteInput.Reset()
		a.paletteInput.Focus()
		a.palette.Filter("")
		return a, nil

	case kh.keys.Menu:
		a.mode = ModeMenu
		a.menuIndex = 0
		return a, nil

	case kh.keys.Comments:
		return a, kh.openComments()

	case "enter":
		return a, kh.openStory()

	case "T":
		return kh.switchSection(hn.SectionTop)
	case "A":
		return kh.switchSection(hn.SectionAsk)
	case "S":
		return kh.switchSection(hn.SectionShow)
	case "J":
		return kh.switchSection(hn.SectionJobs)
	case "h":
		return kh.switchSection(a.section.Prev())
	case "l":
		return kh.switchSection(a.section.Next())

	default:
		var cmd tea.Cmd
		a.storyList, cmd = a.storyList.Update(msg)
		return a, cmd
	}
}

// switchSection serves the target from the cache when possible; only a
// cache miss reaches the network.
func (kh *KeyHandler) switchSection(section hn.Section) (tea.Model, tea.Cmd) {
	a := kh.app
	if section == a.section {
		return a, nil
	}
	a.section = section

	if stories, ok := a.cache.Get(section); ok {
		a.setStories(stories)
		a.setStatus(MsgSwitched(section), StatusInfo)
		return a, nil
	}

	return a, a.startLoad(a.loadSection(section), MsgLoading)
}

func (kh *KeyHandler) openStory() tea.Cmd {
	a := kh.app
	story, ok := a.currentStory()
	if !ok {
		return nil
	}
	return a.openInBrowser(story.OpenURL(), MsgOpenedBrowser)
}

func (kh *KeyHandler) openComments() tea.Cmd {
	a := kh.app
	story, ok := a.currentStory()
	if !ok {
		return nil
	}
	return a.openInBrowser(story.CommentsURL(), MsgOpenedComments)
}

func (kh *KeyHandler) handleMenuKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app

	switch msg.String() {
	case "esc", kh.keys.Quit:
		a.mode = ModeNormal
		return a, nil
	case "j", "down":
		a.menuIndex = (a.menuIndex + 1) % len(menuEntries())
		return a, nil
	case "k", "up":
		a.menuIndex = (a.menuIndex + len(menuEntries()) - 1) % len(menuEntries())
		return a, nil
	case "enter":
		switch a.menuIndex {
		case 0:
			return kh.summarizeSelected()
		case 1:
			a.mode = ModeNormal
			return a, kh.openStory()
		default:
			a.mode = ModeNormal
			return a, nil
		}
	}
	return a, nil
}

func (kh *KeyHandler) summarizeSelected() (tea.Model, tea.Cmd) {
	a := kh.app
	a.mode = ModeNormal

	if a.summarizer == nil {
		a.setStatus(MsgSummarizerOff, StatusWarn)
		return a, nil
	}
	story, ok := a.currentStory()
	if !ok {
		return a, nil
	}
	a.setStatus(MsgSummarizing, StatusInfo)
	return a, a.summarizeStory(story)
}

func (kh *KeyHandler) handleSummaryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app

	switch msg.String() {
	case "esc", kh.keys.Quit:
		a.mode = ModeNormal
		a.summaryView.SetContent("")
		return a, nil
	}

	var cmd tea.Cmd
	a.summaryView, cmd = a.summaryView.Update(msg)
	return a, cmd
}

func (kh *KeyHandler) handlePaletteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app

	switch msg.String() {
	case "esc":
		a.mode = ModeNormal
		a.paletteInput.Reset()
		return a, nil
	case "enter":
		if cmd, ok := a.palette.Selected(); ok {
			return kh.execute(cmd)
		}
		return a, nil
	case "down", "ctrl+n", "tab":
		a.palette.Next()
		return a, nil
	case "up", "ctrl+p", "shift+tab":
		a.palette.Prev()
		return a, nil
	}

	var cmd tea.Cmd
	a.paletteInput, cmd = a.paletteInput.Update(msg)
	a.palette.Filter(a.paletteInput.Value())
	return a, cmd
}

// execute dispatches a palette command. Every command goes through this
// one switch.
func (kh *KeyHandler) execute(cmd Command) (tea.Model, tea.Cmd) {
	a := kh.app
	a.mode = ModeNormal
	a.paletteInput.Reset()

	switch cmd.Kind {
	case CommandOpenStory:
		return a, kh.openStory()
	case CommandOpenComments:
		return a, kh.openComments()
	case CommandSummarize:
		return kh.summarizeSelected()
	case CommandSearch:
		return kh.enterSearchMode()
	case CommandSwitchSection:
		return kh.switchSection(cmd.Section)
	case CommandRefresh:
		return a, a.startLoad(a.loadSection(a.section), MsgRefreshing)
	case CommandRefreshAll:
		return a, a.startLoad(a.loadAllSections(), MsgRefreshingAll)
	case CommandQuit:
		return a, tea.Quit
	}
	return a, nil
}

func (kh *KeyHandler) enterSearchMode() (tea.Model, tea.Cmd) {
	a := kh.app

	if err := a.searchEngine.Index(a.stories); err != nil {
		a.setStatus("Search unavailable: "+err.Error(), StatusError)
		return a, nil
	}

	a.mode = ModeSearch
	a.searchInput.Reset()
	a.searchInput.Focus()
	a.layout()
	return a, nil
}

func (kh *KeyHandler) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app

	switch msg.String() {
	case "esc":
		return kh.exitSearchMode(), nil
	case "enter":
		openCmd := kh.openStory()
		return kh.exitSearchMode(), openCmd
	case "up", "down", "ctrl+n", "ctrl+p":
		var cmd tea.Cmd
		a.storyList, cmd = a.storyList.Update(msg)
		return a, cmd
	}

	prev := a.searchInput.Value()
	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	if a.searchInput.Value() != prev {
		kh.applyFilter(a.searchInput.Value())
	}
	return a, cmd
}

// exitSearchMode restores the unfiltered story list.
func (kh *KeyHandler) exitSearchMode() *App {
	a := kh.app
	a.mode = ModeNormal
	a.searchInput.Reset()
	a.storyList.SetItems(storyItems(a.stories))
	a.storyList.Select(0)
	a.layout()
	return a
}

// applyFilter narrows the visible list to search matches. Queries below
// the engines' minimum length show the full list.
func (kh *KeyHandler) applyFilter(query string) {
	a := kh.app

	if len(query) < 2 {
		a.storyList.SetItems(storyItems(a.stories))
		a.storyList.Select(0)
		return
	}

	results, err := a.searchEngine.Search(query, len(a.stories))
	if err != nil {
		a.setStatus("Search failed: "+err.Error(), StatusError)
		return
	}

	items := make([]list.Item, len(results))
	for i, r := range results {
		items[i] = storyItem{rank: r.Index, story: r.Story}
	}
	a.storyList.SetItems(items)
	a.storyList.Select(0)
}

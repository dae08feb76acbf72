package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"hnterm/internal/browser"
	"hnterm/internal/config"
	"hnterm/internal/debuglog"
	"hnterm/internal/fetch"
	"hnterm/internal/hn"
	"hnterm/internal/search"
	"hnterm/internal/store"
	"hnterm/internal/summary"
)

const apiKeyEnv = "HNTERM_API_KEY"

type App struct {
	cfg          *config.Config
	cache        *store.Cache
	orch         *fetch.Orchestrator
	frame        *Frame
	cancel       *keyCancel
	searchEngine search.Searcher
	summarizer   summary.Summarizer
	openURL      func(string) error
	keyHandler   *KeyHandler

	storyList    list.Model
	searchInput  textinput.Model
	paletteInput textinput.Model
	summaryView  viewport.Model
	palette      *Palette

	mode      Mode
	section   hn.Section
	stories   []hn.Story
	loading   bool
	rain      *MatrixRain
	menuIndex int

	status     string
	statusKind StatusKind

	width  int
	height int

	glamourRenderer *glamour.TermRenderer
	rendererWidth   int
}

func NewApp(client fetch.Client, cache *store.Cache, cfg *config.Config) *App {
	ApplyTheme(cfg.UI.Colors)

	storyList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	storyList.Title = "› top"
	storyList.SetShowStatusBar(false)
	storyList.SetFilteringEnabled(false)
	storyList.SetShowHelp(true)

	si := textinput.New()
	si.Placeholder = "Filter stories..."
	si.Prompt = "/ "

	pi := textinput.New()
	pi.Placeholder = "Type a command..."
	pi.Prompt = "› "

	orch := fetch.NewOrchestrator(client, cache, fetch.Options{
		Tick:       cfg.Fetch.Tick,
		CancelPoll: cfg.Fetch.CancelPoll,
		Deadline:   cfg.Fetch.Deadline,
	})

	frame := &Frame{}
	cancel := newKeyCancel()
	orch.SetCancelSource(cancel)

	// The naive engine is the fallback when the bleve index cannot be built.
	var engine search.Searcher
	if bleveEngine, err := search.NewBleveEngine(); err == nil {
		engine = bleveEngine
	} else {
		debuglog.Warnf("bleve engine unavailable, using naive search: %v", err)
		engine = search.NewEngine()
	}

	app := &App{
		cfg:          cfg,
		cache:        cache,
		orch:         orch,
		frame:        frame,
		cancel:       cancel,
		searchEngine: engine,
		openURL:      browser.Open,
		storyList:    storyList,
		searchInput:  si,
		paletteInput: pi,
		summaryView:  viewport.New(0, 0),
		palette:      newPalette(),
		section:      hn.SectionTop,
	}

	if key := os.Getenv(apiKeyEnv); key != "" {
		s, err := summary.New(summary.Options{
			APIKey:    key,
			Model:     cfg.Summary.Model,
			MaxTokens: cfg.Summary.MaxTokens,
		})
		if err != nil {
			debuglog.Warnf("summarizer disabled: %v", err)
		} else {
			app.summarizer = s
		}
	}

	app.keyHandler = NewKeyHandler(app, cfg)

	return app
}

// SetSummarizer replaces the story summarizer. Used by tests; nil
// disables the menu entry.
func (a *App) SetSummarizer(s summary.Summarizer) {
	a.summarizer = s
}

// SetURLOpener replaces the browser launcher. Used by tests.
func (a *App) SetURLOpener(open func(string) error) {
	a.openURL = open
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.startLoad(a.loadAllSections(), MsgLoading),
		tea.EnterAltScreen,
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		return a, nil

	case tea.KeyMsg:
		return a.keyHandler.HandleKey(msg)

	case rainFrameMsg:
		// Repaint with the latest frame while the load is in flight.
		if a.loading {
			return a, a.rainTick()
		}
		return a, nil

	case sectionsLoadedMsg:
		return a.handleSectionsLoaded(msg)

	case sectionLoadedMsg:
		return a.handleSectionLoaded(msg)

	case summaryReadyMsg:
		if msg.err != nil {
			a.setStatus(fmt.Sprintf("Failed to get summary: %v", msg.err), StatusError)
			return a, nil
		}
		a.summaryView.SetContent(a.renderMarkdown("# Claude Summary\n\n" + msg.summary))
		a.summaryView.GotoTop()
		a.mode = ModeSummary
		a.setStatus("", StatusInfo)
		return a, nil

	case urlOpenedMsg:
		if msg.err != nil {
			a.setStatus(fmt.Sprintf("Failed to open: %v", msg.err), StatusError)
		} else {
			a.setStatus(msg.status, StatusSuccess)
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleSectionsLoaded(msg sectionsLoadedMsg) (tea.Model, tea.Cmd) {
	a.loading = false

	switch {
	case msg.err == fetch.ErrCancelled:
		a.setStatus(MsgLoadCancelled, StatusWarn)
	case msg.err == fetch.ErrTimedOut:
		a.setStatus(MsgLoadTimedOut, StatusError)
	case msg.err != nil:
		a.setStatus(fmt.Sprintf("Failed to load sections: %v", msg.err), StatusError)
	default:
		if stories, ok := a.cache.Get(a.section); ok {
			a.setStories(stories)
		}
		if diag := msg.report.Diagnostic(); diag != "" {
			a.setStatus(diag, StatusWarn)
		} else {
			a.setStatus(MsgLoadedSections(len(msg.report.Loaded)), StatusSuccess)
		}
	}
	return a, nil
}

func (a *App) handleSectionLoaded(msg sectionLoadedMsg) (tea.Model, tea.Cmd) {
	a.loading = false

	switch {
	case msg.err == fetch.ErrCancelled:
		a.setStatus(MsgLoadCancelled, StatusWarn)
	case msg.err == fetch.ErrTimedOut:
		a.setStatus(MsgLoadTimedOut, StatusError)
	case msg.err != nil:
		// Prior stories and cache entries stay as they were.
		a.setStatus(fmt.Sprintf("Failed to load %s: %v", msg.section, msg.err), StatusError)
	default:
		a.setStories(msg.stories)
		a.setStatus(MsgRefreshed(msg.section, len(msg.stories)), StatusSuccess)
	}
	return a, nil
}

// setStories replaces the visible story list and resets the selection to
// the top.
func (a *App) setStories(stories []hn.Story) {
	a.stories = stories
	a.storyList.Title = "› " + strings.ToLower(a.section.String())
	a.storyList.SetItems(storyItems(stories))
	a.storyList.Select(0)
}

func (a *App) setStatus(status string, kind StatusKind) {
	a.status = status
	a.statusKind = kind
}

func (a *App) currentStory() (hn.Story, bool) {
	if item, ok := a.storyList.SelectedItem().(storyItem); ok {
		return item.story, true
	}
	return hn.Story{}, false
}

// startLoad flips the app into the loading state: a fresh rain indicator
// sized to the terminal, a clean cancel channel, and the repaint tick
// alongside the actual load command.
func (a *App) startLoad(cmd tea.Cmd, status string) tea.Cmd {
	a.loading = true
	a.setStatus(status, StatusInfo)
	a.cancel.drain()
	a.frame.SetContent("")
	a.rain = NewMatrixRain(a.width, a.height)
	a.orch.SetIndicator(a.rain, a.frame)
	return tea.Batch(cmd, a.rainTick())
}

func (a *App) layout() {
	listHeight := max(a.height-listChromeHeight(a.mode), 5)
	a.storyList.SetSize(a.width, listHeight)

	a.summaryView.Width = max((a.width*4)/5-4, 20)
	a.summaryView.Height = max((a.height*3)/5, 5)

	inputWidth := max(a.width-8, 20)
	a.searchInput.Width = inputWidth
	a.paletteInput.Width = min(inputWidth, 56)
}

// listChromeHeight is the vertical space around the story list: title
// bar, section tabs, status line, and the search box when visible.
func listChromeHeight(mode Mode) int {
	h := 3 + 1 + 1
	if mode == ModeSearch {
		h += 3
	}
	return h
}

func (a *App) View() string {
	if a.loading {
		return a.frame.Content()
	}

	title := TitleStyle.Width(max(a.width-2, 0)).Render(a.cfg.UI.Title)
	tabs := a.renderTabs()

	var content string
	switch a.mode {
	case ModeMenu:
		content = a.renderMenu()
	case ModeSummary:
		content = a.renderSummary()
	case ModePalette:
		content = a.renderPalette()
	case ModeSearch:
		content = lipgloss.JoinVertical(lipgloss.Top,
			a.storyList.View(),
			a.renderSearchBox(),
		)
	default:
		content = a.storyList.View()
	}

	return lipgloss.JoinVertical(lipgloss.Top, title, tabs, content, a.renderStatus())
}

func (a *App) renderTabs() string {
	var tabs []string
	for _, section := range hn.Sections() {
		style := TabStyle
		if section == a.section {
			style = ActiveTabStyle
		}
		tabs = append(tabs, style.Render(section.String()))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center, tabs...)
	return lipgloss.NewStyle().Width(a.width).Align(lipgloss.Center).Render(row)
}

func (a *App) renderSearchBox() string {
	return OverlayStyle.Width(max(a.width-4, 10)).Render(a.searchInput.View())
}

func (a *App) renderMenu() string {
	entries := menuEntries()
	rows := make([]string, len(entries))
	for i, entry := range entries {
		style := EntryStyle
		if i == a.menuIndex {
			style = SelectedEntryStyle
		}
		rows[i] = style.Render(entry)
	}

	box := OverlayStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		append([]string{EntryDescStyle.Render("Options"), ""}, rows...)...,
	))
	return a.centerContent(box)
}

func (a *App) renderSummary() string {
	box := OverlayStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		a.summaryView.View(),
		"",
		HelpStyle.Render("esc: close • j/k: scroll"),
	))
	return a.centerContent(box)
}

func (a *App) renderPalette() string {
	rows := []string{
		a.paletteInput.View(),
		"",
	}
	for i, cmd := range a.palette.Visible() {
		nameStyle := EntryStyle
		if i == a.palette.SelectedIndex() {
			nameStyle = SelectedEntryStyle
		}
		rows = append(rows, nameStyle.Render(cmd.Name)+" "+EntryDescStyle.Render(cmd.Description))
	}
	if len(a.palette.Visible()) == 0 {
		rows = append(rows, EntryDescStyle.Render("No matching commands"))
	}

	box := OverlayStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return a.centerContent(box)
}

func (a *App) renderStatus() string {
	if a.status == "" {
		return ""
	}
	style := StatusInfoStyle
	switch a.statusKind {
	case StatusSuccess:
		style = StatusSuccessStyle
	case StatusWarn:
		style = StatusWarnStyle
	case StatusError:
		style = StatusErrorStyle
	}
	return lipgloss.NewStyle().Width(a.width).Padding(0, 1).Render(style.Render(a.status))
}

func (a *App) centerContent(content string) string {
	height := max(a.height-listChromeHeight(ModeNormal), 5)
	return lipgloss.Place(a.width, height, lipgloss.Center, lipgloss.Center, content)
}

func menuEntries() []string {
	return []string{
		"Summarize this post",
		"Open this post",
		"Close this menu",
	}
}

func (a *App) renderMarkdown(text string) string {
	r, err := a.getRenderer()
	if err != nil {
		return text
	}
	rendered, err := r.Render(text)
	if err != nil {
		return text
	}
	return rendered
}

func (a *App) getRenderer() (*glamour.TermRenderer, error) {
	wordWrap := (a.width * 7) / 10
	if wordWrap > 100 {
		wordWrap = 100
	}
	if wordWrap < 40 {
		wordWrap = 40
	}

	if a.glamourRenderer == nil || abs(a.rendererWidth-wordWrap) > 10 {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wordWrap),
		)
		if err != nil {
			return nil, err
		}
		a.glamourRenderer = r
		a.rendererWidth = wordWrap
	}

	return a.glamourRenderer, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

type storyItem struct {
	rank  int
	story hn.Story
}

func (i storyItem) Title() string {
	return fmt.Sprintf("%2d. %s", i.rank+1, i.story.Title)
}

func (i storyItem) Description() string {
	return EntryDescStyle.Render(fmt.Sprintf("%d points by %s", i.story.Score, i.story.By))
}

func (i storyItem) FilterValue() string { return i.story.Title }

func storyItems(stories []hn.Story) []list.Item {
	items := make([]list.Item, len(stories))
	for i, s := range stories {
		items[i] = storyItem{rank: i, story: s}
	}
	return items
}

type sectionsLoadedMsg struct {
	report *fetch.Report
	err    error
}

type sectionLoadedMsg struct {
	section hn.Section
	stories []hn.Story
	err     error
}

type summaryReadyMsg struct {
	summary string
	err     error
}

type urlOpenedMsg struct {
	status string
	err    error
}

type rainFrameMsg struct{}

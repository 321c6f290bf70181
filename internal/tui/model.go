package tui

import (
	"sort"

	"cc_session_stats/internal/config"
	"cc_session_stats/internal/session"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// Model represents the watch-mode application state
type Model struct {
	watcher *session.Watcher
	cfg     *config.Config
	styles  Styles

	// Per-file statistics, keyed by session file path
	stats map[string]*session.Stats

	sessionList list.Model
	delegate    *statsDelegate

	// UI dimensions
	width  int
	height int

	// Error state
	err error
}

// NewModel creates a watch model monitoring the given session files
func NewModel(files []string, cfg *config.Config) Model {
	watcher, err := session.NewWatcher(files)
	if watcher != nil {
		watcher.Start()
	}

	styles := NewStyles(cfg.Theme)
	delegate := newStatsDelegate(styles)

	m := Model{
		watcher:  watcher,
		cfg:      cfg,
		styles:   styles,
		stats:    make(map[string]*session.Stats),
		delegate: delegate,
		err:      err,
	}

	m.sessionList = list.New([]list.Item{}, delegate, 0, 0)
	m.sessionList.SetShowTitle(false)
	m.sessionList.SetShowHelp(false)
	m.sessionList.SetShowStatusBar(false)
	m.sessionList.SetFilteringEnabled(false)
	m.sessionList.DisableQuitKeybindings()

	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.analyzeAllCmd(),
		m.watchCmd(),
	)
}

// Message types
type (
	statsLoadedMsg []*session.Stats
	statsEventMsg  session.WatchEvent
	errMsg         struct{ error }
)

// analyzeAllCmd analyzes every tracked file from scratch
func (m Model) analyzeAllCmd() tea.Cmd {
	return func() tea.Msg {
		if m.watcher == nil {
			return errMsg{m.err}
		}
		var all []*session.Stats
		for _, path := range m.watcher.Tracked() {
			stats, err := session.AnalyzeFile(path)
			if err != nil {
				continue
			}
			all = append(all, stats)
		}
		return statsLoadedMsg(all)
	}
}

// watchCmd waits for the next watcher event
func (m Model) watchCmd() tea.Cmd {
	return func() tea.Msg {
		if m.watcher == nil {
			return nil
		}
		select {
		case event := <-m.watcher.Events:
			return statsEventMsg(event)
		case err := <-m.watcher.Errors:
			return errMsg{err}
		}
	}
}

// updateSessionList rebuilds the list items in stable path order
func (m Model) updateSessionList() Model {
	paths := make([]string, 0, len(m.stats))
	for path := range m.stats {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	items := make([]list.Item, len(paths))
	for i, path := range paths {
		items[i] = statsItem{stats: m.stats[path]}
	}
	m.sessionList.SetItems(items)
	return m
}

// updateListSizes updates list dimensions based on terminal size
func (m Model) updateListSizes() Model {
	// Reserve space for header (2), totals (2), column headers (1), help (2)
	listHeight := m.height - 7
	if listHeight < 5 {
		listHeight = 5
	}
	listWidth := m.width - 4
	if listWidth < 20 {
		listWidth = 20
	}

	m.delegate.SetWidth(listWidth)
	m.sessionList.SetSize(listWidth, listHeight)
	return m
}

// totals aggregates the current per-file statistics
func (m Model) totals() *session.Stats {
	all := make([]*session.Stats, 0, len(m.stats))
	for _, s := range m.stats {
		all = append(all, s)
	}
	return session.Aggregate(all)
}

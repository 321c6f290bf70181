package tui

import tea "github.com/charmbracelet/bubbletea"

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			if m.watcher != nil {
				_ = m.watcher.Stop()
			}
			return m, tea.Quit
		case "r":
			return m, m.analyzeAllCmd()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m = m.updateListSizes()

	case statsLoadedMsg:
		for _, s := range msg {
			m.stats[s.File] = s
		}
		m = m.updateSessionList()

	case statsEventMsg:
		m.stats[msg.Path] = msg.Stats
		m = m.updateSessionList()
		return m, m.watchCmd()

	case errMsg:
		m.err = msg.error
		return m, m.watchCmd()
	}

	var cmd tea.Cmd
	m.sessionList, cmd = m.sessionList.Update(msg)
	return m, cmd
}

package tui

import (
	"fmt"
	"io"
	"path/filepath"

	"cc_session_stats/internal/report"
	"cc_session_stats/internal/session"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// statsItem wraps per-file statistics for the list component
type statsItem struct {
	stats *session.Stats
}

func (i statsItem) FilterValue() string { return i.stats.File }
func (i statsItem) Title() string {
	if i.stats.SessionID != "" {
		return i.stats.SessionID
	}
	return filepath.Base(i.stats.File)
}
func (i statsItem) Description() string {
	return fmt.Sprintf("%d messages | %d tool calls | %s tokens",
		i.stats.Messages.Total(),
		toolCallTotal(i.stats),
		report.FormatTokens(i.stats.Tokens.Sum()),
	)
}

// statsDelegate renders statistics items
type statsDelegate struct {
	styles Styles
	width  int
}

func newStatsDelegate(styles Styles) *statsDelegate {
	return &statsDelegate{styles: styles}
}

func (d *statsDelegate) SetWidth(w int) { d.width = w }

func (d *statsDelegate) Height() int                             { return 2 }
func (d *statsDelegate) Spacing() int                            { return 1 }
func (d *statsDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d *statsDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(statsItem)
	if !ok {
		return
	}

	nameStyle := d.styles.NormalItem
	if index == m.Index() {
		nameStyle = d.styles.SelectedItem
	}

	name := nameStyle.Render(i.Title())
	desc := d.styles.Muted.Render("  " + i.Description())

	fmt.Fprintf(w, "%s\n%s", name, desc)
}

// toolCallTotal sums tool-call counts across all tools
func toolCallTotal(s *session.Stats) int {
	total := 0
	for _, n := range s.ToolCalls {
		total += n
	}
	return total
}

package tui

import (
	"fmt"
	"strings"

	"cc_session_stats/internal/report"

	"github.com/charmbracelet/lipgloss"
)

// View renders the UI based on the model state
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.err != nil {
		return m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err))
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTotals())
	b.WriteString("\n")
	b.WriteString(m.renderColumnHeaders())
	b.WriteString("\n")
	b.WriteString(m.sessionList.View())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

// renderHeader renders the top header bar
func (m Model) renderHeader() string {
	title := m.styles.Title.Render("Claude Code Session Stats")
	status := m.styles.Status.Render(fmt.Sprintf("%d sessions", len(m.stats)))

	spacing := m.width - lipgloss.Width(title) - lipgloss.Width(status) - 4
	if spacing < 1 {
		spacing = 1
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		title,
		strings.Repeat(" ", spacing),
		status,
	)
}

// renderTotals renders the live aggregate line
func (m Model) renderTotals() string {
	totals := m.totals()
	sum := totals.Summarize(m.cfg.ReadTools)

	line := fmt.Sprintf(
		"tokens %s | read/search %d calls, %s chars | results %s chars",
		report.FormatTokens(totals.Tokens.Sum()),
		sum.ReadSearchCalls,
		report.FormatTokens(sum.ReadSearchChars),
		report.FormatTokens(sum.TotalToolResultChars),
	)
	return m.styles.Totals.Render(line)
}

// renderColumnHeaders renders the list column header row
func (m Model) renderColumnHeaders() string {
	return m.styles.ColumnHeader.Render("  Session")
}

// renderHelp renders the help footer
func (m Model) renderHelp() string {
	help := []string{
		"j/k:navigate",
		"r:refresh",
		"q:quit",
	}
	return m.styles.Help.Render(strings.Join(help, " | "))
}

package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"cc_session_stats/internal/config"
	"cc_session_stats/internal/session"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const topToolsByCount = 15
const topToolsBySize = 10

// Renderer writes human-readable statistics reports.
type Renderer struct {
	cfg     *config.Config
	styles  styles
	printer *message.Printer
}

// NewRenderer creates a renderer styled with the configured theme.
func NewRenderer(cfg *config.Config) *Renderer {
	return &Renderer{
		cfg:     cfg,
		styles:  newStyles(cfg.Theme),
		printer: message.NewPrinter(language.English),
	}
}

// FormatTokens formats a token count with a K/M suffix.
func FormatTokens(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// grouped formats an integer with thousands separators.
func (r *Renderer) grouped(n int) string {
	return r.printer.Sprintf("%d", n)
}

// pct returns part as an integer percentage of whole, 0 when whole is 0.
func pct(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return part * 100 / whole
}

// Session writes the per-session report for one file.
func (r *Renderer) Session(w io.Writer, s *session.Stats, verbose bool) {
	st := r.styles

	fmt.Fprintln(w)
	fmt.Fprintln(w, st.rule.Render(strings.Repeat("=", 60)))
	id := s.SessionID
	if id == "" {
		id = "unknown"
	}
	fmt.Fprintf(w, "%s %s\n", st.title.Render("Session:"), id)
	fmt.Fprintf(w, "%s %s\n", st.title.Render("File:"), s.File)

	if d, ok := duration(s.Timestamps); ok {
		fmt.Fprintf(w, "%s %s\n", st.title.Render("Duration:"), d)
	}
	if verbose && s.Timestamps.First != "" {
		fmt.Fprintf(w, "%s %s → %s\n", st.title.Render("Span:"), s.Timestamps.First, s.Timestamps.Last)
	}

	fmt.Fprintf(w, "\n%s\n", st.section.Render("--- Messages ---"))
	fmt.Fprintf(w, "  User: %d\n", s.Messages.User)
	fmt.Fprintf(w, "  Assistant: %d\n", s.Messages.Assistant)
	fmt.Fprintf(w, "  System: %d\n", s.Messages.System)

	r.tokens(w, s.Tokens)

	if len(s.Models) > 0 {
		fmt.Fprintf(w, "\n%s\n", st.section.Render("--- Models ---"))
		models := make([]string, 0, len(s.Models))
		for model := range s.Models {
			models = append(models, model)
		}
		sort.Strings(models)
		for _, model := range models {
			mu := s.Models[model]
			fmt.Fprintf(w, "  %s:\n", model)
			fmt.Fprintf(w, "    Calls: %d, In: %s, Out: %s\n",
				mu.Calls, FormatTokens(mu.Input), FormatTokens(mu.Output))
		}
	}

	if len(s.ToolCalls) > 0 {
		r.toolCalls(w, s.ToolCalls)
	}
}

// tokens writes the four-counter token table with a grand total.
func (r *Renderer) tokens(w io.Writer, t session.TokenTotals) {
	st := r.styles
	fmt.Fprintf(w, "\n%s\n", st.section.Render("--- Tokens ---"))
	fmt.Fprintf(w, "  Input:          %8s\n", st.number.Render(FormatTokens(t.Input)))
	fmt.Fprintf(w, "  Output:         %8s\n", st.number.Render(FormatTokens(t.Output)))
	fmt.Fprintf(w, "  Cache read:     %8s\n", st.number.Render(FormatTokens(t.CacheRead)))
	fmt.Fprintf(w, "  Cache creation: %8s\n", st.number.Render(FormatTokens(t.CacheCreation)))
	fmt.Fprintf(w, "  TOTAL:          %8s\n", st.number.Render(FormatTokens(t.Sum())))
}

// toolCalls writes the tool-call breakdown grouped by category.
func (r *Renderer) toolCalls(w io.Writer, calls map[string]int) {
	st := r.styles
	fmt.Fprintf(w, "\n%s\n", st.section.Render("--- Tool Calls ---"))

	readTotal := 0
	for _, tool := range r.cfg.ReadTools {
		readTotal += calls[tool]
	}
	editTotal := 0
	for _, tool := range r.cfg.EditTools {
		editTotal += calls[tool]
	}

	fmt.Fprintf(w, "  %s\n", st.readTool.Render(fmt.Sprintf("[Read/Search: %d]", readTotal)))
	for _, tool := range r.cfg.ReadTools {
		if n, ok := calls[tool]; ok {
			fmt.Fprintf(w, "    %s: %d\n", tool, n)
		}
	}

	fmt.Fprintf(w, "  %s\n", st.editTool.Render(fmt.Sprintf("[Edit/Write: %d]", editTotal)))
	for _, tool := range r.cfg.EditTools {
		if n, ok := calls[tool]; ok {
			fmt.Fprintf(w, "    %s: %d\n", tool, n)
		}
	}

	fmt.Fprintf(w, "  %s\n", st.muted.Render("[Other]"))
	for _, tc := range sortedByCount(calls) {
		if r.cfg.IsReadTool(tc.tool) || r.cfg.IsEditTool(tc.tool) {
			continue
		}
		fmt.Fprintf(w, "    %s: %d\n", tc.tool, tc.count)
	}
}

// Aggregate writes the cross-session summary report.
func (r *Renderer) Aggregate(w io.Writer, totals *session.Stats, sessions int, verbose bool) {
	st := r.styles

	fmt.Fprintln(w)
	fmt.Fprintln(w, st.rule.Render(strings.Repeat("=", 60)))
	fmt.Fprintln(w, st.title.Render(fmt.Sprintf("AGGREGATE SUMMARY (%d sessions)", sessions)))
	fmt.Fprintln(w, st.rule.Render(strings.Repeat("=", 60)))

	fmt.Fprintf(w, "\n%s\n", st.section.Render("--- Total Messages ---"))
	fmt.Fprintf(w, "  User: %d\n", totals.Messages.User)
	fmt.Fprintf(w, "  Assistant: %d\n", totals.Messages.Assistant)

	r.tokens(w, totals.Tokens)

	fmt.Fprintf(w, "\n%s\n", st.section.Render("--- Total Tool Calls ---"))
	readCalls := 0
	for _, tool := range r.cfg.ReadTools {
		readCalls += totals.ToolCalls[tool]
	}
	fmt.Fprintf(w, "  %s\n", st.readTool.Render(fmt.Sprintf("Read/Search tools: %d", readCalls)))
	for _, tool := range r.cfg.ReadTools {
		if n := totals.ToolCalls[tool]; n > 0 {
			fmt.Fprintf(w, "    %s: %d\n", tool, n)
		}
	}

	fmt.Fprintf(w, "\n  %s\n", st.label.Render("All tools:"))
	byCount := sortedByCount(totals.ToolCalls)
	if !verbose && len(byCount) > topToolsByCount {
		byCount = byCount[:topToolsByCount]
	}
	for _, tc := range byCount {
		fmt.Fprintf(w, "    %s: %d\n", tc.tool, tc.count)
	}

	if len(totals.ToolResultSizes) > 0 {
		r.resultSizes(w, totals.ToolResultSizes, verbose)
	}
}

// resultSizes writes the tool-result size breakdown with guarded averages
// and percentages.
func (r *Renderer) resultSizes(w io.Writer, sizes map[string]session.SizeStat, verbose bool) {
	st := r.styles
	fmt.Fprintf(w, "\n%s\n", st.section.Render("--- Tool Result Sizes (chars returned to model) ---"))

	totalChars := 0
	for _, sz := range sizes {
		totalChars += sz.TotalChars
	}
	readChars := 0
	for _, tool := range r.cfg.ReadTools {
		readChars += sizes[tool].TotalChars
	}

	fmt.Fprintf(w, "  %s\n", st.readTool.Render(fmt.Sprintf(
		"Read/Search tools: %s chars (%d%% of total)",
		r.grouped(readChars), pct(readChars, totalChars))))
	for _, tool := range r.cfg.ReadTools {
		sz := sizes[tool]
		if sz.TotalChars == 0 {
			continue
		}
		fmt.Fprintf(w, "    %s: %s chars (avg %s/call)\n",
			tool, r.grouped(sz.TotalChars), r.grouped(sz.AvgChars()))
	}

	fmt.Fprintf(w, "\n  %s\n", st.label.Render("All tools by size:"))
	bySize := sortedBySize(sizes)
	if !verbose && len(bySize) > topToolsBySize {
		bySize = bySize[:topToolsBySize]
	}
	for _, ts := range bySize {
		fmt.Fprintf(w, "    %s: %s chars (%d%%, avg %s/call)\n",
			ts.tool, r.grouped(ts.size.TotalChars),
			pct(ts.size.TotalChars, totalChars), r.grouped(ts.size.AvgChars()))
	}
}

// ExportConfirmation writes the post-export summary lines.
func (r *Renderer) ExportConfirmation(w io.Writer, path string, sessions int, sum session.Summary, mcpEnabled bool) {
	st := r.styles
	fmt.Fprintf(w, "\n%s %s\n", st.title.Render("Exported snapshot to"), path)
	fmt.Fprintf(w, "  Sessions: %d\n", sessions)
	fmt.Fprintf(w, "  Read/Search: %d calls, %s chars\n",
		sum.ReadSearchCalls, r.grouped(sum.ReadSearchChars))
	if mcpEnabled {
		fmt.Fprintf(w, "  MCP: enabled\n")
	}
}

// duration renders the first→last span when both timestamps parse.
func duration(ts session.Timestamps) (string, bool) {
	first, err := parseTimestamp(ts.First)
	if err != nil {
		return "", false
	}
	last, err := parseTimestamp(ts.Last)
	if err != nil {
		return "", false
	}
	d := last.Sub(first)
	if d < 0 {
		return "", false
	}
	return d.Round(time.Second).String(), true
}

func parseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

type toolCount struct {
	tool  string
	count int
}

// sortedByCount returns tool counts sorted by count descending, then name.
func sortedByCount(calls map[string]int) []toolCount {
	out := make([]toolCount, 0, len(calls))
	for tool, count := range calls {
		out = append(out, toolCount{tool, count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].tool < out[j].tool
	})
	return out
}

type toolSize struct {
	tool string
	size session.SizeStat
}

// sortedBySize returns size stats sorted by total chars descending.
func sortedBySize(sizes map[string]session.SizeStat) []toolSize {
	out := make([]toolSize, 0, len(sizes))
	for tool, sz := range sizes {
		out = append(out, toolSize{tool, sz})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].size.TotalChars != out[j].size.TotalChars {
			return out[i].size.TotalChars > out[j].size.TotalChars
		}
		return out[i].tool < out[j].tool
	})
	return out
}

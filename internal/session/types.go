package session

// MessageCounts tracks decoded records by type. Only the three recognized
// types are counted; anything else is ignored.
type MessageCounts struct {
	User      int `json:"user"`
	Assistant int `json:"assistant"`
	System    int `json:"system"`
}

// Total returns the number of counted records.
func (m MessageCounts) Total() int {
	return m.User + m.Assistant + m.System
}

// TokenTotals holds the four usage counters reported per assistant message.
// Missing counters in the source are treated as zero.
type TokenTotals struct {
	Input         int `json:"input"`
	Output        int `json:"output"`
	CacheRead     int `json:"cache_read"`
	CacheCreation int `json:"cache_creation"`
}

// Sum returns the grand total across all four counters.
func (t TokenTotals) Sum() int {
	return t.Input + t.Output + t.CacheRead + t.CacheCreation
}

// ModelUsage accumulates token usage attributed to a single model.
type ModelUsage struct {
	Input  int `json:"input"`
	Output int `json:"output"`
	Calls  int `json:"calls"`
}

// SizeStat aggregates tool_result payload sizes for one tool.
type SizeStat struct {
	Count      int `json:"count"`
	TotalChars int `json:"total_chars"`
}

// AvgChars returns the average payload size per call, or 0 for no calls.
func (s SizeStat) AvgChars() int {
	if s.Count == 0 {
		return 0
	}
	return s.TotalChars / s.Count
}

// Timestamps holds the first and last timestamp strings seen in a file.
// Comparison is lexicographic, which is order-correct for the zero-padded
// UTC RFC3339 strings Claude Code writes.
type Timestamps struct {
	First string `json:"first,omitempty"`
	Last  string `json:"last,omitempty"`
}

// Stats holds everything derived from one session file.
type Stats struct {
	SessionID       string                `json:"session_id,omitempty"`
	File            string                `json:"file"`
	Messages        MessageCounts         `json:"messages"`
	ToolCalls       map[string]int        `json:"tool_calls"`
	ToolResultSizes map[string]SizeStat   `json:"tool_result_sizes"`
	Tokens          TokenTotals           `json:"tokens"`
	Models          map[string]ModelUsage `json:"models"`
	Timestamps      Timestamps            `json:"timestamps"`
}

// NewStats returns a zero-valued Stats with initialized maps.
func NewStats(file string) *Stats {
	return &Stats{
		File:            file,
		ToolCalls:       make(map[string]int),
		ToolResultSizes: make(map[string]SizeStat),
		Models:          make(map[string]ModelUsage),
	}
}

// Summary holds the quick-comparison metrics derived from totals.
type Summary struct {
	ReadSearchCalls      int `json:"read_search_calls"`
	ReadSearchChars      int `json:"read_search_chars"`
	TotalToolResultChars int `json:"total_tool_result_chars"`
}

// Summarize derives the summary metrics, attributing the tools named in
// readTools to the read/search bucket.
func (s *Stats) Summarize(readTools []string) Summary {
	var sum Summary
	for _, tool := range readTools {
		sum.ReadSearchCalls += s.ToolCalls[tool]
		sum.ReadSearchChars += s.ToolResultSizes[tool].TotalChars
	}
	for _, sz := range s.ToolResultSizes {
		sum.TotalToolResultChars += sz.TotalChars
	}
	return sum
}

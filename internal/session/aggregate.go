package session

// Aggregate merges per-session statistics into one cross-session total.
// Message counts, token counters and per-model usage sum field-wise;
// tool-call counts and result-size aggregates union by key. An empty input
// yields all-zero totals.
func Aggregate(all []*Stats) *Stats {
	total := NewStats("")

	for _, s := range all {
		total.Messages.User += s.Messages.User
		total.Messages.Assistant += s.Messages.Assistant
		total.Messages.System += s.Messages.System

		total.Tokens.Input += s.Tokens.Input
		total.Tokens.Output += s.Tokens.Output
		total.Tokens.CacheRead += s.Tokens.CacheRead
		total.Tokens.CacheCreation += s.Tokens.CacheCreation

		for tool, count := range s.ToolCalls {
			total.ToolCalls[tool] += count
		}
		for tool, sz := range s.ToolResultSizes {
			agg := total.ToolResultSizes[tool]
			agg.Count += sz.Count
			agg.TotalChars += sz.TotalChars
			total.ToolResultSizes[tool] = agg
		}
		for model, mu := range s.Models {
			agg := total.Models[model]
			agg.Input += mu.Input
			agg.Output += mu.Output
			agg.Calls += mu.Calls
			total.Models[model] = agg
		}

		if s.Timestamps.First != "" &&
			(total.Timestamps.First == "" || s.Timestamps.First < total.Timestamps.First) {
			total.Timestamps.First = s.Timestamps.First
		}
		if s.Timestamps.Last != "" && s.Timestamps.Last > total.Timestamps.Last {
			total.Timestamps.Last = s.Timestamps.Last
		}
	}

	return total
}

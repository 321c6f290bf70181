package session

import (
	"reflect"
	"testing"
)

func TestAggregateEmpty(t *testing.T) {
	total := Aggregate(nil)

	if total.Messages.Total() != 0 {
		t.Errorf("Messages.Total() = %d, want 0", total.Messages.Total())
	}
	if total.Tokens.Sum() != 0 {
		t.Errorf("Tokens.Sum() = %d, want 0", total.Tokens.Sum())
	}
	// Derived metrics must not divide by zero
	sum := total.Summarize([]string{"Read", "Glob", "Grep"})
	if sum != (Summary{}) {
		t.Errorf("Summarize on empty totals = %+v, want zeros", sum)
	}
	if got := (SizeStat{}).AvgChars(); got != 0 {
		t.Errorf("AvgChars with zero count = %d, want 0", got)
	}
}

func TestAggregateSingleRoundTrip(t *testing.T) {
	s := analyze("one.jsonl", toLines(assistantReadLine, userResultLine))
	total := Aggregate([]*Stats{s})

	if total.Messages != s.Messages {
		t.Errorf("Messages = %+v, want %+v", total.Messages, s.Messages)
	}
	if total.Tokens != s.Tokens {
		t.Errorf("Tokens = %+v, want %+v", total.Tokens, s.Tokens)
	}
	if !reflect.DeepEqual(total.ToolCalls, s.ToolCalls) {
		t.Errorf("ToolCalls = %v, want %v", total.ToolCalls, s.ToolCalls)
	}
	if !reflect.DeepEqual(total.ToolResultSizes, s.ToolResultSizes) {
		t.Errorf("ToolResultSizes = %v, want %v", total.ToolResultSizes, s.ToolResultSizes)
	}
	if !reflect.DeepEqual(total.Models, s.Models) {
		t.Errorf("Models = %v, want %v", total.Models, s.Models)
	}
	if total.Timestamps != s.Timestamps {
		t.Errorf("Timestamps = %+v, want %+v", total.Timestamps, s.Timestamps)
	}
}

func TestAggregateKeyedUnion(t *testing.T) {
	a := NewStats("a.jsonl")
	a.Messages = MessageCounts{User: 2, Assistant: 3}
	a.Tokens = TokenTotals{Input: 10, Output: 5, CacheRead: 100}
	a.ToolCalls["Read"] = 4
	a.ToolCalls["Bash"] = 1
	a.ToolResultSizes["Read"] = SizeStat{Count: 4, TotalChars: 400}
	a.Models["opus"] = ModelUsage{Input: 10, Output: 5, Calls: 3}
	a.Timestamps = Timestamps{First: "2026-08-01T09:00:00Z", Last: "2026-08-01T10:00:00Z"}

	b := NewStats("b.jsonl")
	b.Messages = MessageCounts{User: 1, System: 2}
	b.Tokens = TokenTotals{Input: 3, CacheCreation: 7}
	b.ToolCalls["Read"] = 1
	b.ToolCalls["Grep"] = 2
	b.ToolResultSizes["Read"] = SizeStat{Count: 1, TotalChars: 50}
	b.ToolResultSizes["Grep"] = SizeStat{Count: 2, TotalChars: 20}
	b.Models["sonnet"] = ModelUsage{Input: 3, Calls: 1}
	b.Timestamps = Timestamps{First: "2026-08-01T08:30:00Z", Last: "2026-08-01T09:30:00Z"}

	total := Aggregate([]*Stats{a, b})

	if want := (MessageCounts{User: 3, Assistant: 3, System: 2}); total.Messages != want {
		t.Errorf("Messages = %+v, want %+v", total.Messages, want)
	}
	if want := (TokenTotals{Input: 13, Output: 5, CacheRead: 100, CacheCreation: 7}); total.Tokens != want {
		t.Errorf("Tokens = %+v, want %+v", total.Tokens, want)
	}
	if got := total.ToolCalls["Read"]; got != 5 {
		t.Errorf("ToolCalls[Read] = %d, want 5", got)
	}
	if got := total.ToolCalls["Grep"]; got != 2 {
		t.Errorf("ToolCalls[Grep] = %d, want 2", got)
	}
	if want := (SizeStat{Count: 5, TotalChars: 450}); total.ToolResultSizes["Read"] != want {
		t.Errorf("ToolResultSizes[Read] = %+v, want %+v", total.ToolResultSizes["Read"], want)
	}
	if len(total.Models) != 2 {
		t.Errorf("Models has %d keys, want 2", len(total.Models))
	}
	if total.Timestamps.First != "2026-08-01T08:30:00Z" {
		t.Errorf("Timestamps.First = %q, want the earliest", total.Timestamps.First)
	}
	if total.Timestamps.Last != "2026-08-01T10:00:00Z" {
		t.Errorf("Timestamps.Last = %q, want the latest", total.Timestamps.Last)
	}
}

func TestSummarize(t *testing.T) {
	s := NewStats("")
	s.ToolCalls["Read"] = 3
	s.ToolCalls["Grep"] = 2
	s.ToolCalls["Bash"] = 5
	s.ToolResultSizes["Read"] = SizeStat{Count: 3, TotalChars: 300}
	s.ToolResultSizes["Bash"] = SizeStat{Count: 5, TotalChars: 100}

	sum := s.Summarize([]string{"Read", "Glob", "Grep"})

	if sum.ReadSearchCalls != 5 {
		t.Errorf("ReadSearchCalls = %d, want 5", sum.ReadSearchCalls)
	}
	if sum.ReadSearchChars != 300 {
		t.Errorf("ReadSearchChars = %d, want 300", sum.ReadSearchChars)
	}
	if sum.TotalToolResultChars != 400 {
		t.Errorf("TotalToolResultChars = %d, want 400", sum.TotalToolResultChars)
	}
}

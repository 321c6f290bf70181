package session

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
)

// record represents a single line in the session file
type record struct {
	Type      string   `json:"type"`
	SessionID string   `json:"sessionId"`
	Timestamp string   `json:"timestamp"`
	Message   *message `json:"message,omitempty"`
}

// message represents the message field in a record
type message struct {
	Model   string          `json:"model"`
	Usage   usage           `json:"usage"`
	Content json.RawMessage `json:"content"` // string or array of blocks
}

// usage holds the token counters of one assistant message
type usage struct {
	InputTokens              int `json:"input_tokens"`
	OutputTokens             int `json:"output_tokens"`
	CacheReadInputTokens     int `json:"cache_read_input_tokens"`
	CacheCreationInputTokens int `json:"cache_creation_input_tokens"`
}

// contentBlock is one entry of a content array. The Type tag discriminates
// tool_use, tool_result, text and anything else; unrecognized types keep
// the tag and leave the other fields zero.
type contentBlock struct {
	Type      string          `json:"type"`
	Text      string          `json:"text,omitempty"`
	Name      string          `json:"name,omitempty"`      // tool_use tool name
	ID        string          `json:"id,omitempty"`        // tool_use invocation id
	ToolUseID string          `json:"tool_use_id,omitempty"` // tool_result back-reference
	Content   json.RawMessage `json:"content,omitempty"`   // tool_result payload
}

// decodeRecord parses one JSONL line. ok is false for malformed input,
// which callers skip: interrupted writes leave partial trailing lines and
// those must never fail the run.
func decodeRecord(line []byte) (record, bool) {
	if len(bytes.TrimSpace(line)) == 0 {
		return record{}, false
	}
	var rec record
	if err := json.Unmarshal(line, &rec); err != nil {
		return record{}, false
	}
	return rec, true
}

// blocks decodes the content array. String content carries no blocks.
func (m *message) blocks() []contentBlock {
	if len(m.Content) == 0 {
		return nil
	}
	var blocks []contentBlock
	if err := json.Unmarshal(m.Content, &blocks); err != nil {
		return nil
	}
	return blocks
}

// resultSize measures a tool_result payload: string length, sum of
// compact-JSON lengths for an array, compact-JSON length otherwise.
// json.Compact preserves the input byte-for-byte apart from whitespace,
// so sizes are stable across runs.
func resultSize(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return len(str)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err == nil {
		size := 0
		for _, item := range items {
			size += compactLen(item)
		}
		return size
	}

	return compactLen(raw)
}

func compactLen(raw json.RawMessage) int {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return len(raw)
	}
	return buf.Len()
}

// indexPass is the first pass over the file: it builds the invocation-id
// to tool-name index and accumulates everything except tool-result sizes.
func (s *Stats) indexPass(lines [][]byte) map[string]string {
	index := make(map[string]string)

	for _, line := range lines {
		rec, ok := decodeRecord(line)
		if !ok {
			continue
		}

		// First-seen session ID wins
		if s.SessionID == "" && rec.SessionID != "" {
			s.SessionID = rec.SessionID
		}

		// Min/max semantics keep first/last independent of arrival order
		if rec.Timestamp != "" {
			if s.Timestamps.First == "" || rec.Timestamp < s.Timestamps.First {
				s.Timestamps.First = rec.Timestamp
			}
			if s.Timestamps.Last == "" || rec.Timestamp > s.Timestamps.Last {
				s.Timestamps.Last = rec.Timestamp
			}
		}

		switch rec.Type {
		case "user":
			s.Messages.User++
		case "assistant":
			s.Messages.Assistant++
		case "system":
			s.Messages.System++
		}

		if rec.Type != "assistant" || rec.Message == nil {
			continue
		}

		u := rec.Message.Usage
		s.Tokens.Input += u.InputTokens
		s.Tokens.Output += u.OutputTokens
		s.Tokens.CacheRead += u.CacheReadInputTokens
		s.Tokens.CacheCreation += u.CacheCreationInputTokens

		model := rec.Message.Model
		if model == "" {
			model = "unknown"
		}
		mu := s.Models[model]
		mu.Input += u.InputTokens
		mu.Output += u.OutputTokens
		mu.Calls++
		s.Models[model] = mu

		for _, block := range rec.Message.blocks() {
			if block.Type != "tool_use" {
				continue
			}
			name := block.Name
			if name == "" {
				name = "unknown"
			}
			s.ToolCalls[name]++
			if block.ID != "" {
				index[block.ID] = name
			}
		}
	}

	return index
}

// correlatePass is the second pass: it resolves every tool_result block
// back to the tool that produced it and accumulates payload sizes. Two
// passes are needed because a result can reference an invocation announced
// anywhere else in the file; the index must be complete first.
func (s *Stats) correlatePass(lines [][]byte, index map[string]string) {
	for _, line := range lines {
		rec, ok := decodeRecord(line)
		if !ok || rec.Type != "user" || rec.Message == nil {
			continue
		}

		for _, block := range rec.Message.blocks() {
			if block.Type != "tool_result" {
				continue
			}
			name, found := index[block.ToolUseID]
			if !found {
				name = "unknown"
			}
			sz := s.ToolResultSizes[name]
			sz.Count++
			sz.TotalChars += resultSize(block.Content)
			s.ToolResultSizes[name] = sz
		}
	}
}

// analyze runs both passes over the in-memory lines of one file. The
// invocation index is scoped to this call and discarded afterwards.
func analyze(path string, lines [][]byte) *Stats {
	stats := NewStats(path)
	index := stats.indexPass(lines)
	stats.correlatePass(lines, index)
	return stats
}

// AnalyzeFile reads a session JSONL file fully into memory and derives its
// statistics. The only returned error is a failed open; corrupt content
// degrades to skipped lines, never to a failure.
func AnalyzeFile(path string) (*Stats, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines [][]byte
	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 8*1024*1024) // tool results can be large
	for scanner.Scan() {
		line := make([]byte, len(scanner.Bytes()))
		copy(line, scanner.Bytes())
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		// A line beyond the buffer cap aborts the scan; keep what we have
		return analyze(path, lines), nil
	}

	return analyze(path, lines), nil
}

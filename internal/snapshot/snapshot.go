package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cc_session_stats/internal/session"

	"github.com/google/uuid"
)

// Snapshot is one exported statistics record. A snapshot is built once,
// never mutated, and appended to a growing JSONL log.
type Snapshot struct {
	ID              string                      `json:"id"`
	Timestamp       string                      `json:"timestamp"`
	MCPEnabled      bool                        `json:"mcp_enabled"`
	SessionsCount   int                         `json:"sessions_count"`
	Messages        session.MessageCounts       `json:"messages"`
	Tokens          session.TokenTotals         `json:"tokens"`
	ToolCalls       map[string]int              `json:"tool_calls"`
	ToolResultSizes map[string]session.SizeStat `json:"tool_result_sizes"`
	Summary         session.Summary             `json:"summary"`
	Note            string                      `json:"note,omitempty"`
}

// New builds a snapshot from aggregated totals. The capture timestamp is
// UTC RFC3339; readTools feeds the derived summary metrics.
func New(totals *session.Stats, sessions int, mcpEnabled bool, note string, readTools []string) *Snapshot {
	return &Snapshot{
		ID:              uuid.NewString(),
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		MCPEnabled:      mcpEnabled,
		SessionsCount:   sessions,
		Messages:        totals.Messages,
		Tokens:          totals.Tokens,
		ToolCalls:       totals.ToolCalls,
		ToolResultSizes: totals.ToolResultSizes,
		Summary:         totals.Summarize(readTools),
		Note:            note,
	}
}

// Export appends snap as one line to path, creating parent directories and
// the file if absent. Prior lines are never rewritten: the log is strictly
// additive.
func Export(snap *Snapshot, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	f, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open export file: %w", err)
	}

	_, werr := f.Write(append(data, '\n'))
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("write snapshot: %w", werr)
	}
	if cerr != nil {
		return fmt.Errorf("close export file: %w", cerr)
	}
	return nil
}

// DefaultPath returns stats/session-stats.jsonl next to the executable.
func DefaultPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), "stats", "session-stats.jsonl"), nil
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"cc_session_stats/internal/config"
	"cc_session_stats/internal/report"
	"cc_session_stats/internal/session"
	"cc_session_stats/internal/snapshot"
	"cc_session_stats/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "cc_session_stats: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		verbose     bool
		jsonOut     bool
		summaryOnly bool
		all         bool
		worktrees   []string
		export      bool
		exportPath  string
		mcpEnabled  bool
		note        string
	)

	cmd := &cobra.Command{
		Use:   "cc_session_stats [files...]",
		Short: "Analyze Claude Code session JSONL files",
		Long: `Parses Claude Code session logs, reports per-session and aggregate
usage statistics (messages, tokens, tool calls, tool-result sizes), and
optionally appends a dated snapshot to a persistent stats log.`,
		Example: `  cc_session_stats session.jsonl
  cc_session_stats --all --summary-only
  cc_session_stats -w 1 -w 2 --export --note "baseline"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Global()

			files, err := selectFiles(cfg, args, all, worktrees)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return errors.New("no files to analyze; use --all, --worktree, or pass session files")
			}

			allStats := analyzeAll(files)
			out := cmd.OutOrStdout()
			r := report.NewRenderer(cfg)

			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(allStats); err != nil {
					return fmt.Errorf("encode stats: %w", err)
				}
			} else {
				if !summaryOnly {
					for _, s := range allStats {
						r.Session(out, s, verbose)
					}
				}
				if summaryOnly || len(allStats) > 1 {
					totals := session.Aggregate(allStats)
					r.Aggregate(out, totals, len(allStats), verbose)
				}
			}

			if export {
				path := exportPath
				if path == "" {
					path = cfg.ExportPath
				}
				if path == "" {
					path, err = snapshot.DefaultPath()
					if err != nil {
						return err
					}
				}

				totals := session.Aggregate(allStats)
				snap := snapshot.New(totals, len(allStats), mcpEnabled, note, cfg.ReadTools)
				if err := snapshot.Export(snap, path); err != nil {
					return err
				}
				r.ExportConfirmation(out, path, snap.SessionsCount, snap.Summary, mcpEnabled)
			}

			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "include timestamps and full tool listings")
	flags.BoolVar(&jsonOut, "json", false, "output all per-session stats as JSON")
	flags.BoolVar(&summaryOnly, "summary-only", false, "only show the aggregate summary")
	flags.BoolVar(&all, "all", false, "analyze all sessions under ~/.claude/projects")
	flags.StringSliceVarP(&worktrees, "worktree", "w", nil, "analyze specific worktree(s), e.g. -w 1 -w 2")
	flags.BoolVarP(&export, "export", "e", false, "append a snapshot to the stats log")
	flags.StringVar(&exportPath, "export-path", "", "custom export path (default: stats/session-stats.jsonl)")
	flags.BoolVar(&mcpEnabled, "mcp", false, "mark the snapshot as captured with MCP enabled")
	flags.StringVar(&note, "note", "", "attach a note to the exported snapshot")

	cmd.AddCommand(newWatchCmd())

	return cmd
}

func newWatchCmd() *cobra.Command {
	var (
		all       bool
		worktrees []string
	)

	cmd := &cobra.Command{
		Use:   "watch [files...]",
		Short: "Live statistics view that refreshes as sessions grow",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Global()

			files, err := selectFiles(cfg, args, all, worktrees)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return errors.New("no files to watch; use --all, --worktree, or pass session files")
			}

			p := tea.NewProgram(tui.NewModel(files, cfg), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run watch view: %w", err)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&all, "all", false, "watch all sessions under ~/.claude/projects")
	flags.StringSliceVarP(&worktrees, "worktree", "w", nil, "watch specific worktree(s)")

	return cmd
}

// selectFiles resolves the session files to analyze. Explicit paths that
// do not exist are skipped silently.
func selectFiles(cfg *config.Config, args []string, all bool, worktrees []string) ([]string, error) {
	switch {
	case all:
		return session.Discover(cfg.ProjectPrefix, nil)
	case len(worktrees) > 0:
		return session.Discover(cfg.ProjectPrefix, worktrees)
	default:
		return session.FilterExisting(args), nil
	}
}

// analyzeAll derives statistics for each file, skipping unreadable ones.
func analyzeAll(files []string) []*session.Stats {
	all := make([]*session.Stats, 0, len(files))
	for _, path := range files {
		stats, err := session.AnalyzeFile(path)
		if err != nil {
			continue
		}
		all = append(all, stats)
	}
	return all
}

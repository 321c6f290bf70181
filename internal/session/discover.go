package session

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ProjectsDir returns the Claude projects directory under the user's home.
func ProjectsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".claude", "projects"), nil
}

// Discover finds session files under the Claude projects directory.
// prefix filters project directory names (empty matches everything);
// worktrees, when non-empty, restricts to "-worker-<n>" suffixed
// directories.
func Discover(prefix string, worktrees []string) ([]string, error) {
	projectsDir, err := ProjectsDir()
	if err != nil {
		return nil, err
	}
	return discoverIn(projectsDir, prefix, worktrees)
}

// discoverIn scans a single projects directory for session files.
// A missing directory is treated as no sessions, not an error.
func discoverIn(projectsDir, prefix string, worktrees []string) ([]string, error) {
	entries, err := os.ReadDir(projectsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		if len(worktrees) > 0 && !matchesWorktree(entry.Name(), worktrees) {
			continue
		}
		matches, err := filepath.Glob(filepath.Join(projectsDir, entry.Name(), "*.jsonl"))
		if err != nil {
			continue
		}
		files = append(files, matches...)
	}

	sort.Strings(files)
	return files, nil
}

// matchesWorktree reports whether a project directory name carries one of
// the requested worktree identifiers.
func matchesWorktree(dirName string, worktrees []string) bool {
	for _, w := range worktrees {
		if strings.HasSuffix(dirName, "-worker-"+w) {
			return true
		}
	}
	return false
}

// FilterExisting drops paths that do not resolve to a regular file.
// Nonexistent explicit paths are skipped silently rather than failing
// the run.
func FilterExisting(paths []string) []string {
	var existing []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		existing = append(existing, path)
	}
	return existing
}

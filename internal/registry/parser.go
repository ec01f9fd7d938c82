package registry

import (
	"strings"

	"github.com/shinji-kodama/git-worktree-cursor/internal/model"
)

// Parse parses the default, line-oriented `git worktree list` output:
//
//	/path/to/repo      abc1234 [main]
//	/path/to/feature   def5678 [feature/x]
//	/path/to/detached  0123abc (detached HEAD)
//
// Field 1 is the path. Field 3, when wrapped in one pair of square
// brackets, is the branch. A missing or parenthesised third field gives
// model.DefaultBranchSentinel. Lines with fewer than two fields are
// skipped, and a path seen before is dropped. Output keeps input order.
func Parse(raw, primaryRoot string) []model.Worktree {
	worktrees := []model.Worktree{}
	seen := make(map[string]struct{})

	for _, line := range strings.Split(raw, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		path := fields[0]
		if _, dup := seen[path]; dup {
			continue
		}
		seen[path] = struct{}{}

		branch, detached := model.DefaultBranchSentinel, true
		if len(fields) >= 3 {
			branch, detached = branchField(fields[2])
		}

		worktrees = append(worktrees, model.Worktree{
			Path:     path,
			Branch:   branch,
			IsMain:   path == primaryRoot,
			Detached: detached,
		})
	}
	return worktrees
}

// branchField strips one pair of enclosing brackets. A "(" prefix marks
// git's no-branch annotations such as "(detached HEAD)" and "(bare)", which
// report the sentinel and detached.
func branchField(field string) (string, bool) {
	if strings.HasPrefix(field, "(") {
		return model.DefaultBranchSentinel, true
	}
	if len(field) >= 2 && strings.HasPrefix(field, "[") && strings.HasSuffix(field, "]") {
		return field[1 : len(field)-1], false
	}
	return field, false
}

// ParsePorcelain parses `git worktree list --porcelain`, which survives
// paths containing whitespace.
//
// Each worktree is a block of "key value" lines terminated by a blank line:
//
//	worktree /path/to/main
//	HEAD abc123
//	branch refs/heads/main
//
// Standalone markers like "bare" or "detached" leave the branch unset,
// which maps to the sentinel with Detached set. The same dedup and ordering rules as Parse
// apply.
func ParsePorcelain(raw, primaryRoot string) []model.Worktree {
	worktrees := []model.Worktree{}
	seen := make(map[string]struct{})

	var current *model.Worktree
	flush := func() {
		if current == nil {
			return
		}
		if _, dup := seen[current.Path]; !dup {
			seen[current.Path] = struct{}{}
			worktrees = append(worktrees, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			flush()
			continue
		}

		key, value, _ := strings.Cut(line, " ")
		switch key {
		case "worktree":
			flush()
			current = &model.Worktree{
				Path:     value,
				Branch:   model.DefaultBranchSentinel,
				IsMain:   value == primaryRoot,
				Detached: true,
			}
		case "branch":
			if current != nil && value != "" {
				current.Branch = strings.TrimPrefix(value, "refs/heads/")
				current.Detached = false
			}
		}
	}
	flush()

	return worktrees
}

// Package main is the entry point for the git-worktree-cursor CLI.
//
// The binary creates git worktrees next to the repository, copies local-only
// files into them and opens them in the editor. All functionality lives in
// the internal/cli package.
//
// Build-time variables (version, commit, date) are injected via ldflags.
package main

import (
	"github.com/shinji-kodama/git-worktree-cursor/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	cli.Execute(cli.NewRootCommand())
}

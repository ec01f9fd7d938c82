// Package cli implements the cobra-based CLI commands for git-worktree-cursor.
//
// Each subcommand (list, create, delete, patterns) is defined in its own
// file within this package. root.go defines the root command that serves as
// the parent for all subcommands and handles global flags.
package cli

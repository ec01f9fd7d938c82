// Package model defines the domain types and value objects for the
// git-worktree-cursor CLI.
//
// This package contains pure data structures with no external dependencies:
// the Worktree record, deletion selections, and branch-name validation.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model

// Package worktree is the boundary between git-worktree-cursor and the
// processes it drives: git and the editor launcher.
//
// Mutating operations shell out to the git binary (via os/exec) so the
// behavior is exactly what the user sees in their terminal, including
// hooks and worktree administration files. Repository discovery uses
// go-git, which needs no child process.
//
// Executor is the narrow interface the rest of the module depends on.
// Manager is the real implementation; Fake is a recording stand-in with
// scripted failures for tests.
package worktree

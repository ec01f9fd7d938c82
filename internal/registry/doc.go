// Package registry turns `git worktree list` output into worktree records
// and exposes them to presentation code through a refreshable View.
//
// Records are recomputed from a fresh listing every time; nothing here
// caches or mutates them.
package registry

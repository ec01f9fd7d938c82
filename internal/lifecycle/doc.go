// Package lifecycle orchestrates worktree creation and deletion.
//
// Create validates the branch name, derives the destination, adds the
// worktree, propagates local-only files into it and opens the editor.
// Delete removes a batch of worktrees, optionally deleting their branches
// as well. Both report progress as Events and signal a single refresh once
// the worktree set has changed.
//
// Operations on one Manager are serialized. Once started, an operation
// runs to completion even if the caller's context is cancelled.
package lifecycle

// Package localfiles copies machine-local files (environment overrides,
// *.local.* configs, editor workspace settings) from the source working
// copy into a freshly created worktree.
//
// These files are deliberately excluded from version control, so a new
// worktree would otherwise start without them. Propagation is best-effort:
// every failure is logged and suppressed, and nothing here can fail the
// worktree creation that triggered it.
package localfiles

// Package walker enumerates the regular files of a working tree.
//
// Directories whose name begins with ".git" (the repository metadata, plus
// .github and friends) and dependency caches named "node_modules" are pruned
// from descent entirely: their subtrees can be arbitrarily large and are
// never the home of machine-local configuration. Unreadable directories are
// skipped without error.
//
// A symbolic link is reported when it resolves to a regular file, since a
// linked .env is still a local file. Links to directories are never
// followed.
package walker

package walker

import (
	"iter"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

const (
	// vcsPrefix marks version-control metadata directories.
	vcsPrefix = ".git"

	// dependencyCache is the package-manager cache directory name.
	dependencyCache = "node_modules"
)

// SkipDir reports whether a directory with the given base name is pruned.
func SkipDir(name string) bool {
	return strings.HasPrefix(name, vcsPrefix) || name == dependencyCache
}

// Walk returns a lazy sequence of every regular file under the root of
// fsys, as slash-separated paths relative to that root. Entries are visited
// in lexical order. Each range over the sequence starts a fresh walk.
func Walk(fsys billy.Filesystem) iter.Seq[string] {
	return func(yield func(string) bool) {
		walkDir(fsys, "", yield)
	}
}

// Files walks the directory tree at root on the OS filesystem and yields
// absolute file paths. Links to files outside root resolve normally.
func Files(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		abs, err := filepath.Abs(root)
		if err != nil {
			return
		}
		for rel := range Walk(osfs.New(abs)) {
			if !yield(filepath.Join(abs, filepath.FromSlash(rel))) {
				return
			}
		}
	}
}

// walkDir visits dir and returns false once the consumer stops.
func walkDir(fsys billy.Filesystem, dir string, yield func(string) bool) bool {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		// Permission denied or removed mid-walk: skip, keep going with siblings.
		return true
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		path := fsys.Join(dir, entry.Name())
		mode := entry.Mode()

		switch {
		case mode&os.ModeSymlink != 0:
			target, err := fsys.Stat(path)
			if err != nil || !target.Mode().IsRegular() {
				continue
			}
			if !yield(filepath.ToSlash(path)) {
				return false
			}
		case entry.IsDir():
			if SkipDir(entry.Name()) {
				continue
			}
			if !walkDir(fsys, path, yield) {
				return false
			}
		case mode.IsRegular():
			if !yield(filepath.ToSlash(path)) {
				return false
			}
		}
	}
	return true
}

package lifecycle

import (
	"path/filepath"
	"strings"
)

// PathStrategy derives a new worktree's destination directory.
type PathStrategy func(repoRoot string, req CreateRequest) string

// WorktreeDirSuffix is appended to the repository name to form the
// conventional container directory next to the repository.
const WorktreeDirSuffix = "-worktree"

// ConventionPath places the worktree at
// <dir(repoRoot)>/<repoName>-worktree/<branch>. Slashes in the branch name
// become nested directories.
func ConventionPath(repoRoot, branch string) string {
	repoName := filepath.Base(repoRoot)
	return filepath.Join(filepath.Dir(repoRoot), repoName+WorktreeDirSuffix, filepath.FromSlash(branch))
}

// FlattenedPath places the worktree directly under parentDir, with every
// "/" in the branch name replaced by "-".
func FlattenedPath(parentDir, branch string) string {
	return filepath.Join(parentDir, strings.ReplaceAll(branch, "/", "-"))
}

// DefaultPathStrategy uses FlattenedPath when the request names a parent
// directory and ConventionPath otherwise.
func DefaultPathStrategy(repoRoot string, req CreateRequest) string {
	if req.ParentDir != "" {
		return FlattenedPath(req.ParentDir, req.Branch)
	}
	return ConventionPath(repoRoot, req.Branch)
}

// displayPath shortens dest relative to the directory holding the
// repository, e.g. "app-worktree/feature/x". Destinations elsewhere are
// shown in full.
func displayPath(repoRoot, dest string) string {
	rel, err := filepath.Rel(filepath.Dir(repoRoot), dest)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return dest
	}
	return filepath.ToSlash(rel)
}

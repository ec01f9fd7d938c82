package worktree

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/shinji-kodama/git-worktree-cursor/internal/model"
)

// Op names an Executor capability.
type Op string

const (
	OpList         Op = "list"
	OpAdd          Op = "add"
	OpRemove       Op = "remove"
	OpDeleteBranch Op = "delete-branch"
	OpOpenEditor   Op = "open-editor"
)

// Call records one Executor invocation.
type Call struct {
	Op       Op
	RepoRoot string
	Path     string
	Branch   string
	Force    bool
}

type fakeEntry struct {
	path   string
	branch string
}

// Fake is an in-memory Executor. It keeps a worktree table that AddWorktree
// and RemoveWorktree mutate and ListWorktrees renders in git's formats, so
// a create followed by a list behaves as it would against a real
// repository. Failures are scripted per capability with FailOn.
type Fake struct {
	mu       sync.Mutex
	calls    []Call
	entries  []fakeEntry
	failures map[Op]map[string]error
	listing  *string
}

var _ Executor = (*Fake)(nil)

// NewFake creates a Fake whose primary worktree is root on branch.
func NewFake(root, branch string) *Fake {
	return &Fake{
		entries:  []fakeEntry{{path: root, branch: branch}},
		failures: make(map[Op]map[string]error),
	}
}

// FailOn makes op fail with err. key narrows the failure to one path (add,
// remove, open-editor) or one branch (delete-branch); an empty key matches
// every call.
func (f *Fake) FailOn(op Op, key string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failures[op] == nil {
		f.failures[op] = make(map[string]error)
	}
	f.failures[op][key] = err
}

// SetListing replaces the rendered table with raw, returned verbatim by
// every later ListWorktrees call.
func (f *Fake) SetListing(raw string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listing = &raw
}

// AddEntry inserts a worktree into the table without recording a call.
func (f *Fake) AddEntry(path, branch string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, fakeEntry{path: path, branch: branch})
}

// Calls returns a copy of the recorded calls in order.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

// CallsFor returns the recorded calls of one capability.
func (f *Fake) CallsFor(op Op) []Call {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []Call
	for _, c := range f.calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// WasCalled reports whether op was invoked at least once.
func (f *Fake) WasCalled(op Op) bool {
	return len(f.CallsFor(op)) > 0
}

// ListWorktrees renders the table in the short or porcelain format.
func (f *Fake) ListWorktrees(_ context.Context, repoRoot string, porcelain bool) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, Call{Op: OpList, RepoRoot: repoRoot})
	if err := f.failure(OpList, ""); err != nil {
		return "", err
	}
	if f.listing != nil {
		return *f.listing, nil
	}

	var b strings.Builder
	for i, e := range f.entries {
		sha := fmt.Sprintf("%07x", 0xabc1230+i)
		if porcelain {
			fmt.Fprintf(&b, "worktree %s\nHEAD %s\nbranch refs/heads/%s\n\n", e.path, sha, e.branch)
			continue
		}
		fmt.Fprintf(&b, "%s  %s [%s]\n", e.path, sha, e.branch)
	}
	return b.String(), nil
}

// AddWorktree records the call and adds the entry. Like git, it refuses a
// path or branch that is already checked out.
func (f *Fake) AddWorktree(_ context.Context, repoRoot, path, branch string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, Call{Op: OpAdd, RepoRoot: repoRoot, Path: path, Branch: branch})
	if err := f.failure(OpAdd, path); err != nil {
		return err
	}
	for _, e := range f.entries {
		if e.branch == branch {
			return gitError("worktree add", fmt.Sprintf("fatal: a branch named '%s' already exists", branch))
		}
		if e.path == path {
			return gitError("worktree add", fmt.Sprintf("fatal: '%s' already exists", path))
		}
	}
	f.entries = append(f.entries, fakeEntry{path: path, branch: branch})
	return nil
}

// RemoveWorktree records the call and drops the entry.
func (f *Fake) RemoveWorktree(_ context.Context, repoRoot, path string, force bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, Call{Op: OpRemove, RepoRoot: repoRoot, Path: path, Force: force})
	if err := f.failure(OpRemove, path); err != nil {
		return err
	}
	i := slices.IndexFunc(f.entries, func(e fakeEntry) bool { return e.path == path })
	if i < 0 {
		return gitError("worktree remove", fmt.Sprintf("fatal: '%s' is not a working tree", path))
	}
	f.entries = slices.Delete(f.entries, i, i+1)
	return nil
}

// DeleteBranch records the call.
func (f *Fake) DeleteBranch(_ context.Context, repoRoot, branch string, force bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, Call{Op: OpDeleteBranch, RepoRoot: repoRoot, Branch: branch, Force: force})
	return f.failure(OpDeleteBranch, branch)
}

// OpenEditor records the call.
func (f *Fake) OpenEditor(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, Call{Op: OpOpenEditor, Path: path})
	return f.failure(OpOpenEditor, path)
}

// failure returns the scripted error for op and key. Must hold f.mu.
func (f *Fake) failure(op Op, key string) error {
	byKey := f.failures[op]
	if err, ok := byKey[key]; ok {
		return err
	}
	return byKey[""]
}

func gitError(args, stderr string) error {
	return model.NewCLIError(model.ExitGitError, fmt.Sprintf("git %s failed: %s", args, stderr))
}

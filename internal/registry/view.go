package registry

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/shinji-kodama/git-worktree-cursor/internal/model"
)

// MsgNoWorkspace is reported through the info callback when the view has
// no root to list.
const MsgNoWorkspace = "No workspace folder open"

// Lister produces raw worktree listings. worktree.Executor satisfies it.
type Lister interface {
	ListWorktrees(ctx context.Context, repoRoot string, porcelain bool) (string, error)
}

// View presents the worktrees of one repository. It never caches: each
// List call asks the Lister again. Subscribers are told when a mutation
// has happened so they can list again.
type View struct {
	root      string
	lister    Lister
	porcelain bool
	info      func(string)
	logger    *slog.Logger

	mu     sync.Mutex
	nextID int
	subs   map[int]func()
}

// ViewOption configures a View.
type ViewOption func(*View)

// WithInfo sets the callback for informational, non-error messages.
func WithInfo(fn func(string)) ViewOption {
	return func(v *View) { v.info = fn }
}

// WithPorcelain makes the view request and parse the porcelain format.
func WithPorcelain() ViewOption {
	return func(v *View) { v.porcelain = true }
}

// WithViewLogger sets the logger.
func WithViewLogger(logger *slog.Logger) ViewOption {
	return func(v *View) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// NewView creates a View over the repository at root.
func NewView(root string, lister Lister, opts ...ViewOption) *View {
	v := &View{
		root:   root,
		lister: lister,
		info:   func(string) {},
		logger: slog.Default(),
		subs:   make(map[int]func()),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Root returns the primary workspace root.
func (v *View) Root() string { return v.root }

// List returns the current worktree records. Without a root it reports
// MsgNoWorkspace and returns an empty slice.
func (v *View) List(ctx context.Context) ([]model.Worktree, error) {
	if v.root == "" {
		v.info(MsgNoWorkspace)
		return []model.Worktree{}, nil
	}

	raw, err := v.lister.ListWorktrees(ctx, v.root, v.porcelain)
	if err != nil {
		return nil, err
	}

	var worktrees []model.Worktree
	if v.porcelain {
		worktrees = ParsePorcelain(raw, v.root)
	} else {
		worktrees = Parse(raw, v.root)
	}
	v.logger.Debug("listed worktrees", "root", v.root, "count", len(worktrees))
	return worktrees, nil
}

// Subscribe registers fn to run on every Refresh. The returned function
// removes the registration; calling it more than once is harmless.
func (v *View) Subscribe(fn func()) func() {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := v.nextID
	v.nextID++
	v.subs[id] = fn

	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		delete(v.subs, id)
	}
}

// Refresh notifies subscribers, in registration order, that the worktree
// set may have changed.
func (v *View) Refresh() {
	v.mu.Lock()
	ids := make([]int, 0, len(v.subs))
	for id := range v.subs {
		ids = append(ids, id)
	}
	fns := make([]func(), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, v.subs[id])
	}
	v.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

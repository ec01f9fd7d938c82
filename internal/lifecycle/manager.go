package lifecycle

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shinji-kodama/git-worktree-cursor/internal/localfiles"
	"github.com/shinji-kodama/git-worktree-cursor/internal/worktree"
)

// Step is a state of the create or delete state machine.
type Step string

// Create steps.
const (
	StepValidating      Step = "validating"
	StepCreating        Step = "creating"
	StepPropagating     Step = "propagating-local-files"
	StepLaunchingEditor Step = "launching-editor"
	StepDone            Step = "done"
	StepFailed          Step = "failed"
)

// Delete steps, one machine per entry. A successful entry also ends in
// StepDone.
const (
	StepPending        Step = "pending"
	StepRemoving       Step = "removing"
	StepBranchDeleting Step = "branch-deleting"
	StepRemoveFailed   Step = "removing-failed"
)

// Event is a progress notification. Err is set on failure steps.
type Event struct {
	Step    Step
	Branch  string
	Path    string
	Message string
	Err     error
}

// Propagator copies local-only files into a new worktree.
// *localfiles.Propagator satisfies it.
type Propagator interface {
	Propagate(ctx context.Context, sourceRoot, destRoot string) localfiles.Result
}

// Refresher is told when the worktree set has changed.
type Refresher interface {
	Refresh()
}

// Manager runs lifecycle operations against one repository.
type Manager struct {
	repoRoot     string
	exec         worktree.Executor
	prop         Propagator
	logger       *slog.Logger
	notify       func(Event)
	refresher    Refresher
	pathStrategy PathStrategy
	launchEditor bool

	mu sync.Mutex
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithNotifier sets the progress callback. It is called synchronously on
// the goroutine running the operation.
func WithNotifier(fn func(Event)) Option {
	return func(m *Manager) {
		if fn != nil {
			m.notify = fn
		}
	}
}

// WithRefresher sets the refresh target.
func WithRefresher(r Refresher) Option {
	return func(m *Manager) { m.refresher = r }
}

// WithPathStrategy overrides how destinations are derived.
func WithPathStrategy(s PathStrategy) Option {
	return func(m *Manager) {
		if s != nil {
			m.pathStrategy = s
		}
	}
}

// WithEditorLaunch toggles the launching-editor step.
func WithEditorLaunch(enabled bool) Option {
	return func(m *Manager) { m.launchEditor = enabled }
}

// New creates a Manager for the repository whose primary working tree is
// repoRoot. A nil prop falls back to the default local file patterns.
func New(repoRoot string, exec worktree.Executor, prop Propagator, opts ...Option) *Manager {
	m := &Manager{
		repoRoot:     repoRoot,
		exec:         exec,
		prop:         prop,
		logger:       slog.Default(),
		notify:       func(Event) {},
		pathStrategy: DefaultPathStrategy,
		launchEditor: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.prop == nil {
		m.prop = localfiles.New(nil, m.logger)
	}
	return m
}

func (m *Manager) emit(ev Event) {
	m.logger.Debug("lifecycle step", "step", ev.Step, "branch", ev.Branch, "path", ev.Path)
	m.notify(ev)
}

func (m *Manager) refresh() {
	if m.refresher != nil {
		m.refresher.Refresh()
	}
}

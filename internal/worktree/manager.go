package worktree

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"

	"github.com/shinji-kodama/git-worktree-cursor/internal/model"
)

// DefaultEditor is the editor launcher used when none is configured.
const DefaultEditor = "cursor"

// Executor is the capability set the lifecycle needs from the outside
// world. Every method blocks until the external process exits.
type Executor interface {
	// ListWorktrees returns the raw `git worktree list` output, in
	// porcelain form when porcelain is true.
	ListWorktrees(ctx context.Context, repoRoot string, porcelain bool) (string, error)

	// AddWorktree creates a worktree at path on a new branch.
	AddWorktree(ctx context.Context, repoRoot, path, branch string) error

	// RemoveWorktree removes the worktree at path.
	RemoveWorktree(ctx context.Context, repoRoot, path string, force bool) error

	// DeleteBranch deletes a local branch.
	DeleteBranch(ctx context.Context, repoRoot, branch string, force bool) error

	// OpenEditor opens path in the editor.
	OpenEditor(ctx context.Context, path string) error
}

// Manager implements Executor by invoking the git CLI and the editor
// launcher as child processes.
type Manager struct {
	editor []string
	logger *slog.Logger
}

var _ Executor = (*Manager)(nil)

// Option configures a Manager.
type Option func(*Manager)

// WithEditor sets the editor command. The command is split on whitespace so
// extra arguments can be given, e.g. "code --new-window".
func WithEditor(command string) Option {
	return func(m *Manager) {
		if fields := strings.Fields(command); len(fields) > 0 {
			m.editor = fields
		}
	}
}

// WithLogger sets the logger used for command tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates a Manager. Without options it launches DefaultEditor
// and logs to slog.Default().
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		editor: []string{DefaultEditor},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Editor returns the editor command line.
func (m *Manager) Editor() string {
	return strings.Join(m.editor, " ")
}

// ListWorktrees runs `git worktree list`, with --porcelain when requested.
func (m *Manager) ListWorktrees(ctx context.Context, repoRoot string, porcelain bool) (string, error) {
	args := []string{"worktree", "list"}
	if porcelain {
		args = append(args, "--porcelain")
	}
	return m.runGit(ctx, repoRoot, args...)
}

// AddWorktree runs `git worktree add <path> -b <branch>`. The branch must
// not exist yet; git's refusal is returned verbatim if it does.
func (m *Manager) AddWorktree(ctx context.Context, repoRoot, path, branch string) error {
	_, err := m.runGit(ctx, repoRoot, "worktree", "add", path, "-b", branch)
	return err
}

// RemoveWorktree runs `git worktree remove [--force] <path>`. Without force
// git refuses to remove a worktree with modified or untracked files.
func (m *Manager) RemoveWorktree(ctx context.Context, repoRoot, path string, force bool) error {
	args := []string{"worktree", "remove", path}
	if force {
		args = []string{"worktree", "remove", "--force", path}
	}
	_, err := m.runGit(ctx, repoRoot, args...)
	return err
}

// DeleteBranch runs `git branch -D <branch>` (or -d without force).
func (m *Manager) DeleteBranch(ctx context.Context, repoRoot, branch string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	_, err := m.runGit(ctx, repoRoot, "branch", flag, branch)
	return err
}

// OpenEditor launches the editor on path and waits for the launcher to
// exit. GUI launchers such as cursor return as soon as the window opens.
func (m *Manager) OpenEditor(ctx context.Context, path string) error {
	args := append(append([]string(nil), m.editor[1:]...), path)

	// #nosec G204 -- the editor comes from the user's own configuration
	cmd := exec.CommandContext(ctx, m.editor[0], args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	m.logger.Debug("launching editor", "command", m.editor[0], "args", args)
	if err := cmd.Run(); err != nil {
		message := fmt.Sprintf("failed to open %s in %s", path, m.Editor())
		if s := strings.TrimSpace(stderr.String()); s != "" {
			message = fmt.Sprintf("%s: %s", message, s)
		}
		return model.WrapCLIError(model.ExitEditorError, message, err)
	}
	return nil
}

// runGit executes git in repoPath and returns stdout.
//
// The directory is passed with -C rather than cmd.Dir so git resolves it
// itself. stdout and stderr are captured separately; on failure the trimmed
// stderr becomes part of a CLIError carrying ExitGitError.
func (m *Manager) runGit(ctx context.Context, repoPath string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)

	// #nosec G204 -- args are constructed internally
	cmd := exec.CommandContext(ctx, "git", fullArgs...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	m.logger.Debug("running git", "dir", repoPath, "args", args)
	if err := cmd.Run(); err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		message := fmt.Sprintf("git %s failed", strings.Join(args, " "))
		if stderrStr != "" {
			message = fmt.Sprintf("%s: %s", message, stderrStr)
		}
		return "", model.WrapCLIError(model.ExitGitError, message, err)
	}

	return stdout.String(), nil
}

// RepoRoot returns the top-level directory of the working tree that
// contains dir, with symlinks resolved so it compares equal to the paths
// git prints. Outside a repository it returns a CLIError with
// ExitNotInRepository.
func RepoRoot(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return "", model.WrapCLIError(model.ExitNotInRepository,
			fmt.Sprintf("not in a git repository: %s", dir), err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", model.WrapCLIError(model.ExitNotInRepository,
			"repository has no working tree", err)
	}

	root := wt.Filesystem.Root()
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	return root, nil
}

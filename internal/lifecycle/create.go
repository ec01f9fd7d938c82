package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shinji-kodama/git-worktree-cursor/internal/localfiles"
	"github.com/shinji-kodama/git-worktree-cursor/internal/model"
)

// CreateRequest describes a worktree to create.
type CreateRequest struct {
	// Branch is the new branch name.
	Branch string

	// ParentDir, when set, selects the flattened layout under this
	// directory instead of the conventional sibling directory.
	ParentDir string
}

// CreateResult describes a created worktree. It is populated as far as
// the operation got, so a failed editor launch still reports Path.
type CreateResult struct {
	Branch         string            `json:"branch" yaml:"branch"`
	Path           string            `json:"path" yaml:"path"`
	Display        string            `json:"display" yaml:"display"`
	Propagation    localfiles.Result `json:"-" yaml:"-"`
	EditorLaunched bool              `json:"editorLaunched" yaml:"editorLaunched"`
}

// Create runs the create state machine:
// validating, creating, propagating-local-files, launching-editor, done.
// Any step other than propagation can move it to failed. Nothing is rolled
// back on failure.
func (m *Manager) Create(ctx context.Context, req CreateRequest) (CreateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ctx = context.WithoutCancel(ctx)

	branch := strings.TrimSpace(req.Branch)
	res := CreateResult{Branch: branch}
	m.emit(Event{Step: StepValidating, Branch: branch})

	if err := model.ValidateBranchName(req.Branch); err != nil {
		return res, m.fail(res, err)
	}
	req.Branch = branch

	dest := m.pathStrategy(m.repoRoot, req)
	res.Path = dest
	res.Display = displayPath(m.repoRoot, dest)

	if err := checkDestination(dest); err != nil {
		return res, m.fail(res, err)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return res, m.fail(res, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to create parent directory for %s", dest), err))
	}

	m.emit(Event{Step: StepCreating, Branch: branch, Path: dest, Message: "Creating worktree..."})
	if err := m.exec.AddWorktree(ctx, m.repoRoot, dest, branch); err != nil {
		return res, m.fail(res, err)
	}

	m.emit(Event{Step: StepPropagating, Branch: branch, Path: dest, Message: "Copying local files..."})
	res.Propagation = m.prop.Propagate(ctx, m.repoRoot, dest)
	m.logger.Info("propagated local files",
		"dest", dest, "copied", len(res.Propagation.Copied), "failed", res.Propagation.Failed)

	if m.launchEditor {
		m.emit(Event{Step: StepLaunchingEditor, Branch: branch, Path: dest, Message: "Opening in editor..."})
		if err := m.exec.OpenEditor(ctx, dest); err != nil {
			var cliErr *model.CLIError
			if !errors.As(err, &cliErr) {
				err = model.WrapCLIError(model.ExitEditorError, fmt.Sprintf("failed to open %s", dest), err)
			}
			return res, m.fail(res, err)
		}
		res.EditorLaunched = true
	}

	m.emit(Event{
		Step:    StepDone,
		Branch:  branch,
		Path:    dest,
		Message: fmt.Sprintf("Successfully created worktree at '%s'", res.Display),
	})
	m.refresh()
	return res, nil
}

// fail emits the failed step and returns err unchanged.
func (m *Manager) fail(res CreateResult, err error) error {
	m.logger.Warn("worktree creation failed", "branch", res.Branch, "path", res.Path, "error", err)
	m.emit(Event{
		Step:    StepFailed,
		Branch:  res.Branch,
		Path:    res.Path,
		Message: fmt.Sprintf("Failed to create worktree: %v", err),
		Err:     err,
	})
	return err
}

// checkDestination rejects a destination that already holds files. An
// absent or empty directory is accepted, as git itself accepts both.
func checkDestination(dest string) error {
	f, err := os.Open(dest)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return model.WrapCLIError(model.ExitValidationError,
			fmt.Sprintf("cannot use destination %s", dest), err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return model.WrapCLIError(model.ExitValidationError,
			fmt.Sprintf("cannot use destination %s", dest), err)
	}
	if !info.IsDir() {
		return model.NewCLIError(model.ExitValidationError,
			fmt.Sprintf("destination %s already exists and is not a directory", dest))
	}
	if _, err := f.Readdirnames(1); err != io.EOF {
		return model.NewCLIError(model.ExitValidationError,
			fmt.Sprintf("destination %s already exists and is not empty", dest))
	}
	return nil
}

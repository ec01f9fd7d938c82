package lifecycle

import (
	"context"
	"fmt"

	"github.com/shinji-kodama/git-worktree-cursor/internal/model"
)

// ErrEmptySelection is returned by Delete when nothing was selected.
var ErrEmptySelection = model.NewCLIError(model.ExitValidationError, "no worktrees selected")

// EntryOutcome is the final state of one deletion entry.
type EntryOutcome struct {
	Path   string `json:"path" yaml:"path"`
	Branch string `json:"branch" yaml:"branch"`

	// Step is StepDone or StepRemoveFailed.
	Step Step `json:"step" yaml:"step"`

	// Err is the removal failure; set only with StepRemoveFailed.
	Err error `json:"-" yaml:"-"`

	// BranchErr is a tolerated branch deletion failure. It is logged and
	// never shown to the user.
	BranchErr error `json:"-" yaml:"-"`

	// BranchDeleted is true when the entry's branch was deleted.
	BranchDeleted bool `json:"branchDeleted" yaml:"branchDeleted"`

	// Error mirrors Err for serialized output.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Succeeded reports whether the worktree directory was removed.
func (o EntryOutcome) Succeeded() bool { return o.Step == StepDone }

// DeleteResult aggregates a delete batch.
type DeleteResult struct {
	Mode      model.DeletionMode `json:"mode" yaml:"mode"`
	Entries   []EntryOutcome     `json:"entries" yaml:"entries"`
	Succeeded int                `json:"succeeded" yaml:"succeeded"`
	Attempted int                `json:"attempted" yaml:"attempted"`

	// BranchesDeleted counts entries whose branch was deleted too.
	BranchesDeleted int `json:"branchesDeleted" yaml:"branchesDeleted"`
}

// Summary returns e.g. "1 of 2 deleted".
func (r DeleteResult) Summary() string {
	return fmt.Sprintf("%d of %d deleted", r.Succeeded, r.Attempted)
}

// SuccessMessage describes what was removed, e.g. "Successfully deleted 2
// worktree directories and local branches". Branches are only mentioned
// when they were actually deleted; a count is given when some were not.
// It is empty when nothing was removed.
func (r DeleteResult) SuccessMessage() string {
	if r.Succeeded == 0 {
		return ""
	}
	msg := fmt.Sprintf("Successfully deleted %d worktree %s", r.Succeeded,
		plural(r.Succeeded, "directory", "directories"))

	switch {
	case r.BranchesDeleted == 0:
	case r.BranchesDeleted == r.Succeeded:
		msg += " and local " + plural(r.BranchesDeleted, "branch", "branches")
	default:
		msg += fmt.Sprintf(" and %d local %s", r.BranchesDeleted,
			plural(r.BranchesDeleted, "branch", "branches"))
	}
	return msg
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// Delete removes every entry of sel in order. Each entry runs
// pending, removing, then branch-deleting (directory-and-branch mode, and
// only for entries that own a branch) to done, or stops at
// removing-failed. A removal failure is recorded and the batch continues;
// a branch deletion failure is only logged.
//
// Partial failure is not an error: callers inspect the result. One refresh
// is signalled after the batch if anything was removed.
func (m *Manager) Delete(ctx context.Context, sel model.DeletionSelection) (DeleteResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ctx = context.WithoutCancel(ctx)

	if len(sel.Entries) == 0 {
		return DeleteResult{Mode: sel.Mode}, ErrEmptySelection
	}
	if !sel.Mode.IsValid() {
		return DeleteResult{Mode: sel.Mode}, model.NewCLIError(model.ExitValidationError,
			fmt.Sprintf("invalid deletion mode %q", sel.Mode))
	}

	res := DeleteResult{
		Mode:      sel.Mode,
		Entries:   make([]EntryOutcome, 0, len(sel.Entries)),
		Attempted: len(sel.Entries),
	}
	for _, entry := range sel.Entries {
		m.emit(Event{Step: StepPending, Branch: entry.Branch, Path: entry.Path})
	}

	for _, entry := range sel.Entries {
		outcome := m.deleteEntry(ctx, entry, sel.Mode)
		if outcome.Succeeded() {
			res.Succeeded++
		}
		if outcome.BranchDeleted {
			res.BranchesDeleted++
		}
		res.Entries = append(res.Entries, outcome)
	}

	m.logger.Info("delete batch finished", "mode", sel.Mode, "summary", res.Summary())
	if res.Succeeded > 0 {
		m.refresh()
	}
	return res, nil
}

func (m *Manager) deleteEntry(ctx context.Context, entry model.DeletionEntry, mode model.DeletionMode) EntryOutcome {
	out := EntryOutcome{Path: entry.Path, Branch: entry.Branch}

	m.emit(Event{
		Step:    StepRemoving,
		Branch:  entry.Branch,
		Path:    entry.Path,
		Message: fmt.Sprintf("Deleting %s...", entry.Branch),
	})
	if err := m.exec.RemoveWorktree(ctx, m.repoRoot, entry.Path, true); err != nil {
		m.logger.Warn("failed to remove worktree", "path", entry.Path, "error", err)
		out.Step = StepRemoveFailed
		out.Err = err
		out.Error = err.Error()
		m.emit(Event{
			Step:    StepRemoveFailed,
			Branch:  entry.Branch,
			Path:    entry.Path,
			Message: fmt.Sprintf("Failed to delete worktree %s: %v", entry.Branch, err),
			Err:     err,
		})
		return out
	}

	switch {
	case !mode.DeletesBranch():
	case !entry.OwnsBranch():
		m.logger.Info("worktree has no branch of its own, keeping branches", "path", entry.Path)
	default:
		m.emit(Event{Step: StepBranchDeleting, Branch: entry.Branch, Path: entry.Path})
		if err := m.exec.DeleteBranch(ctx, m.repoRoot, entry.Branch, true); err != nil {
			m.logger.Warn("failed to delete branch", "branch", entry.Branch, "error", err)
			out.BranchErr = err
		} else {
			out.BranchDeleted = true
		}
	}

	out.Step = StepDone
	m.emit(Event{Step: StepDone, Branch: entry.Branch, Path: entry.Path})
	return out
}

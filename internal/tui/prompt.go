package tui

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shinji-kodama/git-worktree-cursor/internal/model"
)

// ErrCancelled is returned when the user leaves a prompt without choosing.
var ErrCancelled = model.NewCLIError(model.ExitUserCancelled, "cancelled")

// IO carries the terminal streams a prompt runs on.
type IO struct {
	In  io.Reader
	Out io.Writer
}

func (p IO) run(m tea.Model) (tea.Model, error) {
	opts := []tea.ProgramOption{}
	if p.In != nil {
		opts = append(opts, tea.WithInput(p.In))
	}
	if p.Out != nil {
		opts = append(opts, tea.WithOutput(p.Out))
	}
	return tea.NewProgram(m, opts...).Run()
}

// PromptBranch asks for a new branch name.
func PromptBranch(p IO) (string, error) {
	final, err := p.run(NewBranchModel())
	if err != nil {
		return "", err
	}
	m, ok := final.(BranchModel)
	if !ok || m.Cancelled || !m.Done {
		return "", ErrCancelled
	}
	return m.Value(), nil
}

// SelectWorktrees asks which of items to delete.
func SelectWorktrees(p IO, items []model.Worktree) ([]model.Worktree, error) {
	if len(items) == 0 {
		return nil, errors.New("nothing to select")
	}
	final, err := p.run(NewSelectModel(items))
	if err != nil {
		return nil, err
	}
	m, ok := final.(SelectModel)
	if !ok || m.Cancelled || !m.Done {
		return nil, ErrCancelled
	}
	return m.Selected(), nil
}

// ConfirmDeletion asks how to delete count worktrees, starting on
// preferred. Choosing Cancel returns ErrCancelled.
func ConfirmDeletion(p IO, count int, preferred model.DeletionMode) (model.DeletionMode, error) {
	final, err := p.run(NewConfirmModel(count, preferred))
	if err != nil {
		return "", err
	}
	m, ok := final.(ConfirmModel)
	if !ok {
		return "", ErrCancelled
	}
	mode, chosen := m.Mode()
	if !chosen {
		return "", ErrCancelled
	}
	return mode, nil
}

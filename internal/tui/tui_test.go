package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/git-worktree-cursor/internal/model"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	up    = tea.KeyMsg{Type: tea.KeyUp}
	space = runes(" ")
)

// send feeds msgs through Update in order and returns the final model.
func send[M tea.Model](t *testing.T, m M, msgs ...tea.Msg) M {
	t.Helper()
	var cur tea.Model = m
	for _, msg := range msgs {
		cur, _ = cur.Update(msg)
	}
	out, ok := cur.(M)
	require.True(t, ok)
	return out
}

func TestBranchModelAccepts(t *testing.T) {
	m := send(t, NewBranchModel(), runes("feature/login"), enter)

	assert.True(t, m.Done)
	assert.False(t, m.Cancelled)
	assert.Empty(t, m.Err)
	assert.Equal(t, "feature/login", m.Value())
}

func TestBranchModelInlineValidation(t *testing.T) {
	m := send(t, NewBranchModel(), runes("bad branch!"))
	assert.Equal(t, model.MsgBranchInvalid, m.Err)
	assert.Contains(t, m.View(), model.MsgBranchInvalid)

	m = send(t, m, enter)
	assert.False(t, m.Done, "enter is refused while invalid")
}

func TestBranchModelEmptyEnter(t *testing.T) {
	m := send(t, NewBranchModel(), enter)
	assert.False(t, m.Done)
	assert.Equal(t, model.MsgBranchEmpty, m.Err)
}

func TestBranchModelCancel(t *testing.T) {
	m := send(t, NewBranchModel(), runes("x"), esc)
	assert.True(t, m.Cancelled)
	assert.Empty(t, m.View())
}

func sampleWorktrees() []model.Worktree {
	return []model.Worktree{
		{Path: "/wt/a", Branch: "a"},
		{Path: "/wt/b", Branch: "b"},
		{Path: "/wt/c", Branch: "c"},
	}
}

func TestSelectModel(t *testing.T) {
	m := send(t, NewSelectModel(sampleWorktrees()), space, down, down, space, enter)

	assert.True(t, m.Done)
	assert.Equal(t, []model.Worktree{
		{Path: "/wt/a", Branch: "a"},
		{Path: "/wt/c", Branch: "c"},
	}, m.Selected())
}

func TestSelectModelRequiresChoice(t *testing.T) {
	m := send(t, NewSelectModel(sampleWorktrees()), enter)
	assert.False(t, m.Done)

	m = send(t, m, space, space, enter)
	assert.False(t, m.Done, "toggled twice is unselected")
}

func TestSelectModelCursorBounds(t *testing.T) {
	m := send(t, NewSelectModel(sampleWorktrees()), up, down, down, down, down)
	assert.Equal(t, 2, m.Cursor)
}

func TestSelectModelToggleAll(t *testing.T) {
	m := send(t, NewSelectModel(sampleWorktrees()), runes("a"))
	assert.Len(t, m.Selected(), 3)

	m = send(t, m, runes("a"))
	assert.Empty(t, m.Selected())
}

func TestSelectModelView(t *testing.T) {
	m := send(t, NewSelectModel(sampleWorktrees()), space)
	view := m.View()
	assert.Contains(t, view, "[x]")
	assert.Contains(t, view, "a (/wt/a)")
	assert.Contains(t, view, "c (/wt/c)")
}

func TestConfirmMessage(t *testing.T) {
	assert.Equal(t, "Are you sure you want to delete 1 worktree directory?", ConfirmMessage(1))
	assert.Equal(t, "Are you sure you want to delete 3 worktree directories?", ConfirmMessage(3))
}

func TestConfirmModel(t *testing.T) {
	tests := []struct {
		name     string
		msgs     []tea.Msg
		want     model.DeletionMode
		chosen   bool
		canceled bool
	}{
		{"default is directory and branch", []tea.Msg{enter}, model.DeleteDirectoryAndBranch, true, false},
		{"directory only", []tea.Msg{down, enter}, model.DeleteDirectoryOnly, true, false},
		{"cancel button", []tea.Msg{down, down, enter}, "", false, true},
		{"cursor stops at cancel", []tea.Msg{down, down, down, enter}, "", false, true},
		{"escape", []tea.Msg{esc}, "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := send(t, NewConfirmModel(2, ""), tt.msgs...)
			mode, ok := m.Mode()
			assert.Equal(t, tt.want, mode)
			assert.Equal(t, tt.chosen, ok)
			assert.Equal(t, tt.canceled, m.Cancelled)
		})
	}
}

func TestConfirmModelPreferred(t *testing.T) {
	m := send(t, NewConfirmModel(1, model.DeleteDirectoryOnly), enter)
	mode, ok := m.Mode()
	assert.True(t, ok)
	assert.Equal(t, model.DeleteDirectoryOnly, mode)

	m = send(t, NewConfirmModel(1, model.DeleteDirectoryAndBranch), enter)
	mode, _ = m.Mode()
	assert.Equal(t, model.DeleteDirectoryAndBranch, mode)
}

func TestConfirmModelView(t *testing.T) {
	view := NewConfirmModel(2, "").View()
	assert.Contains(t, view, ConfirmMessage(2))
	assert.Contains(t, view, ChoiceDirectoryAndBranch)
	assert.Contains(t, view, ChoiceDirectoryOnly)
	assert.Contains(t, view, ChoiceCancel)
}

func TestErrCancelledExitCode(t *testing.T) {
	assert.True(t, model.HasExitCode(ErrCancelled, model.ExitUserCancelled))
}

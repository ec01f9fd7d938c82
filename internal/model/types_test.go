package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDeletionMode_IsValid checks that only defined mode values pass validation.
func TestDeletionMode_IsValid(t *testing.T) {
	assert.True(t, DeleteDirectoryOnly.IsValid())
	assert.True(t, DeleteDirectoryAndBranch.IsValid())
	assert.False(t, DeletionMode("everything").IsValid())
	assert.False(t, DeletionMode("").IsValid())

	assert.False(t, DeleteDirectoryOnly.DeletesBranch())
	assert.True(t, DeleteDirectoryAndBranch.DeletesBranch())
}

// TestParseDeletionMode verifies string-to-mode conversion,
// including case normalization and error cases.
func TestParseDeletionMode(t *testing.T) {
	tests := []struct {
		input    string
		expected DeletionMode
		hasError bool
	}{
		{"directory-only", DeleteDirectoryOnly, false},
		{"directory-and-branch", DeleteDirectoryAndBranch, false},
		{"Directory-Only", DeleteDirectoryOnly, false},
		{" directory-and-branch ", DeleteDirectoryAndBranch, false},
		{"branch-only", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseDeletionMode(tt.input)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestValidateBranchName covers the accepted character class and the
// specific message returned for each kind of violation.
func TestValidateBranchName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{name: "simple", input: "feature"},
		{name: "with slash", input: "feature/foo"},
		{name: "underscore and hyphen", input: "fix_bug-123"},
		{name: "empty", input: "", wantMsg: MsgBranchEmpty},
		{name: "whitespace only", input: "   ", wantMsg: MsgBranchEmpty},
		{name: "space inside", input: "bad branch", wantMsg: MsgBranchInvalid},
		{name: "shell metacharacters", input: "bad branch!", wantMsg: MsgBranchInvalid},
		{name: "semicolon", input: "a;rm", wantMsg: MsgBranchInvalid},
		{name: "dot", input: "v1.2", wantMsg: MsgBranchInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBranchName(tt.input)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)

			var cliErr *CLIError
			require.True(t, errors.As(err, &cliErr))
			assert.Equal(t, ExitValidationError, cliErr.Code)
			assert.Equal(t, tt.wantMsg, cliErr.Message)
			assert.True(t, IsValidationError(err))
		})
	}
}

// TestNewDeletionSelection verifies the main worktree can never become a
// delete target and that order is preserved.
func TestNewDeletionSelection(t *testing.T) {
	worktrees := []Worktree{
		{Path: "/repo", Branch: "main", IsMain: true},
		{Path: "/repo-worktree/b", Branch: "b"},
		{Path: "/repo-worktree/a", Branch: "a"},
	}

	sel := NewDeletionSelection(worktrees, DeleteDirectoryAndBranch)
	assert.Equal(t, DeleteDirectoryAndBranch, sel.Mode)
	assert.Equal(t, []DeletionEntry{
		{Path: "/repo-worktree/b", Branch: "b"},
		{Path: "/repo-worktree/a", Branch: "a"},
	}, sel.Entries)

	assert.Len(t, Deletable(worktrees), 2)
	assert.Empty(t, NewDeletionSelection(worktrees[:1], DeleteDirectoryOnly).Entries)
}

// TestNewDeletionSelectionDetached checks that a detached worktree carries
// its marker into the selection and owns no branch.
func TestNewDeletionSelectionDetached(t *testing.T) {
	worktrees := []Worktree{
		{Path: "/repo", Branch: "develop", IsMain: true},
		{Path: "/repo-worktree/scratch", Branch: DefaultBranchSentinel, Detached: true},
		{Path: "/repo-worktree/a", Branch: "a"},
	}

	sel := NewDeletionSelection(worktrees, DeleteDirectoryAndBranch)
	require.Len(t, sel.Entries, 2)
	assert.True(t, sel.Entries[0].Detached)
	assert.False(t, sel.Entries[0].OwnsBranch())
	assert.True(t, sel.Entries[1].OwnsBranch())
	assert.False(t, DeletionEntry{Path: "/x"}.OwnsBranch())
}

// TestCLIError verifies the custom error type used for exit code mapping.
func TestCLIError(t *testing.T) {
	t.Run("simple error", func(t *testing.T) {
		err := NewCLIError(ExitEditorError, "failed to open editor")
		assert.Equal(t, ExitEditorError, err.Code)
		assert.Equal(t, "failed to open editor", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("wrapped error", func(t *testing.T) {
		inner := errors.New("exit status 128")
		err := WrapCLIError(ExitGitError, "git worktree add failed", inner)
		assert.Equal(t, ExitGitError, err.Code)
		assert.Contains(t, err.Error(), "exit status 128")
		assert.Equal(t, inner, err.Unwrap())
		assert.True(t, errors.Is(err, inner))
	})

	t.Run("exit code through joined errors", func(t *testing.T) {
		err := WrapCLIError(ExitGitError, "git worktree remove failed", nil)
		wrapped := errors.Join(errors.New("context"), err)
		assert.True(t, HasExitCode(wrapped, ExitGitError))
		assert.False(t, HasExitCode(wrapped, ExitEditorError))
		assert.False(t, IsValidationError(wrapped))
	})
}

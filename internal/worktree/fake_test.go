package worktree

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/git-worktree-cursor/internal/model"
)

func TestFakeTableRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := NewFake("/repo", "main")

	require.NoError(t, f.AddWorktree(ctx, "/repo", "/wt/feat", "feat"))

	out, err := f.ListWorktrees(ctx, "/repo", false)
	require.NoError(t, err)
	assert.Equal(t, "/repo  abc1230 [main]\n/wt/feat  abc1231 [feat]\n", out)

	out, err = f.ListWorktrees(ctx, "/repo", true)
	require.NoError(t, err)
	assert.Contains(t, out, "worktree /wt/feat\nHEAD abc1231\nbranch refs/heads/feat\n")

	require.NoError(t, f.RemoveWorktree(ctx, "/repo", "/wt/feat", true))
	out, err = f.ListWorktrees(ctx, "/repo", false)
	require.NoError(t, err)
	assert.NotContains(t, out, "/wt/feat")
}

func TestFakeRefusesDuplicates(t *testing.T) {
	ctx := context.Background()
	f := NewFake("/repo", "main")

	err := f.AddWorktree(ctx, "/repo", "/wt/x", "main")
	assert.True(t, model.HasExitCode(err, model.ExitGitError))

	require.NoError(t, f.AddWorktree(ctx, "/repo", "/wt/x", "x"))
	err = f.AddWorktree(ctx, "/repo", "/wt/x", "y")
	assert.ErrorContains(t, err, "already exists")

	err = f.RemoveWorktree(ctx, "/repo", "/wt/missing", true)
	assert.ErrorContains(t, err, "is not a working tree")
}

func TestFakeFailOn(t *testing.T) {
	ctx := context.Background()
	f := NewFake("/repo", "main")
	f.AddEntry("/wt/a", "a")
	f.AddEntry("/wt/b", "b")

	boom := errors.New("boom")
	f.FailOn(OpRemove, "/wt/a", boom)
	f.FailOn(OpDeleteBranch, "", boom)

	assert.ErrorIs(t, f.RemoveWorktree(ctx, "/repo", "/wt/a", true), boom)
	assert.NoError(t, f.RemoveWorktree(ctx, "/repo", "/wt/b", true))
	assert.ErrorIs(t, f.DeleteBranch(ctx, "/repo", "anything", true), boom)

	calls := f.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, Call{Op: OpRemove, RepoRoot: "/repo", Path: "/wt/a", Force: true}, calls[0])
	assert.Equal(t, OpDeleteBranch, calls[2].Op)
	assert.Len(t, f.CallsFor(OpRemove), 2)
	assert.False(t, f.WasCalled(OpOpenEditor))
}

func TestFakeSetListing(t *testing.T) {
	f := NewFake("/repo", "main")
	f.SetListing("raw text")

	out, err := f.ListWorktrees(context.Background(), "/repo", true)
	require.NoError(t, err)
	assert.Equal(t, "raw text", out)
}

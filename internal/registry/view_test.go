package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/git-worktree-cursor/internal/model"
	"github.com/shinji-kodama/git-worktree-cursor/internal/worktree"
)

func TestViewList(t *testing.T) {
	fake := worktree.NewFake("/repo", "main")
	fake.AddEntry("/repo-worktree/foo", "feature/foo")
	v := NewView("/repo", fake)
	assert.Equal(t, "/repo", v.Root())

	got, err := v.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Worktree{
		{Path: "/repo", Branch: "main", IsMain: true},
		{Path: "/repo-worktree/foo", Branch: "feature/foo"},
	}, got)

	calls := fake.CallsFor(worktree.OpList)
	require.Len(t, calls, 1)
	assert.Equal(t, "/repo", calls[0].RepoRoot)
}

// TestViewListNeverCaches verifies each List re-invokes the lister.
func TestViewListNeverCaches(t *testing.T) {
	fake := worktree.NewFake("/repo", "main")
	v := NewView("/repo", fake)
	ctx := context.Background()

	first, err := v.List(ctx)
	require.NoError(t, err)
	assert.Len(t, first, 1)

	fake.AddEntry("/wt/new", "new")
	second, err := v.List(ctx)
	require.NoError(t, err)
	assert.Len(t, second, 2)
	assert.Len(t, fake.CallsFor(worktree.OpList), 2)
}

func TestViewListPorcelain(t *testing.T) {
	fake := worktree.NewFake("/repo", "main")
	fake.AddEntry("/path with spaces", "spaced")
	v := NewView("/repo", fake, WithPorcelain())

	got, err := v.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, model.Worktree{Path: "/path with spaces", Branch: "spaced"}, got[1])
}

func TestViewListNoRoot(t *testing.T) {
	fake := worktree.NewFake("/repo", "main")
	var infos []string
	v := NewView("", fake, WithInfo(func(msg string) { infos = append(infos, msg) }))

	got, err := v.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
	assert.Equal(t, []string{MsgNoWorkspace}, infos)
	assert.False(t, fake.WasCalled(worktree.OpList))
	assert.Empty(t, v.Root())
}

func TestViewListError(t *testing.T) {
	fake := worktree.NewFake("/repo", "main")
	boom := errors.New("boom")
	fake.FailOn(worktree.OpList, "", boom)

	_, err := NewView("/repo", fake).List(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestViewSubscribe(t *testing.T) {
	v := NewView("/repo", worktree.NewFake("/repo", "main"))

	var order []string
	unsubA := v.Subscribe(func() { order = append(order, "a") })
	v.Subscribe(func() { order = append(order, "b") })

	v.Refresh()
	assert.Equal(t, []string{"a", "b"}, order)

	unsubA()
	unsubA()
	v.Refresh()
	assert.Equal(t, []string{"a", "b", "b"}, order)
}

// TestViewSubscriberMayUnsubscribe checks a callback can remove itself
// during Refresh without deadlocking.
func TestViewSubscriberMayUnsubscribe(t *testing.T) {
	v := NewView("/repo", worktree.NewFake("/repo", "main"))

	calls := 0
	var unsub func()
	unsub = v.Subscribe(func() {
		calls++
		unsub()
	})

	v.Refresh()
	v.Refresh()
	assert.Equal(t, 1, calls)
}

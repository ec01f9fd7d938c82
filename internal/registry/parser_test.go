package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shinji-kodama/git-worktree-cursor/internal/model"
)

func TestParse(t *testing.T) {
	raw := "/repo  abc123 [main]\n/repo-wt/foo  def456 [feature/foo]"

	got := Parse(raw, "/repo")

	assert.Equal(t, []model.Worktree{
		{Path: "/repo", Branch: "main", IsMain: true},
		{Path: "/repo-wt/foo", Branch: "feature/foo", IsMain: false},
	}, got)
}

func TestParseEdgeCases(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []model.Worktree
	}{
		{
			name: "empty input",
			raw:  "",
			want: []model.Worktree{},
		},
		{
			name: "blank and whitespace lines",
			raw:  "\n   \n\t\n",
			want: []model.Worktree{},
		},
		{
			name: "single field line is skipped",
			raw:  "/lonely\n/repo abc [main]",
			want: []model.Worktree{{Path: "/repo", Branch: "main", IsMain: true}},
		},
		{
			name: "missing branch field gives sentinel",
			raw:  "/bare abc",
			want: []model.Worktree{{Path: "/bare", Branch: model.DefaultBranchSentinel, Detached: true}},
		},
		{
			name: "detached head gives sentinel",
			raw:  "/wt/d  0123abc (detached HEAD)",
			want: []model.Worktree{{Path: "/wt/d", Branch: model.DefaultBranchSentinel, Detached: true}},
		},
		{
			name: "bare repository gives sentinel",
			raw:  "/srv/repo.git  (bare)",
			want: []model.Worktree{{Path: "/srv/repo.git", Branch: model.DefaultBranchSentinel, Detached: true}},
		},
		{
			name: "unbracketed branch passes through",
			raw:  "/wt/x abc topic",
			want: []model.Worktree{{Path: "/wt/x", Branch: "topic"}},
		},
		{
			name: "only one bracket pair is stripped",
			raw:  "/wt/x abc [[weird]]",
			want: []model.Worktree{{Path: "/wt/x", Branch: "[weird]"}},
		},
		{
			name: "duplicate path keeps the first",
			raw:  "/wt/a abc [one]\n/wt/a def [two]",
			want: []model.Worktree{{Path: "/wt/a", Branch: "one"}},
		},
		{
			name: "crlf and tabs",
			raw:  "/repo\tabc\t[main]\r\n/wt/b  def [b]\r\n",
			want: []model.Worktree{
				{Path: "/repo", Branch: "main", IsMain: true},
				{Path: "/wt/b", Branch: "b"},
			},
		},
		{
			name: "main match is exact",
			raw:  "/repo/ abc [main]\n/repo2 abc [x]",
			want: []model.Worktree{
				{Path: "/repo/", Branch: "main"},
				{Path: "/repo2", Branch: "x"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.raw, "/repo"))
		})
	}
}

// TestParseIsIdempotent checks that parsing the same text twice yields
// equal results.
func TestParseIsIdempotent(t *testing.T) {
	raw := "/repo abc [main]\n/wt/a def [a]\n/wt/b 123 (detached HEAD)\n"
	assert.Equal(t, Parse(raw, "/repo"), Parse(raw, "/repo"))
}

func TestParsePorcelain(t *testing.T) {
	raw := "worktree /repo\n" +
		"HEAD abc123\n" +
		"branch refs/heads/main\n" +
		"\n" +
		"worktree /path with spaces/feat\n" +
		"HEAD def456\n" +
		"branch refs/heads/feature/x\n" +
		"\n" +
		"worktree /wt/detached\n" +
		"HEAD 789abc\n" +
		"detached\n" +
		"\n" +
		"worktree /wt/detached\n" +
		"HEAD 000000\n" +
		"branch refs/heads/dup\n"

	got := ParsePorcelain(raw, "/repo")

	assert.Equal(t, []model.Worktree{
		{Path: "/repo", Branch: "main", IsMain: true},
		{Path: "/path with spaces/feat", Branch: "feature/x"},
		{Path: "/wt/detached", Branch: model.DefaultBranchSentinel, Detached: true},
	}, got)
}

func TestParsePorcelainBare(t *testing.T) {
	raw := "worktree /srv/repo.git\nbare\n\n"

	assert.Equal(t, []model.Worktree{
		{Path: "/srv/repo.git", Branch: model.DefaultBranchSentinel, Detached: true},
	}, ParsePorcelain(raw, "/repo"))
}

func TestParsePorcelainEmpty(t *testing.T) {
	assert.Equal(t, []model.Worktree{}, ParsePorcelain("", "/repo"))
	assert.Equal(t, []model.Worktree{}, ParsePorcelain("HEAD abc\nbranch refs/heads/x\n", "/repo"))
}

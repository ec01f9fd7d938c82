package glob

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasWildcard(t *testing.T) {
	assert.True(t, HasWildcard(".env*"))
	assert.True(t, HasWildcard("a?c"))
	assert.False(t, HasWildcard(".vscode/settings.json"))
	assert.False(t, HasWildcard(""))
}

func TestCompile(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		// '*' matches any run, including empty.
		{".env*", ".env", true},
		{".env*", ".env.local", true},
		{".env*", ".env.production.local", true},
		{".env*", "sub/.env", false},
		{".env*", "xenv", false},

		// '.' is literal, not "any character".
		{"*.local.*", "config.local.json", true},
		{"*.local.*", "src/app/settings.local.yaml", true},
		{"*.local.*", "configXlocalXjson", false},
		{"*.local.*", "local.json", false},
		{"config.local.*", "config.local.ts", true},
		{"config.local.*", "sub/config.local.ts", false},

		// '?' matches exactly one character.
		{"a?c", "abc", true},
		{"a?c", "ac", false},
		{"a?c", "abbc", false},

		// Full-string match, never substring.
		{"*.env", "x.env.bak", false},

		// Other glob syntax is literal.
		{"[ab]*", "[ab]x", true},
		{"[ab]*", "ax", false},
		{"{a,b}*", "{a,b}.txt", true},
		{"{a,b}*", "a.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"|"+tt.path, func(t *testing.T) {
			m, err := Compile(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Match(tt.path))
		})
	}
}

// TestCompileWithoutWildcardIsEquality checks that literal patterns behave
// exactly like string equality, including the empty pattern.
func TestCompileWithoutWildcardIsEquality(t *testing.T) {
	paths := []string{"", ".vscode/settings.json", ".vscode/settings.jsonx", "settings.json", "a.b"}
	patterns := []string{"", ".vscode/settings.json", "a.b", "a[b]"}

	for _, p := range patterns {
		m, err := Compile(p)
		require.NoError(t, err)
		for _, path := range paths {
			assert.Equal(t, p == path, m.Match(path), "pattern %q path %q", p, path)
		}
	}
}

// TestMatchIsDeterministic runs the same inputs repeatedly through fresh
// and shared matchers.
func TestMatchIsDeterministic(t *testing.T) {
	shared := MustCompile("*.local.*")
	for i := 0; i < 5; i++ {
		assert.True(t, shared.Match("a.local.b"))
		assert.True(t, Match("*.local.*", "a.local.b"))
		assert.False(t, shared.Match("a.locale"))
	}
}

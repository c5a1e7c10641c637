package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/dyesthetics/config"
)

func mustCompile(t *testing.T, names []string, exts ...string) *Matcher {
	t.Helper()
	m, err := CompilePattern(config.FilePattern{Names: names, Extensions: exts})
	require.NoError(t, err)
	return m
}

func TestMatcher_WildcardCapturesName(t *testing.T) {
	files := []string{"button.transform.tsx", "index.tsx"}

	m := mustCompile(t, []string{"*.transform"}, ".tsx")
	match, ok := m.First(files)
	require.True(t, ok)
	assert.Equal(t, "button.transform.tsx", match.File)
	assert.Equal(t, "button", match.CapturedName)

	exact := mustCompile(t, []string{"transform"}, ".tsx")
	_, ok = exact.First(files)
	assert.False(t, ok, "exact names never match a longer basename")
}

func TestMatcher_Match(t *testing.T) {
	tests := []struct {
		name     string
		names    []string
		exts     []string
		file     string
		wantOK   bool
		captured string
	}{
		{name: "exact", names: []string{"index"}, exts: []string{".tsx"}, file: "index.tsx", wantOK: true},
		{name: "extension rejected first", names: []string{"index"}, exts: []string{".tsx"}, file: "index.ts"},
		{name: "case sensitive", names: []string{"index"}, exts: []string{".tsx"}, file: "Index.tsx"},
		{name: "no extension", names: []string{"index"}, exts: []string{".tsx"}, file: "index"},
		{name: "extension without dot in config", names: []string{"index"}, exts: []string{"tsx"}, file: "index.tsx", wantOK: true},
		{name: "wildcard needs at least one char", names: []string{"*.transformer"}, exts: []string{".ts"}, file: ".transformer.ts"},
		{name: "lazy capture", names: []string{"*.transformer"}, exts: []string{".ts"}, file: "a.b.transformer.ts", wantOK: true, captured: "a.b"},
		{name: "wildcard in the middle", names: []string{"button.*"}, exts: []string{".tsx"}, file: "button.primary.tsx", wantOK: true, captured: "primary"},
		{name: "question mark only with a star", names: []string{"v?.*"}, exts: []string{".ts"}, file: "v2.adapter.ts", wantOK: true, captured: "adapter"},
		{name: "question mark alone is literal", names: []string{"v?"}, exts: []string{".ts"}, file: "v2.ts"},
		{name: "metacharacters are literal", names: []string{"a+b.*"}, exts: []string{".ts"}, file: "aab.x.ts"},
		{name: "first name wins", names: []string{"transformer", "*.transformer"}, exts: []string{".ts"}, file: "transformer.ts", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustCompile(t, tt.names, tt.exts...)
			match, ok := m.Match(tt.file)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.file, match.File)
				assert.Equal(t, tt.captured, match.CapturedName)
			}
		})
	}
}

func TestGlobToRegexp(t *testing.T) {
	re, err := GlobToRegexp("*.transformer")
	require.NoError(t, err)
	assert.Equal(t, `^(.+?)\.transformer$`, re.String())

	re, err = GlobToRegexp("button.*.x?")
	require.NoError(t, err)
	assert.Equal(t, `^button\.(.+?)\.x.$`, re.String())
}

func TestMatcher_AllKeepsOrder(t *testing.T) {
	m := mustCompile(t, []string{"transform", "*.transform"}, ".ts", ".tsx")

	got := m.All([]string{"extra.transform.tsx", "index.tsx", "transform.ts"})
	require.Len(t, got, 2)
	assert.Equal(t, "extra.transform.tsx", got[0].File)
	assert.Equal(t, "transform.ts", got[1].File)
}

func TestMatcher_Expected(t *testing.T) {
	m := mustCompile(t, []string{"index", "main"}, ".tsx", ".jsx")
	assert.Equal(t, []string{"index.tsx", "index.jsx", "main.tsx", "main.jsx"}, m.Expected())
}

func TestCompilePattern_Errors(t *testing.T) {
	_, err := CompilePattern(config.FilePattern{Extensions: []string{".ts"}})
	assert.Error(t, err)

	_, err = CompilePattern(config.FilePattern{Names: []string{"index"}})
	assert.Error(t, err)
}

func TestRegexpClassifier(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want bool
	}{
		{name: "default function", src: "export default function Button() { return null }", want: true},
		{name: "default identifier", src: "const Button = () => null;\nexport default Button;", want: true},
		{name: "default across lines", src: "export\ndefault\n  Card", want: true},
		{name: "named as default", src: "function Card() {}\nexport { Card as default };", want: true},
		{name: "named as default among others", src: "export { helper, Card as default }", want: true},
		{name: "named export only", src: "export const Button = () => null;\nexport { Button };", want: false},
		{name: "empty file", src: "", want: false},
		{name: "default keyword alone", src: "export default;", want: false},
	}

	c := NewRegexpClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.HasPrimaryExport([]byte(tt.src)))
		})
	}
}

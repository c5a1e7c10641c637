package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportPath(t *testing.T) {
	tests := []struct {
		name    string
		fromDir string
		target  string
		want    string
	}{
		{
			name:    "sibling tree",
			fromDir: "/app/src/generated",
			target:  "/app/src/components/button",
			want:    "../components/button",
		},
		{
			name:    "same directory",
			fromDir: "/app/src",
			target:  "/app/src/widgetRegistry",
			want:    "./widgetRegistry",
		},
		{
			name:    "nested below",
			fromDir: "/app/src",
			target:  "/app/src/components/card/card.transform",
			want:    "./components/card/card.transform",
		},
		{
			name:    "parent itself",
			fromDir: "/app/src/generated",
			target:  "/app/src",
			want:    "..",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ImportPath(filepath.FromSlash(tt.fromDir), filepath.FromSlash(tt.target))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestImportPath_MixedAbsolute(t *testing.T) {
	_, err := ImportPath("relative/dir", "/abs/target")
	assert.Error(t, err)
}

func TestExtensionHelpers(t *testing.T) {
	assert.Equal(t, ".tsx", Extension("button.transform.tsx"))
	assert.Equal(t, "", Extension("index"))
	assert.Equal(t, "button.transform", StripExtension("button.transform.tsx"))
	assert.Equal(t, "/a/b/index", StripExtension("/a/b/index.ts"))

	assert.Equal(t, ".tsx", NormalizeExtension("tsx"))
	assert.Equal(t, ".ts", NormalizeExtension(".ts"))
	assert.Equal(t, "", NormalizeExtension("  "))
}

func TestEnsureAbsolute(t *testing.T) {
	base := filepath.FromSlash("/work/project")

	assert.Equal(t, filepath.Join(base, "src", "components"), EnsureAbsolute("src/components", base))
	assert.Equal(t, filepath.FromSlash("/other/out.ts"), EnsureAbsolute("/other/../other/out.ts", base))
	assert.Equal(t, "", EnsureAbsolute("", base))
}

func TestEnsureParentDir(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "a", "b", "c", "registry.ts")

	require.NoError(t, EnsureParentDir(target))

	info, err := os.Stat(filepath.Dir(target))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "registry.ts")

	require.NoError(t, WriteFileAtomic(path, []byte("first\n"), FilePermissions))
	require.NoError(t, WriteFileAtomic(path, []byte("second\n"), FilePermissions))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestWriteFileAtomic_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "registry.ts")

	err := WriteFileAtomic(path, []byte("x"), FilePermissions)
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

package atom

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDirectoryCreateMakesPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "c")

	a := &DirectoryCreate{Path: path}
	require.NoError(t, a.Execute(context.Background()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestDirectoryCopyFlattensContentsWhenToHasTrailingSlash(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "top.txt"), []byte("top"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "nested", "deep.txt"), []byte("deep"), 0o644))

	dst := filepath.Join(t.TempDir(), "copied") + "/"

	a := &DirectoryCopy{From: src, To: dst}
	require.NoError(t, a.Execute(context.Background()))

	top, err := os.ReadFile(filepath.Join(dst, "top.txt"))
	require.NoError(t, err)
	require.Equal(t, "top", string(top))

	deep, err := os.ReadFile(filepath.Join(dst, "nested", "deep.txt"))
	require.NoError(t, err)
	require.Equal(t, "deep", string(deep))
}

func TestDirectoryCopyNestsUnderBasenameByDefault(t *testing.T) {
	t.Parallel()

	src := filepath.Join(t.TempDir(), "theme")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "top.txt"), []byte("top"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "nested", "deep.txt"), []byte("deep"), 0o644))

	dst := t.TempDir()

	a := &DirectoryCopy{From: src, To: dst}
	require.NoError(t, a.Execute(context.Background()))

	nested := filepath.Join(dst, "theme")

	top, err := os.ReadFile(filepath.Join(nested, "top.txt"))
	require.NoError(t, err)
	require.Equal(t, "top", string(top))

	deep, err := os.ReadFile(filepath.Join(nested, "nested", "deep.txt"))
	require.NoError(t, err)
	require.Equal(t, "deep", string(deep))
}

func TestDirectoryRemoveDeletesTree(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "tree")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "sub", "f.txt"), []byte("x"), 0o644))

	a := &DirectoryRemove{Path: target}
	require.NoError(t, a.Execute(context.Background()))

	_, err := os.Stat(target)
	require.True(t, os.IsNotExist(err))
}

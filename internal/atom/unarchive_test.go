package atom

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTestZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func writeTestTarGz(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	for name, content := range entries {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name: name,
			Mode: 0o644,
			Size: int64(len(content)),
		}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
}

func TestUnarchiveExtractsZip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	archivePath := filepath.Join(dir, "bundle.zip")
	writeTestZip(t, archivePath, map[string]string{"a.txt": "alpha", "sub/b.txt": "beta"})

	dest := filepath.Join(dir, "out")
	a := &Unarchive{From: archivePath, To: dest}
	require.NoError(t, a.Execute(context.Background()))

	got, err := os.ReadFile(filepath.Join(dest, "a.txt"))
	require.NoError(t, err)
	require.Equal(t, "alpha", string(got))

	got, err = os.ReadFile(filepath.Join(dest, "sub", "b.txt"))
	require.NoError(t, err)
	require.Equal(t, "beta", string(got))
}

func TestUnarchiveExtractsTarGz(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	archivePath := filepath.Join(dir, "bundle.tar.gz")
	writeTestTarGz(t, archivePath, map[string]string{"a.txt": "alpha"})

	dest := filepath.Join(dir, "out")
	a := &Unarchive{From: archivePath, To: dest}
	require.NoError(t, a.Execute(context.Background()))

	got, err := os.ReadFile(filepath.Join(dest, "a.txt"))
	require.NoError(t, err)
	require.Equal(t, "alpha", string(got))
}

func TestUnarchiveStripsLeadingComponents(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	archivePath := filepath.Join(dir, "bundle.zip")
	writeTestZip(t, archivePath, map[string]string{"project-v1/a.txt": "alpha"})

	dest := filepath.Join(dir, "out")
	a := &Unarchive{From: archivePath, To: dest, StripComponents: 1}
	require.NoError(t, a.Execute(context.Background()))

	got, err := os.ReadFile(filepath.Join(dest, "a.txt"))
	require.NoError(t, err)
	require.Equal(t, "alpha", string(got))
}

func TestUnarchiveRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	archivePath := filepath.Join(dir, "bundle.rar")
	require.NoError(t, os.WriteFile(archivePath, []byte("x"), 0o644))

	a := &Unarchive{From: archivePath, To: filepath.Join(dir, "out")}
	err := a.Execute(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported archive format")
}

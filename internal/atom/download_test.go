package atom

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDownloadFetchesURLToPath(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("payload"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	dst := filepath.Join(dir, "out.bin")
	a := &Download{URL: srv.URL, To: dst}

	outcome, err := a.Plan(context.Background())
	require.NoError(t, err)
	require.True(t, outcome.ShouldRun)

	require.NoError(t, a.Execute(context.Background()))

	contents, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "payload", string(contents))
}

func TestDownloadSkipsWhenDestinationExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dst := filepath.Join(dir, "out.bin")
	require.NoError(t, os.WriteFile(dst, []byte("already here"), 0o644))

	a := &Download{URL: "http://example.invalid/asset", To: dst}
	outcome, err := a.Plan(context.Background())
	require.NoError(t, err)
	require.False(t, outcome.ShouldRun)
}

func TestDownloadReturnsAtomExecuteErrorOnNon200(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	dir := t.TempDir()
	a := &Download{URL: srv.URL, To: filepath.Join(dir, "missing.bin")}
	err := a.Execute(context.Background())
	require.Error(t, err)
}

package manifestfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDerivesDottedNamesFromPath(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeManifest(t, root, "base.yaml", `
actions:
  - action: command.run
    command: echo
    args: [hello]
`)
	writeManifest(t, root, "configs/editor/vim.yaml", `
depends: [base]
actions: []
`)

	manifests, err := Load(root)
	require.NoError(t, err)
	require.Contains(t, manifests, "base")
	require.Contains(t, manifests, "configs.editor.vim")
	require.Equal(t, []string{"base"}, manifests["configs.editor.vim"].Depends)
}

func TestLoadSkipsNonManifestFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeManifest(t, root, "base.yaml", "actions: []\n")
	writeManifest(t, root, "README.md", "not a manifest\n")

	manifests, err := Load(root)
	require.NoError(t, err)
	require.Len(t, manifests, 1)
}

func TestLoadReturnsParseErrorForMalformedFileButKeepsOthers(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeManifest(t, root, "base.yaml", "actions: []\n")
	writeManifest(t, root, "broken.yaml", "actions: [this is not valid: [\n")

	manifests, err := Load(root)
	require.Error(t, err)
	require.Contains(t, manifests, "base")
	require.NotContains(t, manifests, "broken")
}

func TestLoadDefaultsRootDirToManifestDirectory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeManifest(t, root, "configs/app.yaml", "actions: []\n")

	manifests, err := Load(root)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "configs"), manifests["configs.app"].RootDir)
}

package action

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avbuilds/manifesto/internal/atom"
	"github.com/avbuilds/manifesto/internal/model"
)

func TestPlanDirectoryCreateDefaultsModeToZeroWhenUnset(t *testing.T) {
	t.Parallel()

	r := &Resolver{}
	steps, err := r.planDirectoryCreate("m", &model.DirectoryCreateBody{Path: "/tmp/x"})
	require.NoError(t, err)
	d := steps[0].Atom.(*atom.DirectoryCreate)
	require.Equal(t, "/tmp/x", d.Path)
	require.Zero(t, d.Mode)
}

func TestPlanDirectoryCopyResolvesFromAgainstRootDir(t *testing.T) {
	t.Parallel()

	r := &Resolver{}
	steps, err := r.planDirectoryCopy("m", "/srv/manifests/app", &model.DirectoryCopyBody{From: "files/assets", To: "/opt/assets"})
	require.NoError(t, err)
	c := steps[0].Atom.(*atom.DirectoryCopy)
	require.Equal(t, "/srv/manifests/app/files/assets", c.From)
	require.Equal(t, "/opt/assets", c.To)
}

func TestPlanDirectoryRemoveBuildsDirectoryRemoveAtom(t *testing.T) {
	t.Parallel()

	r := &Resolver{}
	steps, err := r.planDirectoryRemove("m", &model.DirectoryRemoveBody{Path: "/tmp/x"})
	require.NoError(t, err)
	_, ok := steps[0].Atom.(*atom.DirectoryRemove)
	require.True(t, ok)
}

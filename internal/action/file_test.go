package action

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avbuilds/manifesto/internal/atom"
	"github.com/avbuilds/manifesto/internal/model"
)

func TestPlanFileCopyModeBitsMatch(t *testing.T) {
	t.Parallel()

	r := &Resolver{}
	steps, err := r.planFileCopy("m", "", &model.FileCopyBody{From: "a", To: "b", Mode: "0640"})
	require.NoError(t, err)
	c := steps[0].Atom.(*atom.Copy)
	require.Equal(t, uint32(0640), uint32(c.Mode.Perm()))
}

func TestPlanFileCopyResolvesFromAgainstRootDir(t *testing.T) {
	t.Parallel()

	r := &Resolver{}
	steps, err := r.planFileCopy("m", "/srv/manifests/app", &model.FileCopyBody{From: "files/config.yaml", To: "/etc/app/config.yaml"})
	require.NoError(t, err)
	c := steps[0].Atom.(*atom.Copy)
	require.Equal(t, "/srv/manifests/app/files/config.yaml", c.From)
	require.Equal(t, "/etc/app/config.yaml", c.To)
}

func TestPlanFileCopyLeavesAbsoluteFromUntouched(t *testing.T) {
	t.Parallel()

	r := &Resolver{}
	steps, err := r.planFileCopy("m", "/srv/manifests/app", &model.FileCopyBody{From: "/opt/shared/config.yaml", To: "b"})
	require.NoError(t, err)
	c := steps[0].Atom.(*atom.Copy)
	require.Equal(t, "/opt/shared/config.yaml", c.From)
}

func TestPlanFileDownloadBuildsDownloadAtom(t *testing.T) {
	t.Parallel()

	r := &Resolver{}
	steps, err := r.planFileDownload("m", &model.FileDownloadBody{URL: "https://example.invalid/x", To: "/tmp/x"})
	require.NoError(t, err)
	d := steps[0].Atom.(*atom.Download)
	require.Equal(t, "https://example.invalid/x", d.URL)
}

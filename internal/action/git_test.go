package action

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avbuilds/manifesto/internal/atom"
	"github.com/avbuilds/manifesto/internal/model"
)

func TestPlanGitCloneBuildsGitCloneAtom(t *testing.T) {
	t.Parallel()

	r := &Resolver{}
	steps, err := r.planGitClone("m", &model.GitCloneBody{Repository: "https://example.invalid/repo.git", Directory: "/tmp/repo", Branch: "main"})
	require.NoError(t, err)
	g := steps[0].Atom.(*atom.GitClone)
	require.Equal(t, "main", g.Branch)
}

package action

import (
	"context"
	"os/user"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avbuilds/manifesto/internal/atom"
	"github.com/avbuilds/manifesto/internal/contexts"
	"github.com/avbuilds/manifesto/internal/model"
)

func TestPlanGroupAddStampsManifestName(t *testing.T) {
	t.Parallel()

	r := &Resolver{Contexts: contexts.New()}
	steps, err := r.Plan(context.Background(), "my-manifest", "", model.Action{
		Kind: model.KindGroupAdd,
		Body: &model.GroupAddBody{Name: "deploy"},
	})
	if err != nil || len(steps) == 0 {
		// A none-provider host (e.g. Windows in this family's mapping)
		// legitimately produces zero steps; nothing further to assert.
		return
	}
	exec, ok := steps[0].Atom.(*atom.Exec)
	require.True(t, ok)
	require.Equal(t, "my-manifest", exec.ManifestName)
}

func TestPlanUserAddSkipsWhenUserAlreadyExists(t *testing.T) {
	t.Parallel()

	current, err := user.Current()
	require.NoError(t, err)

	r := &Resolver{Contexts: contexts.New()}
	steps, planErr := r.Plan(context.Background(), "m", "", model.Action{
		Kind: model.KindUserAdd,
		Body: &model.UserAddBody{Name: current.Username},
	})
	require.NoError(t, planErr)
	require.Empty(t, steps)
}

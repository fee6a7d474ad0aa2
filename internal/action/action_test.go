package action

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avbuilds/manifesto/internal/atom"
	"github.com/avbuilds/manifesto/internal/contexts"
	"github.com/avbuilds/manifesto/internal/model"
)

func TestResolverPlanCommandRunBuildsExecStep(t *testing.T) {
	t.Parallel()

	r := &Resolver{Contexts: contexts.New()}
	steps, err := r.Plan(context.Background(), "m", "", model.Action{
		Kind: model.KindCommandRun,
		Body: &model.CommandRunBody{Command: "echo", Args: []string{"hi"}},
	})
	require.NoError(t, err)
	require.Len(t, steps, 1)

	exec, ok := steps[0].Atom.(*atom.Exec)
	require.True(t, ok)
	require.Equal(t, "echo", exec.Command)
}

func TestResolverPlanVariantSelectionPrefersFirstMatch(t *testing.T) {
	t.Parallel()

	r := &Resolver{Contexts: contexts.NewWithVars(nil)}
	action := model.Action{
		Kind: model.KindCommandRun,
		Body: &model.CommandRunBody{Command: "echo", Args: []string{"default"}},
		Variants: []model.ActionVariant{
			{Where: `os == "nonexistent-family"`, Body: &model.CommandRunBody{Command: "echo", Args: []string{"nope"}}},
			{Where: "", Body: &model.CommandRunBody{Command: "echo", Args: []string{"fallback"}}},
		},
	}
	steps, err := r.Plan(context.Background(), "m", "", action)
	require.NoError(t, err)
	exec := steps[0].Atom.(*atom.Exec)
	require.Equal(t, []string{"fallback"}, exec.Args)
}

func TestResolverPlanSkipsWhenBaseWhereIsFalse(t *testing.T) {
	t.Parallel()

	r := &Resolver{Contexts: contexts.NewWithVars(nil)}
	action := model.Action{
		Kind:  model.KindCommandRun,
		Where: `os == "definitely-not-this-host"`,
		Body:  &model.CommandRunBody{Command: "echo"},
	}
	steps, err := r.Plan(context.Background(), "m", "", action)
	require.NoError(t, err)
	require.Nil(t, steps)
}

func TestResolverPlanPropagatesBaseWhereEvalError(t *testing.T) {
	t.Parallel()

	r := &Resolver{Contexts: contexts.NewWithVars(nil)}
	action := model.Action{
		Kind:  model.KindCommandRun,
		Where: `os ==`,
		Body:  &model.CommandRunBody{Command: "echo"},
	}
	_, err := r.Plan(context.Background(), "m", "", action)
	require.Error(t, err)
}

func TestResolverPlanUnarchiveBuildsUnarchiveStep(t *testing.T) {
	t.Parallel()

	r := &Resolver{Contexts: contexts.New()}
	steps, err := r.Plan(context.Background(), "m", "", model.Action{
		Kind: model.KindFileUnarchive,
		Body: &model.FileUnarchiveBody{From: "a.zip", To: "/tmp/out", StripComponents: 1},
	})
	require.NoError(t, err)
	require.Len(t, steps, 1)
	_, ok := steps[0].Atom.(*atom.Unarchive)
	require.True(t, ok)
}

func TestSummarizeCoversEveryKind(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind model.ActionKind
		body any
	}{
		{model.KindCommandRun, &model.CommandRunBody{Command: "echo"}},
		{model.KindDirectoryCopy, &model.DirectoryCopyBody{From: "a", To: "b"}},
		{model.KindDirectoryCreate, &model.DirectoryCreateBody{Path: "a"}},
		{model.KindDirectoryRemove, &model.DirectoryRemoveBody{Path: "a"}},
		{model.KindFileCopy, &model.FileCopyBody{From: "a", To: "b"}},
		{model.KindFileChown, &model.FileChownBody{Path: "a"}},
		{model.KindFileDownload, &model.FileDownloadBody{URL: "a", To: "b"}},
		{model.KindFileLink, &model.FileLinkBody{From: "a", To: "b"}},
		{model.KindFileRemove, &model.FileRemoveBody{Path: "a"}},
		{model.KindFileUnarchive, &model.FileUnarchiveBody{From: "a", To: "b"}},
		{model.KindBinaryGithub, &model.BinaryGithubBody{Repo: "o/r", To: "b"}},
		{model.KindGitClone, &model.GitCloneBody{Repository: "a", Directory: "b"}},
		{model.KindGroupAdd, &model.GroupAddBody{Name: "a"}},
		{model.KindMacOSDefault, &model.MacOSDefaultBody{Domain: "a", Key: "b", Value: "c"}},
		{model.KindPackageInstall, &model.PackageInstallBody{List: []string{"a"}}},
		{model.KindPackageRepository, &model.PackageRepositoryBody{Name: "a"}},
		{model.KindUserAdd, &model.UserAddBody{Name: "a"}},
		{model.KindUserGroup, &model.UserGroupBody{User: "a", Group: "b"}},
		{model.KindPlugin, &model.PluginBody{Name: "a"}},
	}

	for _, c := range cases {
		require.NotEmpty(t, Summarize(c.kind, c.body))
	}
}

package privilege

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avbuilds/manifesto/internal/model"
)

func TestResolveHelperDefaultsToSudo(t *testing.T) {
	t.Parallel()

	h, err := ResolveHelper("")
	require.NoError(t, err)
	require.Equal(t, "sudo", h.Name)
}

func TestResolveHelperRejectsUnknown(t *testing.T) {
	t.Parallel()

	_, err := ResolveHelper("not-a-helper")
	require.Error(t, err)
}

func TestRewritePrependsHelperAsCommand(t *testing.T) {
	t.Parallel()

	b, err := NewBroker("sudo")
	require.NoError(t, err)

	cmd, args := b.Rewrite("apt-get", []string{"install", "vim"})
	require.Equal(t, "sudo", cmd)
	require.Equal(t, []string{"apt-get", "install", "vim"}, args)
}

func TestRun0HasNoValidateIdiomAndSkipsCleanly(t *testing.T) {
	t.Parallel()

	h, err := ResolveHelper("run0")
	require.NoError(t, err)
	require.Nil(t, h.ValidateArgs)
}

func TestCredentialZeroClearsBytes(t *testing.T) {
	t.Parallel()

	c := &Credential{bytes: []byte("hunter2")}
	c.Zero()
	require.Nil(t, c.bytes)
}

func TestAnyRequiresElevationDetectsPackageInstall(t *testing.T) {
	t.Parallel()

	manifests := map[string]*model.Manifest{
		"a": {Actions: []model.Action{{Kind: model.KindPackageInstall, Body: &model.PackageInstallBody{List: []string{"vim"}}}}},
	}
	require.True(t, anyRequiresElevation(manifests))
}

func TestAnyRequiresElevationDetectsPrivilegedCommand(t *testing.T) {
	t.Parallel()

	manifests := map[string]*model.Manifest{
		"a": {Actions: []model.Action{{Kind: model.KindCommandRun, Body: &model.CommandRunBody{Command: "systemctl", Privileged: true}}}},
	}
	require.True(t, anyRequiresElevation(manifests))
}

func TestAnyRequiresElevationFalseForPlainCommand(t *testing.T) {
	t.Parallel()

	manifests := map[string]*model.Manifest{
		"a": {Actions: []model.Action{{Kind: model.KindCommandRun, Body: &model.CommandRunBody{Command: "echo"}}}},
	}
	require.False(t, anyRequiresElevation(manifests))
}

package model

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func decodeAction(t *testing.T, doc string) Action {
	t.Helper()
	var a Action
	require.NoError(t, yaml.Unmarshal([]byte(doc), &a))
	return a
}

func TestUnmarshalCommandRunAction(t *testing.T) {
	t.Parallel()

	a := decodeAction(t, `
action: command.run
command: echo
args: [hello]
`)

	require.Equal(t, KindCommandRun, a.Kind)
	body, ok := a.Body.(*CommandRunBody)
	require.True(t, ok)
	require.Equal(t, "echo", body.Command)
	require.Equal(t, []string{"hello"}, body.Args)
}

func TestUnmarshalActionTagAliases(t *testing.T) {
	t.Parallel()

	cases := map[string]ActionKind{
		"cmd.run":           KindCommandRun,
		"dir.copy":          KindDirectoryCopy,
		"dir.create":        KindDirectoryCreate,
		"dir.remove":        KindDirectoryRemove,
		"bin.gh":            KindBinaryGithub,
		"bin.github":        KindBinaryGithub,
		"binary.gh":         KindBinaryGithub,
		"package.installed": KindPackageInstall,
		"package.repo":      KindPackageRepository,
	}

	for tag, want := range cases {
		doc := "action: " + tag + "\n" + bodyFieldsFor(want)
		a := decodeAction(t, doc)
		require.Equal(t, want, a.Kind, "tag %q", tag)
	}
}

// bodyFieldsFor supplies the minimum required fields so decoding
// succeeds regardless of which alias maps to which kind.
func bodyFieldsFor(kind ActionKind) string {
	switch kind {
	case KindCommandRun:
		return "command: echo\n"
	case KindDirectoryCopy:
		return "from: /a\nto: /b\n"
	case KindDirectoryCreate:
		return "path: /a\n"
	case KindDirectoryRemove:
		return "path: /a\n"
	case KindBinaryGithub:
		return "repo: owner/repo\nto: /usr/local/bin/x\n"
	case KindPackageInstall:
		return "list: [vim]\n"
	case KindPackageRepository:
		return "name: repo\n"
	default:
		return ""
	}
}

func TestUnmarshalActionWithVariants(t *testing.T) {
	t.Parallel()

	a := decodeAction(t, `
action: command.run
command: echo
args: [default]
variants:
  - where: "os == \"linux\""
    command: echo
    args: [linux]
`)

	require.Equal(t, KindCommandRun, a.Kind)
	require.Len(t, a.Variants, 1)
	require.Equal(t, `os == "linux"`, a.Variants[0].Where)

	variantBody, ok := a.Variants[0].Body.(*CommandRunBody)
	require.True(t, ok)
	require.Equal(t, []string{"linux"}, variantBody.Args)
}

func TestUnmarshalUnknownActionTagFails(t *testing.T) {
	t.Parallel()

	var a Action
	err := yaml.Unmarshal([]byte("action: nonsense.kind\n"), &a)
	require.Error(t, err)
}

func TestUnmarshalManifestActionsList(t *testing.T) {
	t.Parallel()

	var m Manifest
	err := yaml.Unmarshal([]byte(`
where: "os == \"linux\""
labels: [prod]
depends: [base]
actions:
  - action: command.run
    command: echo
    args: [hello]
`), &m)

	require.NoError(t, err)
	require.Equal(t, []string{"prod"}, m.Labels)
	require.Len(t, m.Actions, 1)
	require.True(t, m.HasLabel("prod"))
	require.False(t, m.HasLabel("dev"))
}

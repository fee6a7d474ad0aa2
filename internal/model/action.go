package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ActionKind is the canonical discriminator tag for an action variant.
type ActionKind string

const (
	KindCommandRun        ActionKind = "command.run"
	KindDirectoryCopy     ActionKind = "directory.copy"
	KindDirectoryCreate   ActionKind = "directory.create"
	KindDirectoryRemove   ActionKind = "directory.remove"
	KindFileCopy          ActionKind = "file.copy"
	KindFileChown         ActionKind = "file.chown"
	KindFileDownload      ActionKind = "file.download"
	KindFileLink          ActionKind = "file.link"
	KindFileRemove        ActionKind = "file.remove"
	KindFileUnarchive     ActionKind = "file.unarchive"
	KindBinaryGithub      ActionKind = "binary.github"
	KindGitClone          ActionKind = "git.clone"
	KindGroupAdd          ActionKind = "group.add"
	KindMacOSDefault      ActionKind = "macos.default"
	KindPackageInstall    ActionKind = "package.install"
	KindPackageRepository ActionKind = "package.repository"
	KindUserAdd           ActionKind = "user.add"
	KindUserGroup         ActionKind = "user.group"
	KindPlugin            ActionKind = "plugin"
)

// tagAliases maps the accepted aliases of §6 onto their canonical tag.
var tagAliases = map[string]ActionKind{
	"cmd.run":          KindCommandRun,
	"dir.copy":         KindDirectoryCopy,
	"dir.create":       KindDirectoryCreate,
	"dir.remove":       KindDirectoryRemove,
	"bin.gh":           KindBinaryGithub,
	"bin.github":       KindBinaryGithub,
	"binary.gh":        KindBinaryGithub,
	"package.installed": KindPackageInstall,
	"package.repo":     KindPackageRepository,
}

func canonicalKind(tag string) (ActionKind, bool) {
	if alias, ok := tagAliases[tag]; ok {
		return alias, true
	}
	kind := ActionKind(tag)
	switch kind {
	case KindCommandRun, KindDirectoryCopy, KindDirectoryCreate, KindDirectoryRemove,
		KindFileCopy, KindFileChown, KindFileDownload, KindFileLink, KindFileRemove,
		KindFileUnarchive, KindBinaryGithub, KindGitClone, KindGroupAdd, KindMacOSDefault,
		KindPackageInstall, KindPackageRepository, KindUserAdd, KindUserGroup, KindPlugin:
		return kind, true
	default:
		return "", false
	}
}

// Action is manifesto's ConditionalVariantAction (spec §3): a base action
// variant plus an optional condition, and an ordered list of variants
// that replace the base body when their own condition is truthy first.
// A variant shares the base's Kind; only its Where and Body differ.
type Action struct {
	Kind     ActionKind
	Where    string
	Body     any
	Variants []ActionVariant
}

// ActionVariant is one entry of Action.Variants.
type ActionVariant struct {
	Where string
	Body  any
}

type actionEnvelope struct {
	Tag      string      `yaml:"action"`
	Where    string      `yaml:"where"`
	Variants []yaml.Node `yaml:"variants"`
}

// UnmarshalYAML dispatches on the `action` discriminator, mirroring the
// teacher's Step.UnmarshalYAML pattern: decode a typed body per kind
// rather than carrying every variant's fields on one flat struct.
func (a *Action) UnmarshalYAML(value *yaml.Node) error {
	var env actionEnvelope
	if err := value.Decode(&env); err != nil {
		return err
	}

	kind, ok := canonicalKind(env.Tag)
	if !ok {
		return fmt.Errorf("model: unknown action tag %q", env.Tag)
	}

	body, err := decodeBody(kind, value)
	if err != nil {
		return fmt.Errorf("model: action %q: %w", env.Tag, err)
	}

	variants := make([]ActionVariant, 0, len(env.Variants))
	for i := range env.Variants {
		vn := &env.Variants[i]
		var vEnv struct {
			Where string `yaml:"where"`
		}
		if err := vn.Decode(&vEnv); err != nil {
			return fmt.Errorf("model: action %q: variant[%d]: %w", env.Tag, i, err)
		}
		vBody, err := decodeBody(kind, vn)
		if err != nil {
			return fmt.Errorf("model: action %q: variant[%d]: %w", env.Tag, i, err)
		}
		variants = append(variants, ActionVariant{Where: vEnv.Where, Body: vBody})
	}

	a.Kind = kind
	a.Where = env.Where
	a.Body = body
	a.Variants = variants
	return nil
}

func decodeBody(kind ActionKind, node *yaml.Node) (any, error) {
	var body any
	switch kind {
	case KindCommandRun:
		body = &CommandRunBody{}
	case KindDirectoryCopy:
		body = &DirectoryCopyBody{}
	case KindDirectoryCreate:
		body = &DirectoryCreateBody{}
	case KindDirectoryRemove:
		body = &DirectoryRemoveBody{}
	case KindFileCopy:
		body = &FileCopyBody{}
	case KindFileChown:
		body = &FileChownBody{}
	case KindFileDownload:
		body = &FileDownloadBody{}
	case KindFileLink:
		body = &FileLinkBody{}
	case KindFileRemove:
		body = &FileRemoveBody{}
	case KindFileUnarchive:
		body = &FileUnarchiveBody{}
	case KindBinaryGithub:
		body = &BinaryGithubBody{}
	case KindGitClone:
		body = &GitCloneBody{}
	case KindGroupAdd:
		body = &GroupAddBody{}
	case KindMacOSDefault:
		body = &MacOSDefaultBody{}
	case KindPackageInstall:
		body = &PackageInstallBody{}
	case KindPackageRepository:
		body = &PackageRepositoryBody{}
	case KindUserAdd:
		body = &UserAddBody{}
	case KindUserGroup:
		body = &UserGroupBody{}
	case KindPlugin:
		body = &PluginBody{}
	default:
		return nil, fmt.Errorf("no body type registered for kind %q", kind)
	}
	if err := node.Decode(body); err != nil {
		return nil, err
	}
	return body, nil
}

// CommandRunBody is command.run's action-specific fields.
type CommandRunBody struct {
	Command           string            `yaml:"command" validate:"required"`
	Args              []string          `yaml:"args,omitempty"`
	Env               map[string]string `yaml:"env,omitempty"`
	Dir               string            `yaml:"dir,omitempty"`
	Privileged        bool              `yaml:"privileged,omitempty"`
	PrivilegeProvider string            `yaml:"privilege_provider,omitempty"`
}

// DirectoryCopyBody is directory.copy's action-specific fields.
type DirectoryCopyBody struct {
	From string `yaml:"from" validate:"required"`
	To   string `yaml:"to" validate:"required"`
}

// DirectoryCreateBody is directory.create's action-specific fields.
type DirectoryCreateBody struct {
	Path string `yaml:"path" validate:"required"`
	Mode string `yaml:"mode,omitempty"`
}

// DirectoryRemoveBody is directory.remove's action-specific fields.
type DirectoryRemoveBody struct {
	Path string `yaml:"path" validate:"required"`
}

// FileCopyBody is file.copy's action-specific fields.
type FileCopyBody struct {
	From string `yaml:"from" validate:"required"`
	To   string `yaml:"to" validate:"required"`
	Mode string `yaml:"mode,omitempty"`
}

// FileChownBody is file.chown's action-specific fields.
type FileChownBody struct {
	Path      string `yaml:"path" validate:"required"`
	User      string `yaml:"user,omitempty"`
	Group     string `yaml:"group,omitempty"`
	Recursive bool   `yaml:"recursive,omitempty"`
}

// FileDownloadBody is file.download's action-specific fields.
type FileDownloadBody struct {
	URL  string `yaml:"url" validate:"required"`
	To   string `yaml:"to" validate:"required"`
	Mode string `yaml:"mode,omitempty"`
}

// FileLinkBody is file.link's action-specific fields.
type FileLinkBody struct {
	From  string `yaml:"from" validate:"required"`
	To    string `yaml:"to" validate:"required"`
	Force bool   `yaml:"force,omitempty"`
}

// FileRemoveBody is file.remove's action-specific fields.
type FileRemoveBody struct {
	Path string `yaml:"path" validate:"required"`
}

// FileUnarchiveBody is file.unarchive's action-specific fields.
type FileUnarchiveBody struct {
	From            string `yaml:"from" validate:"required"`
	To              string `yaml:"to" validate:"required"`
	StripComponents int    `yaml:"strip_components,omitempty"`
}

// BinaryGithubBody is binary.github's action-specific fields.
type BinaryGithubBody struct {
	Repo         string `yaml:"repo" validate:"required"`
	Version      string `yaml:"version,omitempty"`
	AssetPattern string `yaml:"asset_pattern,omitempty"`
	To           string `yaml:"to" validate:"required"`
}

// GitCloneBody is git.clone's action-specific fields.
type GitCloneBody struct {
	Repository string `yaml:"repository" validate:"required"`
	Directory  string `yaml:"directory" validate:"required"`
	Branch     string `yaml:"branch,omitempty"`
}

// GroupAddBody is group.add's action-specific fields.
type GroupAddBody struct {
	Name string `yaml:"name" validate:"required"`
}

// MacOSDefaultBody is macos.default's action-specific fields.
type MacOSDefaultBody struct {
	Domain string `yaml:"domain" validate:"required"`
	Key    string `yaml:"key" validate:"required"`
	Type   string `yaml:"type,omitempty"`
	Value  string `yaml:"value" validate:"required"`
}

// PackageInstallBody is package.install's action-specific fields.
type PackageInstallBody struct {
	List      []string `yaml:"list" validate:"required,min=1"`
	Provider  string   `yaml:"provider,omitempty"`
	ExtraArgs []string `yaml:"extra_args,omitempty"`
}

// PackageRepositoryBody is package.repository's action-specific fields.
type PackageRepositoryBody struct {
	Name     string `yaml:"name" validate:"required"`
	Provider string `yaml:"provider,omitempty"`
	URI      string `yaml:"uri,omitempty"`
	Key      string `yaml:"key,omitempty"`
}

// UserAddBody is user.add's action-specific fields.
type UserAddBody struct {
	Name       string `yaml:"name" validate:"required"`
	Group      string `yaml:"group,omitempty"`
	Shell      string `yaml:"shell,omitempty"`
	Home       string `yaml:"home,omitempty"`
	CreateHome bool   `yaml:"create_home,omitempty"`
}

// UserGroupBody is user.group's action-specific fields: adds an existing
// user to an existing group.
type UserGroupBody struct {
	User  string `yaml:"user" validate:"required"`
	Group string `yaml:"group" validate:"required"`
}

// PluginBody is the plugin action's action-specific fields: a plugin
// name and an arbitrary configuration payload handed to the registered
// plugin implementation (internal/plugin).
type PluginBody struct {
	Name string         `yaml:"name" validate:"required"`
	With map[string]any `yaml:"with,omitempty"`
}

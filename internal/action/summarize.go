package action

import (
	"fmt"
	"strings"

	"github.com/avbuilds/manifesto/internal/model"
)

// Summarize renders a one-line human-readable description of an action's
// active body, for the executor's apply/status output. It does not
// resolve variants itself: callers pass the already-selected body kind
// and value via action.Kind/action.Body (or a variant's Body), matching
// the rest of this package's pattern of dispatching on model.ActionKind.
func Summarize(kind model.ActionKind, body any) string {
	switch kind {
	case model.KindCommandRun:
		b := body.(*model.CommandRunBody)
		return fmt.Sprintf("run %s %s", b.Command, strings.Join(b.Args, " "))
	case model.KindDirectoryCopy:
		b := body.(*model.DirectoryCopyBody)
		return fmt.Sprintf("copy directory %s to %s", b.From, b.To)
	case model.KindDirectoryCreate:
		b := body.(*model.DirectoryCreateBody)
		return fmt.Sprintf("create directory %s", b.Path)
	case model.KindDirectoryRemove:
		b := body.(*model.DirectoryRemoveBody)
		return fmt.Sprintf("remove directory %s", b.Path)
	case model.KindFileCopy:
		b := body.(*model.FileCopyBody)
		return fmt.Sprintf("copy %s to %s", b.From, b.To)
	case model.KindFileChown:
		b := body.(*model.FileChownBody)
		return fmt.Sprintf("chown %s", b.Path)
	case model.KindFileDownload:
		b := body.(*model.FileDownloadBody)
		return fmt.Sprintf("download %s to %s", b.URL, b.To)
	case model.KindFileLink:
		b := body.(*model.FileLinkBody)
		return fmt.Sprintf("link %s to %s", b.To, b.From)
	case model.KindFileRemove:
		b := body.(*model.FileRemoveBody)
		return fmt.Sprintf("remove %s", b.Path)
	case model.KindFileUnarchive:
		b := body.(*model.FileUnarchiveBody)
		return fmt.Sprintf("unarchive %s to %s", b.From, b.To)
	case model.KindBinaryGithub:
		b := body.(*model.BinaryGithubBody)
		return fmt.Sprintf("install %s release from %s to %s", b.Repo, versionOrLatest(b.Version), b.To)
	case model.KindGitClone:
		b := body.(*model.GitCloneBody)
		return fmt.Sprintf("clone %s to %s", b.Repository, b.Directory)
	case model.KindGroupAdd:
		b := body.(*model.GroupAddBody)
		return fmt.Sprintf("add group %s", b.Name)
	case model.KindMacOSDefault:
		b := body.(*model.MacOSDefaultBody)
		return fmt.Sprintf("set macOS default %s %s to %s", b.Domain, b.Key, b.Value)
	case model.KindPackageInstall:
		b := body.(*model.PackageInstallBody)
		return fmt.Sprintf("install packages %s", strings.Join(b.List, ", "))
	case model.KindPackageRepository:
		b := body.(*model.PackageRepositoryBody)
		return fmt.Sprintf("add package repository %s", b.Name)
	case model.KindUserAdd:
		b := body.(*model.UserAddBody)
		return fmt.Sprintf("add user %s", b.Name)
	case model.KindUserGroup:
		b := body.(*model.UserGroupBody)
		return fmt.Sprintf("add user %s to group %s", b.User, b.Group)
	case model.KindPlugin:
		b := body.(*model.PluginBody)
		return fmt.Sprintf("run plugin %s", b.Name)
	default:
		return string(kind)
	}
}

func versionOrLatest(v string) string {
	if v == "" {
		return "latest"
	}
	return v
}

package atom

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strconv"

	"github.com/avbuilds/manifesto/internal/model"
	"github.com/avbuilds/manifesto/pkg/diff"
	manifestoerrors "github.com/avbuilds/manifesto/pkg/errors"
)

// maxDiffPreviewBytes bounds how large a file Copy.Plan will read
// in full to produce a unified-diff side effect; larger files just get
// the plain "copy from to" description.
const maxDiffPreviewBytes = 64 * 1024

// Create is the file.create atom: ensures a file exists with the given
// mode, creating parent directories as needed (comtrya atoms/file/create.rs).
type Create struct {
	ManifestName string
	Path         string
	Mode         os.FileMode

	errorMessage string
}

var _ model.Atom = (*Create)(nil)

func (a *Create) Plan(context.Context) (model.Outcome, error) {
	if _, err := os.Stat(a.Path); err == nil {
		return model.Outcome{}, nil
	}
	return model.Outcome{SideEffects: []string{"create " + a.Path}, ShouldRun: true}, nil
}

func (a *Create) Execute(context.Context) error {
	if err := os.MkdirAll(filepath.Dir(a.Path), 0o755); err != nil {
		a.errorMessage = err.Error()
		return manifestoerrors.NewAtomExecuteError(a.ManifestName, "IoError", err)
	}
	mode := a.Mode
	if mode == 0 {
		mode = 0o644
	}
	f, err := os.OpenFile(a.Path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, mode)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		a.errorMessage = err.Error()
		return manifestoerrors.NewAtomExecuteError(a.ManifestName, "IoError", err)
	}
	return f.Close()
}

func (a *Create) OutputString() string { return a.Path }
func (a *Create) ErrorMessage() string  { return a.errorMessage }

// Copy is the file.copy atom: copies a regular file's bytes and mode.
type Copy struct {
	ManifestName string
	From         string
	To           string
	Mode         os.FileMode

	errorMessage string
}

var _ model.Atom = (*Copy)(nil)

func (a *Copy) Plan(context.Context) (model.Outcome, error) {
	summary := "copy " + a.From + " to " + a.To
	same, err := filesEqual(a.From, a.To)
	if err != nil {
		return model.Outcome{SideEffects: []string{summary}, ShouldRun: true}, nil
	}
	if same {
		return model.Outcome{}, nil
	}
	if preview := a.diffPreview(); preview != "" {
		summary = preview
	}
	return model.Outcome{SideEffects: []string{summary}, ShouldRun: true}, nil
}

// diffPreview renders a unified diff between the destination's current
// content and what copying From would replace it with, for small enough
// files; callers fall back to the plain "copy from to" summary when it
// returns "" (either file missing or unreadable, either file too large,
// or identical content). Binary content is diffed like text.
func (a *Copy) diffPreview() string {
	toContent, err := readBounded(a.To, maxDiffPreviewBytes)
	if err != nil {
		return ""
	}
	fromContent, err := readBounded(a.From, maxDiffPreviewBytes)
	if err != nil {
		return ""
	}
	return diff.GenerateUnifiedDiff(toContent, fromContent, a.To, a.From)
}

func readBounded(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() > limit {
		return nil, fmt.Errorf("%s exceeds diff preview size limit", path)
	}
	return io.ReadAll(f)
}

func (a *Copy) Execute(context.Context) error {
	if err := os.MkdirAll(filepath.Dir(a.To), 0o755); err != nil {
		a.errorMessage = err.Error()
		return manifestoerrors.NewAtomExecuteError(a.ManifestName, "IoError", err)
	}
	if err := copyFileContents(a.From, a.To, a.Mode); err != nil {
		a.errorMessage = err.Error()
		return manifestoerrors.NewAtomExecuteError(a.ManifestName, "IoError", err)
	}
	return nil
}

func (a *Copy) OutputString() string { return a.To }
func (a *Copy) ErrorMessage() string  { return a.errorMessage }

func copyFileContents(from, to string, mode os.FileMode) error {
	src, err := os.Open(from)
	if err != nil {
		return err
	}
	defer src.Close()

	if mode == 0 {
		if info, statErr := src.Stat(); statErr == nil {
			mode = info.Mode()
		} else {
			mode = 0o644
		}
	}

	dst, err := os.OpenFile(to, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

func filesEqual(from, to string) (bool, error) {
	fromInfo, err := os.Stat(from)
	if err != nil {
		return false, err
	}
	toInfo, err := os.Stat(to)
	if err != nil {
		return false, nil
	}
	if fromInfo.Size() != toInfo.Size() {
		return false, nil
	}
	fromBytes, err := os.ReadFile(from)
	if err != nil {
		return false, err
	}
	toBytes, err := os.ReadFile(to)
	if err != nil {
		return false, nil
	}
	return string(fromBytes) == string(toBytes), nil
}

// Link is the file.link atom: a symlink from To pointing at From, mirroring
// the teacher's symlink plugin but folded into plan/execute rather than
// check/apply/verify.
type Link struct {
	ManifestName string
	From         string
	To           string
	Force        bool

	errorMessage string
}

var _ model.Atom = (*Link)(nil)

func (a *Link) Plan(context.Context) (model.Outcome, error) {
	target, err := os.Readlink(a.To)
	if err == nil && target == a.From {
		return model.Outcome{}, nil
	}
	return model.Outcome{SideEffects: []string{"link " + a.To + " -> " + a.From}, ShouldRun: true}, nil
}

func (a *Link) Execute(context.Context) error {
	if err := os.MkdirAll(filepath.Dir(a.To), 0o755); err != nil {
		a.errorMessage = err.Error()
		return manifestoerrors.NewAtomExecuteError(a.ManifestName, "IoError", err)
	}
	if _, err := os.Lstat(a.To); err == nil {
		if !a.Force {
			err := fmt.Errorf("target %s already exists", a.To)
			a.errorMessage = err.Error()
			return manifestoerrors.NewAtomExecuteError(a.ManifestName, "IoError", err)
		}
		if err := os.Remove(a.To); err != nil {
			a.errorMessage = err.Error()
			return manifestoerrors.NewAtomExecuteError(a.ManifestName, "IoError", err)
		}
	}
	if err := os.Symlink(a.From, a.To); err != nil {
		a.errorMessage = err.Error()
		return manifestoerrors.NewAtomExecuteError(a.ManifestName, "IoError", err)
	}
	return nil
}

func (a *Link) OutputString() string { return a.To + " -> " + a.From }
func (a *Link) ErrorMessage() string  { return a.errorMessage }

// Chmod is the file.chmod atom.
type Chmod struct {
	ManifestName string
	Path         string
	Mode         os.FileMode

	errorMessage string
}

var _ model.Atom = (*Chmod)(nil)

func (a *Chmod) Plan(context.Context) (model.Outcome, error) {
	info, err := os.Stat(a.Path)
	if err != nil {
		return model.Outcome{SideEffects: []string{"chmod " + a.Path}, ShouldRun: true}, nil
	}
	if info.Mode().Perm() == a.Mode.Perm() {
		return model.Outcome{}, nil
	}
	return model.Outcome{SideEffects: []string{"chmod " + a.Path}, ShouldRun: true}, nil
}

func (a *Chmod) Execute(context.Context) error {
	if err := os.Chmod(a.Path, a.Mode); err != nil {
		a.errorMessage = err.Error()
		return manifestoerrors.NewAtomExecuteError(a.ManifestName, "IoError", err)
	}
	return nil
}

func (a *Chmod) OutputString() string { return a.Path }
func (a *Chmod) ErrorMessage() string  { return a.errorMessage }

// Chown is the file.chown atom. User/group names are resolved via os/user;
// numeric ids are accepted directly, matching comtrya's chown.rs behavior
// of accepting either.
type Chown struct {
	ManifestName string
	Path         string
	User         string
	Group        string
	Recursive    bool

	errorMessage string
}

var _ model.Atom = (*Chown)(nil)

func (a *Chown) Plan(context.Context) (model.Outcome, error) {
	if _, err := os.Stat(a.Path); err != nil {
		return model.Outcome{SideEffects: []string{"chown " + a.Path}, ShouldRun: true}, nil
	}
	return model.Outcome{SideEffects: []string{"chown " + a.Path}, ShouldRun: true}, nil
}

func (a *Chown) Execute(context.Context) error {
	uid, gid, err := resolveOwner(a.User, a.Group)
	if err != nil {
		a.errorMessage = err.Error()
		return manifestoerrors.NewAtomExecuteError(a.ManifestName, "IoError", err)
	}

	chown := func(path string) error { return os.Chown(path, uid, gid) }
	if !a.Recursive {
		if err := chown(a.Path); err != nil {
			a.errorMessage = err.Error()
			return manifestoerrors.NewAtomExecuteError(a.ManifestName, "IoError", err)
		}
		return nil
	}

	err = filepath.WalkDir(a.Path, func(path string, _ os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		return chown(path)
	})
	if err != nil {
		a.errorMessage = err.Error()
		return manifestoerrors.NewAtomExecuteError(a.ManifestName, "IoError", err)
	}
	return nil
}

func (a *Chown) OutputString() string { return a.Path }
func (a *Chown) ErrorMessage() string  { return a.errorMessage }

func resolveOwner(userName, groupName string) (uid, gid int, err error) {
	uid, gid = -1, -1
	if userName != "" {
		if n, convErr := strconv.Atoi(userName); convErr == nil {
			uid = n
		} else {
			u, lookupErr := user.Lookup(userName)
			if lookupErr != nil {
				return 0, 0, lookupErr
			}
			uid, _ = strconv.Atoi(u.Uid)
		}
	}
	if groupName != "" {
		if n, convErr := strconv.Atoi(groupName); convErr == nil {
			gid = n
		} else {
			g, lookupErr := user.LookupGroup(groupName)
			if lookupErr != nil {
				return 0, 0, lookupErr
			}
			gid, _ = strconv.Atoi(g.Gid)
		}
	}
	return uid, gid, nil
}

// Remove is the file.remove / directory.remove atom.
type Remove struct {
	ManifestName string
	Path         string
	Recursive    bool

	errorMessage string
}

var _ model.Atom = (*Remove)(nil)

func (a *Remove) Plan(context.Context) (model.Outcome, error) {
	if _, err := os.Lstat(a.Path); os.IsNotExist(err) {
		return model.Outcome{}, nil
	}
	return model.Outcome{SideEffects: []string{"remove " + a.Path}, ShouldRun: true}, nil
}

func (a *Remove) Execute(context.Context) error {
	var err error
	if a.Recursive {
		err = os.RemoveAll(a.Path)
	} else {
		err = os.Remove(a.Path)
	}
	if err != nil && !os.IsNotExist(err) {
		a.errorMessage = err.Error()
		return manifestoerrors.NewAtomExecuteError(a.ManifestName, "IoError", err)
	}
	return nil
}

func (a *Remove) OutputString() string { return a.Path }
func (a *Remove) ErrorMessage() string  { return a.errorMessage }

// SetContents is the file.set-contents atom (comtrya atoms/file/contents.rs):
// writes literal content to a path, for content that is computed rather
// than copied from another file. No action kind in internal/action builds
// this atom.
type SetContents struct {
	ManifestName string
	Path         string
	Content      string
	Mode         os.FileMode

	errorMessage string
}

var _ model.Atom = (*SetContents)(nil)

func (a *SetContents) Plan(context.Context) (model.Outcome, error) {
	existing, err := os.ReadFile(a.Path)
	if err == nil && string(existing) == a.Content {
		return model.Outcome{}, nil
	}
	return model.Outcome{SideEffects: []string{"set contents of " + a.Path}, ShouldRun: true}, nil
}

func (a *SetContents) Execute(context.Context) error {
	if err := os.MkdirAll(filepath.Dir(a.Path), 0o755); err != nil {
		a.errorMessage = err.Error()
		return manifestoerrors.NewAtomExecuteError(a.ManifestName, "IoError", err)
	}
	mode := a.Mode
	if mode == 0 {
		mode = 0o644
	}
	if err := os.WriteFile(a.Path, []byte(a.Content), mode); err != nil {
		a.errorMessage = err.Error()
		return manifestoerrors.NewAtomExecuteError(a.ManifestName, "IoError", err)
	}
	return nil
}

func (a *SetContents) OutputString() string { return a.Path }
func (a *SetContents) ErrorMessage() string  { return a.errorMessage }

package atom

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/avbuilds/manifesto/internal/model"
	manifestoerrors "github.com/avbuilds/manifesto/pkg/errors"
)

// DirectoryCreate is the directory.create atom.
type DirectoryCreate struct {
	ManifestName string
	Path         string
	Mode         os.FileMode

	errorMessage string
}

var _ model.Atom = (*DirectoryCreate)(nil)

func (a *DirectoryCreate) Plan(context.Context) (model.Outcome, error) {
	if info, err := os.Stat(a.Path); err == nil && info.IsDir() {
		return model.Outcome{}, nil
	}
	return model.Outcome{SideEffects: []string{"create directory " + a.Path}, ShouldRun: true}, nil
}

func (a *DirectoryCreate) Execute(context.Context) error {
	mode := a.Mode
	if mode == 0 {
		mode = 0o755
	}
	if err := os.MkdirAll(a.Path, mode); err != nil {
		a.errorMessage = err.Error()
		return manifestoerrors.NewAtomExecuteError(a.ManifestName, "IoError", err)
	}
	return nil
}

func (a *DirectoryCreate) OutputString() string { return a.Path }
func (a *DirectoryCreate) ErrorMessage() string  { return a.errorMessage }

// DirectoryCopy is the directory.copy atom: recursively copies a tree,
// grounded on the teacher's copyDirectory/copyFile pair (preserving mode
// by default, unlike comtrya which shells out to cp -r / Xcopy).
type DirectoryCopy struct {
	ManifestName string
	From         string
	To           string

	errorMessage string
}

var _ model.Atom = (*DirectoryCopy)(nil)

func (a *DirectoryCopy) Plan(context.Context) (model.Outcome, error) {
	if _, err := os.Stat(a.To); err != nil {
		return model.Outcome{SideEffects: []string{"copy directory " + a.From + " to " + a.To}, ShouldRun: true}, nil
	}
	return model.Outcome{SideEffects: []string{"copy directory " + a.From + " to " + a.To}, ShouldRun: true}, nil
}

// Execute mirrors `mkdir -p to && cp -r from to`: to is always created
// first, then from is copied under it. A to with no trailing slash nests
// from as a new subdirectory (to/basename(from)); a trailing slash on to
// flattens from's contents directly into to, matching comtrya's
// directory.copy (it appends "/." to from only in that case).
func (a *DirectoryCopy) Execute(context.Context) error {
	if err := os.MkdirAll(a.To, 0o755); err != nil {
		a.errorMessage = err.Error()
		return manifestoerrors.NewAtomExecuteError(a.ManifestName, "IoError", err)
	}

	dest := a.To
	if !strings.HasSuffix(a.To, "/") {
		dest = filepath.Join(a.To, filepath.Base(a.From))
	}

	err := filepath.WalkDir(a.From, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(a.From, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)

		info, err := d.Info()
		if err != nil {
			return err
		}

		if d.IsDir() {
			return os.MkdirAll(target, info.Mode())
		}
		return copyFileContents(path, target, info.Mode())
	})
	if err != nil {
		a.errorMessage = err.Error()
		return manifestoerrors.NewAtomExecuteError(a.ManifestName, "IoError", err)
	}
	return nil
}

func (a *DirectoryCopy) OutputString() string { return a.To }
func (a *DirectoryCopy) ErrorMessage() string  { return a.errorMessage }

// DirectoryRemove is the directory.remove atom: a thin alias over Remove
// with Recursive forced on, since removing a directory always implies
// removing its contents.
type DirectoryRemove struct {
	ManifestName string
	Path         string

	errorMessage string
}

var _ model.Atom = (*DirectoryRemove)(nil)

func (a *DirectoryRemove) Plan(ctx context.Context) (model.Outcome, error) {
	r := &Remove{ManifestName: a.ManifestName, Path: a.Path, Recursive: true}
	return r.Plan(ctx)
}

func (a *DirectoryRemove) Execute(ctx context.Context) error {
	r := &Remove{ManifestName: a.ManifestName, Path: a.Path, Recursive: true}
	err := r.Execute(ctx)
	a.errorMessage = r.errorMessage
	return err
}

func (a *DirectoryRemove) OutputString() string { return a.Path }
func (a *DirectoryRemove) ErrorMessage() string  { return a.errorMessage }

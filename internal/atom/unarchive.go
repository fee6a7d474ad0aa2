package atom

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/avbuilds/manifesto/internal/model"
	manifestoerrors "github.com/avbuilds/manifesto/pkg/errors"
)

// Unarchive is the file.unarchive atom: extracts a zip or tar(.gz)
// archive into a destination directory. comtrya's unarchive.rs shells
// out to system tar/unzip; manifesto extracts natively so the atom has
// no dependency on which archive tools happen to be on PATH.
type Unarchive struct {
	ManifestName    string
	From            string
	To              string
	StripComponents int

	errorMessage string
}

var _ model.Atom = (*Unarchive)(nil)

func (a *Unarchive) Plan(context.Context) (model.Outcome, error) {
	if _, err := os.Stat(a.To); err != nil {
		return model.Outcome{SideEffects: []string{"unarchive " + a.From + " to " + a.To}, ShouldRun: true}, nil
	}
	return model.Outcome{SideEffects: []string{"unarchive " + a.From + " to " + a.To}, ShouldRun: true}, nil
}

func (a *Unarchive) Execute(context.Context) error {
	if err := os.MkdirAll(a.To, 0o755); err != nil {
		a.errorMessage = err.Error()
		return manifestoerrors.NewAtomExecuteError(a.ManifestName, "IoError", err)
	}

	var err error
	switch {
	case strings.HasSuffix(a.From, ".zip"):
		err = a.extractZip()
	case strings.HasSuffix(a.From, ".tar.gz"), strings.HasSuffix(a.From, ".tgz"):
		err = a.extractTarGz()
	case strings.HasSuffix(a.From, ".tar"):
		err = a.extractTar(nil)
	default:
		err = fmt.Errorf("unsupported archive format: %s", a.From)
	}
	if err != nil {
		a.errorMessage = err.Error()
		return manifestoerrors.NewAtomExecuteError(a.ManifestName, "IoError", err)
	}
	return nil
}

func (a *Unarchive) OutputString() string { return a.To }
func (a *Unarchive) ErrorMessage() string  { return a.errorMessage }

func (a *Unarchive) extractZip() error {
	r, err := zip.OpenReader(a.From)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		name := a.stripPrefix(f.Name)
		if name == "" {
			continue
		}
		target := filepath.Join(a.To, name)
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, f.Mode()); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		if err := writeEntry(target, rc, f.Mode()); err != nil {
			rc.Close()
			return err
		}
		rc.Close()
	}
	return nil
}

func (a *Unarchive) extractTarGz() error {
	f, err := os.Open(a.From)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer gz.Close()

	return a.extractTar(gz)
}

func (a *Unarchive) extractTar(r io.Reader) error {
	if r == nil {
		f, err := os.Open(a.From)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		name := a.stripPrefix(hdr.Name)
		if name == "" {
			continue
		}
		target := filepath.Join(a.To, name)
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, os.FileMode(hdr.Mode)); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			if err := writeEntry(target, tr, os.FileMode(hdr.Mode)); err != nil {
				return err
			}
		}
	}
}

func (a *Unarchive) stripPrefix(name string) string {
	name = filepath.ToSlash(name)
	parts := strings.Split(name, "/")
	if a.StripComponents >= len(parts) {
		return ""
	}
	return filepath.Join(parts[a.StripComponents:]...)
}

func writeEntry(target string, r io.Reader, mode os.FileMode) error {
	out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, r)
	return err
}

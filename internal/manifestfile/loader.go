// Package manifestfile is the manifest-loader external collaborator of
// spec.md §4.2: it walks a root directory for manifest files and decodes
// them into model.Manifest values keyed by dotted name. The core engine
// consumes the resulting map and assumes names are unique.
package manifestfile

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/avbuilds/manifesto/internal/model"
	manifestoerrors "github.com/avbuilds/manifesto/pkg/errors"
)

// Load walks root for *.yaml/*.yml files and decodes each into a
// model.Manifest. The dotted name is derived from the file's path
// relative to root: directory separators become dots and the extension
// is dropped (configs/editor/vim.yaml → configs.editor.vim).
//
// A malformed file produces a ParseError for that file but does not
// abort the walk; Load returns every successfully parsed manifest
// alongside a joined error describing the rest, matching spec.md §7's
// "ParseError is fatal for that manifest, not the run."
func Load(root string) (map[string]*model.Manifest, error) {
	manifests := make(map[string]*model.Manifest)
	var paths []string

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	var errs []error
	for _, path := range paths {
		name, nameErr := dottedName(root, path)
		if nameErr != nil {
			errs = append(errs, manifestoerrors.NewParseError(path, 0, nameErr))
			continue
		}

		manifest, parseErr := loadOne(path)
		if parseErr != nil {
			errs = append(errs, parseErr)
			continue
		}

		manifest.Name = name
		if manifest.RootDir == "" {
			manifest.RootDir = filepath.Dir(path)
		}
		manifests[name] = manifest
	}

	if len(errs) > 0 {
		return manifests, joinErrors(errs)
	}
	return manifests, nil
}

func loadOne(path string) (*model.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, manifestoerrors.NewParseError(path, 0, err)
	}

	var m model.Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, manifestoerrors.NewParseError(path, extractLine(err), err)
	}
	return &m, nil
}

func dottedName(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", err
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	rel = filepath.ToSlash(rel)
	return strings.ReplaceAll(rel, "/", "."), nil
}

func joinErrors(errs []error) error {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return &loadErrors{errs: errs, msg: strings.Join(msgs, "; ")}
}

type loadErrors struct {
	errs []error
	msg  string
}

func (e *loadErrors) Error() string { return e.msg }

func (e *loadErrors) Unwrap() []error { return e.errs }

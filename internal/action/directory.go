package action

import (
	"github.com/avbuilds/manifesto/internal/atom"
	"github.com/avbuilds/manifesto/internal/model"
)

func (r *Resolver) planDirectoryCopy(manifestName, rootDir string, b *model.DirectoryCopyBody) ([]model.Step, error) {
	return wrapAtom(&atom.DirectoryCopy{
		ManifestName: manifestName,
		From:         resolveFrom(rootDir, b.From),
		To:           b.To,
	}), nil
}

func (r *Resolver) planDirectoryCreate(manifestName string, b *model.DirectoryCreateBody) ([]model.Step, error) {
	return wrapAtom(&atom.DirectoryCreate{
		ManifestName: manifestName,
		Path:         b.Path,
		Mode:         parseMode(b.Mode),
	}), nil
}

func (r *Resolver) planDirectoryRemove(manifestName string, b *model.DirectoryRemoveBody) ([]model.Step, error) {
	return wrapAtom(&atom.DirectoryRemove{
		ManifestName: manifestName,
		Path:         b.Path,
	}), nil
}

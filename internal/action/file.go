package action

import (
	"github.com/avbuilds/manifesto/internal/atom"
	"github.com/avbuilds/manifesto/internal/model"
)

func (r *Resolver) planFileCopy(manifestName, rootDir string, b *model.FileCopyBody) ([]model.Step, error) {
	return wrapAtom(&atom.Copy{
		ManifestName: manifestName,
		From:         resolveFrom(rootDir, b.From),
		To:           b.To,
		Mode:         parseMode(b.Mode),
	}), nil
}

func (r *Resolver) planFileChown(manifestName string, b *model.FileChownBody) ([]model.Step, error) {
	return wrapAtom(&atom.Chown{
		ManifestName: manifestName,
		Path:         b.Path,
		User:         b.User,
		Group:        b.Group,
		Recursive:    b.Recursive,
	}), nil
}

func (r *Resolver) planFileLink(manifestName string, b *model.FileLinkBody) ([]model.Step, error) {
	return wrapAtom(&atom.Link{
		ManifestName: manifestName,
		From:         b.From,
		To:           b.To,
		Force:        b.Force,
	}), nil
}

func (r *Resolver) planFileRemove(manifestName string, b *model.FileRemoveBody) ([]model.Step, error) {
	return wrapAtom(&atom.Remove{
		ManifestName: manifestName,
		Path:         b.Path,
	}), nil
}

func (r *Resolver) planFileUnarchive(manifestName string, b *model.FileUnarchiveBody) ([]model.Step, error) {
	return wrapAtom(&atom.Unarchive{
		ManifestName:    manifestName,
		From:            b.From,
		To:              b.To,
		StripComponents: b.StripComponents,
	}), nil
}

func (r *Resolver) planFileDownload(manifestName string, b *model.FileDownloadBody) ([]model.Step, error) {
	return wrapAtom(&atom.Download{
		ManifestName: manifestName,
		URL:          b.URL,
		To:           b.To,
		Mode:         parseMode(b.Mode),
	}), nil
}

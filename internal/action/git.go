package action

import (
	"github.com/avbuilds/manifesto/internal/atom"
	"github.com/avbuilds/manifesto/internal/model"
)

func (r *Resolver) planGitClone(manifestName string, b *model.GitCloneBody) ([]model.Step, error) {
	return wrapAtom(&atom.GitClone{
		ManifestName: manifestName,
		Repository:   b.Repository,
		Directory:    b.Directory,
		Branch:       b.Branch,
	}), nil
}

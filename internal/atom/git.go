package atom

import (
	"context"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/avbuilds/manifesto/internal/model"
	manifestoerrors "github.com/avbuilds/manifesto/pkg/errors"
)

// GitClone is the git.clone atom, grounded on the teacher's repo plugin:
// clone unless the destination already holds a .git directory, in which
// case the existing checkout is left alone (manifesto does not attempt pull/rebase semantics here,
// matching comtrya's clone-only git.clone action).
type GitClone struct {
	ManifestName string
	Repository   string
	Directory    string
	Branch       string

	errorMessage string
}

var _ model.Atom = (*GitClone)(nil)

func (a *GitClone) Plan(context.Context) (model.Outcome, error) {
	if _, err := os.Stat(filepath.Join(a.Directory, ".git")); err == nil {
		return model.Outcome{}, nil
	}
	return model.Outcome{SideEffects: []string{"clone " + a.Repository + " to " + a.Directory}, ShouldRun: true}, nil
}

func (a *GitClone) Execute(ctx context.Context) error {
	if _, err := os.Stat(filepath.Join(a.Directory, ".git")); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(a.Directory), 0o755); err != nil {
		a.errorMessage = err.Error()
		return manifestoerrors.NewAtomExecuteError(a.ManifestName, "IoError", err)
	}

	opts := &git.CloneOptions{URL: a.Repository}
	if a.Branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(a.Branch)
		opts.SingleBranch = true
	}

	if _, err := git.PlainCloneContext(ctx, a.Directory, false, opts); err != nil {
		a.errorMessage = err.Error()
		return manifestoerrors.NewAtomExecuteError(a.ManifestName, "IoError", err)
	}
	return nil
}

func (a *GitClone) OutputString() string { return a.Directory }
func (a *GitClone) ErrorMessage() string  { return a.errorMessage }

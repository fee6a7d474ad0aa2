// Package action turns a resolved Action variant into the ordered list of
// Steps that carry it out (spec.md §4.5): variant selection against a
// context scope, then dispatch on the action's tag to build one or more
// atoms, gated by the initializers/finalizers each kind needs.
package action

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/avbuilds/manifesto/internal/atom"
	"github.com/avbuilds/manifesto/internal/contexts"
	"github.com/avbuilds/manifesto/internal/expr"
	"github.com/avbuilds/manifesto/internal/model"
	"github.com/avbuilds/manifesto/internal/provider"
	manifestoerrors "github.com/avbuilds/manifesto/pkg/errors"
)

// Elevator is the narrow capability Resolver needs to build privileged
// steps; satisfied by *internal/privilege.Broker. Declared independently
// here (matching internal/atom.Elevator and internal/provider.Elevator
// structurally) so this package does not import internal/privilege.
type Elevator interface {
	Rewrite(command string, args []string) (string, []string)
	Validate(ctx context.Context) error
}

// Plugins is the narrow capability the plugin action kind delegates to;
// satisfied by internal/plugin's adapted registry.
type Plugins interface {
	Run(ctx context.Context, name string, with map[string]any) ([]model.Step, error)
}

// Resolver builds Steps from Actions. One Resolver is constructed per run
// and shared across every manifest's actions.
type Resolver struct {
	Contexts *contexts.Contexts
	Elevator Elevator
	Sink     atom.LineSink
	Plugins  Plugins
}

// Plan resolves action's active variant against the run's contexts, then
// dispatches to the kind-specific builder. rootDir is the owning
// manifest's root_dir (spec.md §4.2), used to resolve relative from
// paths in the kinds that accept one. A nil, nil result means there is
// nothing to run: the action's guard evaluated false, or a builder found
// nothing left to do (e.g. every listed package already installed). A
// GuardError means the
// base action's own where failed to evaluate, which callers (the
// executor) turn into a PlanError carrying the manifest/action position.
func (r *Resolver) Plan(ctx context.Context, manifestName, rootDir string, action model.Action) ([]model.Step, error) {
	scope := expr.Scope(r.Contexts.Flatten())

	body, skip, err := selectBody(action, scope)
	if err != nil {
		return nil, err
	}
	if skip {
		return nil, nil
	}

	switch action.Kind {
	case model.KindCommandRun:
		return r.planCommandRun(manifestName, body.(*model.CommandRunBody))
	case model.KindDirectoryCopy:
		return r.planDirectoryCopy(manifestName, rootDir, body.(*model.DirectoryCopyBody))
	case model.KindDirectoryCreate:
		return r.planDirectoryCreate(manifestName, body.(*model.DirectoryCreateBody))
	case model.KindDirectoryRemove:
		return r.planDirectoryRemove(manifestName, body.(*model.DirectoryRemoveBody))
	case model.KindFileCopy:
		return r.planFileCopy(manifestName, rootDir, body.(*model.FileCopyBody))
	case model.KindFileChown:
		return r.planFileChown(manifestName, body.(*model.FileChownBody))
	case model.KindFileDownload:
		return r.planFileDownload(manifestName, body.(*model.FileDownloadBody))
	case model.KindFileLink:
		return r.planFileLink(manifestName, body.(*model.FileLinkBody))
	case model.KindFileRemove:
		return r.planFileRemove(manifestName, body.(*model.FileRemoveBody))
	case model.KindFileUnarchive:
		return r.planFileUnarchive(manifestName, body.(*model.FileUnarchiveBody))
	case model.KindBinaryGithub:
		return r.planBinaryGithub(ctx, manifestName, body.(*model.BinaryGithubBody))
	case model.KindGitClone:
		return r.planGitClone(manifestName, body.(*model.GitCloneBody))
	case model.KindGroupAdd:
		return r.planGroupAdd(ctx, manifestName, body.(*model.GroupAddBody))
	case model.KindMacOSDefault:
		return r.planMacOSDefault(manifestName, body.(*model.MacOSDefaultBody))
	case model.KindPackageInstall:
		return r.planPackageInstall(ctx, manifestName, body.(*model.PackageInstallBody))
	case model.KindPackageRepository:
		return r.planPackageRepository(ctx, manifestName, body.(*model.PackageRepositoryBody))
	case model.KindUserAdd:
		return r.planUserAdd(ctx, manifestName, body.(*model.UserAddBody))
	case model.KindUserGroup:
		return r.planUserGroup(ctx, manifestName, body.(*model.UserGroupBody))
	case model.KindPlugin:
		return r.planPlugin(ctx, body.(*model.PluginBody))
	default:
		return nil, fmt.Errorf("action: unhandled kind %q", action.Kind)
	}
}

// Describe resolves action's active variant the same way Plan does and
// renders its one-line summary, without building any atoms. internal/executor
// calls this to log `action.summarize()` (spec.md §4.4 step 3e) independent
// of whether Plan's Steps are still in scope. An unselectable action (guard
// false, or a guard evaluation error) renders as the empty string, which
// callers treat as nothing to log.
func (r *Resolver) Describe(action model.Action) string {
	scope := expr.Scope(r.Contexts.Flatten())
	body, skip, err := selectBody(action, scope)
	if err != nil || skip || body == nil {
		return ""
	}
	return Summarize(action.Kind, body)
}

// selectBody implements spec.md §4.1's variant resolution: the first
// variant whose where is truthy (or unset) replaces the base body; a
// variant's guard failing to evaluate is treated as non-matching, never
// an error. If no variant matches, the base body runs, gated by its own
// where — whose evaluation error IS propagated, since an author who
// wrote a base condition meant it to hold.
func selectBody(action model.Action, scope expr.Scope) (body any, skip bool, err error) {
	for _, v := range action.Variants {
		if v.Where == "" {
			return v.Body, false, nil
		}
		ok, evalErr := expr.Eval(v.Where, scope)
		if evalErr != nil || !ok {
			continue
		}
		return v.Body, false, nil
	}

	if action.Where != "" {
		ok, evalErr := expr.Eval(action.Where, scope)
		if evalErr != nil {
			return nil, false, manifestoerrors.NewGuardError(action.Where, evalErr)
		}
		if !ok {
			return nil, true, nil
		}
	}
	return action.Body, false, nil
}

func (r *Resolver) family() string {
	return r.Contexts.Namespace("os")["family"]
}

func (r *Resolver) packageProvider(explicit string) (provider.PackageProvider, error) {
	if explicit != "" {
		return provider.ByName(explicit, r.Elevator)
	}
	return provider.ForFamily(r.family(), r.Elevator)
}

func (r *Resolver) groupProvider() provider.GroupProvider {
	if r.family() == "windows" {
		return &provider.NoneGroupProvider{Sink: r.Sink}
	}
	return provider.NewUnixGroupProvider(r.Elevator)
}

func (r *Resolver) userProvider() provider.UserProvider {
	if r.family() == "windows" {
		return &provider.NoneUserProvider{Sink: r.Sink}
	}
	return provider.NewUnixUserProvider(r.Elevator)
}

func wrapAtom(a model.Atom) []model.Step {
	return []model.Step{{Atom: a}}
}

// resolveFrom joins a relative from path against the manifest's root_dir
// (spec.md §4.2); an absolute from or an unset rootDir passes through
// unchanged, matching comtrya's resolve().
func resolveFrom(rootDir, from string) string {
	if rootDir == "" || from == "" || filepath.IsAbs(from) {
		return from
	}
	return filepath.Join(rootDir, from)
}

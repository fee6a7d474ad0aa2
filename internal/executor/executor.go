// Package executor drives a manifest dependency graph end to end
// (spec.md §4.4): for each visited manifest, filter by label and guard,
// then plan and run its actions in order. An action's atom execute
// failure abandons the rest of that manifest's actions (spec.md §7);
// outside a dry run, the traversal itself aborts at the first manifest
// that finishes unsuccessful.
package executor

import (
	"context"
	"errors"
	"fmt"

	"github.com/avbuilds/manifesto/internal/contexts"
	"github.com/avbuilds/manifesto/internal/expr"
	"github.com/avbuilds/manifesto/internal/graph"
	"github.com/avbuilds/manifesto/internal/logger"
	"github.com/avbuilds/manifesto/internal/model"
	manifestoerrors "github.com/avbuilds/manifesto/pkg/errors"
)

// Planner is the narrow capability this package needs from
// internal/action.Resolver: turn an Action into Steps, and render its
// one-line summary. Declared here so executor depends on a capability,
// not a concrete package, matching internal/action's own Elevator/Plugins
// seams.
type Planner interface {
	Plan(ctx context.Context, manifestName, rootDir string, action model.Action) ([]model.Step, error)
	Describe(action model.Action) string
}

// Options configures a Run.
type Options struct {
	Graph    *graph.Graph
	Contexts *contexts.Contexts
	Planner  Planner
	Logger   *logger.Logger
	// Start is the manifest name to traverse from; "" means the
	// synthetic root (everything).
	Start string
	// Label restricts execution to manifests carrying this label; ""
	// disables the filter.
	Label  string
	DryRun bool
}

// ActionOutcome records what happened to a single manifest action.
type ActionOutcome struct {
	Index   int
	Summary string
	Skipped bool
	Err     error
}

// ManifestOutcome records what happened to a single manifest.
type ManifestOutcome struct {
	Name       string
	Skipped    bool
	Successful bool
	Actions    []ActionOutcome
}

// Report is the full result of a Run.
type Report struct {
	Manifests []ManifestOutcome
	// Aborted is true when a manifest finished unsuccessful and the
	// traversal stopped before visiting any manifests after it.
	Aborted  bool
	AbortErr error
}

// Success reports whether every visited manifest that wasn't skipped
// finished successful and the traversal was not aborted.
func (r *Report) Success() bool {
	if r.Aborted {
		return false
	}
	for _, m := range r.Manifests {
		if !m.Skipped && !m.Successful {
			return false
		}
	}
	return true
}

// Run traverses opts.Graph from opts.Start and executes every visited
// manifest's actions per spec.md §4.4.
func Run(ctx context.Context, opts Options) (*Report, error) {
	nodes, err := opts.Graph.Traverse(opts.Start)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	scope := expr.Scope(opts.Contexts.Flatten())

	for _, node := range nodes {
		m := node.Manifest
		log := opts.Logger.WithFields(map[string]any{"manifest": node.Name})

		if opts.Label != "" && !m.HasLabel(opts.Label) {
			report.Manifests = append(report.Manifests, ManifestOutcome{Name: node.Name, Skipped: true})
			continue
		}

		if m.Where != "" {
			ok, evalErr := expr.Eval(m.Where, scope)
			if evalErr != nil || !ok {
				report.Manifests = append(report.Manifests, ManifestOutcome{Name: node.Name, Skipped: true})
				continue
			}
		}

		outcome := runManifest(ctx, opts, log, node.Name, m)
		report.Manifests = append(report.Manifests, outcome)

		if !opts.DryRun && !outcome.Successful {
			report.Aborted = true
			report.AbortErr = fmt.Errorf("manifest %q finished unsuccessful, aborting run", node.Name)
			break
		}
	}

	return report, nil
}

func runManifest(ctx context.Context, opts Options, log *logger.Logger, name string, m *model.Manifest) ManifestOutcome {
	outcome := ManifestOutcome{Name: name, Successful: true}

	for idx, act := range m.Actions {
		ao := ActionOutcome{Index: idx, Summary: opts.Planner.Describe(act)}

		steps, planErr := opts.Planner.Plan(ctx, name, m.RootDir, act)
		if planErr != nil {
			var unavailable *manifestoerrors.ProviderUnavailableError
			if errors.As(planErr, &unavailable) {
				log.Warn(fmt.Sprintf("action[%d]: %v", idx, planErr))
				ao.Skipped = true
				outcome.Actions = append(outcome.Actions, ao)
				continue
			}

			wrapped := asPlanError(name, idx, planErr)
			log.Error(wrapped, "action plan failed")
			ao.Err = wrapped
			outcome.Successful = false
			outcome.Actions = append(outcome.Actions, ao)
			continue
		}
		if steps == nil {
			ao.Skipped = true
			outcome.Actions = append(outcome.Actions, ao)
			continue
		}

		runnable, filterErr := filterSteps(ctx, steps)
		if filterErr != nil {
			wrapped := asPlanError(name, idx, filterErr)
			log.Error(wrapped, "step plan failed")
			ao.Err = wrapped
			outcome.Successful = false
			outcome.Actions = append(outcome.Actions, ao)
			continue
		}
		if len(runnable) == 0 {
			log.Info(fmt.Sprintf("action[%d]: nothing to be done", idx))
			outcome.Actions = append(outcome.Actions, ao)
			continue
		}

		if execErr := executeSteps(ctx, runnable, opts.DryRun); execErr != nil {
			log.Error(execErr, "action execute failed")
			ao.Err = execErr
			outcome.Successful = false
			outcome.Actions = append(outcome.Actions, ao)
			break
		}

		if ao.Summary != "" {
			log.Info(ao.Summary)
		}
		outcome.Actions = append(outcome.Actions, ao)
	}

	return outcome
}

// filterSteps applies each step's initializers, then its atom's Plan
// phase, keeping only steps whose atom reports ShouldRun. An initializer
// or atom.Plan error is treated as a plan-phase failure, matching
// PlanError's scope (spec.md §4.4 step 3c).
func filterSteps(ctx context.Context, steps []model.Step) ([]model.Step, error) {
	runnable := make([]model.Step, 0, len(steps))

	for _, step := range steps {
		allowed := true
		for _, init := range step.Initializers {
			ok, err := init.Allow(ctx)
			if err != nil {
				return nil, err
			}
			if !ok {
				allowed = false
				break
			}
		}
		if !allowed {
			continue
		}

		outcome, err := step.Atom.Plan(ctx)
		if err != nil {
			return nil, err
		}
		if !outcome.ShouldRun {
			continue
		}

		runnable = append(runnable, step)
	}

	return runnable, nil
}

// executeSteps runs each step's atom in order, honoring finalizer vetoes
// between steps. A dry run never executes an atom (spec.md §8 invariant
// 3). The first atom execute error or finalizer veto stops the
// remaining steps in this action, and the caller abandons the rest of
// the manifest's actions too (spec.md §7). Errors are returned unwrapped:
// atom failures are mostly a *pkg/errors.AtomExecuteError already, but
// Exec returns a permission-denied start error as is when no elevated
// retry applies, and a finalizer veto is a plain error.
func executeSteps(ctx context.Context, steps []model.Step, dryRun bool) error {
	for _, step := range steps {
		if dryRun {
			continue
		}

		if err := step.Atom.Execute(ctx); err != nil {
			return err
		}

		for _, fin := range step.Finalizers {
			ok, err := fin.Allow(ctx, step.Atom)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("finalizer vetoed continuation: %s", step.Atom.ErrorMessage())
			}
		}
	}
	return nil
}

// asPlanError wraps err as a PlanError unless it already is one (a
// GuardError from a base action's own where is the common case that
// reaches here already unwrapped; everything else is a builder failure).
func asPlanError(manifestName string, actionIndex int, err error) error {
	var existing *manifestoerrors.PlanError
	if errors.As(err, &existing) {
		return err
	}
	return manifestoerrors.NewPlanError(manifestName, actionIndex, err)
}

package action

import (
	"context"

	"github.com/avbuilds/manifesto/internal/model"
	"github.com/avbuilds/manifesto/internal/provider"
	manifestoerrors "github.com/avbuilds/manifesto/pkg/errors"
)

// planPackageInstall resolves the action's provider (explicit name, or
// the OS-family default) and asks it to build the install steps. An
// unavailable provider first tries Bootstrap (spec.md line 125: "emits
// bootstrap steps if the provider's binary is missing, then a single
// install step") — its steps are prepended ahead of install. Only when
// Bootstrap itself has nothing to offer does the provider surface as a
// ProviderUnavailableError, which the executor's plan phase treats the
// same as should_run=false, logging a warning via the sink rather than
// aborting the manifest.
func (r *Resolver) planPackageInstall(ctx context.Context, manifestName string, b *model.PackageInstallBody) ([]model.Step, error) {
	prov, err := r.packageProvider(b.Provider)
	if err != nil {
		return nil, err
	}

	var steps []model.Step
	remaining := b.List

	if !prov.Available() {
		bootstrap, bootstrapErr := prov.Bootstrap(ctx, r.Contexts)
		if bootstrapErr != nil {
			return nil, bootstrapErr
		}
		if len(bootstrap) == 0 {
			if r.Sink != nil {
				r.Sink.Line("warn", "package provider "+prov.Name()+" is not available")
			}
			return nil, manifestoerrors.NewProviderUnavailableError(prov.Name())
		}
		steps = append(steps, bootstrap...)
	} else {
		installed, queryErr := prov.Query(ctx, provider.PackageVariant{List: b.List})
		if queryErr != nil {
			return nil, queryErr
		}
		remaining = subtract(b.List, installed)
	}

	if len(remaining) > 0 {
		install, installErr := prov.Install(ctx, provider.PackageVariant{List: remaining, ExtraArgs: b.ExtraArgs}, r.Contexts)
		if installErr != nil {
			return nil, installErr
		}
		steps = append(steps, install...)
	}

	if len(steps) == 0 {
		return nil, nil
	}
	stampManifestName(steps, manifestName)
	return steps, nil
}

func (r *Resolver) planPackageRepository(ctx context.Context, manifestName string, b *model.PackageRepositoryBody) ([]model.Step, error) {
	prov, err := r.packageProvider(b.Provider)
	if err != nil {
		return nil, err
	}
	if !prov.Available() {
		if r.Sink != nil {
			r.Sink.Line("warn", "package provider "+prov.Name()+" is not available")
		}
		return nil, manifestoerrors.NewProviderUnavailableError(prov.Name())
	}

	repo := provider.Repository{Name: b.Name, URI: b.URI, Key: b.Key}
	if prov.HasRepository(repo) {
		return nil, nil
	}

	steps, err := prov.AddRepository(ctx, repo, r.Contexts)
	if err != nil {
		return nil, err
	}
	stampManifestName(steps, manifestName)
	return steps, nil
}

func subtract(all, installed []string) []string {
	if len(installed) == 0 {
		return all
	}
	skip := make(map[string]bool, len(installed))
	for _, name := range installed {
		skip[name] = true
	}
	remaining := make([]string, 0, len(all))
	for _, name := range all {
		if !skip[name] {
			remaining = append(remaining, name)
		}
	}
	return remaining
}

package privilege

import (
	"context"

	"github.com/avbuilds/manifesto/internal/model"
)

// Preflight is the supplemented feature grounded on comtrya's
// dependency_graph.rs password pre-flight: before traversal begins, scan
// every manifest for an action that will require elevation, and validate
// the credential once up front instead of failing mid-run on the first
// privileged command.
func (b *Broker) Preflight(ctx context.Context, manifests map[string]*model.Manifest) error {
	if !anyRequiresElevation(manifests) {
		return nil
	}
	return b.Validate(ctx)
}

func anyRequiresElevation(manifests map[string]*model.Manifest) bool {
	for _, m := range manifests {
		for _, action := range m.Actions {
			if actionRequiresElevation(action) {
				return true
			}
			for _, v := range action.Variants {
				if variantRequiresElevation(action.Kind, v) {
					return true
				}
			}
		}
	}
	return false
}

func actionRequiresElevation(action model.Action) bool {
	switch action.Kind {
	case model.KindPackageInstall, model.KindPackageRepository, model.KindUserAdd, model.KindUserGroup, model.KindGroupAdd:
		return true
	case model.KindCommandRun:
		if body, ok := action.Body.(*model.CommandRunBody); ok {
			return body.Privileged
		}
	}
	return false
}

func variantRequiresElevation(kind model.ActionKind, v model.ActionVariant) bool {
	if kind != model.KindCommandRun {
		return false
	}
	body, ok := v.Body.(*model.CommandRunBody)
	return ok && body.Privileged
}

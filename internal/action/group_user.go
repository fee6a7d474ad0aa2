package action

import (
	"context"

	"github.com/avbuilds/manifesto/internal/model"
	"github.com/avbuilds/manifesto/internal/provider"
)

func (r *Resolver) planGroupAdd(ctx context.Context, manifestName string, b *model.GroupAddBody) ([]model.Step, error) {
	steps, err := r.groupProvider().AddGroup(ctx, b.Name, r.Contexts)
	if err != nil {
		return nil, err
	}
	stampManifestName(steps, manifestName)
	return steps, nil
}

func (r *Resolver) planUserAdd(ctx context.Context, manifestName string, b *model.UserAddBody) ([]model.Step, error) {
	steps, err := r.userProvider().AddUser(ctx, provider.UserVariant{
		Name:       b.Name,
		Group:      b.Group,
		Shell:      b.Shell,
		Home:       b.Home,
		CreateHome: b.CreateHome,
	}, r.Contexts)
	if err != nil {
		return nil, err
	}
	stampManifestName(steps, manifestName)
	return steps, nil
}

func (r *Resolver) planUserGroup(ctx context.Context, manifestName string, b *model.UserGroupBody) ([]model.Step, error) {
	steps, err := r.userProvider().AddToGroup(ctx, b.User, b.Group, r.Contexts)
	if err != nil {
		return nil, err
	}
	stampManifestName(steps, manifestName)
	return steps, nil
}

package step

import (
	"context"
	"os"

	"github.com/avbuilds/manifesto/internal/model"
)

// SetEnvVars is an initializer that sets process-wide environment
// variables before a step's atom runs (comtrya's
// steps/initializers/env_vars_set.rs). Always allows the step to run;
// callers are responsible for pairing it with a RemoveEnvVars finalizer.
type SetEnvVars struct {
	Vars map[string]string
}

var _ model.Initializer = (*SetEnvVars)(nil)

func (s *SetEnvVars) Allow(context.Context) (bool, error) {
	for k, v := range s.Vars {
		if err := os.Setenv(k, v); err != nil {
			return false, err
		}
	}
	return true, nil
}

// RemoveEnvVars is a finalizer that unsets the environment variables a
// matching SetEnvVars initializer set (comtrya's
// steps/finalizers/env_vars_remove.rs). Always allows subsequent steps
// to continue.
type RemoveEnvVars struct {
	Vars map[string]string
}

var _ model.Finalizer = (*RemoveEnvVars)(nil)

func (r *RemoveEnvVars) Allow(_ context.Context, _ model.Atom) (bool, error) {
	for k := range r.Vars {
		if err := os.Unsetenv(k); err != nil {
			return false, err
		}
	}
	return true, nil
}

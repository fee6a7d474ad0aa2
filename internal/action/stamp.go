package action

import (
	"github.com/avbuilds/manifesto/internal/atom"
	"github.com/avbuilds/manifesto/internal/model"
)

// stampManifestName fills in the manifest name on steps built by
// internal/provider, which has no reason to know it: providers are
// constructed independently of any one manifest, so they leave the
// field blank and the action layer completes it for error reporting.
func stampManifestName(steps []model.Step, manifestName string) {
	for _, s := range steps {
		if e, ok := s.Atom.(*atom.Exec); ok && e.ManifestName == "" {
			e.ManifestName = manifestName
		}
	}
}

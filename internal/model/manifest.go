// Package model defines the core data types shared by the manifest
// execution engine: Manifest, Action (a conditional-variant wrapper over
// the tagged action union), Step, and the Atom/Initializer/Finalizer
// capability interfaces that internal/atom and internal/step implement.
package model

// Manifest is a named group of actions to reconcile on the host. Its
// identity is the dotted name assigned by the loader (internal/manifestfile);
// the YAML document itself carries everything but the name.
type Manifest struct {
	Name    string   `yaml:"-"`
	RootDir string   `yaml:"root_dir,omitempty"`
	Where   string   `yaml:"where,omitempty"`
	Labels  []string `yaml:"labels,omitempty"`
	Depends []string `yaml:"depends,omitempty"`
	Actions []Action `yaml:"actions" validate:"dive"`
}

// HasLabel reports whether label is present among the manifest's labels.
func (m *Manifest) HasLabel(label string) bool {
	for _, l := range m.Labels {
		if l == label {
			return true
		}
	}
	return false
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// validateRoot confirms root resolves to an existing directory before
// internal/manifestfile.Load ever walks it.
func validateRoot(root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve root path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("manifest root does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("manifest root %s is not a directory", abs)
	}
	return nil
}

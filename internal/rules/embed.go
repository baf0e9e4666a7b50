// Package rules carries the embedded answer-set programs fed to the
// external solver.
package rules

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
)

// Names of the embedded rule files.
const (
	FloorFile     = "floor.lp"
	PlacementFile = "placement.lp"
)

//go:embed *.lp
var rulesFS embed.FS

// Materialize writes the embedded rule files into dir so an external
// solver process can read them. It returns the on-disk path of each
// file keyed by name.
func Materialize(dir string) (map[string]string, error) {
	entries, err := rulesFS.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded rules: %w", err)
	}

	paths := make(map[string]string, len(entries))
	for _, entry := range entries {
		content, err := rulesFS.ReadFile(entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded rule %s: %w", entry.Name(), err)
		}
		path := filepath.Join(dir, entry.Name())
		if err := os.WriteFile(path, content, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write rule file %s: %w", path, err)
		}
		paths[entry.Name()] = path
	}
	return paths, nil
}

// Package cargo reads the subset of Cargo.toml the build driver needs and
// derives WASM artifact paths the way cargo lays them out.
package cargo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Manifest is a parsed Cargo.toml.
type Manifest struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`

	Features map[string][]string `toml:"features"`

	Workspace *WorkspaceTable `toml:"workspace"`
}

// WorkspaceTable marks a manifest as a cargo workspace root.
type WorkspaceTable struct {
	Members []string `toml:"members"`
}

// Load parses the Cargo.toml inside dir.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "Cargo.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &m, nil
}

// HasFeature reports whether the manifest declares the named feature.
func (m *Manifest) HasFeature(name string) bool {
	_, ok := m.Features[name]
	return ok
}

// IsWorkspace reports whether the manifest has a [workspace] table.
func (m *Manifest) IsWorkspace() bool {
	return m.Workspace != nil
}

// ArtifactName returns the WASM file name cargo emits for a package.
// Hyphens in package names become underscores in artifact names.
func ArtifactName(pkg string) string {
	return strings.ReplaceAll(pkg, "-", "_") + ".wasm"
}

// ArtifactPath returns the path of the built WASM binary under the
// workspace's target directory.
func ArtifactPath(workspaceRoot, target, profile, pkg string) string {
	return filepath.Join(workspaceRoot, "target", target, profile, ArtifactName(pkg))
}

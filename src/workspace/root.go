// Package workspace resolves the cargo workspace root a contract crate
// belongs to. Cargo writes build artifacts relative to this root, and the
// build command must run inside it.
package workspace

import (
	"path/filepath"

	git "github.com/go-git/go-git/v5"

	"github.com/certora/certora-build/src/cargo"
)

// FindRoot resolves the workspace root for a contract crate directory.
// Resolution order: explicit override, enclosing git repository, nearest
// ancestor with a [workspace] Cargo.toml, the crate directory itself.
func FindRoot(projectDir, override string) (string, error) {
	if override != "" {
		return filepath.Abs(override)
	}

	dir, err := filepath.Abs(projectDir)
	if err != nil {
		return "", err
	}

	if root, ok := gitRoot(dir); ok {
		return root, nil
	}
	if root, ok := manifestRoot(dir); ok {
		return root, nil
	}
	return dir, nil
}

// gitRoot returns the worktree root of the repository enclosing dir.
func gitRoot(dir string) (string, bool) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", false
	}
	wt, err := repo.Worktree()
	if err != nil {
		// bare repository, no worktree to build in
		return "", false
	}
	return wt.Filesystem.Root(), true
}

// manifestRoot walks up from dir looking for a [workspace] Cargo.toml.
func manifestRoot(dir string) (string, bool) {
	for d := dir; ; {
		if m, err := cargo.Load(d); err == nil && m.IsWorkspace() {
			return d, true
		}
		parent := filepath.Dir(d)
		if parent == d {
			return "", false
		}
		d = parent
	}
}

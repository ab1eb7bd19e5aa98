package build

import (
	"context"
	"os/exec"
	"regexp"
	"strings"

	masterminds "github.com/Masterminds/semver/v3"

	"github.com/certora/certora-build/src/output"
)

// ToolchainInfo describes the cargo binary the driver will invoke.
// A zero Path means cargo was not found on PATH.
type ToolchainInfo struct {
	Path    string
	Version *masterminds.Version
}

// cargoVersionRe matches output like "cargo 1.81.0 (2dbb1af80 2024-08-20)".
var cargoVersionRe = regexp.MustCompile(`cargo (\d+\.\d+\.\d+)`)

// CheckToolchain probes for cargo on PATH and parses its version.
// Findings surface only through diag: a missing or outdated toolchain must
// still go through the Runner so the launch-failure sentinel and the
// build's own exit code stay the report's single source of truth.
func CheckToolchain(ctx context.Context, minVersion string, diag *output.Diag) *ToolchainInfo {
	info := &ToolchainInfo{}

	path, err := exec.LookPath("cargo")
	if err != nil {
		diag.Printf("cargo not found on PATH: %v", err)
		return info
	}
	info.Path = path

	out, err := exec.CommandContext(ctx, path, "--version").Output()
	if err != nil {
		diag.Printf("cargo --version failed: %v", err)
		return info
	}

	v, ok := parseCargoVersion(string(out))
	if !ok {
		diag.Printf("unrecognized cargo version output: %q", strings.TrimSpace(string(out)))
		return info
	}
	info.Version = v
	diag.Printf("using cargo %s at %s", v, path)

	if minVersion != "" {
		min, err := masterminds.NewVersion(minVersion)
		if err == nil && v.LessThan(min) {
			diag.Printf("cargo %s is older than the required minimum %s", v, min)
		}
	}
	return info
}

func parseCargoVersion(out string) (*masterminds.Version, bool) {
	m := cargoVersionRe.FindStringSubmatch(out)
	if m == nil {
		return nil, false
	}
	v, err := masterminds.NewVersion(m[1])
	if err != nil {
		return nil, false
	}
	return v, true
}

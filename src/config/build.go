package config

import "strings"

// BuildConfig describes the cargo invocation and the report's fixed fields.
// The zero-value defaults reproduce the invocation the prover pipeline
// expects for a Soroban contract crate.
type BuildConfig struct {
	// Package is the cargo package to build (-p). Empty means take the
	// [package].name from the crate's Cargo.toml.
	Package string `yaml:"package"`

	Target   string   `yaml:"target"`
	Profile  string   `yaml:"profile"`
	Features []string `yaml:"features"`

	// Command replaces the assembled cargo argv entirely when set.
	// Mutually exclusive with Package.
	Command []string `yaml:"command"`

	// Sources are informational glob patterns recorded in the report.
	// They are never resolved against the filesystem.
	Sources []string `yaml:"sources"`

	// Executable overrides the derived WASM artifact path in the report.
	Executable string `yaml:"executable"`

	// WorkspaceRoot overrides workspace root detection. The build command
	// runs with this directory as its working directory.
	WorkspaceRoot string `yaml:"workspace_root"`
}

// ToolchainConfig holds preflight settings for the cargo toolchain.
type ToolchainConfig struct {
	// MinVersion is an optional semver minimum for cargo. Older toolchains
	// only produce a verbose warning; the build still runs.
	MinVersion string `yaml:"min_version"`
}

// DefaultBuildConfig returns the build configuration for a Soroban contract
// crate verified with the certora feature.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		Target:   "wasm32-unknown-unknown",
		Profile:  "release",
		Features: []string{"certora"},
		Sources:  []string{"src/**/*.rs", "Cargo.toml"},
	}
}

// Argv returns the build command for the given package name.
// A configured Command wins over the assembled cargo invocation.
func (b BuildConfig) Argv(pkg string) []string {
	if len(b.Command) > 0 {
		argv := make([]string, len(b.Command))
		copy(argv, b.Command)
		return argv
	}

	args := []string{"cargo", "build"}
	switch b.Profile {
	case "release":
		args = append(args, "--release")
	case "", "debug":
		// cargo's default profile, no flag
	default:
		args = append(args, "--profile", b.Profile)
	}
	args = append(args, "--target", b.Target, "-p", pkg)
	if len(b.Features) > 0 {
		args = append(args, "--features", strings.Join(b.Features, ","))
	}
	return args
}

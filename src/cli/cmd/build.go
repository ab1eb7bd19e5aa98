package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/certora/certora-build/src/build"
	"github.com/certora/certora-build/src/cargo"
	"github.com/certora/certora-build/src/output"
	"github.com/certora/certora-build/src/workspace"
)

var (
	outputFile string
	jsonOut    bool
	streamLog  bool
	projectDir string
)

func init() {
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the JSON report to this file")
	rootCmd.Flags().BoolVar(&jsonOut, "json", false, "print the JSON report to stdout")
	rootCmd.Flags().BoolVarP(&streamLog, "log", "l", false, "stream build output instead of capturing to temp files")
	rootCmd.Flags().StringVarP(&projectDir, "project", "p", ".", "contract crate directory")
}

// runBuild is the whole pipeline: resolve paths, run the build, emit the
// report, and map build success onto the wrapper's exit code.
func runBuild(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	diag := output.NewDiag(verbose)

	projDir, err := filepath.Abs(projectDir)
	if err != nil {
		return fmt.Errorf("resolving project directory: %w", err)
	}

	build.CheckToolchain(ctx, cfg.Toolchain.MinVersion, diag)

	root, err := workspace.FindRoot(projDir, cfg.Build.WorkspaceRoot)
	if err != nil {
		return fmt.Errorf("resolving workspace root: %w", err)
	}
	diag.Printf("workspace root %s", root)

	pkg := cfg.Build.Package
	executable := cfg.Build.Executable
	if executable == "" || (len(cfg.Build.Command) == 0 && pkg == "") {
		manifest, err := cargo.Load(projDir)
		if err != nil {
			return fmt.Errorf("reading crate manifest: %w", err)
		}
		if pkg == "" {
			pkg = manifest.Package.Name
		}
		if pkg == "" {
			return fmt.Errorf("no package name in %s and build.package not set", filepath.Join(projDir, "Cargo.toml"))
		}
		for _, f := range cfg.Build.Features {
			if !manifest.HasFeature(f) {
				diag.Printf("feature %q is not declared by package %s", f, pkg)
			}
		}
		if executable == "" {
			executable = cargo.ArtifactPath(root, cfg.Build.Target, cfg.Build.Profile, pkg)
		}
	}

	runner := build.NewRunner(root, diag)
	res := runner.Run(ctx, cfg.Build.Argv(pkg), streamLog)

	report := build.NewReport(projDir, cfg.Build.Sources, executable, res)

	if outputFile != "" {
		if err := report.WriteFile(outputFile); err != nil {
			return fmt.Errorf("writing report to %s: %w", outputFile, err)
		}
		diag.Printf("report written to %s", outputFile)
	}
	if jsonOut {
		if err := report.Print(cmd.OutOrStdout()); err != nil {
			return err
		}
	}

	if !report.Success {
		return fmt.Errorf("build failed (exit code %d)", res.ExitCode)
	}
	return nil
}

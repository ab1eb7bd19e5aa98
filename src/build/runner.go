package build

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/certora/certora-build/src/output"
)

// LaunchFailureCode is the sentinel exit code reported when the build
// command could not be started at all.
const LaunchFailureCode = -1

// Runner executes the build command for one contract crate.
type Runner struct {
	// WorkDir is the working directory of the child process, normally the
	// cargo workspace root.
	WorkDir string

	// Stdout and Stderr receive the child's output in streaming mode.
	Stdout io.Writer
	Stderr io.Writer

	Diag *output.Diag
}

// RunResult captures one build invocation.
type RunResult struct {
	// StdoutLog and StderrLog point at the capture files. Empty in
	// streaming mode and when the command failed to launch.
	StdoutLog string
	StderrLog string

	ExitCode int
}

// NewRunner creates a Runner streaming to the process's own stdout/stderr.
func NewRunner(workDir string, diag *output.Diag) *Runner {
	return &Runner{
		WorkDir: workDir,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Diag:    diag,
	}
}

// Run executes argv and blocks until it exits.
//
// With stream set, the child's stdout/stderr are connected to the Runner's
// own. Otherwise each stream is captured into a newly created, uniquely
// named temporary file. The capture files are never deleted, so logs stay
// inspectable after the wrapper exits.
//
// Run never returns an error: a command that cannot be launched is reported
// as LaunchFailureCode with no capture paths.
func (r *Runner) Run(ctx context.Context, argv []string, stream bool) *RunResult {
	res := &RunResult{}
	if len(argv) == 0 {
		r.Diag.Printf("empty build command")
		res.ExitCode = LaunchFailureCode
		return res
	}

	r.Diag.Printf("running %q in %s", strings.Join(argv, " "), r.WorkDir)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = r.WorkDir

	if stream {
		cmd.Stdout = r.Stdout
		cmd.Stderr = r.Stderr
	} else {
		stdoutLog, err := os.CreateTemp("", "certora_build_*.stdout")
		if err != nil {
			r.Diag.Printf("creating stdout log: %v", err)
			res.ExitCode = LaunchFailureCode
			return res
		}
		stderrLog, err := os.CreateTemp("", "certora_build_*.stderr")
		if err != nil {
			stdoutLog.Close()
			r.Diag.Printf("creating stderr log: %v", err)
			res.ExitCode = LaunchFailureCode
			return res
		}
		defer stdoutLog.Close()
		defer stderrLog.Close()

		cmd.Stdout = stdoutLog
		cmd.Stderr = stderrLog
		res.StdoutLog = stdoutLog.Name()
		res.StderrLog = stderrLog.Name()
	}

	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		res.ExitCode = 0
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		// launch failure: command not found, permission denied
		r.Diag.Printf("failed to start %q: %v", argv[0], err)
		res.ExitCode = LaunchFailureCode
		res.StdoutLog = ""
		res.StderrLog = ""
	}

	if res.StdoutLog != "" {
		r.Diag.Printf("build logs: %s, %s", res.StdoutLog, res.StderrLog)
	}
	return res
}

package build

import (
	"encoding/json"
	"io"
	"os"
)

// Report is the JSON document the prover pipeline consumes. Constructed
// once per invocation and immutable afterwards.
type Report struct {
	ProjectDirectory string    `json:"project_directory"`
	Sources          []string  `json:"sources"`
	Executables      string    `json:"executables"`
	Success          bool      `json:"success"`
	ReturnCode       int       `json:"return_code"`
	Log              ReportLog `json:"log"`
}

// ReportLog points at the captured build output.
// Both fields are null when output was streamed instead of captured.
type ReportLog struct {
	Stdout *string `json:"stdout"`
	Stderr *string `json:"stderr"`
}

// NewReport assembles the report for one build invocation.
func NewReport(projectDir string, sources []string, executable string, res *RunResult) *Report {
	rep := &Report{
		ProjectDirectory: projectDir,
		Sources:          sources,
		Executables:      executable,
		Success:          res.ExitCode == 0,
		ReturnCode:       res.ExitCode,
	}
	if res.StdoutLog != "" {
		stdout := res.StdoutLog
		rep.Log.Stdout = &stdout
	}
	if res.StderrLog != "" {
		stderr := res.StderrLog
		rep.Log.Stderr = &stderr
	}
	return rep
}

// Marshal renders the report as 4-space indented JSON.
func (r *Report) Marshal() ([]byte, error) {
	return json.MarshalIndent(r, "", "    ")
}

// WriteFile writes the report to path, overwriting any existing file.
func (r *Report) WriteFile(path string) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Print writes the report to w followed by a newline. The JSON content is
// byte-identical to what WriteFile produces.
func (r *Report) Print(w io.Writer) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

package build

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var testSources = []string{"src/**/*.rs", "Cargo.toml"}

func TestNewReportSuccess(t *testing.T) {
	res := &RunResult{
		StdoutLog: "/tmp/certora_build_1.stdout",
		StderrLog: "/tmp/certora_build_1.stderr",
		ExitCode:  0,
	}

	rep := NewReport("/ws/contracts/dex-pool", testSources, "/ws/target/wasm32-unknown-unknown/release/dex_pool.wasm", res)

	if !rep.Success {
		t.Error("success = false, want true")
	}
	if rep.ReturnCode != 0 {
		t.Errorf("return_code = %d, want 0", rep.ReturnCode)
	}
	if rep.Log.Stdout == nil || *rep.Log.Stdout != res.StdoutLog {
		t.Errorf("log.stdout = %v, want %q", rep.Log.Stdout, res.StdoutLog)
	}
	if rep.Log.Stderr == nil || *rep.Log.Stderr != res.StderrLog {
		t.Errorf("log.stderr = %v, want %q", rep.Log.Stderr, res.StderrLog)
	}
}

func TestNewReportFailureKeepsExitCode(t *testing.T) {
	rep := NewReport("/p", testSources, "/e.wasm", &RunResult{ExitCode: 101})

	if rep.Success {
		t.Error("success = true, want false")
	}
	if rep.ReturnCode != 101 {
		t.Errorf("return_code = %d, want 101", rep.ReturnCode)
	}
}

func TestNewReportLaunchFailure(t *testing.T) {
	rep := NewReport("/p", testSources, "/e.wasm", &RunResult{ExitCode: LaunchFailureCode})

	if rep.Success {
		t.Error("success = true, want false")
	}
	if rep.ReturnCode != LaunchFailureCode {
		t.Errorf("return_code = %d, want %d", rep.ReturnCode, LaunchFailureCode)
	}
	if rep.Log.Stdout != nil || rep.Log.Stderr != nil {
		t.Errorf("log paths = %v/%v, want null/null", rep.Log.Stdout, rep.Log.Stderr)
	}
}

func TestReportFieldNames(t *testing.T) {
	rep := NewReport("/p", testSources, "/e.wasm", &RunResult{ExitCode: 0})
	data, err := rep.Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, name := range []string{"project_directory", "sources", "executables", "success", "return_code", "log"} {
		if _, ok := fields[name]; !ok {
			t.Errorf("field %q missing from report", name)
		}
	}
	if len(fields) != 6 {
		t.Errorf("report has %d fields, want 6", len(fields))
	}
}

func TestReportStreamingLogsAreNull(t *testing.T) {
	rep := NewReport("/p", testSources, "/e.wasm", &RunResult{ExitCode: 0})
	data, err := rep.Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if !bytes.Contains(data, []byte(`"stdout": null`)) {
		t.Errorf("report missing null stdout log:\n%s", data)
	}
	if !bytes.Contains(data, []byte(`"stderr": null`)) {
		t.Errorf("report missing null stderr log:\n%s", data)
	}
}

func TestWriteFileAndPrintAreIdentical(t *testing.T) {
	rep := NewReport("/p", testSources, "/e.wasm", &RunResult{ExitCode: 101})

	path := filepath.Join(t.TempDir(), "report.json")
	if err := rep.WriteFile(path); err != nil {
		t.Fatalf("write file: %v", err)
	}
	fileData, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	var buf bytes.Buffer
	if err := rep.Print(&buf); err != nil {
		t.Fatalf("print: %v", err)
	}

	printed := strings.TrimSuffix(buf.String(), "\n")
	if printed == buf.String() {
		t.Error("printed report is not newline-terminated")
	}
	if string(fileData) != printed {
		t.Errorf("file and console JSON differ:\nfile:    %s\nconsole: %s", fileData, printed)
	}
}

func TestWriteFileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatalf("seeding file: %v", err)
	}

	rep := NewReport("/p", testSources, "/e.wasm", &RunResult{ExitCode: 0})
	if err := rep.WriteFile(path); err != nil {
		t.Fatalf("write file: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if bytes.Contains(data, []byte("stale")) {
		t.Error("old content survived the overwrite")
	}
	if !json.Valid(data) {
		t.Errorf("overwritten file is not valid JSON:\n%s", data)
	}
}

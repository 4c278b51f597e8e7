package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestPrinter_JSON_Success(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false) // json=true, tty=false

	data := map[string]any{
		"path":  ".env",
		"lines": 4,
	}

	if err := printer.Success(data); err != nil {
		t.Fatalf("Success() error = %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, buf.String())
	}

	if result["path"] != ".env" {
		t.Errorf("path = %v, want %q", result["path"], ".env")
	}
	if result["lines"] != float64(4) {
		t.Errorf("lines = %v, want 4", result["lines"])
	}
}

func TestPrinter_JSON_Error(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	printer.Error(NewSystemError("template not found: ./env"))

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, buf.String())
	}

	if result["error"] != "template not found: ./env" {
		t.Errorf("error = %v", result["error"])
	}
	if code, ok := result["code"].(float64); !ok || int(code) != ExitSystemError {
		t.Errorf("code = %v, want %d", result["code"], ExitSystemError)
	}
}

func TestPrinter_Human_Success(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	if err := printer.Success(map[string]any{"message": "Wrote .env (4 lines)"}); err != nil {
		t.Fatalf("Success() error = %v", err)
	}

	if got := buf.String(); got != "Wrote .env (4 lines)\n" {
		t.Errorf("output = %q", got)
	}
}

func TestPrinter_Human_ErrorGoesToStderr(t *testing.T) {
	var out, errOut bytes.Buffer
	printer := NewPrinter(&out, false, false).WithStderr(&errOut)

	printer.Error(NewUserError("template line 2: empty key"))

	if out.Len() != 0 {
		t.Errorf("stdout should be empty, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "Error: template line 2: empty key") {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestPrinter_Warn(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false, false).Warn("preset %s ignored", ".env")
	if !strings.Contains(buf.String(), "Warning: preset .env ignored") {
		t.Errorf("output = %q", buf.String())
	}

	buf.Reset()
	NewPrinter(&buf, true, false).Warn("quiet")
	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, buf.String())
	}
	if result["warning"] != "quiet" {
		t.Errorf("warning = %v, want %q", result["warning"], "quiet")
	}
}

func TestPrinter_Stderr_NoopInJSON(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, true, false).Stderr("# comment\n")
	if buf.Len() != 0 {
		t.Errorf("Stderr should be a no-op in JSON mode, got %q", buf.String())
	}
}

func TestPrinter_WriteYAML(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	type row struct {
		Key  string `yaml:"key"`
		Kind string `yaml:"kind"`
	}
	if err := printer.WriteYAML([]row{{Key: "PORT", Kind: "default"}}); err != nil {
		t.Fatalf("WriteYAML() error = %v", err)
	}

	var got []row
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, buf.String())
	}
	if len(got) != 1 || got[0].Key != "PORT" || got[0].Kind != "default" {
		t.Errorf("got %+v", got)
	}
}

func TestPrinter_Table(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Table([]string{"LINE", "KIND", "KEY"}, [][]string{
		{"1", "passthrough", ""},
		{"2", "command", "HOST"},
	})

	want := "LINE  KIND         KEY\n" +
		"1     passthrough\n" +
		"2     command      HOST\n"
	if got := buf.String(); got != want {
		t.Errorf("Table output =\n%s\nwant\n%s", got, want)
	}
}

func TestPrinter_KeyValue(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false, false).KeyValue("Template", "./env")
	if got := buf.String(); got != "Template: ./env\n" {
		t.Errorf("KeyValue output = %q", got)
	}
}

func TestPrinter_IsJSON(t *testing.T) {
	var buf bytes.Buffer
	if !NewPrinter(&buf, true, false).IsJSON() {
		t.Error("IsJSON() should return true for JSON printer")
	}
	if NewPrinter(&buf, false, false).IsJSON() {
		t.Error("IsJSON() should return false for human printer")
	}
}

func TestErrorJSON_Format(t *testing.T) {
	result := ErrorJSON("test error", ExitUserError)

	var parsed struct {
		Error string `json:"error"`
		Code  int    `json:"code"`
	}
	if err := json.Unmarshal(result, &parsed); err != nil {
		t.Fatalf("Failed to parse ErrorJSON output: %v", err)
	}
	if parsed.Error != "test error" || parsed.Code != ExitUserError {
		t.Errorf("parsed = %+v", parsed)
	}
}

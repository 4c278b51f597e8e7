package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/fang"

	"github.com/gorewood/setenv/internal/output"
)

// result captures one command execution.
type result struct {
	stdout string
	stderr string
	err    error
}

// execute runs the root command with args and stdin, isolated from any
// user config file.
func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	t.Setenv("SETENV_CONFIG", "")
	t.Setenv("SETENV_CONFIG_HOME", t.TempDir())
	return executeWithConfig(t, stdin, args...)
}

// executeWithConfig runs the root command without touching the config env.
func executeWithConfig(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	return executeContext(t, context.Background(), stdin, args...)
}

// executeContext runs the root command under ctx, which stands in for the
// SIGINT context main installs.
func executeContext(t *testing.T, ctx context.Context, stdin string, args ...string) result {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	return result{stdout: out.String(), stderr: errOut.String(), err: err}
}

func TestRootCommand_Version(t *testing.T) {
	version = "1.2.3"
	defer func() { version = "dev" }()

	res := execute(t, "", "--version")
	if res.err != nil {
		t.Fatalf("Execute() error = %v", res.err)
	}
	if !strings.Contains(res.stdout, "1.2.3") {
		t.Errorf("--version output should contain version: %q", res.stdout)
	}
	if !strings.Contains(res.stdout, "setenv") {
		t.Errorf("--version output should contain 'setenv': %q", res.stdout)
	}
}

func TestRootCommand_Help(t *testing.T) {
	res := execute(t, "", "--help")
	if res.err != nil {
		t.Fatalf("Execute() error = %v", res.err)
	}

	for _, expected := range []string{"setenv", "Usage:", "--clear", "--template", "--output-dir", "key = ! command", "plan"} {
		if !strings.Contains(res.stdout, expected) {
			t.Errorf("--help output should contain %q: %q", expected, res.stdout)
		}
	}
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"json", "color", "clear", "template", "output-dir", "strict", "verbose"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("--%s should be a persistent flag", name)
		}
	}
	if cmd.Flags().Lookup("yes") == nil {
		t.Error("--yes should be defined on the root command")
	}
}

func TestRootCommand_RejectsArgs(t *testing.T) {
	res := execute(t, "", "extra")
	if res.err == nil {
		t.Fatal("expected error for positional argument")
	}
}

func TestBuildVersion(t *testing.T) {
	defer func(v, c, d string) { version, commit, date = v, c, d }(version, commit, date)

	version, commit, date = "1.0.0", "none", "unknown"
	if got := buildVersion(); got != "1.0.0" {
		t.Errorf("buildVersion() = %q", got)
	}

	version, commit, date = "1.0.0", "abcdef123456", "2026-01-01"
	if got := buildVersion(); got != "1.0.0 (abcdef1, 2026-01-01)" {
		t.Errorf("buildVersion() = %q", got)
	}
}

func TestReportUnhandled(t *testing.T) {
	var buf bytes.Buffer
	reportUnhandled(&buf, fang.Styles{}, output.NewUserError("already printed"))
	if buf.Len() != 0 {
		t.Errorf("ExitError should not be printed twice, got %q", buf.String())
	}

	reportUnhandled(&buf, fang.Styles{}, errors.New("unknown flag: --nope"))
	if !strings.Contains(buf.String(), "unknown flag: --nope") {
		t.Errorf("plain errors should be printed, got %q", buf.String())
	}
}


package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"charm.land/log/v2"
	"github.com/spf13/cobra"

	"github.com/gorewood/setenv/internal/config"
	"github.com/gorewood/setenv/internal/envfile"
	"github.com/gorewood/setenv/internal/output"
	"github.com/gorewood/setenv/internal/prompt"
	"github.com/gorewood/setenv/internal/resolver"
	"github.com/gorewood/setenv/internal/shell"
)

// envFileName is the fixed name of the generated file.
const envFileName = ".env"

// generateOptions holds the flags shared by the root and plan commands.
type generateOptions struct {
	clear     bool
	template  string
	outputDir string
	strict    bool
	verbose   bool
	yes       bool
}

// settings are the effective options after applying the config file.
type settings struct {
	template string
	envPath  string
	shell    string
	color    string
}

// loadSettings merges the config file under the explicit flags.
func loadSettings(cmd *cobra.Command, opts *generateOptions) (*settings, error) {
	cfg, err := config.Load(config.Path())
	if err != nil {
		return nil, output.NewUserErrorWithCause(err.Error(), err)
	}

	s := &settings{
		template: cfg.Template,
		envPath:  filepath.Join(cfg.OutputDir, envFileName),
		shell:    cfg.Shell,
		color:    cfg.Color,
	}
	if flagChanged(cmd, "template") {
		s.template = opts.template
	}
	if flagChanged(cmd, "output-dir") {
		s.envPath = filepath.Join(opts.outputDir, envFileName)
	}
	if flagChanged(cmd, "color") {
		s.color = lookupFlag(cmd, "color").Value.String()
		if err := config.ValidateColor(s.color); err != nil {
			return nil, output.NewUserError("--color: " + err.Error())
		}
	}
	return s, nil
}

// checkOutputDir fails early, before any prompt, when the .env could not
// be written.
func checkOutputDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return output.NewSystemError("output directory not found: " + dir)
		}
		return output.NewSystemErrorWithCause(err.Error(), err)
	}
	if !info.IsDir() {
		return output.NewSystemError("output path is not a directory: " + dir)
	}
	return nil
}

// newPrinter builds the command's printer with the effective color mode.
func newPrinter(cmd *cobra.Command, colorMode string) *output.Printer {
	isTTY := output.ResolveColorMode(colorMode, output.IsTTY(cmd.OutOrStdout()))
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), isTTY).WithStderr(cmd.ErrOrStderr())
}

// newLogger logs to stderr; warnings only unless --verbose.
func newLogger(cmd *cobra.Command, verbose bool) *log.Logger {
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: "setenv",
		Level:  log.WarnLevel,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadPreset reads the existing .env unless --clear was given.
func loadPreset(logger *log.Logger, path string, opts *generateOptions) (envfile.Preset, error) {
	if opts.clear {
		logger.Debug("preset disabled", "path", path)
		return envfile.Preset{}, nil
	}

	preset, err := envfile.Load(path, opts.strict)
	if err != nil {
		var formatErr *envfile.FormatError
		if errors.As(err, &formatErr) {
			return nil, output.NewUserErrorWithCause("invalid preset: "+err.Error(), err)
		}
		return nil, output.NewSystemErrorWithCause(err.Error(), err)
	}
	logger.Debug("preset loaded", "path", path, "keys", len(preset))
	return preset, nil
}

// readTemplate reads the template; a missing template is fatal.
func readTemplate(path string) ([]string, error) {
	lines, err := resolver.ReadTemplate(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, output.NewSystemErrorWithCause("template not found: "+path, err)
		}
		return nil, output.NewSystemErrorWithCause(err.Error(), err)
	}
	return lines, nil
}

// runGenerate executes the root command.
func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	s, err := loadSettings(cmd, opts)
	if err != nil {
		newPrinter(cmd, "never").Error(err)
		return err
	}
	printer := newPrinter(cmd, s.color)
	logger := newLogger(cmd, opts.verbose)

	if err := checkOutputDir(filepath.Dir(s.envPath)); err != nil {
		printer.Error(err)
		return err
	}

	preset, err := loadPreset(logger, s.envPath, opts)
	if err != nil {
		printer.Error(err)
		return err
	}

	lines, err := readTemplate(s.template)
	if err != nil {
		printer.Error(err)
		return err
	}

	runner := shell.NewRunner(s.shell, cmd.ErrOrStderr(), logger).OnFailure(func(command string, err error) {
		if printer.IsJSON() {
			logger.Warn("command failed", "cmd", command, "err", err)
			return
		}
		printer.Warn("command %q failed: %v", command, err)
	})
	interactive := prompt.New(newLineReader(cmd), printer.Styles().Key)
	dim := printer.Styles().Dim

	res := &resolver.Resolver{
		Preset:   preset,
		Prompter: interactive,
		Run:      runner.Output,
		Strict:   opts.strict,
		Echo:     func(line string) { printer.Stderr("%s\n", dim.Render(line)) },
		Logger:   logger,
	}
	if opts.yes {
		res.Prompter = prompt.AcceptDefaults{}
	}

	out, err := res.Generate(cmd.Context(), lines, s.template)
	if err == nil {
		err = cmd.Context().Err()
	}
	if err != nil {
		if isCanceled(err) {
			logger.Debug("canceled, nothing written")
			return nil
		}
		err = classifyResolveError(err)
		printer.Error(err)
		return err
	}

	if err := envfile.Write(s.envPath, out); err != nil {
		err = output.NewSystemErrorWithCause(fmt.Sprintf("writing %s: %v", s.envPath, err), err)
		printer.Error(err)
		return err
	}

	summary := map[string]any{
		"message":  fmt.Sprintf("Wrote %s (%d lines)", s.envPath, len(out)),
		"path":     s.envPath,
		"lines":    len(out),
		"keys":     res.Keys(),
		"prompts":  interactive.Reads(),
		"commands": runner.Count(),
	}
	if err := printer.Success(summary); err != nil {
		return err
	}
	if !printer.IsJSON() {
		printer.KeyValue("Keys", strconv.Itoa(res.Keys()))
		printer.KeyValue("Prompts", strconv.Itoa(interactive.Reads()))
		printer.KeyValue("Commands", strconv.Itoa(runner.Count()))
	}
	return nil
}

// newLineReader picks terminal line editing when stdin is a terminal.
// Prompts go to stderr so stdout stays clean for --json.
func newLineReader(cmd *cobra.Command) prompt.LineReader {
	if f, ok := cmd.InOrStdin().(*os.File); ok && prompt.IsTerminal(f) {
		return prompt.NewTerminalReader(f, cmd.ErrOrStderr())
	}
	return prompt.NewPlainReader(cmd.InOrStdin(), cmd.ErrOrStderr())
}

// isCanceled reports whether err means the user or the caller ended the
// session.
func isCanceled(err error) bool {
	return errors.Is(err, prompt.ErrCanceled) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// classifyResolveError assigns an exit code to a Generate failure.
func classifyResolveError(err error) error {
	var formatErr *envfile.FormatError
	if errors.As(err, &formatErr) || errors.Is(err, prompt.ErrMissingValue) {
		return output.NewUserErrorWithCause(err.Error(), err)
	}
	return output.NewSystemErrorWithCause(err.Error(), err)
}

// Package main provides the entry point for the setenv CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gorewood/setenv/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	// SIGINT cancels the context instead of killing the process, so an
	// interrupted prompt or command aborts the run before anything is written.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd()
	err := fang.Execute(ctx, cmd,
		fang.WithVersion(buildVersion()),
		fang.WithErrorHandler(reportUnhandled),
	)
	return output.GetExitCode(err)
}

// reportUnhandled prints errors that commands did not already report
// through an output.Printer (flag parsing errors, mostly).
func reportUnhandled(w io.Writer, _ fang.Styles, err error) {
	var exitErr *output.ExitError
	if errors.As(err, &exitErr) {
		return
	}
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
}

// newRootCmd creates the root command, which generates the .env file.
func newRootCmd() *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "setenv",
		Short: "Generate an .env file from a template",
		Long: `Generate an .env file from a template.

Values already in the existing .env (the preset) are reused, so re-running
setenv only asks for what is new.

Template rules:
  1. Not in key = value format (mostly comments)
       copied as is
  2. key =
       preset or user input
  3. key = ? command
       preset or command output, confirmed by user input
  4. key = ! command
       preset or command output
  5. key = * [default]
       preset or default, confirmed by user input, may be empty
  6. key = value
       value

Examples:
  setenv                        # ./env -> ./.env
  setenv -t deploy/env -o deploy
  setenv --clear                # ignore the existing .env
  setenv --yes                  # accept presets and defaults, never prompt`,
		Version:       buildVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts)
		},
	}

	// Shared by every command
	flags := cmd.PersistentFlags()
	flags.Bool("json", false, "Output in JSON format")
	flags.String("color", "", "Color output: auto, always or never")
	flags.BoolVarP(&opts.clear, "clear", "c", false, "Do not load presets from the existing .env file")
	flags.StringVarP(&opts.template, "template", "t", "", "Template file path (default \"./env\")")
	flags.StringVarP(&opts.outputDir, "output-dir", "o", "", "Output directory path (default \".\")")
	flags.BoolVar(&opts.strict, "strict", false, "Require exactly one '=' per line")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log preset, command and prompt activity to stderr")

	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Accept presets and defaults without prompting")

	cmd.AddCommand(newPlanCmd(opts))

	return cmd
}

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := lookupFlag(cmd, "json")
	return flag != nil && flag.Value.String() == "true"
}

// lookupFlag finds a flag on cmd, walking up to the root's persistent flags.
func lookupFlag(cmd *cobra.Command, name string) *pflag.Flag {
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag
	}
	return cmd.Root().PersistentFlags().Lookup(name)
}

// flagChanged reports whether the user set the named flag explicitly.
func flagChanged(cmd *cobra.Command, name string) bool {
	flag := lookupFlag(cmd, name)
	return flag != nil && flag.Changed
}

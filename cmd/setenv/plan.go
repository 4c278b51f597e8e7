package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/setenv/internal/resolver"
)

// newPlanCmd creates the plan command.
func newPlanCmd(opts *generateOptions) *cobra.Command {
	var yamlFlag, allFlag bool
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show how each template line would be resolved",
		Long: `Show how each template line would be resolved, without prompting
or running any command.

The PRESET column tells whether the existing .env already holds the key, in
which case its command or default is skipped.

Examples:
  setenv plan               # Table of key lines
  setenv plan --all         # Include comments and blank lines
  setenv plan --json        # JSON for scripting
  setenv plan --yaml        # YAML`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlan(cmd, opts, yamlFlag, allFlag)
		},
	}
	cmd.Flags().BoolVar(&yamlFlag, "yaml", false, "Output in YAML format")
	cmd.Flags().BoolVar(&allFlag, "all", false, "Include pass-through lines")
	return cmd
}

// runPlan executes the plan command.
func runPlan(cmd *cobra.Command, opts *generateOptions, asYAML, all bool) error {
	s, err := loadSettings(cmd, opts)
	if err != nil {
		newPrinter(cmd, "never").Error(err)
		return err
	}
	printer := newPrinter(cmd, s.color)
	logger := newLogger(cmd, opts.verbose)

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

	directives, err := resolver.ParseTemplate(lines, s.template, opts.strict)
	if err != nil {
		err = classifyResolveError(err)
		printer.Error(err)
		return err
	}

	steps := resolver.Plan(directives, preset)
	if !all {
		steps = keySteps(steps)
	}

	switch {
	case printer.IsJSON():
		return printer.WriteJSON(steps)
	case asYAML:
		return printer.WriteYAML(steps)
	}

	if len(steps) == 0 {
		printer.Println("No key lines in", s.template)
		return nil
	}

	rows := make([][]string, 0, len(steps))
	for _, step := range steps {
		rows = append(rows, []string{
			strconv.Itoa(step.Line),
			step.Kind,
			step.Key,
			step.Arg,
			presetLabel(step),
		})
	}
	printer.Table([]string{"LINE", "KIND", "KEY", "ARG", "PRESET"}, rows)
	return nil
}

// keySteps drops pass-through lines.
func keySteps(steps []resolver.Step) []resolver.Step {
	kept := make([]resolver.Step, 0, len(steps))
	for _, step := range steps {
		if step.Kind != resolver.Passthrough.String() {
			kept = append(kept, step)
		}
	}
	return kept
}

// presetLabel renders the PRESET column; blank where presets don't apply.
func presetLabel(step resolver.Step) string {
	switch {
	case step.Kind == resolver.Passthrough.String() || step.Kind == resolver.Literal.String():
		return ""
	case step.Preset:
		return "yes"
	default:
		return "no"
	}
}

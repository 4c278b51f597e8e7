package resolver

import (
	"bufio"
	"fmt"
	"os"

	"github.com/gorewood/setenv/internal/envfile"
)

// ReadTemplate reads the template at path as lines, without line endings.
// A missing template is an error (wrapping os.ErrNotExist).
func ReadTemplate(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening template %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // best-effort close on read-only file

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}
	return lines, nil
}

// Step describes how one template line will be resolved.
type Step struct {
	Line   int    `json:"line" yaml:"line"`
	Kind   string `json:"kind" yaml:"kind"`
	Key    string `json:"key,omitempty" yaml:"key,omitempty"`
	Arg    string `json:"arg,omitempty" yaml:"arg,omitempty"`
	Preset bool   `json:"preset" yaml:"preset"`
}

// Plan lists the resolution of each directive without prompting or running
// anything. Preset is true when a preset value will short-circuit the line.
func Plan(directives []Directive, preset envfile.Preset) []Step {
	steps := make([]Step, 0, len(directives))
	for i, d := range directives {
		step := Step{Line: i + 1, Kind: d.Kind.String(), Key: d.Key, Arg: d.Arg}
		if d.Kind.UsesPreset() {
			_, step.Preset = preset.Lookup(d.Key)
		}
		steps = append(steps, step)
	}
	return steps
}

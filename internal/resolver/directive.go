package resolver

import (
	"strings"

	"github.com/gorewood/setenv/internal/envfile"
)

// Kind selects how a template line is resolved.
type Kind int

// Template line kinds, by right-hand side shape.
const (
	Passthrough   Kind = iota // no "=": copied through trimmed
	Prompt                    // "KEY =": preset or user input
	PromptCommand             // "KEY = ?cmd": preset or command output, then user input
	Command                   // "KEY = !cmd": preset or command output
	Default                   // "KEY = *default": preset or default, then optional user input
	Literal                   // "KEY = value": value
)

var kindNames = [...]string{
	Passthrough:   "passthrough",
	Prompt:        "prompt",
	PromptCommand: "prompt-command",
	Command:       "command",
	Default:       "default",
	Literal:       "literal",
}

// String returns the kind's name as shown by "setenv plan".
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// UsesPreset reports whether a preset value takes part in resolving k.
func (k Kind) UsesPreset() bool {
	switch k {
	case Prompt, PromptCommand, Command, Default:
		return true
	default:
		return false
	}
}

// Prompts reports whether resolving k asks the user.
func (k Kind) Prompts() bool {
	switch k {
	case Prompt, PromptCommand, Default:
		return true
	default:
		return false
	}
}

// Directive is a classified template line.
type Directive struct {
	Raw  string // the line as read, comment included
	Kind Kind
	Key  string
	// Arg is the command for PromptCommand and Command, the unquoted
	// default for Default and the unquoted value for Literal.
	Arg string
}

// Parse classifies a template line. The comment suffix is ignored for
// classification only; Raw keeps the original text.
//
// Errors are the envfile split reasons (envfile.ErrEmptyKey and, in strict
// mode, envfile.ErrExtraSeparator).
func Parse(line string, strict bool) (Directive, error) {
	d := Directive{Raw: line}

	text := strings.TrimSpace(envfile.StripComment(line))
	if !strings.Contains(text, "=") {
		d.Kind = Passthrough
		return d, nil
	}

	key, rhs, err := envfile.Split(text, strict)
	if err != nil {
		return Directive{}, err
	}
	d.Key = key

	switch {
	case rhs == "":
		d.Kind = Prompt
	case rhs[0] == '?':
		d.Kind = PromptCommand
		d.Arg = strings.TrimSpace(rhs[1:])
	case rhs[0] == '!':
		d.Kind = Command
		d.Arg = strings.TrimSpace(rhs[1:])
	case rhs[0] == '*':
		d.Kind = Default
		d.Arg = envfile.Unquote(strings.TrimSpace(rhs[1:]))
	default:
		d.Kind = Literal
		d.Arg = envfile.Unquote(rhs)
	}
	return d, nil
}

// ParseTemplate classifies every line of a template. name identifies the
// template in errors, which are *envfile.FormatError.
func ParseTemplate(lines []string, name string, strict bool) ([]Directive, error) {
	directives := make([]Directive, 0, len(lines))
	for i, line := range lines {
		d, err := Parse(line, strict)
		if err != nil {
			return nil, &envfile.FormatError{Path: name, Line: i + 1, Text: line, Err: err}
		}
		directives = append(directives, d)
	}
	return directives, nil
}

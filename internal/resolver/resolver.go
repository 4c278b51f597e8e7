// Package resolver turns template lines into .env lines.
//
// Each template line is classified into a Directive and resolved from one
// of several sources in a fixed precedence: the preset (values from the
// existing .env), a shell command, a default, or the user. Commands and
// prompts are capabilities handed to the Resolver, so resolution itself
// holds no global state and can be tested without a terminal or a shell.
package resolver

import (
	"context"
	"io"
	"strings"

	"charm.land/log/v2"

	"github.com/gorewood/setenv/internal/envfile"
)

// Prompter asks the user for a value, offering def as the default.
type Prompter interface {
	Prompt(ctx context.Context, key, def string, required bool) (string, error)
}

// CommandFunc runs a template command and returns its trimmed output.
type CommandFunc func(ctx context.Context, command string) string

// Resolver resolves template lines. Prompter and Run must be set.
type Resolver struct {
	Preset   envfile.Preset
	Prompter Prompter
	Run      CommandFunc
	Strict   bool

	// Echo, if set, receives each pass-through line (comments, blanks) as
	// it is reached, so it can be shown as context between prompts.
	Echo func(line string)

	Logger *log.Logger

	keys int
}

// Resolve classifies and resolves a single template line. Pass-through
// lines are handed to Echo.
//
// A context canceled while a command or prompt was running fails the line,
// since the command's output may be truncated.
func (r *Resolver) Resolve(ctx context.Context, line string) (string, error) {
	d, err := Parse(line, r.Strict)
	if err != nil {
		return "", &envfile.FormatError{Text: line, Err: err}
	}

	if d.Kind == Passthrough {
		text := strings.TrimSpace(line)
		if r.Echo != nil {
			r.Echo(text)
		}
		return text, nil
	}

	value, err := r.value(ctx, d)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.keys++
	return d.Key + "=" + envfile.Quote(value), nil
}

// Generate resolves a whole template in order. The template is classified
// up front, so a malformed line fails before anything is asked or run.
// Any error, cancellation included, discards all resolved lines.
func (r *Resolver) Generate(ctx context.Context, lines []string, name string) ([]string, error) {
	if _, err := ParseTemplate(lines, name, r.Strict); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		resolved, err := r.Resolve(ctx, line)
		if err != nil {
			return nil, err
		}
		out = append(out, resolved)
	}
	return out, nil
}

// Keys returns how many key lines the Resolver has produced.
func (r *Resolver) Keys() int {
	return r.keys
}

// value applies the precedence for d's kind: a preset value short-circuits
// the command or default, and prompting kinds offer the result as default.
func (r *Resolver) value(ctx context.Context, d Directive) (string, error) {
	if d.Kind == Literal {
		r.logger().Debug("resolved", "key", d.Key, "source", "literal")
		return d.Arg, nil
	}

	value, ok := r.Preset.Lookup(d.Key)
	source := "preset"
	if !ok {
		switch d.Kind {
		case PromptCommand, Command:
			value = r.Run(ctx, d.Arg)
			source = "command"
		case Default:
			value = d.Arg
			source = "default"
		default:
			source = "none"
		}
	}
	r.logger().Debug("resolved", "key", d.Key, "kind", d.Kind, "source", source)

	if !d.Kind.Prompts() {
		return value, nil
	}
	return r.Prompter.Prompt(ctx, d.Key, value, d.Kind != Default)
}

func (r *Resolver) logger() *log.Logger {
	if r.Logger == nil {
		r.Logger = log.New(io.Discard)
	}
	return r.Logger
}

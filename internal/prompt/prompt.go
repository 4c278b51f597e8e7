// Package prompt asks the user for values, one line at a time.
//
// A Prompter owns the retry rules (required values, defaults, skipping);
// the terminal interaction is delegated to a LineReader so tests can feed
// scripted answers.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ErrCanceled is returned when the user ends input (Ctrl-D, Ctrl-C or a
// closed stdin). Callers abort the run without writing anything.
var ErrCanceled = errors.New("prompt canceled")

// ErrMissingValue is returned in non-interactive mode when a required value
// has neither a preset nor a default.
var ErrMissingValue = errors.New("no value and no default")

// LineReader shows prompt and reads one line of input without its newline.
// It returns ErrCanceled when input ends or ctx is canceled.
type LineReader interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
}

// Prompter asks for values through a LineReader.
type Prompter struct {
	reader   LineReader
	keyStyle lipgloss.Style
	reads    int
}

// New creates a Prompter. keyStyle renders the key in the prompt label.
func New(reader LineReader, keyStyle lipgloss.Style) *Prompter {
	return &Prompter{reader: reader, keyStyle: keyStyle}
}

// Prompt asks for key, showing def as the default.
//
// A non-empty answer is returned as is (trimmed). An empty answer returns
// def when def is non-empty or the value is not required; otherwise the
// question is asked again.
func (p *Prompter) Prompt(ctx context.Context, key, def string, required bool) (string, error) {
	label := p.label(key, def, required)
	for {
		p.reads++
		answer, err := p.reader.ReadLine(ctx, label)
		if err != nil {
			return "", err
		}
		if answer = strings.TrimSpace(answer); answer != "" {
			return answer, nil
		}
		if def != "" || !required {
			return def, nil
		}
	}
}

// Reads returns how many lines the Prompter has read.
func (p *Prompter) Reads() int {
	return p.reads
}

// label renders "KEY [default] ", with a skip hint for optional values
// that have no default.
func (p *Prompter) label(key, def string, required bool) string {
	tip := ""
	if def == "" && !required {
		tip = "(Enter - Skip)"
	}
	return fmt.Sprintf("%s [%s]%s ", p.keyStyle.Render(key), def, tip)
}

// AcceptDefaults answers every prompt with its default without reading
// input. It backs the --yes flag.
type AcceptDefaults struct{}

// Prompt returns def, or ErrMissingValue when a required value is empty.
func (AcceptDefaults) Prompt(_ context.Context, key, def string, required bool) (string, error) {
	if def == "" && required {
		return "", fmt.Errorf("%s: %w", key, ErrMissingValue)
	}
	return def, nil
}

// Package envfile reads and writes .env files.
//
// Load parses a previously generated .env into a Preset: the values setenv
// reuses instead of prompting or running commands again. Write replaces a
// .env file atomically.
package envfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Preset maps keys to unquoted values loaded from an existing .env file.
type Preset map[string]string

// Lookup returns the preset value for key. A key present with an empty value
// still reports ok.
func (p Preset) Lookup(key string) (string, bool) {
	val, ok := p[key]
	return val, ok
}

// Load reads the .env file at path into a Preset.
// Returns an empty Preset if the file doesn't exist. Malformed lines fail
// with a *FormatError; other read failures are returned wrapped.
func Load(path string, strict bool) (Preset, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Preset{}, nil
		}
		return nil, fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // best-effort close on read-only file

	return Parse(file, path, strict)
}

// Parse reads KEY=VALUE lines from r. name identifies the source in errors.
//
// A "#" starts a comment that runs to the end of the line. Blank lines are
// skipped. The value has surrounding whitespace and one surrounding pair of
// single quotes removed. Later lines override earlier ones.
func Parse(r io.Reader, name string, strict bool) (Preset, error) {
	preset := Preset{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(StripComment(scanner.Text()))
		if line == "" {
			continue
		}

		key, val, err := Split(line, strict)
		if err != nil {
			return nil, &FormatError{Path: name, Line: lineNo, Text: scanner.Text(), Err: err}
		}
		preset[key] = Unquote(val)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", name, err)
	}
	return preset, nil
}

// maxLineSize bounds a single .env or template line.
const maxLineSize = 1024 * 1024

// StripComment removes everything from the first "#" to the end of line.
// Quoting is not considered: a "#" inside a value starts a comment too.
func StripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

// Split separates line at its first "=" and trims both halves.
// In strict mode a line must contain exactly one "=".
func Split(line string, strict bool) (key, value string, err error) {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return "", "", ErrNoSeparator
	}
	if strict && strings.Contains(value, "=") {
		return "", "", ErrExtraSeparator
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", ErrEmptyKey
	}
	return key, strings.TrimSpace(value), nil
}

// Unquote removes one pair of single quotes wrapping s, if present.
func Unquote(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return s[1 : len(s)-1]
	}
	return s
}

// Quote wraps value in single quotes when it holds more than one
// whitespace-separated word. Embedded quotes are not escaped.
func Quote(value string) string {
	if len(strings.Fields(value)) > 1 {
		return "'" + value + "'"
	}
	return value
}

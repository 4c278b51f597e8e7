package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// PlainReader reads lines from a stream such as a pipe.
type PlainReader struct {
	in      *bufio.Reader
	out     io.Writer
	pending chan readResult
}

type readResult struct {
	line string
	err  error
}

// NewPlainReader reads answers from in and writes prompts to out.
func NewPlainReader(in io.Reader, out io.Writer) *PlainReader {
	return &PlainReader{in: bufio.NewReader(in), out: out}
}

// ReadLine implements LineReader. A final line without a trailing newline
// is still returned; end of input after that is ErrCanceled.
func (r *PlainReader) ReadLine(ctx context.Context, prompt string) (string, error) {
	if _, err := io.WriteString(r.out, prompt); err != nil {
		return "", fmt.Errorf("writing prompt: %w", err)
	}

	// The blocking read runs in a goroutine so cancellation (SIGINT) can
	// abandon it. An abandoned read is picked up by the next call.
	if r.pending == nil {
		ch := make(chan readResult, 1)
		go func() {
			line, err := r.in.ReadString('\n')
			ch <- readResult{line: line, err: err}
		}()
		r.pending = ch
	}

	select {
	case <-ctx.Done():
		_, _ = fmt.Fprintln(r.out)
		return "", ErrCanceled
	case res := <-r.pending:
		r.pending = nil
		if res.err != nil {
			if !errors.Is(res.err, io.EOF) {
				return "", fmt.Errorf("reading input: %w", res.err)
			}
			if res.line == "" {
				_, _ = fmt.Fprintln(r.out)
				return "", ErrCanceled
			}
		}
		return strings.TrimRight(res.line, "\r\n"), nil
	}
}

// TerminalReader reads lines from an interactive terminal with line
// editing. The terminal is in raw mode only while a line is being read.
type TerminalReader struct {
	fd  int
	in  io.Reader
	out io.Writer
}

// NewTerminalReader reads from the terminal in and echoes to out.
func NewTerminalReader(in *os.File, out io.Writer) *TerminalReader {
	return &TerminalReader{fd: int(in.Fd()), in: in, out: out} //nolint:gosec // fd fits in int
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}

// ReadLine implements LineReader. Ctrl-C and Ctrl-D return ErrCanceled.
func (r *TerminalReader) ReadLine(ctx context.Context, prompt string) (string, error) {
	if ctx.Err() != nil {
		return "", ErrCanceled
	}

	state, err := term.MakeRaw(r.fd)
	if err != nil {
		return "", fmt.Errorf("enabling raw mode: %w", err)
	}
	defer term.Restore(r.fd, state) //nolint:errcheck // best-effort restore

	rw := struct {
		io.Reader
		io.Writer
	}{r.in, r.out}
	t := term.NewTerminal(rw, prompt)

	line, err := t.ReadLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			_, _ = io.WriteString(r.out, "\r\n")
			return "", ErrCanceled
		}
		return "", fmt.Errorf("reading input: %w", err)
	}
	return line, nil
}

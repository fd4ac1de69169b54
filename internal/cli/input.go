package cli

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

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// LineReader reads lines from an input stream with context awareness,
// so a Ctrl+C during a prompt does not leave the process hanging on a
// blocked read.
type LineReader struct {
	reader *bufio.Reader
}

// NewLineReader creates a reader over the given stream.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{reader: bufio.NewReader(r)}
}

// ReadLine reads one trimmed line, respecting context cancellation. The
// underlying read keeps running until it completes, but the caller
// returns immediately on cancel.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		value, err := r.reader.ReadString('\n')
		resultCh <- result{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-resultCh:
		if res.err != nil && res.err != io.EOF {
			return "", res.err
		}
		return strings.TrimSpace(res.value), nil
	}
}

// Prompt prints a styled prompt and reads one line.
func (r *LineReader) Prompt(ctx context.Context, label string) (string, error) {
	fmt.Print(FormatPrompt(label))
	return r.ReadLine(ctx)
}

// ReadPassword reads a line from the terminal with echo disabled. Falls
// back to a plain read when stdin is not a terminal, e.g. in a pipe.
func ReadPassword(ctx context.Context, label string) (string, error) {
	fmt.Print(FormatPrompt(label))

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return NewLineReader(os.Stdin).ReadLine(ctx)
	}

	secret, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(string(secret)), nil
}

// Package prompt reads single-line answers from an interactive user.
//
// The Reader writes a question without a trailing newline, flushes it, and
// blocks until one line of input arrives. End of input is reported as
// ErrInputClosed so callers can treat a closed terminal (Ctrl-D, a pipe that
// ran dry) as "the user left" instead of as a failure.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInputClosed is returned by ReadLine when the input stream has ended
// before any text of a new line was read.
var ErrInputClosed = errors.New("input closed")

// flusher is implemented by buffered writers such as *bufio.Writer.
type flusher interface {
	Flush() error
}

// syncer is implemented by *os.File. Terminals ignore Sync errors, so they
// are not reported.
type syncer interface {
	Sync() error
}

// Reader prompts on out and reads answers from in.
// A Reader is not safe for concurrent use.
type Reader struct {
	in  *bufio.Reader
	out io.Writer
}

// NewReader creates a Reader. The input is buffered internally, so the same
// io.Reader must not be read from elsewhere while the Reader is in use.
func NewReader(in io.Reader, out io.Writer) *Reader {
	return &Reader{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// ReadLine writes question to the output, flushes, then reads one line.
// The returned line has leading and trailing whitespace (including the line
// terminator, "\n" or "\r\n") removed; a blank line yields "".
//
// A final line without a terminator is still returned normally. Only when
// the stream ends with nothing left to read is ErrInputClosed returned.
// Any other read or write failure is returned wrapped.
func (r *Reader) ReadLine(question string) (string, error) {
	if _, err := io.WriteString(r.out, question); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	if err := r.flush(); err != nil {
		return "", fmt.Errorf("failed to flush prompt: %w", err)
	}

	line, err := r.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				return "", ErrInputClosed
			}
			return strings.TrimSpace(line), nil
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return strings.TrimSpace(line), nil
}

func (r *Reader) flush() error {
	switch w := r.out.(type) {
	case flusher:
		return w.Flush()
	case syncer:
		// Best effort: stdout is unbuffered in Go, and Sync on a TTY returns
		// EINVAL on some platforms.
		_ = w.Sync()
	}
	return nil
}

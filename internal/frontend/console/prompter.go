package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

type readResult struct {
	line string
	err  error
}

// Prompter reads one line of input per prompt. It implements session.Input.
// A Prompter is used by a single goroutine.
type Prompter struct {
	r *bufio.Reader
	w io.Writer
	// pending carries the line of a read still in flight from an Ask that
	// returned early on cancellation.
	pending chan readResult
}

// NewPrompter creates a Prompter reading from r and writing prompts to w.
//
// Precondition: r and w must be non-nil.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{r: bufio.NewReader(r), w: w}
}

// Ask writes prompt and blocks until a full line is read or ctx is done. A
// final line without a trailing newline is still returned. A line that
// arrives after ctx was cancelled is kept for the next Ask.
//
// Postcondition: Returns the line without its line ending, or io.EOF when
// input is exhausted, or ctx.Err() once ctx is done.
func (p *Prompter) Ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := io.WriteString(p.w, prompt); err != nil {
		return "", fmt.Errorf("writing prompt: %w", err)
	}
	if p.pending == nil {
		ch := make(chan readResult, 1)
		p.pending = ch
		go func() {
			line, err := p.readLine()
			ch <- readResult{line: line, err: err}
		}()
	}
	select {
	case res := <-p.pending:
		p.pending = nil
		return res.line, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.r.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

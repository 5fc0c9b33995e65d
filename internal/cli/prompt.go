package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// errQuit ends the interactive session on user request.
var errQuit = errors.New("quit")

// prompt reads answers line by line without blocking cancellation.
type prompt struct {
	out   io.Writer
	lines chan string
	err   error
}

func newPrompt(in io.Reader, out io.Writer) *prompt {
	p := &prompt{out: out, lines: make(chan string)}
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			p.lines <- strings.TrimSpace(scanner.Text())
		}
		p.err = scanner.Err()
		if p.err == nil {
			p.err = io.EOF
		}
		close(p.lines)
	}()
	return p
}

// Ask prints label and waits for one line.
func (p *prompt) Ask(ctx context.Context, label string) (string, error) {
	fmt.Fprintf(p.out, "%s> ", label)
	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return "", ctx.Err()
	case line, ok := <-p.lines:
		if !ok {
			fmt.Fprintln(p.out)
			return "", p.err
		}
		return line, nil
	}
}

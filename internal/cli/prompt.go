package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"

	"roomchat/internal/pkg/errs"
)

type inputLine struct {
	text string
	err  error
}

// Prompter reads answers line by line and writes colored prompts.
// Lines are read on a separate goroutine so that a pending prompt can be
// abandoned when the context is canceled.
type Prompter struct {
	out   io.Writer
	lines chan inputLine

	// err is sticky once the reader is exhausted.
	err error
}

// NewPrompter starts reading in and returns a Prompter writing to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{
		out:   out,
		lines: make(chan inputLine, 1),
	}

	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			p.lines <- inputLine{text: scanner.Text()}
		}

		err := scanner.Err()
		if err == nil {
			err = io.EOF
		}
		p.lines <- inputLine{err: err}
	}()

	return p
}

// Ask prints the question and returns the trimmed answer.
// It returns an ErrInputClosed error once the input is exhausted and ctx.Err() when
// ctx is canceled.
func (p *Prompter) Ask(ctx context.Context, question string) (string, error) {
	if p.err != nil {
		return "", p.err
	}

	fmt.Fprint(p.out, color.Cyan.Sprint(question))

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line := <-p.lines:
		if line.err != nil {
			p.err = line.err
			if errors.Is(line.err, io.EOF) {
				p.err = errs.NewError(errs.ErrInputClosed)
			}
			fmt.Fprintln(p.out)
			return "", p.err
		}
		return strings.TrimSpace(line.text), nil
	}
}

// AskNonEmpty repeats the question until the answer is not blank.
func (p *Prompter) AskNonEmpty(ctx context.Context, question string) (string, error) {
	for {
		answer, err := p.Ask(ctx, question)
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}
	}
}

// Confirm asks a yes/no question until it gets y or n.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	for {
		answer, err := p.Ask(ctx, question+" (y/n): ")
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}

		p.Warn("Please answer y or n.")
	}
}

// Info prints a neutral line.
func (p *Prompter) Info(format string, args ...any) {
	fmt.Fprintln(p.out, fmt.Sprintf(format, args...))
}

// Success prints a green line.
func (p *Prompter) Success(format string, args ...any) {
	fmt.Fprintln(p.out, color.Green.Sprintf(format, args...))
}

// Warn prints a yellow line.
func (p *Prompter) Warn(format string, args ...any) {
	fmt.Fprintln(p.out, color.Yellow.Sprintf(format, args...))
}

// Failure prints a red line.
func (p *Prompter) Failure(format string, args ...any) {
	fmt.Fprintln(p.out, color.Red.Sprintf(format, args...))
}

// Writer exposes the output for table rendering.
func (p *Prompter) Writer() io.Writer {
	return p.out
}

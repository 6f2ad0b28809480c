package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// prompter asks for missing command arguments on an interactive input.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Ask writes the question and returns the trimmed next line of input.
func (p *prompter) Ask(question string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", question)

	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("(prompt) failed to read answer: %w", err)
		}

		return "", fmt.Errorf("(prompt) %w: %s", ErrNoInput, question)
	}

	answer := strings.TrimSpace(p.in.Text())
	if answer == "" {
		return "", fmt.Errorf("(prompt) %w: %s", ErrNoInput, question)
	}

	return answer, nil
}

package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relpub/pkg/domain/interfaces"
	"golang.org/x/term"
)

// Prompter reads operator answers line by line
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

var _ interfaces.Prompter = (*Prompter)(nil)

// New creates a Prompter reading from in and printing questions to out
func New(in io.Reader, out io.Writer) *Prompter {
	interactive := false
	if f, ok := in.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}

	return &Prompter{
		in:          bufio.NewReader(in),
		out:         out,
		interactive: interactive,
	}
}

// Confirm asks a question answered with y/n. Anything other than n or no
// proceeds, but closed input without an answer declines.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	fmt.Fprintf(p.out, "%s (Y/n) ", question)

	line, err := p.readLine()
	if err != nil && err != io.EOF {
		return false, goerr.Wrap(err, "failed to read confirmation")
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	if err == io.EOF && answer == "" {
		fmt.Fprintln(p.out)
		return false, nil
	}

	switch answer {
	case "n", "no":
		return false, nil
	}
	return true, nil
}

// ReadText reads lines until an empty line or end of input
func (p *Prompter) ReadText(ctx context.Context, question string) (string, error) {
	fmt.Fprintln(p.out, question)
	if p.interactive {
		fmt.Fprintln(p.out, "(finish with an empty line)")
	}

	var lines []string
	for {
		line, err := p.readLine()
		if err != nil && err != io.EOF {
			return "", goerr.Wrap(err, "failed to read text")
		}

		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line)

		if err == io.EOF {
			break
		}
	}

	return strings.Join(lines, "\n"), nil
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	return strings.TrimRight(line, "\r\n"), err
}

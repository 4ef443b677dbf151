// Package prompt reads passwords from the user.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Terminal asks for passwords on In, writing the prompt to Out.
//
// When In is a terminal echo is disabled while typing. Otherwise a single
// line is read, which lets passwords be piped in.
type Terminal struct {
	In  *os.File
	Out io.Writer

	lines *bufio.Reader
}

// NewTerminal returns a prompt on stdin that writes to stderr.
func NewTerminal() *Terminal {
	return &Terminal{In: os.Stdin, Out: os.Stderr}
}

func (t *Terminal) Ask(filename string) (string, error) {
	fmt.Fprintf(t.Out, "Enter password for '%s': ", filename)

	fd := int(t.In.Fd())
	if term.IsTerminal(fd) {
		pw, err := term.ReadPassword(fd)
		fmt.Fprintln(t.Out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(pw), nil
	}
	return t.readLine()
}

// readLine reads one line. The reader is kept between calls so input
// buffered past the first newline is not lost.
func (t *Terminal) readLine() (string, error) {
	if t.lines == nil {
		t.lines = bufio.NewReader(t.In)
	}
	line, err := t.lines.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read password: %w", err)
	}
	fmt.Fprintln(t.Out)
	return strings.TrimRight(line, "\r\n"), nil
}

package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrAborted is returned when the input ends before an answer was given.
var ErrAborted = errors.New("input aborted")

// readPassword and isTerminal are test seams for the x/term calls.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// Prompter asks the user for input.
type Prompter interface {
	Line(prompt string) (string, error)
	Password(prompt string) (string, error)
	Multiline(prompt string) (string, error)
	Confirm(prompt string, def bool) (bool, error)
}

// Terminal is a Prompter over a shared line reader. Passwords are read
// without echo when stdin is a terminal.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

// NewTerminal prompts on out and reads from in. The REPL must read its
// commands from the same reader so buffered input is not lost. fd is the
// descriptor behind in, or -1; see InputFD.
func NewTerminal(in *bufio.Reader, out io.Writer, fd int) *Terminal {
	return &Terminal{in: in, out: out, fd: fd}
}

// InputFD returns the descriptor of r when r is an open file, else -1.
func InputFD(r io.Reader) int {
	if f, ok := r.(*os.File); ok && f != nil {
		return int(f.Fd())
	}
	return -1
}

// Line prints prompt and reads one trimmed line. A final line without a
// newline is returned as is.
//
//	Prompt text
//	> _
func (t *Terminal) Line(prompt string) (string, error) {
	if _, err := fmt.Fprint(t.out, prompt+"\n> "); err != nil {
		return "", err
	}
	return t.readLine()
}

// Password reads a secret. Input is hidden on a terminal and read as a
// plain line otherwise.
func (t *Terminal) Password(prompt string) (string, error) {
	if prompt == "" {
		prompt = "Enter password"
	}
	if _, err := fmt.Fprint(t.out, prompt+": "); err != nil {
		return "", err
	}
	if !isTerminal(t.fd) {
		return t.readLine()
	}
	pw, err := readPassword(t.fd)
	fmt.Fprintln(t.out)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// Multiline reads lines until an empty one and joins them with '\n'.
func (t *Terminal) Multiline(prompt string) (string, error) {
	if _, err := fmt.Fprint(t.out, prompt+"\n(press Enter on an empty line to finish)\n"); err != nil {
		return "", err
	}
	var lines []string
	for {
		line, err := t.in.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if err != nil && len(lines) == 0 {
				return "", ErrAborted
			}
			break
		}
		lines = append(lines, line)
		if err != nil {
			break
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// Confirm asks a yes/no question. An empty answer yields def.
func (t *Terminal) Confirm(prompt string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	ans, err := t.Line(prompt + " " + hint)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(ans) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if len(line) > 0 {
				return strings.TrimSpace(line), nil
			}
			return "", ErrAborted
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

package mansion

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// ReadPassword prompts for a secret without echoing it. When stdin
// isn't a terminal, it reads one line instead.
func ReadPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	if !IsTerminal() {
		return readLine()
	}

	buf, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", errors.Wrap(err, "reading password")
	}
	return string(buf), nil
}

// Prompt asks for one line of input.
func Prompt(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	return readLine()
}

var stdinReader = bufio.NewReader(os.Stdin)

func readLine() (string, error) {
	line, err := stdinReader.ReadString('\n')
	if err != nil && line == "" {
		return "", errors.Wrap(err, "reading from stdin")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

package command

import (
	"bufio"
	"os"
	"strings"

	"golang.org/x/term"
)

// promptSecret reads one line from stdin. On a terminal the prompt is shown
// and the input is masked; piped input is read as-is.
func promptSecret(text string) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return nil, err
		}
		return []byte(strings.TrimRight(line, "\r\n")), nil
	}

	if _, err := os.Stderr.WriteString(text); err != nil {
		return nil, err
	}
	raw, err := term.ReadPassword(fd)
	_, _ = os.Stderr.WriteString("\n")
	return raw, err
}

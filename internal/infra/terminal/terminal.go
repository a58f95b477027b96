// Package terminal reads passphrases and confirmations from the user.
// The passphrase is requested once per process invocation and is never
// persisted or logged.
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/runoshun/ttt/internal/domain"
	"golang.org/x/term"
)

// Prompter reads interactive input. When stdin is not a terminal
// (tests, pipes), the passphrase falls back to a plain line read.
// One buffered reader is shared by all prompts so piped input is not
// lost between reads.
type Prompter struct {
	in     *os.File
	reader *bufio.Reader
	out    io.Writer
}

// NewPrompter creates a Prompter on the given streams.
func NewPrompter(in *os.File, out io.Writer) *Prompter {
	return &Prompter{in: in, reader: bufio.NewReader(in), out: out}
}

// ReadPassphrase prompts for the passphrase without echoing. With
// confirm set, it prompts twice and requires both entries to match,
// used when a new data file is about to be created or rekeyed.
func (p *Prompter) ReadPassphrase(confirm bool) (string, error) {
	pass, err := p.readSecret("Passphrase: ")
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(pass) == "" {
		return "", domain.ErrEmptyPassphrase
	}

	if confirm {
		again, err := p.readSecret("Confirm passphrase: ")
		if err != nil {
			return "", err
		}
		if pass != again {
			return "", fmt.Errorf("passphrases do not match")
		}
	}
	return pass, nil
}

// YesNo asks a [y/N] question and returns true only on an explicit yes.
func (p *Prompter) YesNo(message string) bool {
	fmt.Fprint(p.out, message)
	line, err := p.readLine()
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// Line prompts for one trimmed line of input.
func (p *Prompter) Line(message string) (string, error) {
	fmt.Fprint(p.out, message)
	line, err := p.readLine()
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Required re-prompts until a non-empty value is entered.
func (p *Prompter) Required(message, label string) (string, error) {
	value, err := p.Line(message)
	if err != nil {
		return "", err
	}
	if value == "" {
		return "", fmt.Errorf("%s cannot be empty", strings.ToLower(label))
	}
	return value, nil
}

func (p *Prompter) readSecret(prompt string) (string, error) {
	fd := int(p.in.Fd())
	if !term.IsTerminal(fd) {
		fmt.Fprint(p.out, prompt)
		return p.readLine()
	}

	fmt.Fprint(p.out, prompt)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("read passphrase: %w", err)
	}
	return string(secret), nil
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

package prompter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var (
	// Input is read by the prompts
	Input io.Reader = os.Stdin
	// Prompts are written here
	Output io.Writer = os.Stdout
)

// StdinIsTerminal reports whether stdin is attached to a terminal
func StdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Prompts share one buffered reader so answers typed ahead are not lost
// between prompts; it is rebuilt whenever Input is swapped.
var (
	reader       *bufio.Reader
	readerSource io.Reader
)

func readLine() (string, error) {
	if reader == nil || readerSource != Input {
		reader = bufio.NewReader(Input)
		readerSource = Input
	}
	input, err := reader.ReadString('\n')
	if err != nil && !(err == io.EOF && input != "") {
		return "", err
	}
	return input, nil
}

// PromptString prompts user for a string input
func PromptString(label string) (string, error) {
	fmt.Fprint(Output, label)
	input, err := readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// PromptStringDefault prompts for a string and falls back to def on empty input
func PromptStringDefault(label, def string) (string, error) {
	if def != "" {
		label = fmt.Sprintf("%s [%s]: ", strings.TrimSuffix(strings.TrimSpace(label), ":"), def)
	}
	value, err := PromptString(label)
	if err != nil {
		return "", err
	}
	if value == "" {
		return def, nil
	}
	return value, nil
}

// PromptConfirm prompts user for yes/no confirmation
func PromptConfirm(label string) (bool, error) {
	fmt.Fprint(Output, label+" (y/n) ")
	input, err := readLine()
	if err != nil {
		return false, err
	}

	response := strings.TrimSpace(strings.ToLower(input))
	return response == "y" || response == "yes", nil
}

package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// NoChoice is returned by Prompter.Select when the answer matches no item.
const NoChoice = -1

// Prompter asks the user for input.
// Both methods return io.EOF when the user ends input.
type Prompter interface {
	// Select presents items and returns the index of the chosen one, or
	// NoChoice if the answer does not name an item.
	Select(label string, items []string) (int, error)

	// Input asks for a single line of text.
	Input(label string) (string, error)
}

// LinePrompter reads answers line by line from a reader. It works with
// pipes and redirected input.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter creates a LinePrompter reading from r and writing prompts to w.
func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(r), out: w}
}

// Select prints a numbered list and reads the chosen number.
func (p *LinePrompter) Select(label string, items []string) (int, error) {
	fmt.Fprintf(p.out, "\n%s:\n", label)
	nums := make([]string, len(items))
	for i, item := range items {
		fmt.Fprintf(p.out, "%d. %s\n", i+1, item)
		nums[i] = strconv.Itoa(i + 1)
	}

	answer, err := p.Input(fmt.Sprintf("Enter your choice (%s)", strings.Join(nums, "/")))
	if err != nil {
		return NoChoice, err
	}

	n, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil || n < 1 || n > len(items) {
		return NoChoice, nil
	}
	return n - 1, nil
}

// Input prints label and reads one line, without its line terminator.
func (p *LinePrompter) Input(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)

	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// PromptUIPrompter uses promptui for arrow-key selection on a terminal.
type PromptUIPrompter struct {
	stdin  io.ReadCloser
	stdout io.WriteCloser
}

// NewPromptUIPrompter creates a prompter bound to the process terminal.
func NewPromptUIPrompter() *PromptUIPrompter {
	return &PromptUIPrompter{stdin: os.Stdin, stdout: os.Stdout}
}

// Select runs a promptui selection list.
func (p *PromptUIPrompter) Select(label string, items []string) (int, error) {
	sel := &promptui.Select{
		Label:  label,
		Items:  items,
		Size:   len(items),
		Stdin:  p.stdin,
		Stdout: p.stdout,
	}
	idx, _, err := sel.Run()
	if err != nil {
		return NoChoice, promptErr(err)
	}
	return idx, nil
}

// Input runs a promptui text prompt. Empty answers are allowed; they are
// simply invalid candidates.
func (p *PromptUIPrompter) Input(label string) (string, error) {
	prompt := promptui.Prompt{
		Label:  label,
		Stdin:  p.stdin,
		Stdout: p.stdout,
	}
	s, err := prompt.Run()
	if err != nil {
		return "", promptErr(err)
	}
	return s, nil
}

// promptErr maps Ctrl-C and Ctrl-D to io.EOF so the session ends cleanly.
func promptErr(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
		return io.EOF
	}
	return err
}

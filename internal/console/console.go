// Package console reads line-oriented player input and draws the game screen.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

const clearScreen = "\033[H\033[2J"

// Console pairs a line reader with the screen it prompts on.
type Console struct {
	in    *bufio.Reader
	out   io.Writer
	clear bool
}

// New returns a Console reading from in and writing to out. The clear-screen
// sequence is only emitted when out is a terminal.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:    bufio.NewReader(in),
		out:   out,
		clear: IsTerminal(out),
	}
}

// IsTerminal reports whether w is a terminal file.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Clear redraws from an empty screen.
func (c *Console) Clear() {
	if c.clear {
		fmt.Fprint(c.out, clearScreen)
	}
}

func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) Printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

// ReadLine prints prompt and returns the next line, trimmed and lower-cased.
// io.EOF is returned once input runs out. Lines may be any length, and a
// final line without a newline still counts.
func (c *Console) ReadLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return "", fmt.Errorf("read input: %w", err)
		}
		if line == "" {
			return "", io.EOF
		}
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}

// ReadInt prompts until the player enters an integer.
func (c *Console) ReadInt(prompt string) (int, error) {
	for {
		line, err := c.ReadLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil {
			return n, nil
		}
		c.Println("Enter a number.")
	}
}

// Pause waits for the player to press Enter.
func (c *Console) Pause() error {
	_, err := c.ReadLine("(Enter) ")
	return err
}

package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

func newConsole(reader io.Reader, writer io.Writer) *Console {
	return &Console{
		reader:  bufio.NewReader(reader),
		writer:  writer,
		warning: color.New(color.FgRed, color.Bold),
		prompt:  color.New(color.FgYellow, color.Bold),
	}
}

func (c *Console) confirm(question string) (bool, error) {
	c.prompt.Fprintf(c.writer, "%s [y/N]: ", question)
	line, err := c.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func (c *Console) confirmExact(question, word string) (bool, error) {
	c.warning.Fprintln(c.writer, question)
	c.prompt.Fprintf(c.writer, "Type %s to continue: ", word)
	line, err := c.readLine()
	if err != nil {
		return false, err
	}
	return line == word, nil
}

// readLine returns the next line without its line terminator. End of input
// yields an empty line.
func (c *Console) readLine() (string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("error reading answer: %s", err)
	}
	if err == io.EOF {
		fmt.Fprintln(c.writer)
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

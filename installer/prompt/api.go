package prompt

import (
	"bufio"
	"io"

	"github.com/fatih/color"
)

// Prompter asks the operator questions. All methods block until a line of
// input (or end of input) is read.
type Prompter interface {
	// Confirm asks a yes/no question. Only "y" or "yes" (any case) confirm.
	Confirm(question string) (bool, error)
	// ConfirmExact asks the operator to type word. Only input exactly equal
	// to word confirms: case and surrounding whitespace matter.
	ConfirmExact(question, word string) (bool, error)
	// Show writes text for the operator to read.
	Show(text string) error
}

type Console struct {
	reader  *bufio.Reader
	writer  io.Writer
	warning *color.Color
	prompt  *color.Color
}

// NewConsole returns a Prompter which reads answers from reader and writes
// questions to writer.
func NewConsole(reader io.Reader, writer io.Writer) *Console {
	return newConsole(reader, writer)
}

func (c *Console) Confirm(question string) (bool, error) {
	return c.confirm(question)
}

func (c *Console) ConfirmExact(question, word string) (bool, error) {
	return c.confirmExact(question, word)
}

func (c *Console) Show(text string) error {
	_, err := io.WriteString(c.writer, text)
	return err
}

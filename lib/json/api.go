package json

import (
	"io"
)

// Read will read JSON data from reader and write the decoded data to value.
// Lines beginning with comments will be ignored (correcting a controlling
// and arrogant mistake of the original author of the JSON specification).
// Comment lines may begin with "#", "//" or "!" and continue until the next
// newline.
func Read(reader io.Reader, value interface{}) error {
	return read(reader, value, false)
}

// ReadFromFile will read JSON data from the specified file and write the
// decoded data to value. Comment lines are ignored, as with Read.
func ReadFromFile(filename string, value interface{}) error {
	return readFromFile(filename, value, false)
}

// ReadStrictFromFile is similar to ReadFromFile, except that unknown object
// keys are treated as an error. This catches misspelled configuration keys.
func ReadStrictFromFile(filename string, value interface{}) error {
	return readFromFile(filename, value, true)
}

// WriteWithIndent will write value as indented JSON to w, followed by a
// newline.
func WriteWithIndent(w io.Writer, indent string, value interface{}) error {
	return writeWithIndent(w, indent, value)
}

package json

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
)

var commentPrefixes = []string{"#", "//", "!"}

func isComment(line string) bool {
	line = strings.TrimSpace(line)
	for _, prefix := range commentPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func readFromFile(filename string, value interface{}, strict bool) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return read(file, value, strict)
}

func read(reader io.Reader, value interface{}, strict bool) error {
	buffer := &bytes.Buffer{}
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		if line := scanner.Text(); !isComment(line) {
			buffer.WriteString(line)
			buffer.WriteByte('\n')
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	decoder := json.NewDecoder(buffer)
	if strict {
		decoder.DisallowUnknownFields()
	}
	return decoder.Decode(value)
}

func writeWithIndent(w io.Writer, indent string, value interface{}) error {
	data, err := json.MarshalIndent(value, "", indent)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

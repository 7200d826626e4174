package fsutil

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"
)

// existingPerm returns the permissions of filename, or perm if it does not
// exist.
func existingPerm(filename string, perm os.FileMode) os.FileMode {
	if fi, err := os.Stat(filename); err == nil {
		return fi.Mode().Perm()
	}
	return perm
}

func readOptionalFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return data, nil
}

func splitLines(data []byte) []string {
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func joinLines(lines []string) []byte {
	if len(lines) < 1 {
		return nil
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}

func ensureLine(filename, line string, perm os.FileMode) (bool, error) {
	data, err := readOptionalFile(filename)
	if err != nil {
		return false, err
	}
	for _, existing := range strings.Split(string(data), "\n") {
		if existing == line {
			return false, nil
		}
	}
	buffer := bytes.NewBuffer(data)
	if len(data) > 0 && data[len(data)-1] != '\n' {
		buffer.WriteByte('\n')
	}
	buffer.WriteString(line)
	buffer.WriteByte('\n')
	return updateFile(buffer.Bytes(), filename, existingPerm(filename, perm))
}

func ensureSymlink(target, linkname string) (bool, error) {
	if existing, err := os.Readlink(linkname); err == nil {
		if existing == target {
			return false, nil
		}
	}
	if err := os.Remove(linkname); err != nil && !os.IsNotExist(err) {
		return false, err
	}
	if err := os.Symlink(target, linkname); err != nil {
		return false, err
	}
	return true, nil
}

func readLines(reader io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(reader)
	var lines []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) < 1 || line[0] == '#' {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func setVariable(filename, name, value string, perm os.FileMode) (
	bool, error) {
	data, err := readOptionalFile(filename)
	if err != nil {
		return false, err
	}
	assignment := name + "=" + value
	lines := splitLines(data)
	found := false
	for index, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), name+"=") {
			lines[index] = assignment
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, assignment)
	}
	return updateFile(joinLines(lines), filename,
		existingPerm(filename, perm))
}

func updateBlock(filename, marker, block string, perm os.FileMode) (
	bool, error) {
	data, err := readOptionalFile(filename)
	if err != nil {
		return false, err
	}
	beginLine := "# BEGIN " + marker
	endLine := "# END " + marker
	newBlock := []string{beginLine}
	newBlock = append(newBlock, splitLines([]byte(block))...)
	newBlock = append(newBlock, endLine)
	lines := splitLines(data)
	begin, end := -1, -1
	for index, line := range lines {
		if line == beginLine && begin < 0 {
			begin = index
		} else if line == endLine && begin >= 0 {
			end = index
			break
		}
	}
	var output []string
	if begin >= 0 && end > begin {
		output = append(output, lines[:begin]...)
		output = append(output, newBlock...)
		output = append(output, lines[end+1:]...)
	} else {
		output = append(lines, newBlock...)
	}
	return updateFile(joinLines(output), filename, perm)
}

func updateFile(buffer []byte, filename string, perm os.FileMode) (
	bool, error) {
	if fi, err := os.Stat(filename); err == nil && fi.Mode().IsRegular() {
		if data, err := os.ReadFile(filename); err != nil {
			return false, err
		} else if bytes.Equal(data, buffer) {
			if fi.Mode().Perm() == perm {
				return false, nil
			}
			return true, os.Chmod(filename, perm)
		}
	}
	err := copyToFile(filename, perm, bytes.NewReader(buffer), 0)
	if err != nil {
		return false, err
	}
	return true, nil
}

package mounts

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const (
	procMounts = "/proc/mounts"
)

func getMountTable(filename string) (*MountTable, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	scanner := bufio.NewScanner(file)
	table := &MountTable{}
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 1 {
			continue
		}
		if len(fields) < 4 {
			return nil, fmt.Errorf("only read %d values from %s",
				len(fields), scanner.Text())
		}
		table.Entries = append(table.Entries, &MountEntry{
			Device:     unescape(fields[0]),
			MountPoint: unescape(fields[1]),
			Type:       fields[2],
			Options:    fields[3],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return table, nil
}

// unescape decodes the octal escapes (\040 for space etc.) used by the kernel.
func unescape(field string) string {
	if !strings.Contains(field, `\`) {
		return field
	}
	var builder strings.Builder
	for index := 0; index < len(field); index++ {
		if field[index] == '\\' && index+4 <= len(field) {
			if value, err := strconv.ParseUint(field[index+1:index+4], 8,
				8); err == nil {
				builder.WriteByte(byte(value))
				index += 3
				continue
			}
		}
		builder.WriteByte(field[index])
	}
	return builder.String()
}

func (mt *MountTable) findEntry(path string) *MountEntry {
	var lastMatch *MountEntry
	var lastLength int
	for _, entry := range mt.Entries {
		length := len(entry.MountPoint)
		if isUnder(path, entry.MountPoint) && length >= lastLength {
			lastMatch = entry
			lastLength = length
		}
	}
	return lastMatch
}

func isUnder(path, mountPoint string) bool {
	if mountPoint == "/" || path == mountPoint {
		return true
	}
	return strings.HasPrefix(path, mountPoint+"/")
}

func (mt *MountTable) mountPointsUnder(path string) []string {
	path = filepath.Clean(path)
	type indexedMount struct {
		index      int
		mountPoint string
	}
	var matches []indexedMount
	for index, entry := range mt.Entries {
		if isUnder(entry.MountPoint, path) {
			matches = append(matches, indexedMount{index, entry.MountPoint})
		}
	}
	// Deeper mount points first; for the same mount point (stacked mounts)
	// the most recent mount first.
	sort.SliceStable(matches, func(left, right int) bool {
		leftDepth := strings.Count(matches[left].mountPoint, "/")
		rightDepth := strings.Count(matches[right].mountPoint, "/")
		if leftDepth != rightDepth {
			return leftDepth > rightDepth
		}
		return matches[left].index > matches[right].index
	})
	mountPoints := make([]string, 0, len(matches))
	for _, match := range matches {
		mountPoints = append(mountPoints, match.mountPoint)
	}
	return mountPoints
}

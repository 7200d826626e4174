package fsutil

import (
	"io"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

const (
	DirPerms = unix.S_IRWXU | unix.S_IRGRP | unix.S_IXGRP |
		unix.S_IROTH | unix.S_IXOTH
	ExecutableFilePerms = DirPerms
	PrivateDirPerms     = unix.S_IRWXU
	PrivateFilePerms    = unix.S_IRUSR | unix.S_IWUSR
	PublicFilePerms     = PrivateFilePerms | unix.S_IRGRP | unix.S_IROTH
)

// CopyFile will create a new file, copies data from the sourceFilename to a
// tmpfile and then atomically renames the tmpfile to destFilename, ensuring
// that the file never has incomplete data.
// If there are any errors, then destFilename is unchanged.
// If mode is 0 the mode of sourceFilename is used.
func CopyFile(destFilename, sourceFilename string, mode os.FileMode) error {
	return copyFile(destFilename, sourceFilename, mode)
}

// CopyToFile will create a new file, write length bytes from reader to a
// tmpfile and then atomically renames the tmpfile to destFilename, ensuring
// that the file never has incomplete data.
// If length is zero all remaining bytes from reader are written. If there are
// any errors, then destFilename is unchanged.
// CopyToFile is not safe to call concurrently for the same file.
func CopyToFile(destFilename string, perm os.FileMode, reader io.Reader,
	length uint64) error {
	return copyToFile(destFilename, perm, reader, length)
}

// CopyTree will copy a directory tree. Directories, regular files and
// symbolic links are supported. A missing sourceDir is not an error.
func CopyTree(destDir, sourceDir string) error {
	return copyTree(destDir, sourceDir)
}

// EnsureLine will append line to filename (creating it with perm if needed)
// unless a line exactly equal to it is already present. It returns true if
// the file was changed. Existing content is never rewritten.
func EnsureLine(filename, line string, perm os.FileMode) (bool, error) {
	return ensureLine(filename, line, perm)
}

// EnsureSymlink will make linkname a symbolic link to target, replacing any
// existing link which points elsewhere. It returns true if a link was made.
func EnsureSymlink(target, linkname string) (bool, error) {
	return ensureSymlink(target, linkname)
}

// ReadLines will read lines from a reader, skipping empty lines and lines
// beginning with '#'. Leading and trailing whitespace is removed.
func ReadLines(reader io.Reader) ([]string, error) {
	return readLines(reader)
}

// SetVariable will set a NAME=value assignment in a shell-style configuration
// file. The first uncommented assignment to name is replaced, otherwise the
// assignment is appended. It returns true if the file was changed.
func SetVariable(filename, name, value string, perm os.FileMode) (
	bool, error) {
	return setVariable(filename, name, value, perm)
}

// UpdateBlock will ensure that filename contains block between a pair of
// marker comment lines, replacing a previous block with the same marker. It
// returns true if the file was changed.
func UpdateBlock(filename, marker, block string, perm os.FileMode) (
	bool, error) {
	return updateBlock(filename, marker, block, perm)
}

// UpdateFile will atomically write buffer to filename if the content differs
// and will set the permissions to perm. It returns true if the file content
// or permissions were changed.
func UpdateFile(buffer []byte, filename string, perm os.FileMode) (
	bool, error) {
	return updateFile(buffer, filename, perm)
}

// WaitForBlockAvailable will wait up to timeout for pathname to become a
// block (or character) device. It returns the number of iterations and opens
// attempted.
func WaitForBlockAvailable(pathname string,
	timeout time.Duration) (uint, uint, error) {
	return waitForBlockAvailable(pathname, timeout)
}

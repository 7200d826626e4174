package filelogger

import (
	"bufio"
	"os"
	"time"

	"github.com/Cloud-Foundations/metal-installer/lib/log/debuglogger"
)

type Logger struct {
	*debuglogger.Logger
	file     *os.File
	filename string
	writer   *bufio.Writer
}

type Options struct {
	AlsoLogToStderr bool
	DebugLevel      int16     // Supported range: -1 to 255.
	StartTime       time.Time // If set, prefix lines with seconds since.
}

// New will create a *Logger writing to the specified filename (creating the
// parent directory if needed) with the specified options.
func New(filename string, options Options) (*Logger, error) {
	return newLogger(filename, options)
}

func (l *Logger) Close() error {
	return l.close()
}

// Filename returns the name of the file being logged to.
func (l *Logger) Filename() string {
	return l.filename
}

func (l *Logger) Flush() error {
	return l.writer.Flush()
}

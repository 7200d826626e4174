package filelogger

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/Cloud-Foundations/metal-installer/lib/fsutil"
	"github.com/Cloud-Foundations/metal-installer/lib/log/debuglogger"
)

type timestampWriter struct {
	startTime time.Time
	writer    io.Writer
}

func newLogger(filename string, options Options) (*Logger, error) {
	err := os.MkdirAll(filepath.Dir(filename), fsutil.DirPerms)
	if err != nil {
		return nil, err
	}
	file, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	bufWriter := bufio.NewWriter(file)
	var writer io.Writer = bufWriter
	if options.AlsoLogToStderr {
		writer = io.MultiWriter(bufWriter, os.Stderr)
	}
	if !options.StartTime.IsZero() {
		writer = &timestampWriter{startTime: options.StartTime, writer: writer}
	}
	logger := debuglogger.New(log.New(writer, "", 0))
	logger.SetLevel(options.DebugLevel)
	return &Logger{
		Logger:   logger,
		file:     file,
		filename: filename,
		writer:   bufWriter,
	}, nil
}

func (l *Logger) close() error {
	flushError := l.Flush()
	if err := l.file.Close(); err != nil {
		return err
	}
	return flushError
}

func (w *timestampWriter) Write(p []byte) (int, error) {
	buffer := &bytes.Buffer{}
	fmt.Fprintf(buffer, "[%7.3f] ", time.Since(w.startTime).Seconds())
	buffer.Write(p)
	if _, err := w.writer.Write(buffer.Bytes()); err != nil {
		return 0, err
	}
	return len(p), nil
}

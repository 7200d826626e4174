package debuglogger

import (
	"log"
)

type Logger struct {
	level int16
	*log.Logger
}

// New will create a Logger from a *log.Logger from the standard library. The
// initial debug level is -1, which suppresses all debug messages.
func New(logger *log.Logger) *Logger {
	return &Logger{level: -1, Logger: logger}
}

// Debug will call the Print method of the underlying logger if level is at or
// below the maximum debug level.
func (l *Logger) Debug(level uint8, v ...interface{}) {
	if l.enabled(level) {
		l.Print(v...)
	}
}

// Debugf is similar to Debug, with formatting support.
func (l *Logger) Debugf(level uint8, format string, v ...interface{}) {
	if l.enabled(level) {
		l.Printf(format, v...)
	}
}

// Debugln is similar to Debug.
func (l *Logger) Debugln(level uint8, v ...interface{}) {
	if l.enabled(level) {
		l.Println(v...)
	}
}

// GetLevel returns the maximum debug level.
func (l *Logger) GetLevel() int16 {
	return l.level
}

// SetLevel sets the maximum debug level. Supported range: -1 to 255.
func (l *Logger) SetLevel(maxLevel int16) {
	if maxLevel < -1 {
		maxLevel = -1
	}
	l.level = maxLevel
}

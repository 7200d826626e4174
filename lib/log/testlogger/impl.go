package testlogger

import (
	"fmt"
	"strings"
)

func sprint(v ...interface{}) string {
	return strings.TrimSuffix(fmt.Sprint(v...), "\n")
}

func sprintf(format string, v ...interface{}) string {
	return strings.TrimSuffix(fmt.Sprintf(format, v...), "\n")
}

func (l *Logger) fatal(s string) {
	l.logger.Fatal(s)
}

func (l *Logger) panic(s string) {
	l.logger.Fatal(s)
	panic(s)
}

func (l *Logger) print(v ...interface{}) {
	l.logger.Log(sprint(v...))
}

func (l *Logger) printf(format string, v ...interface{}) {
	l.logger.Log(sprintf(format, v...))
}

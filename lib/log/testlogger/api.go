package testlogger

// TestLogger defines an interface for a type that can be used for logging by
// tests. The testing.T type from the standard library satisfies this interface.
type TestLogger interface {
	Fatal(v ...interface{})
	Log(v ...interface{})
}

// Logger adapts a TestLogger to the log.DebugLogger interface, so that
// installer components under test log through testing.T. All debug levels
// are emitted.
type Logger struct {
	logger TestLogger
}

// New will create a Logger from a TestLogger.
// Trailing newlines are removed before calling the TestLogger methods.
func New(logger TestLogger) *Logger {
	return &Logger{logger}
}

func (l *Logger) Debug(level uint8, v ...interface{}) { l.print(v...) }

func (l *Logger) Debugf(level uint8, format string, v ...interface{}) {
	l.printf(format, v...)
}

func (l *Logger) Debugln(level uint8, v ...interface{}) { l.print(v...) }

// Fatal will call the Fatal method of the underlying TestLogger.
func (l *Logger) Fatal(v ...interface{}) { l.fatal(sprint(v...)) }

func (l *Logger) Fatalf(format string, v ...interface{}) {
	l.fatal(sprintf(format, v...))
}

func (l *Logger) Fatalln(v ...interface{}) { l.fatal(sprint(v...)) }

// Panic will call the Fatal method of the underlying TestLogger and will then
// call panic.
func (l *Logger) Panic(v ...interface{}) { l.panic(sprint(v...)) }

func (l *Logger) Panicf(format string, v ...interface{}) {
	l.panic(sprintf(format, v...))
}

func (l *Logger) Panicln(v ...interface{}) { l.panic(sprint(v...)) }

func (l *Logger) Print(v ...interface{}) { l.print(v...) }

func (l *Logger) Printf(format string, v ...interface{}) {
	l.printf(format, v...)
}

func (l *Logger) Println(v ...interface{}) { l.print(v...) }

package debuglogger

func (l *Logger) enabled(level uint8) bool {
	return int16(level) <= l.level
}

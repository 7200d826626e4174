package filelogger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLogToFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "installer", "latest")
	logger, err := New(filename,
		Options{DebugLevel: 0, StartTime: time.Now()})
	if err != nil {
		t.Fatal(err)
	}
	logger.Println("visible")
	logger.Debugln(1, "hidden")
	if err := logger.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "[") || !strings.Contains(text, "] visible\n") {
		t.Errorf("missing timestamped line: %q", text)
	}
	if strings.Contains(text, "hidden") {
		t.Errorf("debug message above level was logged: %q", text)
	}
}

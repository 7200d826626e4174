package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCopyTree(t *testing.T) {
	sourceDir := filepath.Join(t.TempDir(), "keys")
	destDir := t.TempDir()
	if err := os.Mkdir(sourceDir, DirPerms); err != nil {
		t.Fatal(err)
	}
	err := os.WriteFile(filepath.Join(sourceDir, "60:ae:0c.plist"),
		[]byte("key"), PublicFilePerms)
	if err != nil {
		t.Fatal(err)
	}
	if err := CopyTree(destDir, sourceDir); err != nil {
		t.Fatal(err)
	}
	if got := readTestFile(t,
		filepath.Join(destDir, "60:ae:0c.plist")); got != "key" {
		t.Errorf("expected: key got: %s", got)
	}
}

func TestCopyTreeMissingSource(t *testing.T) {
	if err := CopyTree(t.TempDir(), "/nonexistent/keys"); err != nil {
		t.Errorf("missing source reported: %s", err)
	}
}

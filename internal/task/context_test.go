package task

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadFile_MissingIsPreconditionFault(t *testing.T) {
	ctx := New(t.TempDir())

	_, err := ctx.ReadFile("Gemfile")
	if !errors.Is(err, ErrMissingTarget) {
		t.Errorf("error = %v, want ErrMissingTarget", err)
	}
}

func TestReadFileIfExists_MissingIsEmpty(t *testing.T) {
	ctx := New(t.TempDir())

	data, err := ctx.ReadFileIfExists(".gitignore")
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if data != nil {
		t.Errorf("data = %q, want nil", data)
	}
}

func TestWriteFile_CreatesParentDirs(t *testing.T) {
	ctx := New(t.TempDir())

	if err := ctx.WriteFile("config/environments/test.rb", []byte("end\n")); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(ctx.Root, "config/environments/test.rb")); err != nil {
		t.Errorf("file not written: %v", err)
	}
}

func TestWriteFile_DryRun(t *testing.T) {
	var log bytes.Buffer
	ctx := New(t.TempDir())
	ctx.DryRun = true
	ctx.Verbose = true
	ctx.Out = &log

	if err := ctx.WriteFile("Gemfile", []byte("source\n")); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(ctx.Root, "Gemfile")); !os.IsNotExist(err) {
		t.Error("dry-run must not write files")
	}
	if !strings.Contains(log.String(), "dry-run") {
		t.Errorf("expected dry-run log line, got %q", log.String())
	}
}

func TestLogf_SilentUnlessVerbose(t *testing.T) {
	var log bytes.Buffer
	ctx := New(t.TempDir())
	ctx.Out = &log

	ctx.Logf("should not appear")
	if log.Len() != 0 {
		t.Errorf("non-verbose context logged: %q", log.String())
	}
}

func TestFileExists(t *testing.T) {
	ctx := New(t.TempDir())
	if ctx.FileExists("Gemfile") {
		t.Error("FileExists on missing file")
	}
	if err := os.WriteFile(filepath.Join(ctx.Root, "Gemfile"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !ctx.FileExists("Gemfile") {
		t.Error("FileExists on present file")
	}
}

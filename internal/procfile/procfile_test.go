package procfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/railforge-dev/railforge/internal/task"
)

func writeManifest(t *testing.T, ctx *task.Context, rel, content string) string {
	t.Helper()
	path := filepath.Join(ctx.Root, rel)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readManifest(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(content)
}

func TestUpsert_ReplacesInPlace(t *testing.T) {
	ctx := task.New(t.TempDir())
	path := writeManifest(t, ctx, "Procfile", "web: old-command\nworker: run-worker\n")

	if err := Upsert(ctx, "Procfile", "web", "start-server"); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got := readManifest(t, path)
	want := "web: start-server\nworker: run-worker\n"
	if got != want {
		t.Errorf("Procfile = %q, want %q", got, want)
	}
	if lines := strings.Count(got, "\n"); lines != 2 {
		t.Errorf("line count = %d, want 2", lines)
	}
}

func TestUpsert_AppendsWhenAbsent(t *testing.T) {
	ctx := task.New(t.TempDir())
	path := writeManifest(t, ctx, "Procfile", "web: start-server\n")

	if err := Upsert(ctx, "Procfile", "release", "migrate-db"); err != nil {
		t.Fatal(err)
	}

	got := readManifest(t, path)
	if got != "web: start-server\nrelease: migrate-db\n" {
		t.Errorf("unexpected Procfile:\n%s", got)
	}
}

func TestUpsert_CreatesFile(t *testing.T) {
	ctx := task.New(t.TempDir())

	if err := Upsert(ctx, "Procfile", "web", "start-server"); err != nil {
		t.Fatal(err)
	}

	got := readManifest(t, filepath.Join(ctx.Root, "Procfile"))
	if got != "web: start-server\n" {
		t.Errorf("Procfile = %q", got)
	}
}

func TestUpsert_Idempotent(t *testing.T) {
	ctx := task.New(t.TempDir())

	if err := Upsert(ctx, "Procfile", "web", "start-server"); err != nil {
		t.Fatal(err)
	}
	once := readManifest(t, filepath.Join(ctx.Root, "Procfile"))

	if err := Upsert(ctx, "Procfile", "web", "start-server"); err != nil {
		t.Fatal(err)
	}
	twice := readManifest(t, filepath.Join(ctx.Root, "Procfile"))

	if once != twice {
		t.Errorf("second upsert changed the file:\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestRemove_TakesPrecedingComments(t *testing.T) {
	ctx := task.New(t.TempDir())
	content := "# serves HTTP traffic\nweb: start-server\n# background jobs\n# uses the default queue\nworker: run-worker\n"
	path := writeManifest(t, ctx, "Procfile", content)

	if err := Remove(ctx, "Procfile", "worker"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	got := readManifest(t, path)
	want := "# serves HTTP traffic\nweb: start-server\n"
	if got != want {
		t.Errorf("Procfile = %q, want %q", got, want)
	}
}

func TestRemove_LeavesUnrelatedComments(t *testing.T) {
	ctx := task.New(t.TempDir())
	// A blank line separates the header comment from the directive; the
	// header must survive removal.
	content := "# process manifest\n\nweb: start-server\n"
	path := writeManifest(t, ctx, "Procfile", content)

	if err := Remove(ctx, "Procfile", "web"); err != nil {
		t.Fatal(err)
	}

	got := readManifest(t, path)
	if got != "# process manifest\n\n" {
		t.Errorf("Procfile = %q", got)
	}
}

func TestRemove_MissingKey(t *testing.T) {
	ctx := task.New(t.TempDir())
	path := writeManifest(t, ctx, "Procfile", "web: start-server\n")

	if err := Remove(ctx, "Procfile", "worker"); err != nil {
		t.Fatal(err)
	}
	if got := readManifest(t, path); got != "web: start-server\n" {
		t.Errorf("file should be unchanged, got %q", got)
	}
}

func TestFileForEnv(t *testing.T) {
	if got := FileForEnv("Procfile", ""); got != "Procfile" {
		t.Errorf("FileForEnv(base, \"\") = %q", got)
	}
	if got := FileForEnv("Procfile", "dev"); got != "Procfile.dev" {
		t.Errorf("FileForEnv(base, dev) = %q", got)
	}
}

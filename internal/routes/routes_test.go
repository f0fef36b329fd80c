package routes

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/railforge-dev/railforge/internal/task"
)

const routesRB = `Rails.application.routes.draw do
  root "home#index"
end
`

const routesRBWithMarker = `Rails.application.routes.draw do
  root "home#index"
  # add new routes above (railforge)
end
`

func newRoutes(t *testing.T, content string) (*task.Context, string) {
	t.Helper()
	ctx := task.New(t.TempDir())
	path := filepath.Join(ctx.Root, File)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return ctx, path
}

func read(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(content)
}

func TestUpsert_FirstScaffold(t *testing.T) {
	ctx, path := newRoutes(t, routesRBWithMarker)

	c := Concern{
		Name:        "widget",
		Resource:    "widgets",
		SubConcerns: []string{"concerns :commentable", "concerns :taggable"},
	}
	if err := Upsert(ctx, c); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got := read(t, path)
	want := `Rails.application.routes.draw do
  root "home#index"
  concern :widget_routes do
    concerns :commentable
    concerns :taggable
  end
  resources :widgets, concerns: :widget_routes
  ADMIN_ROUTES << :widget_routes
  PUBLIC_ROUTES << :widget_routes
  # add new routes above (railforge)
end
`
	if got != want {
		t.Errorf("routes.rb =\n%s\nwant:\n%s", got, want)
	}
}

func TestUpsert_CreatesMarker(t *testing.T) {
	ctx, path := newRoutes(t, routesRB)

	c := Concern{Name: "widget", Resource: "widgets"}
	if err := Upsert(ctx, c); err != nil {
		t.Fatal(err)
	}

	got := read(t, path)
	if !strings.Contains(got, "  # add new routes above (railforge)\nend\n") {
		t.Errorf("marker not created above the closing end:\n%s", got)
	}
	if strings.Index(got, "concern :widget_routes do") > strings.Index(got, "# add new routes above") {
		t.Errorf("block should sit above the marker:\n%s", got)
	}
}

func TestUpsert_ReplacesNotAccumulates(t *testing.T) {
	ctx, path := newRoutes(t, routesRBWithMarker)

	first := Concern{
		Name:        "widget",
		Resource:    "widgets",
		SubConcerns: []string{"concerns :commentable"},
	}
	if err := Upsert(ctx, first); err != nil {
		t.Fatal(err)
	}

	second := Concern{
		Name:        "widget",
		Resource:    "widgets",
		SubConcerns: []string{"concerns :taggable", "concerns :searchable"},
	}
	if err := Upsert(ctx, second); err != nil {
		t.Fatal(err)
	}

	got := read(t, path)
	if n := strings.Count(got, "concern :widget_routes do"); n != 1 {
		t.Fatalf("widget declared %d times, want 1:\n%s", n, got)
	}
	if strings.Contains(got, "concerns :commentable") {
		t.Errorf("first invocation's content should be gone:\n%s", got)
	}
	if !strings.Contains(got, "concerns :taggable") || !strings.Contains(got, "concerns :searchable") {
		t.Errorf("second invocation's content should be present:\n%s", got)
	}
	if n := strings.Count(got, "ADMIN_ROUTES << :widget_routes"); n != 1 {
		t.Errorf("admin registration duplicated (%d):\n%s", n, got)
	}
}

func TestUpsert_Idempotent(t *testing.T) {
	ctx, path := newRoutes(t, routesRBWithMarker)

	c := Concern{Name: "widget", Resource: "widgets", SubConcerns: []string{"concerns :commentable"}}
	if err := Upsert(ctx, c); err != nil {
		t.Fatal(err)
	}
	once := read(t, path)

	if err := Upsert(ctx, c); err != nil {
		t.Fatal(err)
	}
	twice := read(t, path)

	if once != twice {
		t.Errorf("second upsert changed the file:\nonce:\n%s\ntwice:\n%s", once, twice)
	}
}

func TestUpsert_Restricted(t *testing.T) {
	ctx, path := newRoutes(t, routesRBWithMarker)

	c := Concern{Name: "secret", Resource: "secrets", Restricted: true}
	if err := Upsert(ctx, c); err != nil {
		t.Fatal(err)
	}

	got := read(t, path)
	if !strings.Contains(got, "ADMIN_ROUTES << :secret_routes") {
		t.Errorf("admin registration missing:\n%s", got)
	}
	if strings.Contains(got, "PUBLIC_ROUTES << :secret_routes") {
		t.Errorf("restricted resource must not register publicly:\n%s", got)
	}
}

func TestUpsert_RestrictionToggleOnRescaffold(t *testing.T) {
	ctx, path := newRoutes(t, routesRBWithMarker)

	if err := Upsert(ctx, Concern{Name: "widget", Resource: "widgets"}); err != nil {
		t.Fatal(err)
	}
	if err := Upsert(ctx, Concern{Name: "widget", Resource: "widgets", Restricted: true}); err != nil {
		t.Fatal(err)
	}

	got := read(t, path)
	if strings.Contains(got, "PUBLIC_ROUTES << :widget_routes") {
		t.Errorf("public registration should be dropped on restricted re-scaffold:\n%s", got)
	}
	if n := strings.Count(got, "ADMIN_ROUTES << :widget_routes"); n != 1 {
		t.Errorf("admin registration count = %d, want 1:\n%s", n, got)
	}
}

func TestUpsert_NeighboringBlocksUntouched(t *testing.T) {
	ctx, path := newRoutes(t, routesRBWithMarker)

	if err := Upsert(ctx, Concern{Name: "widget", Resource: "widgets"}); err != nil {
		t.Fatal(err)
	}
	if err := Upsert(ctx, Concern{Name: "gadget", Resource: "gadgets"}); err != nil {
		t.Fatal(err)
	}
	// Re-scaffold widget; gadget's block must survive byte for byte.
	if err := Upsert(ctx, Concern{Name: "widget", Resource: "widgets", SubConcerns: []string{"concerns :commentable"}}); err != nil {
		t.Fatal(err)
	}

	got := read(t, path)
	if !strings.Contains(got, "concern :gadget_routes do\n  end\n  resources :gadgets, concerns: :gadget_routes\n") {
		t.Errorf("gadget block damaged:\n%s", got)
	}
	if n := strings.Count(got, "concern :widget_routes do"); n != 1 {
		t.Errorf("widget declared %d times:\n%s", n, got)
	}
}

func TestUpsert_MissingRoutesFile(t *testing.T) {
	ctx := task.New(t.TempDir())

	err := Upsert(ctx, Concern{Name: "widget", Resource: "widgets"})
	if !errors.Is(err, task.ErrMissingTarget) {
		t.Errorf("error = %v, want ErrMissingTarget", err)
	}
}

package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/railforge-dev/railforge/internal/task"
)

//go:embed templates
var scaffoldFS embed.FS

// Data holds all template variables available to resource templates.
type Data struct {
	Name       string // e.g., "widget"
	Resource   string // plural collection name, e.g., "widgets"
	Model      string // Derived: Widget
	Controller string // Derived: WidgetsController
	Year       int    // Current year
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	Created []string
	Skipped []string
}

var titleCaser = cases.Title(language.English)

// classify turns a snake_case identifier into a class name,
// e.g. "line_item" → "LineItem".
func classify(name string) string {
	parts := strings.Split(name, "_")
	for i, p := range parts {
		parts[i] = titleCaser.String(p)
	}
	return strings.Join(parts, "")
}

// NewData creates a Data with derived fields populated. An empty resource
// falls back to the naive plural; real pluralization is the caller's
// concern.
func NewData(name, resource string) *Data {
	if resource == "" {
		resource = name + "s"
	}
	return &Data{
		Name:       name,
		Resource:   resource,
		Model:      classify(name),
		Controller: classify(resource) + "Controller",
		Year:       time.Now().Year(),
	}
}

// destFor maps a template file name to its project-relative destination.
func destFor(tmplName string, data *Data) (string, error) {
	switch tmplName {
	case "controller.rb.tmpl":
		return "app/controllers/" + data.Resource + "_controller.rb", nil
	case "policy.rb.tmpl":
		return "app/policies/" + data.Name + "_policy.rb", nil
	case "index.html.erb.tmpl":
		return "app/views/" + data.Resource + "/index.html.erb", nil
	default:
		return "", fmt.Errorf("no destination mapping for template %q", tmplName)
	}
}

// Generate renders the resource templates into the project. A destination
// file that already exists is skipped unless force is set, in which case
// it is overwritten.
func Generate(ctx *task.Context, data *Data, force bool) (*Result, error) {
	templatesDir := "templates/resource"

	entries, err := fs.ReadDir(scaffoldFS, templatesDir)
	if err != nil {
		return nil, fmt.Errorf("template set %q not found: %w", templatesDir, err)
	}

	result := &Result{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		dest, err := destFor(entry.Name(), data)
		if err != nil {
			return nil, err
		}

		if ctx.FileExists(dest) && !force {
			ctx.Logf("skipping existing %s", dest)
			result.Skipped = append(result.Skipped, dest)
			continue
		}

		tmplBytes, err := fs.ReadFile(scaffoldFS, templatesDir+"/"+entry.Name())
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", entry.Name(), err)
		}

		tmpl, err := template.New(entry.Name()).Parse(string(tmplBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", entry.Name(), err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("executing template %s: %w", entry.Name(), err)
		}

		if err := ctx.WriteFile(dest, buf.Bytes()); err != nil {
			return nil, err
		}
		result.Created = append(result.Created, dest)
	}

	return result, nil
}
